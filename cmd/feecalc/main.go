package main

import (
	"context"
	"os"

	log "github.com/xlab/suplog"
)

func main() {
	readEnv()

	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		log.WithError(err).Errorln("feecalc failed")
		os.Exit(1)
	}
}
