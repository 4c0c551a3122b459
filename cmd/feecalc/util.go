package main

import (
	"strings"

	"cosmossdk.io/math"
	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/xlab/suplog"

	"github.com/kevinheavey/protocol-v1/clearing-chain/modules/clearinghouse/types"
)

// readEnv is a special utility that reads `.env` file into actual environment variables of the current app
func readEnv() {
	if err := godotenv.Load(); err != nil {
		log.WithError(err).Debugln("no .env file loaded")
	}
}

// logLevel converts vague log level name into typed level.
func logLevel(s string) log.Level {
	switch s {
	case "1", "error":
		return log.ErrorLevel
	case "2", "warn":
		return log.WarnLevel
	case "3", "info":
		return log.InfoLevel
	case "4", "debug":
		return log.DebugLevel
	default:
		return log.FatalLevel
	}
}

// parseAmount parses a base-10 token amount, allowing `_` as a digit separator.
func parseAmount(s string) (math.Int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if s == "" {
		return math.Int{}, errors.New("empty amount")
	}

	amt, ok := math.NewIntFromString(s)
	if !ok {
		return math.Int{}, errors.Errorf("%q is not an integer", s)
	}

	if err := types.ValidateAmount(amt); err != nil {
		return math.Int{}, err
	}

	return amt, nil
}

// parseAddress parses a 0x-prefixed hex account address.
func parseAddress(s string) (ethcmn.Address, error) {
	if !ethcmn.IsHexAddress(s) {
		return ethcmn.Address{}, errors.Errorf("%q is not a hex address", s)
	}
	return ethcmn.HexToAddress(s), nil
}
