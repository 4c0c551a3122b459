package main

import (
	corelog "cosmossdk.io/log"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	log "github.com/xlab/suplog"

	"github.com/kevinheavey/protocol-v1/clearing-chain/modules/clearinghouse/keeper"
	"github.com/kevinheavey/protocol-v1/clearing-chain/modules/clearinghouse/types"
)

const (
	flagConfig        = "config"
	flagLogLevel      = "log-level"
	flagOutput        = "output"
	flagQuoteDecimals = "quote-decimals"

	flagDiscountTokenBalance = "discount-token-balance"
	flagDiscountTokenOwner   = "discount-token-owner"
	flagReferrer             = "referrer"
	flagTier                 = "tier"
)

// app is the state shared by every subcommand once the configuration is loaded.
type app struct {
	v          *viper.Viper
	configPath string

	cfg    *Config
	keeper *keeper.Keeper
}

// NewRootCmd returns the feecalc command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: NewViper()}

	rootCmd := &cobra.Command{
		Use:          "feecalc",
		Short:        "Clearing house fee, discount, referral and filler reward calculator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, flagConfig, "", "path to a config file (yaml, toml or json)")
	flags.String(flagLogLevel, defaultLogLevel, "log level: error, warn, info or debug")
	flags.String(flagOutput, outputTable, "output format: table, json or yaml")
	flags.Int32(flagQuoteDecimals, defaultQuoteDecimals, "decimals of the quote asset, used for display only")

	for _, name := range []string{flagLogLevel, flagOutput, flagQuoteDecimals} {
		if err := a.v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(
		NewMarketCmd(a),
		NewLimitCmd(a),
		NewTierCmd(a),
		NewScheduleCmd(a),
	)

	return rootCmd
}

func (a *app) load(cmd *cobra.Command) error {
	if err := ReadConfigFile(a.v, a.configPath); err != nil {
		return err
	}

	cfg, err := ParseConfig(a.v)
	if err != nil {
		return err
	}

	log.DefaultLogger.SetLevel(logLevel(cfg.LogLevel))

	filter, err := corelog.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "failed to parse log level")
	}

	a.cfg = cfg
	a.keeper = keeper.NewKeeper(corelog.NewLogger(cmd.ErrOrStderr(), corelog.FilterOption(filter)))

	log.WithFields(log.Fields{
		"config": a.configPath,
		"output": cfg.Output,
	}).Debugln("loaded configuration")

	return nil
}

// schedule returns the configured fee structure and filler reward along with every
// validation problem found in them.
func (a *app) schedule() (*types.FeeStructure, *types.OrderFillerRewardStructure, error) {
	fs, err := a.cfg.FeeStructure.ToFeeStructure()
	if err != nil {
		return nil, nil, err
	}

	filler, err := a.cfg.OrderFillerReward.ToFillerReward()
	if err != nil {
		return nil, nil, err
	}

	var result *multierror.Error
	if err := fs.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := filler.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	return fs, filler, result.ErrorOrNil()
}

// validSchedule is schedule for commands that must not price anything with a broken schedule.
func (a *app) validSchedule() (*types.FeeStructure, *types.OrderFillerRewardStructure, error) {
	fs, filler, err := a.schedule()
	if err != nil {
		return nil, nil, errors.Wrap(err, "invalid fee schedule")
	}

	if !fs.DiscountTokenTiers.IsDescending() {
		log.Warningln("discount token tiers are not ordered by descending minimum balance, the first matching tier wins")
	}

	return fs, filler, nil
}

func (a *app) write(cmd *cobra.Command, r report) error {
	return writeReport(cmd.OutOrStdout(), a.cfg.Output, r)
}
