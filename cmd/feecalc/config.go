package main

import (
	"strings"

	"cosmossdk.io/math"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/kevinheavey/protocol-v1/clearing-chain/modules/clearinghouse/types"
)

const (
	envPrefix = "FEECALC"

	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"

	defaultLogLevel      = "info"
	defaultQuoteDecimals = 6
)

// Config is the calculator configuration. Amounts are kept as strings so that values wider
// than 64 bits survive the config file and the environment.
type Config struct {
	LogLevel          string             `mapstructure:"log-level"`
	Output            string             `mapstructure:"output"`
	QuoteDecimals     int32              `mapstructure:"quote-decimals"`
	FeeStructure      FeeStructureConfig `mapstructure:"fee-structure"`
	OrderFillerReward RatioConfig        `mapstructure:"order-filler-reward"`
}

type RatioConfig struct {
	Numerator   string `mapstructure:"numerator"`
	Denominator string `mapstructure:"denominator"`
}

type DiscountTierConfig struct {
	MinimumBalance string      `mapstructure:"minimum-balance"`
	Discount       RatioConfig `mapstructure:"discount"`
}

type DiscountTiersConfig struct {
	First  DiscountTierConfig `mapstructure:"first"`
	Second DiscountTierConfig `mapstructure:"second"`
	Third  DiscountTierConfig `mapstructure:"third"`
	Fourth DiscountTierConfig `mapstructure:"fourth"`
}

type FeeStructureConfig struct {
	Fee                RatioConfig         `mapstructure:"fee"`
	DiscountTokenTiers DiscountTiersConfig `mapstructure:"discount-token-tiers"`
	ReferrerReward     RatioConfig         `mapstructure:"referrer-reward"`
	RefereeDiscount    RatioConfig         `mapstructure:"referee-discount"`
}

// DefaultConfig returns the calculator configuration with the clearing house defaults.
func DefaultConfig() *Config {
	fs := types.DefaultFeeStructure()
	filler := types.DefaultOrderFillerRewardStructure()

	tierConfig := func(t types.DiscountTokenTier) DiscountTierConfig {
		return DiscountTierConfig{
			MinimumBalance: t.MinimumBalance.String(),
			Discount:       ratioConfig(t.DiscountNumerator, t.DiscountDenominator),
		}
	}

	return &Config{
		LogLevel:      defaultLogLevel,
		Output:        outputTable,
		QuoteDecimals: defaultQuoteDecimals,
		FeeStructure: FeeStructureConfig{
			Fee: ratioConfig(fs.FeeNumerator, fs.FeeDenominator),
			DiscountTokenTiers: DiscountTiersConfig{
				First:  tierConfig(fs.DiscountTokenTiers.FirstTier),
				Second: tierConfig(fs.DiscountTokenTiers.SecondTier),
				Third:  tierConfig(fs.DiscountTokenTiers.ThirdTier),
				Fourth: tierConfig(fs.DiscountTokenTiers.FourthTier),
			},
			ReferrerReward: ratioConfig(
				fs.ReferralDiscount.ReferrerRewardNumerator,
				fs.ReferralDiscount.ReferrerRewardDenominator,
			),
			RefereeDiscount: ratioConfig(
				fs.ReferralDiscount.RefereeDiscountNumerator,
				fs.ReferralDiscount.RefereeDiscountDenominator,
			),
		},
		OrderFillerReward: ratioConfig(filler.RewardNumerator, filler.RewardDenominator),
	}
}

func ratioConfig(numerator, denominator math.Int) RatioConfig {
	return RatioConfig{Numerator: numerator.String(), Denominator: denominator.String()}
}

// NewViper returns a viper instance that knows every config key, so each of them can be
// overridden from a FEECALC_ prefixed environment variable.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())
	return v
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("log-level", cfg.LogLevel)
	v.SetDefault("output", cfg.Output)
	v.SetDefault("quote-decimals", cfg.QuoteDecimals)

	setRatioDefaults(v, "fee-structure.fee", cfg.FeeStructure.Fee)
	setTierDefaults(v, "fee-structure.discount-token-tiers.first", cfg.FeeStructure.DiscountTokenTiers.First)
	setTierDefaults(v, "fee-structure.discount-token-tiers.second", cfg.FeeStructure.DiscountTokenTiers.Second)
	setTierDefaults(v, "fee-structure.discount-token-tiers.third", cfg.FeeStructure.DiscountTokenTiers.Third)
	setTierDefaults(v, "fee-structure.discount-token-tiers.fourth", cfg.FeeStructure.DiscountTokenTiers.Fourth)
	setRatioDefaults(v, "fee-structure.referrer-reward", cfg.FeeStructure.ReferrerReward)
	setRatioDefaults(v, "fee-structure.referee-discount", cfg.FeeStructure.RefereeDiscount)
	setRatioDefaults(v, "order-filler-reward", cfg.OrderFillerReward)
}

func setRatioDefaults(v *viper.Viper, key string, r RatioConfig) {
	v.SetDefault(key+".numerator", r.Numerator)
	v.SetDefault(key+".denominator", r.Denominator)
}

func setTierDefaults(v *viper.Viper, key string, t DiscountTierConfig) {
	v.SetDefault(key+".minimum-balance", t.MinimumBalance)
	setRatioDefaults(v, key+".discount", t.Discount)
}

// ReadConfigFile merges the given file into v. An empty path leaves v untouched.
func ReadConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}

	return nil
}

// ParseConfig unmarshals and checks a fully parsed Config object.
func ParseConfig(v *viper.Viper) (*Config, error) {
	conf := DefaultConfig()
	if err := v.Unmarshal(conf); err != nil {
		return nil, errors.Wrap(err, "error parsing config")
	}

	if err := conf.ValidateBasic(); err != nil {
		return nil, err
	}

	return conf, nil
}

// ValidateBasic checks the presentation settings. The fee schedule is checked separately,
// so that an invalid schedule can still be printed.
func (c *Config) ValidateBasic() error {
	var result *multierror.Error

	switch c.LogLevel {
	case "error", "warn", "info", "debug":
	default:
		result = multierror.Append(result, errors.Errorf("unsupported log level %q", c.LogLevel))
	}

	switch c.Output {
	case outputTable, outputJSON, outputYAML:
	default:
		result = multierror.Append(result, errors.Errorf("unsupported output format %q", c.Output))
	}

	if c.QuoteDecimals < 0 || c.QuoteDecimals > 38 {
		result = multierror.Append(result, errors.Errorf("quote decimals must be within [0, 38], got %d", c.QuoteDecimals))
	}

	return result.ErrorOrNil()
}

// ToFeeStructure converts the configured schedule into a types.FeeStructure without
// validating it.
func (c FeeStructureConfig) ToFeeStructure() (*types.FeeStructure, error) {
	p := &amountParser{}

	tier := func(name string, t DiscountTierConfig) types.DiscountTokenTier {
		return types.DiscountTokenTier{
			MinimumBalance:      p.parse(name+".minimum-balance", t.MinimumBalance),
			DiscountNumerator:   p.parse(name+".discount.numerator", t.Discount.Numerator),
			DiscountDenominator: p.parse(name+".discount.denominator", t.Discount.Denominator),
		}
	}

	fs := &types.FeeStructure{
		FeeNumerator:   p.parse("fee.numerator", c.Fee.Numerator),
		FeeDenominator: p.parse("fee.denominator", c.Fee.Denominator),
		DiscountTokenTiers: types.DiscountTokenTiers{
			FirstTier:  tier("discount-token-tiers.first", c.DiscountTokenTiers.First),
			SecondTier: tier("discount-token-tiers.second", c.DiscountTokenTiers.Second),
			ThirdTier:  tier("discount-token-tiers.third", c.DiscountTokenTiers.Third),
			FourthTier: tier("discount-token-tiers.fourth", c.DiscountTokenTiers.Fourth),
		},
		ReferralDiscount: types.ReferralDiscount{
			ReferrerRewardNumerator:    p.parse("referrer-reward.numerator", c.ReferrerReward.Numerator),
			ReferrerRewardDenominator:  p.parse("referrer-reward.denominator", c.ReferrerReward.Denominator),
			RefereeDiscountNumerator:   p.parse("referee-discount.numerator", c.RefereeDiscount.Numerator),
			RefereeDiscountDenominator: p.parse("referee-discount.denominator", c.RefereeDiscount.Denominator),
		},
	}

	if err := p.err.ErrorOrNil(); err != nil {
		return nil, errors.Wrap(err, "fee-structure")
	}

	return fs, nil
}

// ToFillerReward converts the configured filler reward without validating it.
func (c RatioConfig) ToFillerReward() (*types.OrderFillerRewardStructure, error) {
	p := &amountParser{}

	s := &types.OrderFillerRewardStructure{
		RewardNumerator:   p.parse("numerator", c.Numerator),
		RewardDenominator: p.parse("denominator", c.Denominator),
	}

	if err := p.err.ErrorOrNil(); err != nil {
		return nil, errors.Wrap(err, "order-filler-reward")
	}

	return s, nil
}

// amountParser collects every malformed field instead of stopping at the first one.
type amountParser struct {
	err *multierror.Error
}

func (p *amountParser) parse(field, s string) math.Int {
	amt, err := parseAmount(s)
	if err != nil {
		p.err = multierror.Append(p.err, errors.Wrap(err, field))
		return math.ZeroInt()
	}
	return amt
}
