package main

import (
	"cosmossdk.io/math"
	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	log "github.com/xlab/suplog"

	"github.com/kevinheavey/protocol-v1/clearing-chain/modules/clearinghouse/fees"
	"github.com/kevinheavey/protocol-v1/clearing-chain/modules/clearinghouse/types"
)

type marketOrderResult struct {
	QuoteAssetAmount  math.Int                `json:"quote_asset_amount"`
	OrderDiscountTier types.OrderDiscountTier `json:"order_discount_tier"`
	Referrer          string                  `json:"referrer,omitempty"`
	Fee               math.Int                `json:"fee"`
	fees.MarketOrderFees
}

type limitOrderResult struct {
	QuoteAssetAmount  math.Int                `json:"quote_asset_amount"`
	OrderDiscountTier types.OrderDiscountTier `json:"order_discount_tier"`
	Fee               math.Int                `json:"fee"`
	fees.LimitOrderFees
}

type tierResult struct {
	DiscountTokenBalance math.Int                 `json:"discount_token_balance"`
	OrderDiscountTier    types.OrderDiscountTier  `json:"order_discount_tier"`
	Tier                 *types.DiscountTokenTier `json:"tier,omitempty"`
}

type scheduleResult struct {
	FeeStructure      *types.FeeStructure               `json:"fee_structure"`
	OrderFillerReward *types.OrderFillerRewardStructure `json:"order_filler_reward"`
	TiersDescending   bool                              `json:"tiers_descending"`
	Valid             bool                              `json:"valid"`
	Errors            []string                          `json:"errors,omitempty"`
}

func NewMarketCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market [quote-asset-amount]",
		Args:  cobra.ExactArgs(1),
		Short: "Price an immediately executed order.",
		Long: `Price an immediately executed order of the given notional, in quote base units.

Example:
$ feecalc market 1000000 --discount-token-balance 1000000000 --referrer 0x9b8a7c6d5e4f3a2b1c0d9e8f7a6b5c4d3e2f1a0b
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			quote, err := parseAmount(args[0])
			if err != nil {
				return errors.Wrap(err, "quote asset amount")
			}

			fs, _, err := a.validSchedule()
			if err != nil {
				return err
			}

			discountToken, err := discountTokenFromFlags(cmd.Flags())
			if err != nil {
				return err
			}

			referrer, err := referrerFromFlags(cmd.Flags())
			if err != nil {
				return err
			}

			tier, err := a.keeper.OrderFeeTier(cmd.Context(), fs, discountToken)
			if err != nil {
				return err
			}

			res, err := a.keeper.FeeForMarketOrder(cmd.Context(), quote, fs, discountToken, referrer)
			if err != nil {
				return err
			}

			result := marketOrderResult{
				QuoteAssetAmount:  quote,
				OrderDiscountTier: tier,
				Fee:               res.Fee(),
				MarketOrderFees:   res,
			}
			if referrer != nil {
				result.Referrer = referrer.Authority.Hex()
			}

			d := a.cfg.QuoteDecimals
			r := report{payload: result}
			r.addAmount("quote asset amount", quote, d)
			r.add("discount tier", tier.String(), "")
			r.add("referrer", result.Referrer, "")
			r.addAmount("fee", result.Fee, d)
			r.addAmount("token discount", res.TokenDiscount, d)
			r.addAmount("referee discount", res.RefereeDiscount, d)
			r.addAmount("user fee", res.UserFee, d)
			r.addAmount("referrer reward", res.ReferrerReward, d)
			r.addAmount("fee to market", res.FeeToMarket, d)

			return a.write(cmd, r)
		},
	}

	cmd.Flags().String(flagDiscountTokenBalance, "", "discount token balance of the trader, in base units")
	cmd.Flags().String(flagDiscountTokenOwner, "", "owner of the discount token account")
	cmd.Flags().String(flagReferrer, "", "authority of the trader's referrer")

	return cmd
}

func NewLimitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "limit [quote-asset-amount]",
		Args:  cobra.ExactArgs(1),
		Short: "Price the fill of a resting order.",
		Long: `Price the fill of a resting order using the discount tier captured when it was placed.
The tier is either given directly or resolved from a discount token balance.

Example:
$ feecalc limit 1000000 --tier first
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			quote, err := parseAmount(args[0])
			if err != nil {
				return errors.Wrap(err, "quote asset amount")
			}

			fs, filler, err := a.validSchedule()
			if err != nil {
				return err
			}

			tier := types.OrderDiscountTierNone
			if cmd.Flags().Changed(flagDiscountTokenBalance) {
				discountToken, err := discountTokenFromFlags(cmd.Flags())
				if err != nil {
					return err
				}

				if tier, err = a.keeper.OrderFeeTier(cmd.Context(), fs, discountToken); err != nil {
					return err
				}
			} else {
				tierStr, _ := cmd.Flags().GetString(flagTier)
				if tier, err = types.ParseOrderDiscountTier(tierStr); err != nil {
					return err
				}
			}

			res, err := a.keeper.FeeForLimitOrder(cmd.Context(), quote, fs, filler, tier)
			if err != nil {
				return err
			}

			d := a.cfg.QuoteDecimals
			r := report{payload: limitOrderResult{
				QuoteAssetAmount:  quote,
				OrderDiscountTier: tier,
				Fee:               res.Fee(),
				LimitOrderFees:    res,
			}}
			r.addAmount("quote asset amount", quote, d)
			r.add("discount tier", tier.String(), "")
			r.addAmount("fee", res.Fee(), d)
			r.addAmount("token discount", res.TokenDiscount, d)
			r.addAmount("user fee", res.UserFee, d)
			r.addAmount("filler reward", res.FillerReward, d)
			r.addAmount("fee to market", res.FeeToMarket, d)

			return a.write(cmd, r)
		},
	}

	cmd.Flags().String(flagTier, types.OrderDiscountTierNone.String(), "discount tier captured at placement: none, first, second, third, fourth or 0-4")
	cmd.Flags().String(flagDiscountTokenBalance, "", "resolve the tier from this discount token balance instead")
	cmd.MarkFlagsMutuallyExclusive(flagTier, flagDiscountTokenBalance)

	return cmd
}

func NewTierCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tier",
		Args:  cobra.NoArgs,
		Short: "Resolve the discount tier of a discount token balance.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs, _, err := a.validSchedule()
			if err != nil {
				return err
			}

			discountToken, err := discountTokenFromFlags(cmd.Flags())
			if err != nil {
				return err
			}

			tier, err := a.keeper.OrderFeeTier(cmd.Context(), fs, discountToken)
			if err != nil {
				return err
			}

			result := tierResult{
				DiscountTokenBalance: math.ZeroInt(),
				OrderDiscountTier:    tier,
			}
			if discountToken != nil {
				result.DiscountTokenBalance = discountToken.Amount
			}

			r := report{}
			r.add("discount token balance", result.DiscountTokenBalance.String(), "")
			r.add("discount tier", tier.String(), "")

			if t, ok := fs.DiscountTokenTiers.Get(tier); ok {
				result.Tier = &t
				r.add("minimum balance", t.MinimumBalance.String(), "")
				r.addRatio("discount", t.DiscountNumerator, t.DiscountDenominator)
			}

			r.payload = result
			return a.write(cmd, r)
		},
	}

	cmd.Flags().String(flagDiscountTokenBalance, "", "discount token balance, in base units")

	return cmd
}

func NewScheduleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Args:  cobra.NoArgs,
		Short: "Print and check the effective fee schedule.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs, filler, validationErr := a.schedule()
			if fs == nil {
				return validationErr
			}

			result := scheduleResult{
				FeeStructure:      fs,
				OrderFillerReward: filler,
				TiersDescending:   fs.DiscountTokenTiers.IsDescending(),
				Valid:             validationErr == nil,
			}

			var merr *multierror.Error
			if errors.As(validationErr, &merr) {
				for _, err := range merr.Errors {
					result.Errors = append(result.Errors, err.Error())
				}
			}

			d := a.cfg.QuoteDecimals
			r := report{payload: result}
			r.addRatio("fee", fs.FeeNumerator, fs.FeeDenominator)
			for _, t := range fs.DiscountTokenTiers.Ordered() {
				r.addAmount(t.Label.String()+" tier minimum balance", t.Tier.MinimumBalance, d)
				r.addRatio(t.Label.String()+" tier discount", t.Tier.DiscountNumerator, t.Tier.DiscountDenominator)
			}
			r.addRatio("referrer reward", fs.ReferralDiscount.ReferrerRewardNumerator, fs.ReferralDiscount.ReferrerRewardDenominator)
			r.addRatio("referee discount", fs.ReferralDiscount.RefereeDiscountNumerator, fs.ReferralDiscount.RefereeDiscountDenominator)
			r.addRatio("filler reward", filler.RewardNumerator, filler.RewardDenominator)
			r.add("tiers descending", boolString(result.TiersDescending), "")
			r.add("valid", boolString(result.Valid), "")
			for _, e := range result.Errors {
				r.add("error", e, "")
			}

			if err := a.write(cmd, r); err != nil {
				return err
			}

			if !result.TiersDescending {
				log.Warningln("discount token tiers are not ordered by descending minimum balance")
			}

			if validationErr != nil {
				return errors.New("fee schedule is invalid")
			}
			return nil
		},
	}
}

func discountTokenFromFlags(flags *pflag.FlagSet) (*types.DiscountTokenAccount, error) {
	if !flags.Changed(flagDiscountTokenBalance) {
		return nil, nil
	}

	balanceStr, _ := flags.GetString(flagDiscountTokenBalance)
	balance, err := parseAmount(balanceStr)
	if err != nil {
		return nil, errors.Wrap(err, "discount token balance")
	}

	var owner ethcmn.Address
	if f := flags.Lookup(flagDiscountTokenOwner); f != nil && f.Changed {
		if owner, err = parseAddress(f.Value.String()); err != nil {
			return nil, errors.Wrap(err, "discount token owner")
		}
	}

	return types.NewDiscountTokenAccount(owner, balance), nil
}

func referrerFromFlags(flags *pflag.FlagSet) (*types.Referrer, error) {
	if !flags.Changed(flagReferrer) {
		return nil, nil
	}

	referrerStr, _ := flags.GetString(flagReferrer)
	authority, err := parseAddress(referrerStr)
	if err != nil {
		return nil, errors.Wrap(err, "referrer")
	}

	return types.NewReferrer(authority), nil
}

func boolString(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
