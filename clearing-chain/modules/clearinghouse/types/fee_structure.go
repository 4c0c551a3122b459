package types

import (
	"cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/hashicorp/go-multierror"
)

// Defaults the clearing house is initialised with.
const (
	DefaultFeeNumerator   = 10
	DefaultFeeDenominator = 10_000

	DefaultDiscountTokenFirstTierMinimumBalance  = 1_000 * QuotePrecision
	DefaultDiscountTokenFirstTierDiscount        = 20
	DefaultDiscountTokenSecondTierMinimumBalance = 100 * QuotePrecision
	DefaultDiscountTokenSecondTierDiscount       = 15
	DefaultDiscountTokenThirdTierMinimumBalance  = 10 * QuotePrecision
	DefaultDiscountTokenThirdTierDiscount        = 10
	DefaultDiscountTokenFourthTierMinimumBalance = 1 * QuotePrecision
	DefaultDiscountTokenFourthTierDiscount       = 5
	DefaultDiscountTokenDiscountDenominator      = 100

	DefaultReferrerRewardNumerator    = 5
	DefaultReferrerRewardDenominator  = 100
	DefaultRefereeDiscountNumerator   = 5
	DefaultRefereeDiscountDenominator = 100
)

// FeeStructure is the exchange administered fee schedule. It is read-only input to every
// fee computation.
type FeeStructure struct {
	FeeNumerator       math.Int           `json:"fee_numerator"`
	FeeDenominator     math.Int           `json:"fee_denominator"`
	DiscountTokenTiers DiscountTokenTiers `json:"discount_token_tiers"`
	ReferralDiscount   ReferralDiscount   `json:"referral_discount"`
}

// ReferralDiscount splits off two independent shares of the same fee: one paid to the
// referrer and one refunded to the referee.
type ReferralDiscount struct {
	ReferrerRewardNumerator    math.Int `json:"referrer_reward_numerator"`
	ReferrerRewardDenominator  math.Int `json:"referrer_reward_denominator"`
	RefereeDiscountNumerator   math.Int `json:"referee_discount_numerator"`
	RefereeDiscountDenominator math.Int `json:"referee_discount_denominator"`
}

func DefaultFeeStructure() FeeStructure {
	return FeeStructure{
		FeeNumerator:   math.NewInt(DefaultFeeNumerator),
		FeeDenominator: math.NewInt(DefaultFeeDenominator),
		DiscountTokenTiers: DiscountTokenTiers{
			FirstTier: NewDiscountTokenTier(
				DefaultDiscountTokenFirstTierMinimumBalance,
				DefaultDiscountTokenFirstTierDiscount,
				DefaultDiscountTokenDiscountDenominator,
			),
			SecondTier: NewDiscountTokenTier(
				DefaultDiscountTokenSecondTierMinimumBalance,
				DefaultDiscountTokenSecondTierDiscount,
				DefaultDiscountTokenDiscountDenominator,
			),
			ThirdTier: NewDiscountTokenTier(
				DefaultDiscountTokenThirdTierMinimumBalance,
				DefaultDiscountTokenThirdTierDiscount,
				DefaultDiscountTokenDiscountDenominator,
			),
			FourthTier: NewDiscountTokenTier(
				DefaultDiscountTokenFourthTierMinimumBalance,
				DefaultDiscountTokenFourthTierDiscount,
				DefaultDiscountTokenDiscountDenominator,
			),
		},
		ReferralDiscount: ReferralDiscount{
			ReferrerRewardNumerator:    math.NewInt(DefaultReferrerRewardNumerator),
			ReferrerRewardDenominator:  math.NewInt(DefaultReferrerRewardDenominator),
			RefereeDiscountNumerator:   math.NewInt(DefaultRefereeDiscountNumerator),
			RefereeDiscountDenominator: math.NewInt(DefaultRefereeDiscountDenominator),
		},
	}
}

// Validate reports every problem with the fee structure. On top of the per-field checks it
// rejects any tier whose discount, combined with the referee discount and the referrer
// reward, could exceed the fee.
func (fs *FeeStructure) Validate() error {
	var result *multierror.Error

	if err := validateRatio(fs.FeeNumerator, fs.FeeDenominator); err != nil {
		result = multierror.Append(result, errors.Wrapf(ErrInvalidFeeStructure, "fee: %s", err))
	}

	validTiers := make([]LabeledDiscountTokenTier, 0, 4)
	for _, tier := range fs.DiscountTokenTiers.Ordered() {
		if err := tier.Tier.Validate(); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "%s tier", tier.Label))
			continue
		}
		validTiers = append(validTiers, tier)
	}

	referralErr := fs.ReferralDiscount.Validate()
	if referralErr != nil {
		result = multierror.Append(result, referralErr)
	}

	if referralErr == nil {
		referral := fs.ReferralDiscount
		for _, tier := range validTiers {
			if ratiosExceedOne(
				[2]math.Int{tier.Tier.DiscountNumerator, tier.Tier.DiscountDenominator},
				[2]math.Int{referral.RefereeDiscountNumerator, referral.RefereeDiscountDenominator},
				[2]math.Int{referral.ReferrerRewardNumerator, referral.ReferrerRewardDenominator},
			) {
				result = multierror.Append(result, errors.Wrapf(
					ErrInvalidFeeStructure,
					"%s tier discount plus referral shares exceed the fee", tier.Label,
				))
			}
		}
	}

	return result.ErrorOrNil()
}

func (r ReferralDiscount) Validate() error {
	if err := validateRatio(r.ReferrerRewardNumerator, r.ReferrerRewardDenominator); err != nil {
		return errors.Wrapf(ErrInvalidReferralDiscount, "referrer reward: %s", err)
	}

	if err := validateRatio(r.RefereeDiscountNumerator, r.RefereeDiscountDenominator); err != nil {
		return errors.Wrapf(ErrInvalidReferralDiscount, "referee discount: %s", err)
	}

	if ratiosExceedOne(
		[2]math.Int{r.ReferrerRewardNumerator, r.ReferrerRewardDenominator},
		[2]math.Int{r.RefereeDiscountNumerator, r.RefereeDiscountDenominator},
	) {
		return errors.Wrap(ErrInvalidReferralDiscount, "referrer reward plus referee discount exceed the fee")
	}

	return nil
}
