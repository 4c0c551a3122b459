package types

import (
	"cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// DiscountTokenTier grants DiscountNumerator/DiscountDenominator off the fee to holders of at
// least MinimumBalance discount tokens.
type DiscountTokenTier struct {
	MinimumBalance      math.Int `json:"minimum_balance"`
	DiscountNumerator   math.Int `json:"discount_numerator"`
	DiscountDenominator math.Int `json:"discount_denominator"`
}

func NewDiscountTokenTier(minimumBalance, discountNumerator, discountDenominator uint64) DiscountTokenTier {
	return DiscountTokenTier{
		MinimumBalance:      math.NewIntFromUint64(minimumBalance),
		DiscountNumerator:   math.NewIntFromUint64(discountNumerator),
		DiscountDenominator: math.NewIntFromUint64(discountDenominator),
	}
}

// Includes reports whether balance qualifies for the tier. Both values must be set.
func (t DiscountTokenTier) Includes(balance math.Int) bool {
	return balance.GTE(t.MinimumBalance)
}

func (t DiscountTokenTier) Validate() error {
	if err := ValidateAmount(t.MinimumBalance); err != nil {
		return errors.Wrapf(ErrInvalidDiscountTier, "minimum balance: %s", err)
	}

	if err := validateRatio(t.DiscountNumerator, t.DiscountDenominator); err != nil {
		return errors.Wrapf(ErrInvalidDiscountTier, "discount: %s", err)
	}

	return nil
}

// DiscountTokenTiers holds the four discount tiers in priority order.
type DiscountTokenTiers struct {
	FirstTier  DiscountTokenTier `json:"first_tier"`
	SecondTier DiscountTokenTier `json:"second_tier"`
	ThirdTier  DiscountTokenTier `json:"third_tier"`
	FourthTier DiscountTokenTier `json:"fourth_tier"`
}

// LabeledDiscountTokenTier pairs a tier with the label recorded on orders that qualify for it.
type LabeledDiscountTokenTier struct {
	Label OrderDiscountTier
	Tier  DiscountTokenTier
}

// Ordered returns the tiers in the order they are evaluated: first, second, third, fourth.
// The order is the declared one and does not depend on the minimum balances.
func (t DiscountTokenTiers) Ordered() []LabeledDiscountTokenTier {
	return []LabeledDiscountTokenTier{
		{Label: OrderDiscountTierFirst, Tier: t.FirstTier},
		{Label: OrderDiscountTierSecond, Tier: t.SecondTier},
		{Label: OrderDiscountTierThird, Tier: t.ThirdTier},
		{Label: OrderDiscountTierFourth, Tier: t.FourthTier},
	}
}

// Get returns the tier recorded under label. OrderDiscountTierNone and invalid labels have no tier.
func (t DiscountTokenTiers) Get(label OrderDiscountTier) (DiscountTokenTier, bool) {
	for _, tier := range t.Ordered() {
		if tier.Label == label {
			return tier.Tier, true
		}
	}
	return DiscountTokenTier{}, false
}

// IsDescending reports whether every tier requires a strictly larger balance than the next one.
// When it does not hold, a balance can match an earlier tier with a smaller minimum before a
// later tier it also satisfies.
func (t DiscountTokenTiers) IsDescending() bool {
	ordered := t.Ordered()
	for idx := 1; idx < len(ordered); idx++ {
		if !ordered[idx-1].Tier.MinimumBalance.GT(ordered[idx].Tier.MinimumBalance) {
			return false
		}
	}
	return true
}
