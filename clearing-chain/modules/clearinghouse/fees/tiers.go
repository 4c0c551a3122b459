package fees

import (
	"cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/kevinheavey/protocol-v1/clearing-chain/modules/clearinghouse/types"
)

// ResolveDiscountTier walks the tiers in declared order and returns the first one whose
// minimum balance is met. Tiers are not sorted: a balance that satisfies an earlier tier is
// given that tier even when a later one would be worth more.
func ResolveDiscountTier(
	tiers types.DiscountTokenTiers,
	balance math.Int,
) (types.OrderDiscountTier, types.DiscountTokenTier, error) {
	if err := checkOperand(balance); err != nil {
		return types.OrderDiscountTierNone, types.DiscountTokenTier{}, errors.Wrap(err, "discount token balance")
	}

	for _, tier := range tiers.Ordered() {
		if err := checkOperand(tier.Tier.MinimumBalance); err != nil {
			return types.OrderDiscountTierNone, types.DiscountTokenTier{}, errors.Wrapf(err, "%s tier minimum balance", tier.Label)
		}

		if tier.Tier.Includes(balance) {
			return tier.Label, tier.Tier, nil
		}
	}

	return types.OrderDiscountTierNone, types.DiscountTokenTier{}, nil
}

// CalculateOrderFeeTier returns the tier a discount token holding qualifies for, without
// reference to any fee. It is used to snapshot the tier when a resting order is placed.
func CalculateOrderFeeTier(
	feeStructure *types.FeeStructure,
	discountToken *types.DiscountTokenAccount,
) (types.OrderDiscountTier, error) {
	if discountToken == nil {
		return types.OrderDiscountTierNone, nil
	}

	if feeStructure == nil {
		return types.OrderDiscountTierNone, errors.Wrap(types.ErrMathError, "fee structure is not set")
	}

	tier, _, err := ResolveDiscountTier(feeStructure.DiscountTokenTiers, discountToken.Amount)
	return tier, err
}

// CalculateTokenDiscount resolves the holder's tier and applies its discount ratio to fee.
// No holding means no discount.
func CalculateTokenDiscount(
	fee math.Int,
	feeStructure *types.FeeStructure,
	discountToken *types.DiscountTokenAccount,
) (math.Int, error) {
	if discountToken == nil {
		return math.ZeroInt(), nil
	}

	if feeStructure == nil {
		return math.Int{}, errors.Wrap(types.ErrMathError, "fee structure is not set")
	}

	label, tier, err := ResolveDiscountTier(feeStructure.DiscountTokenTiers, discountToken.Amount)
	if err != nil {
		return math.Int{}, err
	}

	if label == types.OrderDiscountTierNone {
		return math.ZeroInt(), nil
	}

	return calculateTokenDiscountForTier(fee, tier)
}

// CalculateTokenDiscountForOrderTier applies the discount of a previously captured tier label to fee.
func CalculateTokenDiscountForOrderTier(
	fee math.Int,
	feeStructure *types.FeeStructure,
	orderDiscountTier types.OrderDiscountTier,
) (math.Int, error) {
	if orderDiscountTier == types.OrderDiscountTierNone {
		return math.ZeroInt(), nil
	}

	if feeStructure == nil {
		return math.Int{}, errors.Wrap(types.ErrMathError, "fee structure is not set")
	}

	tier, ok := feeStructure.DiscountTokenTiers.Get(orderDiscountTier)
	if !ok {
		return math.Int{}, errors.Wrapf(types.ErrMathError, "no discount token tier for %s", orderDiscountTier)
	}

	return calculateTokenDiscountForTier(fee, tier)
}

func calculateTokenDiscountForTier(fee math.Int, tier types.DiscountTokenTier) (math.Int, error) {
	discount, err := CalculateRatio(fee, tier.DiscountNumerator, tier.DiscountDenominator)
	if err != nil {
		return math.Int{}, errors.Wrap(err, "token discount")
	}
	return discount, nil
}
