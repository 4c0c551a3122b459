package types

import (
	"math/big"

	"cosmossdk.io/errors"
	"cosmossdk.io/math"
)

var maxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), MaxAmountBitLen), big.NewInt(1))

// MaxAmount returns the largest quantity representable in MaxAmountBitLen bits.
func MaxAmount() math.Int {
	return math.NewIntFromBigInt(new(big.Int).Set(maxAmount))
}

// ValidateAmount checks that amt is set, non-negative and fits in MaxAmountBitLen bits.
func ValidateAmount(amt math.Int) error {
	if amt.IsNil() {
		return errors.Wrap(ErrInvalidAmount, "amount is not set")
	}

	if amt.IsNegative() {
		return errors.Wrapf(ErrInvalidAmount, "amount %s is negative", amt)
	}

	if amt.BigInt().BitLen() > MaxAmountBitLen {
		return errors.Wrapf(ErrInvalidAmount, "amount %s exceeds %d bits", amt, MaxAmountBitLen)
	}

	return nil
}

// validateRatio checks both sides of a numerator/denominator pair and that the ratio is at most one.
func validateRatio(numerator, denominator math.Int) error {
	if err := ValidateAmount(numerator); err != nil {
		return errors.Wrap(err, "numerator")
	}

	if err := ValidateAmount(denominator); err != nil {
		return errors.Wrap(err, "denominator")
	}

	if denominator.IsZero() {
		return errors.Wrap(ErrInvalidAmount, "denominator is zero")
	}

	if numerator.GT(denominator) {
		return errors.Wrapf(ErrInvalidAmount, "ratio %s/%s is greater than one", numerator, denominator)
	}

	return nil
}

// ratiosExceedOne reports whether the exact sum of the given numerator/denominator pairs is above one.
// Callers must have validated every pair first.
func ratiosExceedOne(pairs ...[2]math.Int) bool {
	sum := new(big.Rat)
	for _, pair := range pairs {
		sum.Add(sum, new(big.Rat).SetFrac(pair[0].BigInt(), pair[1].BigInt()))
	}

	return sum.Cmp(big.NewRat(1, 1)) > 0
}
