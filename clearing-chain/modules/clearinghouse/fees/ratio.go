package fees

import (
	"cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/kevinheavey/protocol-v1/clearing-chain/modules/clearinghouse/types"
)

// CalculateRatio returns floor(amount * numerator / denominator). It fails with
// types.ErrMathError when an operand is not a valid amount, when the product does not fit
// in types.MaxAmountBitLen bits, or when the denominator is zero.
func CalculateRatio(amount, numerator, denominator math.Int) (math.Int, error) {
	product, err := checkedMul(amount, numerator)
	if err != nil {
		return math.Int{}, err
	}

	return checkedQuo(product, denominator)
}

func checkOperand(v math.Int) error {
	if err := types.ValidateAmount(v); err != nil {
		return errors.Wrap(types.ErrMathError, err.Error())
	}
	return nil
}

func checkedMul(a, b math.Int) (math.Int, error) {
	if err := checkOperand(a); err != nil {
		return math.Int{}, err
	}

	if err := checkOperand(b); err != nil {
		return math.Int{}, err
	}

	res, err := a.SafeMul(b)
	if err != nil || res.BigInt().BitLen() > types.MaxAmountBitLen {
		return math.Int{}, errors.Wrapf(types.ErrMathError, "%s * %s overflows %d bits", a, b, types.MaxAmountBitLen)
	}

	return res, nil
}

func checkedQuo(a, b math.Int) (math.Int, error) {
	if err := checkOperand(a); err != nil {
		return math.Int{}, err
	}

	if err := checkOperand(b); err != nil {
		return math.Int{}, err
	}

	res, err := a.SafeQuo(b)
	if err != nil {
		return math.Int{}, errors.Wrapf(types.ErrMathError, "%s / %s: %s", a, b, err)
	}

	return res, nil
}

func checkedSub(a, b math.Int) (math.Int, error) {
	if err := checkOperand(a); err != nil {
		return math.Int{}, err
	}

	if err := checkOperand(b); err != nil {
		return math.Int{}, err
	}

	res, err := a.SafeSub(b)
	if err != nil || res.IsNegative() {
		return math.Int{}, errors.Wrapf(types.ErrMathError, "%s - %s underflows", a, b)
	}

	return res, nil
}
