package types

// DONTCOVER

import (
	"cosmossdk.io/errors"
)

// x/clearinghouse module sentinel errors
var (
	ErrMathError                = errors.Register(ModuleName, 2, "math error")
	ErrInvalidAmount            = errors.Register(ModuleName, 3, "invalid amount")
	ErrInvalidFeeStructure      = errors.Register(ModuleName, 4, "invalid fee structure")
	ErrInvalidDiscountTier      = errors.Register(ModuleName, 5, "invalid discount token tier")
	ErrInvalidReferralDiscount  = errors.Register(ModuleName, 6, "invalid referral discount")
	ErrInvalidFillerReward      = errors.Register(ModuleName, 7, "invalid order filler reward structure")
	ErrUnknownOrderDiscountTier = errors.Register(ModuleName, 8, "unknown order discount tier")
)
