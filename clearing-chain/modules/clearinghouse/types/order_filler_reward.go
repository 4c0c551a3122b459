package types

import (
	"cosmossdk.io/errors"
	"cosmossdk.io/math"
)

const (
	DefaultFillerRewardNumerator   = 1
	DefaultFillerRewardDenominator = 10
)

// OrderFillerRewardStructure is the share of the discounted user fee paid to whoever fills a
// resting order.
type OrderFillerRewardStructure struct {
	RewardNumerator   math.Int `json:"reward_numerator"`
	RewardDenominator math.Int `json:"reward_denominator"`
}

func DefaultOrderFillerRewardStructure() OrderFillerRewardStructure {
	return OrderFillerRewardStructure{
		RewardNumerator:   math.NewInt(DefaultFillerRewardNumerator),
		RewardDenominator: math.NewInt(DefaultFillerRewardDenominator),
	}
}

func (s *OrderFillerRewardStructure) Validate() error {
	if err := validateRatio(s.RewardNumerator, s.RewardDenominator); err != nil {
		return errors.Wrapf(ErrInvalidFillerReward, "reward: %s", err)
	}
	return nil
}
