package fees

import (
	"cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/kevinheavey/protocol-v1/clearing-chain/modules/clearinghouse/types"
)

// LimitOrderFees is the fee breakdown of a resting order filled by a third party.
type LimitOrderFees struct {
	UserFee       math.Int `json:"user_fee"`
	FeeToMarket   math.Int `json:"fee_to_market"`
	TokenDiscount math.Int `json:"token_discount"`
	FillerReward  math.Int `json:"filler_reward"`
}

// Fee returns the undiscounted fee the breakdown was carved from.
func (f LimitOrderFees) Fee() math.Int {
	return f.UserFee.Add(f.TokenDiscount)
}

// CalculateFeeForLimitOrder computes the fee for a resting order using the discount tier
// captured when the order was placed. The filler reward is a share of the discounted user
// fee. Referral incentives do not apply to resting orders.
func CalculateFeeForLimitOrder(
	quoteAssetAmount math.Int,
	feeStructure *types.FeeStructure,
	fillerRewardStructure *types.OrderFillerRewardStructure,
	orderDiscountTier types.OrderDiscountTier,
) (LimitOrderFees, error) {
	if feeStructure == nil {
		return LimitOrderFees{}, errors.Wrap(types.ErrMathError, "fee structure is not set")
	}

	if fillerRewardStructure == nil {
		return LimitOrderFees{}, errors.Wrap(types.ErrMathError, "filler reward structure is not set")
	}

	fee, err := CalculateRatio(quoteAssetAmount, feeStructure.FeeNumerator, feeStructure.FeeDenominator)
	if err != nil {
		return LimitOrderFees{}, errors.Wrap(err, "fee")
	}

	tokenDiscount, err := CalculateTokenDiscountForOrderTier(fee, feeStructure, orderDiscountTier)
	if err != nil {
		return LimitOrderFees{}, err
	}

	userFee, err := checkedSub(fee, tokenDiscount)
	if err != nil {
		return LimitOrderFees{}, errors.Wrap(err, "user fee")
	}

	fillerReward, err := calculateFillerReward(userFee, fillerRewardStructure)
	if err != nil {
		return LimitOrderFees{}, err
	}

	feeToMarket, err := checkedSub(userFee, fillerReward)
	if err != nil {
		return LimitOrderFees{}, errors.Wrap(err, "fee to market")
	}

	return LimitOrderFees{
		UserFee:       userFee,
		FeeToMarket:   feeToMarket,
		TokenDiscount: tokenDiscount,
		FillerReward:  fillerReward,
	}, nil
}

func calculateFillerReward(userFee math.Int, fillerRewardStructure *types.OrderFillerRewardStructure) (math.Int, error) {
	reward, err := CalculateRatio(userFee, fillerRewardStructure.RewardNumerator, fillerRewardStructure.RewardDenominator)
	if err != nil {
		return math.Int{}, errors.Wrap(err, "filler reward")
	}
	return reward, nil
}
