package fees

import (
	"cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/kevinheavey/protocol-v1/clearing-chain/modules/clearinghouse/types"
)

// MarketOrderFees is the fee breakdown of an immediately executed order.
type MarketOrderFees struct {
	// UserFee is what the trader pays after the token and referee discounts.
	UserFee math.Int `json:"user_fee"`
	// FeeToMarket is what the exchange keeps after paying the referrer.
	FeeToMarket     math.Int `json:"fee_to_market"`
	TokenDiscount   math.Int `json:"token_discount"`
	ReferrerReward  math.Int `json:"referrer_reward"`
	RefereeDiscount math.Int `json:"referee_discount"`
}

// Fee returns the undiscounted fee the breakdown was carved from.
func (f MarketOrderFees) Fee() math.Int {
	return f.UserFee.Add(f.TokenDiscount).Add(f.RefereeDiscount)
}

// CalculateFeeForMarketOrder computes the fee for quoteAssetAmount of notional and splits it
// between the trader, the market, the discount token holder and the referral pair. The
// discounts and the referral shares are all taken from the same undiscounted fee; subtracting
// them in order fails with types.ErrMathError if they ever add up to more than the fee.
func CalculateFeeForMarketOrder(
	quoteAssetAmount math.Int,
	feeStructure *types.FeeStructure,
	discountToken *types.DiscountTokenAccount,
	referrer *types.Referrer,
) (MarketOrderFees, error) {
	if feeStructure == nil {
		return MarketOrderFees{}, errors.Wrap(types.ErrMathError, "fee structure is not set")
	}

	fee, err := CalculateRatio(quoteAssetAmount, feeStructure.FeeNumerator, feeStructure.FeeDenominator)
	if err != nil {
		return MarketOrderFees{}, errors.Wrap(err, "fee")
	}

	tokenDiscount, err := CalculateTokenDiscount(fee, feeStructure, discountToken)
	if err != nil {
		return MarketOrderFees{}, err
	}

	referrerReward, refereeDiscount, err := calculateReferralRewardAndRefereeDiscount(fee, feeStructure, referrer)
	if err != nil {
		return MarketOrderFees{}, err
	}

	userFee, err := checkedSub(fee, tokenDiscount)
	if err != nil {
		return MarketOrderFees{}, errors.Wrap(err, "user fee")
	}

	userFee, err = checkedSub(userFee, refereeDiscount)
	if err != nil {
		return MarketOrderFees{}, errors.Wrap(err, "user fee")
	}

	feeToMarket, err := checkedSub(userFee, referrerReward)
	if err != nil {
		return MarketOrderFees{}, errors.Wrap(err, "fee to market")
	}

	return MarketOrderFees{
		UserFee:         userFee,
		FeeToMarket:     feeToMarket,
		TokenDiscount:   tokenDiscount,
		ReferrerReward:  referrerReward,
		RefereeDiscount: refereeDiscount,
	}, nil
}

func calculateReferralRewardAndRefereeDiscount(
	fee math.Int,
	feeStructure *types.FeeStructure,
	referrer *types.Referrer,
) (referrerReward, refereeDiscount math.Int, err error) {
	if referrer == nil {
		return math.ZeroInt(), math.ZeroInt(), nil
	}

	referral := feeStructure.ReferralDiscount

	referrerReward, err = CalculateRatio(fee, referral.ReferrerRewardNumerator, referral.ReferrerRewardDenominator)
	if err != nil {
		return math.Int{}, math.Int{}, errors.Wrap(err, "referrer reward")
	}

	refereeDiscount, err = CalculateRatio(fee, referral.RefereeDiscountNumerator, referral.RefereeDiscountDenominator)
	if err != nil {
		return math.Int{}, math.Int{}, errors.Wrap(err, "referee discount")
	}

	return referrerReward, refereeDiscount, nil
}
