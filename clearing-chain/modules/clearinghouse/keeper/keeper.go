package keeper

import (
	"context"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/InjectiveLabs/metrics"

	"github.com/kevinheavey/protocol-v1/clearing-chain/modules/clearinghouse/fees"
	"github.com/kevinheavey/protocol-v1/clearing-chain/modules/clearinghouse/types"
)

// Keeper is the entry point order execution uses to price fills. It adds logging and
// metrics around the fee computations and keeps no state of its own.
type Keeper struct {
	logger  log.Logger
	svcTags metrics.Tags
}

func NewKeeper(logger log.Logger) *Keeper {
	return &Keeper{
		logger:  logger.With(log.ModuleKey, types.ModuleName),
		svcTags: metrics.Tags{"svc": "fees_k"},
	}
}

func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// FeeForMarketOrder prices an immediately executed order.
func (k *Keeper) FeeForMarketOrder(
	ctx context.Context,
	quoteAssetAmount math.Int,
	feeStructure *types.FeeStructure,
	discountToken *types.DiscountTokenAccount,
	referrer *types.Referrer,
) (fees.MarketOrderFees, error) {
	_, doneFn := metrics.ReportFuncCallAndTimingCtx(ctx, k.svcTags)
	defer doneFn()

	result, err := fees.CalculateFeeForMarketOrder(quoteAssetAmount, feeStructure, discountToken, referrer)
	if err != nil {
		metrics.ReportFuncError(k.svcTags)
		k.logger.Error("failed to calculate market order fee", "quote_asset_amount", quoteAssetAmount, "error", err)
		return fees.MarketOrderFees{}, err
	}

	k.logger.Debug(
		"calculated market order fee",
		"quote_asset_amount", quoteAssetAmount,
		"has_discount_token", discountToken != nil,
		"referrer", referrerAuthority(referrer),
		"user_fee", result.UserFee,
		"fee_to_market", result.FeeToMarket,
		"token_discount", result.TokenDiscount,
		"referrer_reward", result.ReferrerReward,
		"referee_discount", result.RefereeDiscount,
	)

	return result, nil
}

// FeeForLimitOrder prices the fill of a resting order using the tier captured at placement.
func (k *Keeper) FeeForLimitOrder(
	ctx context.Context,
	quoteAssetAmount math.Int,
	feeStructure *types.FeeStructure,
	fillerRewardStructure *types.OrderFillerRewardStructure,
	orderDiscountTier types.OrderDiscountTier,
) (fees.LimitOrderFees, error) {
	_, doneFn := metrics.ReportFuncCallAndTimingCtx(ctx, k.svcTags)
	defer doneFn()

	result, err := fees.CalculateFeeForLimitOrder(quoteAssetAmount, feeStructure, fillerRewardStructure, orderDiscountTier)
	if err != nil {
		metrics.ReportFuncError(k.svcTags)
		k.logger.Error(
			"failed to calculate limit order fee",
			"quote_asset_amount", quoteAssetAmount,
			"order_discount_tier", orderDiscountTier.String(),
			"error", err,
		)
		return fees.LimitOrderFees{}, err
	}

	k.logger.Debug(
		"calculated limit order fee",
		"quote_asset_amount", quoteAssetAmount,
		"order_discount_tier", orderDiscountTier.String(),
		"user_fee", result.UserFee,
		"fee_to_market", result.FeeToMarket,
		"token_discount", result.TokenDiscount,
		"filler_reward", result.FillerReward,
	)

	return result, nil
}

// OrderFeeTier snapshots the discount tier of a holding at order placement.
func (k *Keeper) OrderFeeTier(
	ctx context.Context,
	feeStructure *types.FeeStructure,
	discountToken *types.DiscountTokenAccount,
) (types.OrderDiscountTier, error) {
	_, doneFn := metrics.ReportFuncCallAndTimingCtx(ctx, k.svcTags)
	defer doneFn()

	tier, err := fees.CalculateOrderFeeTier(feeStructure, discountToken)
	if err != nil {
		metrics.ReportFuncError(k.svcTags)
		k.logger.Error("failed to resolve order fee tier", "error", err)
		return types.OrderDiscountTierNone, err
	}

	k.logger.Debug("resolved order fee tier", "order_discount_tier", tier.String())
	return tier, nil
}

func referrerAuthority(referrer *types.Referrer) string {
	if referrer == nil {
		return ""
	}
	return referrer.Authority.Hex()
}
