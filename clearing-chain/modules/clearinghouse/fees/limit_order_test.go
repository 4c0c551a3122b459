package fees_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/kevinheavey/protocol-v1/clearing-chain/modules/clearinghouse/fees"
	"github.com/kevinheavey/protocol-v1/clearing-chain/modules/clearinghouse/types"
)

func limitOrderAmounts(res fees.LimitOrderFees) map[string]math.Int {
	return map[string]math.Int{
		"user_fee":       res.UserFee,
		"fee_to_market":  res.FeeToMarket,
		"token_discount": res.TokenDiscount,
		"filler_reward":  res.FillerReward,
	}
}

func TestCalculateFeeForLimitOrder(t *testing.T) {
	testCases := []struct {
		name     string
		quote    int64
		tier     types.OrderDiscountTier
		filler   types.OrderFillerRewardStructure
		expected map[string]int64
	}{
		{
			name:   "first tier",
			quote:  1_000_000,
			tier:   types.OrderDiscountTierFirst,
			filler: types.DefaultOrderFillerRewardStructure(),
			expected: map[string]int64{
				"user_fee": 800, "fee_to_market": 720, "token_discount": 200, "filler_reward": 80,
			},
		},
		{
			name:   "fourth tier",
			quote:  1_000_000,
			tier:   types.OrderDiscountTierFourth,
			filler: types.DefaultOrderFillerRewardStructure(),
			expected: map[string]int64{
				"user_fee": 950, "fee_to_market": 855, "token_discount": 50, "filler_reward": 95,
			},
		},
		{
			name:   "no tier",
			quote:  1_000_000,
			tier:   types.OrderDiscountTierNone,
			filler: types.DefaultOrderFillerRewardStructure(),
			expected: map[string]int64{
				"user_fee": 1000, "fee_to_market": 900, "token_discount": 0, "filler_reward": 100,
			},
		},
		{
			name:   "every step truncates",
			quote:  1_234_567,
			tier:   types.OrderDiscountTierFirst,
			filler: types.DefaultOrderFillerRewardStructure(),
			expected: map[string]int64{
				"user_fee": 988, "fee_to_market": 890, "token_discount": 246, "filler_reward": 98,
			},
		},
		{
			name:  "zero filler reward",
			quote: 1_000_000,
			tier:  types.OrderDiscountTierSecond,
			filler: types.OrderFillerRewardStructure{
				RewardNumerator:   math.ZeroInt(),
				RewardDenominator: math.NewInt(10),
			},
			expected: map[string]int64{
				"user_fee": 850, "fee_to_market": 850, "token_discount": 150, "filler_reward": 0,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			feeStructure := types.DefaultFeeStructure()
			filler := tc.filler

			res, err := fees.CalculateFeeForLimitOrder(math.NewInt(tc.quote), &feeStructure, &filler, tc.tier)
			require.NoError(t, err)
			requireAmounts(t, tc.expected, limitOrderAmounts(res))

			if tc.quote == 1_000_000 {
				require.Equal(t, "1000", res.Fee().String())
			}
		})
	}
}

func TestCalculateFeeForLimitOrderUsesCapturedTier(t *testing.T) {
	feeStructure := types.DefaultFeeStructure()
	filler := types.DefaultOrderFillerRewardStructure()

	tier, err := fees.CalculateOrderFeeTier(&feeStructure, tokenAccount(1_000_000_000))
	require.NoError(t, err)
	require.Equal(t, types.OrderDiscountTierFirst, tier)

	// the holder's balance no longer matters once the tier is captured
	feeStructure.DiscountTokenTiers.FirstTier.MinimumBalance = math.NewInt(1_000_000_000_000)

	res, err := fees.CalculateFeeForLimitOrder(math.NewInt(1_000_000), &feeStructure, &filler, tier)
	require.NoError(t, err)
	require.Equal(t, "200", res.TokenDiscount.String())
}

func TestCalculateFeeForLimitOrderFailures(t *testing.T) {
	filler := types.DefaultOrderFillerRewardStructure()

	testCases := []struct {
		name     string
		quote    math.Int
		tier     types.OrderDiscountTier
		malleate func(fs *types.FeeStructure, filler *types.OrderFillerRewardStructure)
	}{
		{
			name:  "unknown tier",
			quote: math.NewInt(1_000_000),
			tier:  types.OrderDiscountTier(5),
		},
		{
			name:  "zero filler denominator",
			quote: math.NewInt(1_000_000),
			tier:  types.OrderDiscountTierNone,
			malleate: func(_ *types.FeeStructure, filler *types.OrderFillerRewardStructure) {
				filler.RewardDenominator = math.ZeroInt()
			},
		},
		{
			name:  "filler reward above the user fee",
			quote: math.NewInt(1_000_000),
			tier:  types.OrderDiscountTierNone,
			malleate: func(_ *types.FeeStructure, filler *types.OrderFillerRewardStructure) {
				filler.RewardNumerator = math.NewInt(11)
			},
		},
		{
			name:  "tier discount above the fee",
			quote: math.NewInt(1_000_000),
			tier:  types.OrderDiscountTierFirst,
			malleate: func(fs *types.FeeStructure, _ *types.OrderFillerRewardStructure) {
				fs.DiscountTokenTiers.FirstTier.DiscountNumerator = math.NewInt(101)
			},
		},
		{
			name:  "fee multiplication overflows",
			quote: types.MaxAmount(),
			tier:  types.OrderDiscountTierNone,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			feeStructure := types.DefaultFeeStructure()
			f := filler
			if tc.malleate != nil {
				tc.malleate(&feeStructure, &f)
			}

			_, err := fees.CalculateFeeForLimitOrder(tc.quote, &feeStructure, &f, tc.tier)
			require.ErrorIs(t, err, types.ErrMathError)
		})
	}

	feeStructure := types.DefaultFeeStructure()

	_, err := fees.CalculateFeeForLimitOrder(math.NewInt(1_000_000), &feeStructure, nil, types.OrderDiscountTierNone)
	require.ErrorIs(t, err, types.ErrMathError)

	_, err = fees.CalculateFeeForLimitOrder(math.NewInt(1_000_000), nil, &filler, types.OrderDiscountTierNone)
	require.ErrorIs(t, err, types.ErrMathError)
}
