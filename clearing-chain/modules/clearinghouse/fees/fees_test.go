package fees_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-test/deep"

	"github.com/kevinheavey/protocol-v1/clearing-chain/modules/clearinghouse/types"
)

var (
	traderAddress   = common.HexToAddress("0x4f1a9c2e8b0d7a6f53c1e2b9d8a7f6e5c4b3a291")
	referrerAddress = common.HexToAddress("0x9b8a7c6d5e4f3a2b1c0d9e8f7a6b5c4d3e2f1a0b")
)

func ints(values ...int64) []math.Int {
	res := make([]math.Int, 0, len(values))
	for _, v := range values {
		res = append(res, math.NewInt(v))
	}
	return res
}

func tokenAccount(balance int64) *types.DiscountTokenAccount {
	return types.NewDiscountTokenAccount(traderAddress, math.NewInt(balance))
}

func referralDiscount(referrerNumerator, referrerDenominator, refereeNumerator, refereeDenominator int64) types.ReferralDiscount {
	v := ints(referrerNumerator, referrerDenominator, refereeNumerator, refereeDenominator)
	return types.ReferralDiscount{
		ReferrerRewardNumerator:    v[0],
		ReferrerRewardDenominator:  v[1],
		RefereeDiscountNumerator:   v[2],
		RefereeDiscountDenominator: v[3],
	}
}

// requireAmounts compares named amounts by their decimal representation.
func requireAmounts(t *testing.T, expected map[string]int64, actual map[string]math.Int) {
	t.Helper()

	want := make(map[string]string, len(expected))
	for k, v := range expected {
		want[k] = math.NewInt(v).String()
	}

	got := make(map[string]string, len(actual))
	for k, v := range actual {
		got[k] = v.String()
	}

	if diff := deep.Equal(want, got); diff != nil {
		t.Error(diff)
	}
}
