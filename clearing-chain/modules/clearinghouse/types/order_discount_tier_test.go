package types_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kevinheavey/protocol-v1/clearing-chain/modules/clearinghouse/types"
)

func TestParseOrderDiscountTier(t *testing.T) {
	testCases := []struct {
		input   string
		want    types.OrderDiscountTier
		wantErr bool
	}{
		{input: "none", want: types.OrderDiscountTierNone},
		{input: "first", want: types.OrderDiscountTierFirst},
		{input: " Second ", want: types.OrderDiscountTierSecond},
		{input: "THIRD", want: types.OrderDiscountTierThird},
		{input: "fourth", want: types.OrderDiscountTierFourth},
		{input: "0", want: types.OrderDiscountTierNone},
		{input: "4", want: types.OrderDiscountTierFourth},
		{input: "5", wantErr: true},
		{input: "260", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "fifth", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			tier, err := types.ParseOrderDiscountTier(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, types.ErrUnknownOrderDiscountTier)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, tier)
		})
	}
}

func TestOrderDiscountTierString(t *testing.T) {
	require.Equal(t, "none", types.OrderDiscountTierNone.String())
	require.Equal(t, "fourth", types.OrderDiscountTierFourth.String())
	require.Equal(t, "OrderDiscountTier(9)", types.OrderDiscountTier(9).String())
	require.False(t, types.OrderDiscountTier(5).IsValid())
}

func TestOrderDiscountTierJSON(t *testing.T) {
	type order struct {
		Tier types.OrderDiscountTier `json:"tier"`
	}

	bz, err := json.Marshal(order{Tier: types.OrderDiscountTierThird})
	require.NoError(t, err)
	require.JSONEq(t, `{"tier":"third"}`, string(bz))

	var decoded order
	require.NoError(t, json.Unmarshal([]byte(`{"tier":"second"}`), &decoded))
	require.Equal(t, types.OrderDiscountTierSecond, decoded.Tier)

	_, err = json.Marshal(order{Tier: types.OrderDiscountTier(7)})
	require.Error(t, err)
}
