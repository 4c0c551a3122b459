package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/go-test/deep"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/kevinheavey/protocol-v1/clearing-chain/modules/clearinghouse/types"
)

const testReferrer = "0x9b8a7c6d5e4f3a2b1c0d9e8f7a6b5c4d3e2f1a0b"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func executeJSON(t *testing.T, args ...string) map[string]interface{} {
	t.Helper()

	out, err := execute(t, append(args, "--output", "json")...)
	require.NoError(t, err)

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	return res
}

func TestMarketCmd(t *testing.T) {
	res := executeJSON(t, "market", "1000000",
		"--discount-token-balance", "1000000000",
		"--referrer", testReferrer,
	)

	expected := map[string]interface{}{
		"quote_asset_amount":  "1000000",
		"order_discount_tier": "first",
		"referrer":            ethcmn.HexToAddress(testReferrer).Hex(),
		"fee":                 "1000",
		"user_fee":            "750",
		"fee_to_market":       "700",
		"token_discount":      "200",
		"referrer_reward":     "50",
		"referee_discount":    "50",
	}
	if diff := deep.Equal(expected, res); diff != nil {
		t.Error(diff)
	}
}

func TestMarketCmdWithoutDiscounts(t *testing.T) {
	res := executeJSON(t, "market", "1_234_567")
	require.Equal(t, "none", res["order_discount_tier"])
	require.Equal(t, "1234", res["user_fee"])
	require.Equal(t, "1234", res["fee_to_market"])
	require.NotContains(t, res, "referrer")
}

func TestMarketCmdYAML(t *testing.T) {
	out, err := execute(t, "market", "1000000", "--discount-token-balance", "1000000", "--output", "yaml")
	require.NoError(t, err)

	var res map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	require.Equal(t, "fourth", res["order_discount_tier"])
	require.Equal(t, "950", res["user_fee"])
	require.Equal(t, "50", res["token_discount"])
}

func TestMarketCmdTable(t *testing.T) {
	out, err := execute(t, "market", "1000000", "--discount-token-balance", "1000000000")
	require.NoError(t, err)
	require.Contains(t, out, "FIELD")
	require.Contains(t, out, "user fee")
	require.Contains(t, out, "0.000800")
	require.Contains(t, out, "first")
}

func TestMarketCmdRejectsBadInput(t *testing.T) {
	_, err := execute(t, "market", "-5")
	require.Error(t, err)

	_, err = execute(t, "market", "1000000", "--referrer", "not-an-address")
	require.ErrorContains(t, err, "referrer")

	_, err = execute(t, "market", "1000000", "--discount-token-balance", "10", "--discount-token-owner", "0x12")
	require.ErrorContains(t, err, "discount token owner")

	_, err = execute(t, "market", "340282366920938463463374607431768211455")
	require.ErrorIs(t, err, types.ErrMathError)
}

func TestMarketCmdRefusesInvalidSchedule(t *testing.T) {
	t.Setenv("FEECALC_FEE_STRUCTURE_FEE_DENOMINATOR", "0")

	_, err := execute(t, "market", "1000000")
	require.ErrorIs(t, err, types.ErrInvalidFeeStructure)
}

func TestLimitCmd(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		expected map[string]interface{}
	}{
		{
			name: "captured tier",
			args: []string{"limit", "1000000", "--tier", "first"},
			expected: map[string]interface{}{
				"quote_asset_amount":  "1000000",
				"order_discount_tier": "first",
				"fee":                 "1000",
				"user_fee":            "800",
				"fee_to_market":       "720",
				"token_discount":      "200",
				"filler_reward":       "80",
			},
		},
		{
			name: "numeric tier",
			args: []string{"limit", "1234567", "--tier", "1"},
			expected: map[string]interface{}{
				"quote_asset_amount":  "1234567",
				"order_discount_tier": "first",
				"fee":                 "1234",
				"user_fee":            "988",
				"fee_to_market":       "890",
				"token_discount":      "246",
				"filler_reward":       "98",
			},
		},
		{
			name: "tier from balance",
			args: []string{"limit", "1000000", "--discount-token-balance", "1000000"},
			expected: map[string]interface{}{
				"quote_asset_amount":  "1000000",
				"order_discount_tier": "fourth",
				"fee":                 "1000",
				"user_fee":            "950",
				"fee_to_market":       "855",
				"token_discount":      "50",
				"filler_reward":       "95",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := executeJSON(t, tc.args...)
			if diff := deep.Equal(tc.expected, res); diff != nil {
				t.Error(diff)
			}
		})
	}
}

func TestLimitCmdRejectsBadTier(t *testing.T) {
	_, err := execute(t, "limit", "1000000", "--tier", "fifth")
	require.ErrorIs(t, err, types.ErrUnknownOrderDiscountTier)

	_, err = execute(t, "limit", "1000000", "--tier", "first", "--discount-token-balance", "1")
	require.Error(t, err)
}

func TestTierCmd(t *testing.T) {
	res := executeJSON(t, "tier", "--discount-token-balance", "50000000")
	require.Equal(t, "third", res["order_discount_tier"])
	require.Equal(t, "50000000", res["discount_token_balance"])

	tier, ok := res["tier"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "10000000", tier["minimum_balance"])
	require.Equal(t, "10", tier["discount_numerator"])

	res = executeJSON(t, "tier")
	require.Equal(t, "none", res["order_discount_tier"])
	require.NotContains(t, res, "tier")
}

func TestScheduleCmd(t *testing.T) {
	res := executeJSON(t, "schedule")
	require.Equal(t, true, res["valid"])
	require.Equal(t, true, res["tiers_descending"])
	require.NotContains(t, res, "errors")

	out, err := execute(t, "schedule")
	require.NoError(t, err)
	require.Contains(t, out, "0.1%")
	require.Contains(t, out, "first tier discount")
	require.Contains(t, out, "1000.000000")
}

func TestScheduleCmdReportsProblems(t *testing.T) {
	t.Setenv("FEECALC_FEE_STRUCTURE_DISCOUNT_TOKEN_TIERS_FOURTH_MINIMUM_BALANCE", "5000000000")
	t.Setenv("FEECALC_FEE_STRUCTURE_REFERRER_REWARD_NUMERATOR", "90")

	out, err := execute(t, "schedule", "--output", "json")
	require.ErrorContains(t, err, "fee schedule is invalid")

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Equal(t, false, res["valid"])
	require.Equal(t, false, res["tiers_descending"])

	errs, ok := res["errors"].([]interface{})
	require.True(t, ok)
	require.Len(t, errs, 3)
}

func TestUnsupportedOutput(t *testing.T) {
	_, err := execute(t, "schedule", "--output", "xml")
	require.ErrorContains(t, err, "unsupported output format")
}
