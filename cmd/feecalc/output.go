package main

import (
	"encoding/json"
	"io"

	"cosmossdk.io/math"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"sigs.k8s.io/yaml"
)

var tableHeader = []string{"Field", "Value", "Display"}

// report is a command result. Payload is what json and yaml output encode, rows are what
// the table shows.
type report struct {
	payload interface{}
	rows    [][]string
}

func (r *report) add(field, value, display string) {
	r.rows = append(r.rows, []string{field, value, display})
}

func (r *report) addAmount(field string, amt math.Int, decimals int32) {
	r.add(field, amt.String(), formatAmount(amt, decimals))
}

func (r *report) addRatio(field string, numerator, denominator math.Int) {
	r.add(field, numerator.String()+"/"+denominator.String(), formatPercent(numerator, denominator))
}

func writeReport(w io.Writer, format string, r report) error {
	switch format {
	case outputJSON:
		bz, err := json.MarshalIndent(r.payload, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to encode json output")
		}
		_, err = w.Write(append(bz, '\n'))
		return err
	case outputYAML:
		bz, err := yaml.Marshal(r.payload)
		if err != nil {
			return errors.Wrap(err, "failed to encode yaml output")
		}
		_, err = w.Write(bz)
		return err
	case outputTable:
		table := tablewriter.NewWriter(w)
		table.SetHeader(tableHeader)
		table.SetAutoWrapText(false)
		table.AppendBulk(r.rows)
		table.Render()
		return nil
	default:
		return errors.Errorf("unsupported output format %q", format)
	}
}

// formatAmount renders a base unit amount in whole quote units.
func formatAmount(amt math.Int, decimals int32) string {
	if amt.IsNil() {
		return ""
	}
	return decimal.NewFromBigInt(amt.BigInt(), -decimals).StringFixed(decimals)
}

func formatPercent(numerator, denominator math.Int) string {
	if numerator.IsNil() || denominator.IsNil() || denominator.IsZero() {
		return "n/a"
	}

	pct := decimal.NewFromBigInt(numerator.BigInt(), 0).
		Mul(decimal.New(100, 0)).
		Div(decimal.NewFromBigInt(denominator.BigInt(), 0))

	return pct.String() + "%"
}
