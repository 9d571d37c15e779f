package costing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jsnapoli1/zrp-sub006/internal/bom"
)

func catalogLookup(prices map[string]string) Lookup {
	return func(ipn string) decimal.Decimal {
		if p, ok := prices[ipn]; ok {
			return decimal.RequireFromString(p)
		}
		return decimal.Zero
	}
}

func TestRollupSumsLeavesThroughAllLevels(t *testing.T) {
	tree := &bom.Node{
		IPN: "ASY-Z1000", Qty: 1,
		Children: []bom.Node{
			{
				IPN: "PCA-MAIN", Qty: 2,
				Children: []bom.Node{
					{IPN: "CAP-001-0001", Qty: 2}, // 4 required
					{IPN: "RES-001-0001", Qty: 1}, // 2 required
				},
			},
		},
	}
	lines, err := bom.Flatten(tree, 1)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}

	lookup := catalogLookup(map[string]string{
		"CAP-001-0001": "0.01",
		"RES-001-0001": "0.10",
		// PCA-MAIN deliberately carries its own catalog cost: assemblies
		// must contribute through their leaves, not through themselves.
		"PCA-MAIN": "99.99",
	})
	got := Rollup(lines, lookup)
	want := decimal.RequireFromString("0.24") // 4×0.01 + 2×0.10
	if !got.Equal(want) {
		t.Errorf("rollup = %s, want %s", got, want)
	}
}

func TestRollupUnknownIPNCostsZero(t *testing.T) {
	tree := &bom.Node{
		IPN: "ASY-X", Qty: 1,
		Children: []bom.Node{
			{IPN: "CAP-001-0001", Qty: 10},
			{IPN: "MYSTERY-PART", Qty: 5},
		},
	}
	lines, _ := bom.Flatten(tree, 1)
	got := Rollup(lines, catalogLookup(map[string]string{"CAP-001-0001": "0.02"}))
	if !got.Equal(decimal.RequireFromString("0.20")) {
		t.Errorf("rollup = %s, want 0.20", got)
	}
}

func TestShowRollupHidesZero(t *testing.T) {
	if (Entry{BOMCost: decimal.Zero}).ShowRollup() {
		t.Error("zero rollup must be treated as no data and hidden")
	}
	if !(Entry{BOMCost: decimal.RequireFromString("0.24")}).ShowRollup() {
		t.Error("positive rollup must be shown")
	}
}

func TestCostQuoteLineMargin(t *testing.T) {
	lookup := catalogLookup(map[string]string{"PCB-001-0001": "0.01"})
	line := QuoteLine{
		IPN:       "PCB-001-0001",
		Qty:       100,
		UnitPrice: decimal.RequireFromString("0.05"),
	}
	got := CostQuoteLine(line, lookup)

	if !got.LineTotal.Equal(decimal.RequireFromString("5.00")) {
		t.Errorf("line_total = %s, want 5.00", got.LineTotal)
	}
	if !got.LineCost.Equal(decimal.RequireFromString("1.00")) {
		t.Errorf("line_cost = %s, want 1.00", got.LineCost)
	}
	if !got.Margin.Equal(decimal.RequireFromString("4.00")) {
		t.Errorf("margin = %s, want 4.00", got.Margin)
	}
	if !got.MarginPercent.Equal(decimal.NewFromInt(80)) {
		t.Errorf("margin_percent = %s, want 80", got.MarginPercent)
	}
	if got.BelowCost {
		t.Error("profitable line flagged below cost")
	}
}

func TestCostQuoteLineZeroPriceYieldsZeroPercent(t *testing.T) {
	lookup := catalogLookup(map[string]string{"PCB-001-0001": "2.50"})
	got := CostQuoteLine(QuoteLine{IPN: "PCB-001-0001", Qty: 10, UnitPrice: decimal.Zero}, lookup)

	if !got.MarginPercent.IsZero() {
		t.Errorf("margin_percent = %s, want 0 for zero-total line", got.MarginPercent)
	}
	if !got.Margin.Equal(decimal.RequireFromString("-25")) {
		t.Errorf("margin = %s, want -25", got.Margin)
	}
}

func TestCostQuoteLineUnknownIPNIsFullMargin(t *testing.T) {
	got := CostQuoteLine(QuoteLine{
		IPN:       "NOT-IN-CATALOG",
		Qty:       10,
		UnitPrice: decimal.RequireFromString("1.00"),
	}, catalogLookup(nil))

	if !got.UnitCost.IsZero() {
		t.Errorf("unit_cost = %s, want 0 for unknown IPN", got.UnitCost)
	}
	if !got.MarginPercent.Equal(decimal.NewFromInt(100)) {
		t.Errorf("margin_percent = %s, want 100", got.MarginPercent)
	}
}

func TestCostQuoteLineNegativeMarginIsFlaggedNotBlocked(t *testing.T) {
	lookup := catalogLookup(map[string]string{"IC-001-0001": "3.00"})
	got := CostQuoteLine(QuoteLine{
		IPN:       "IC-001-0001",
		Qty:       5,
		UnitPrice: decimal.RequireFromString("2.00"),
	}, lookup)

	if !got.BelowCost {
		t.Error("selling below cost must be flagged")
	}
	if !got.Margin.Equal(decimal.RequireFromString("-5.00")) {
		t.Errorf("margin = %s, want -5.00", got.Margin)
	}
}

func TestCostQuoteTotals(t *testing.T) {
	lookup := catalogLookup(map[string]string{
		"PCB-001-0001": "0.01",
		"IC-001-0001":  "3.00",
	})
	quote := CostQuote([]QuoteLine{
		{IPN: "PCB-001-0001", Qty: 100, UnitPrice: decimal.RequireFromString("0.05")},
		{IPN: "IC-001-0001", Qty: 5, UnitPrice: decimal.RequireFromString("2.00")},
	}, lookup)

	if !quote.TotalAmount.Equal(decimal.RequireFromString("15.00")) {
		t.Errorf("total_amount = %s, want 15.00", quote.TotalAmount)
	}
	if !quote.TotalCost.Equal(decimal.RequireFromString("16.00")) {
		t.Errorf("total_cost = %s, want 16.00", quote.TotalCost)
	}
	if !quote.TotalMargin.Equal(decimal.RequireFromString("-1.00")) {
		t.Errorf("total_margin = %s, want -1.00", quote.TotalMargin)
	}
}
