package costing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// QuoteLine is one sellable line on a quote. Quote lines are arbitrary;
// they are not required to be assembly components.
type QuoteLine struct {
	IPN         string          `json:"ipn"`
	Description string          `json:"description"`
	Qty         float64         `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Notes       string          `json:"notes,omitempty"`
}

// CostedQuoteLine is a quote line with its derived cost and margin values.
// BelowCost marks negative-margin lines so they can be flagged in a view;
// selling below cost is displayable, never blocked.
type CostedQuoteLine struct {
	QuoteLine
	UnitCost      decimal.Decimal `json:"unit_cost"`
	LineTotal     decimal.Decimal `json:"line_total"`
	LineCost      decimal.Decimal `json:"line_cost"`
	Margin        decimal.Decimal `json:"margin"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
	BelowCost     bool            `json:"below_cost"`
}

// CostQuoteLine derives totals and margin for one line using the shared
// unit-cost lookup. A zero line total yields a zero margin percent; the
// division is never attempted.
func CostQuoteLine(l QuoteLine, unitCost Lookup) CostedQuoteLine {
	qty := decimal.NewFromFloat(l.Qty)
	cost := unitCost(l.IPN)

	out := CostedQuoteLine{
		QuoteLine: l,
		UnitCost:  cost,
		LineTotal: qty.Mul(l.UnitPrice),
		LineCost:  qty.Mul(cost),
	}
	out.Margin = out.LineTotal.Sub(out.LineCost)
	if out.LineTotal.IsPositive() {
		out.MarginPercent = out.Margin.Mul(hundred).Div(out.LineTotal)
	}
	out.BelowCost = out.Margin.IsNegative()
	return out
}

// CostQuote derives every line plus quote-level totals.
type CostedQuote struct {
	Lines       []CostedQuoteLine `json:"lines"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	TotalCost   decimal.Decimal   `json:"total_cost"`
	TotalMargin decimal.Decimal   `json:"total_margin"`
}

func CostQuote(lines []QuoteLine, unitCost Lookup) CostedQuote {
	out := CostedQuote{
		Lines:       make([]CostedQuoteLine, 0, len(lines)),
		TotalAmount: decimal.Zero,
		TotalCost:   decimal.Zero,
		TotalMargin: decimal.Zero,
	}
	for _, l := range lines {
		cl := CostQuoteLine(l, unitCost)
		out.Lines = append(out.Lines, cl)
		out.TotalAmount = out.TotalAmount.Add(cl.LineTotal)
		out.TotalCost = out.TotalCost.Add(cl.LineCost)
		out.TotalMargin = out.TotalMargin.Add(cl.Margin)
	}
	return out
}
