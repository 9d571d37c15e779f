// Package costing holds the money math shared by part cost rollup and quote
// margin calculation. Prices are decimals; quantities stay float64 to match
// the rest of the system.
package costing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jsnapoli1/zrp-sub006/internal/bom"
)

// Lookup resolves the current unit cost for an IPN. An IPN absent from the
// cost catalog resolves to zero. That is policy, not an error: an uncosted
// part prices as free rather than blocking the calculation.
type Lookup func(ipn string) decimal.Decimal

// Entry is the per-part costing fact sheet. LastUnitPrice and friends come
// from purchase history for the exact IPN and are independent of BOMCost,
// which is the rolled-up cost of the part's full BOM at quantity 1. A part
// can have both, either, or neither.
type Entry struct {
	IPN           string          `json:"ipn"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	LastUnitPrice decimal.Decimal `json:"last_unit_price"`
	LastPOID      string          `json:"last_po_id,omitempty"`
	LastOrderedAt *time.Time      `json:"last_ordered_at,omitempty"`
	BOMCost       decimal.Decimal `json:"bom_cost"`
}

// ShowRollup reports whether the rollup section should be displayed. A
// rollup of exactly zero means "no cost data", not "free".
func (e Entry) ShowRollup() bool {
	return e.BOMCost.IsPositive()
}

// Rollup computes the bottom-up BOM cost: the sum over every leaf line of
// qty_required × unit_cost. Assemblies contribute through their leaves, not
// through a cost of their own.
func Rollup(lines []bom.Line, unitCost Lookup) decimal.Decimal {
	total := decimal.Zero
	for _, l := range bom.Leaves(lines) {
		qty := decimal.NewFromFloat(l.QtyRequired)
		total = total.Add(qty.Mul(unitCost(l.IPN)))
	}
	return total
}
