package service

import (
	"errors"
	"fmt"

	"github.com/jsnapoli1/zrp-sub006/internal/entity"
)

// Gating errors for procurement actions. Handlers map these to validation
// responses; nothing is mutated when one is returned.
var (
	ErrNoShortage       = errors.New("no shortage lines to order")
	ErrVendorRequired   = errors.New("vendor is required")
	ErrOrderNotDraft    = errors.New("order is not in draft")
	ErrOrderNotOpen     = errors.New("order is not open for receiving")
	ErrNothingToReceive = errors.New("receipt has no positive quantity")
)

// ReceiptInput is one requested receipt quantity against a PO line.
type ReceiptInput struct {
	LineID string  `json:"line_id" binding:"required"`
	Qty    float64 `json:"qty"`
}

// ReceiptPlanLine is one accepted movement: the line and the quantity that
// will actually be received after clamping.
type ReceiptPlanLine struct {
	Line *entity.POLine
	Qty  float64
}

// ClampReceipt bounds a requested quantity to what the line can still
// accept. Negative requests count as zero; requests beyond pending receive
// exactly pending.
func ClampReceipt(pending, requested float64) float64 {
	if requested <= 0 {
		return 0
	}
	if requested > pending {
		return pending
	}
	return requested
}

// ReceivableLines returns the lines of an order that can still accept
// receipts: the order is open and the line has pending quantity.
func ReceivableLines(po *entity.PurchaseOrder) []entity.POLine {
	if !po.Open() {
		return nil
	}
	out := make([]entity.POLine, 0, len(po.Lines))
	for _, l := range po.Lines {
		if l.Pending() > 0 {
			out = append(out, l)
		}
	}
	return out
}

// BuildReceiptPlan validates a receipt request against the order and
// returns the clamped movements. It fails without side effects when the
// order is closed to receiving, a line id is unknown, or every requested
// quantity clamps to zero.
func BuildReceiptPlan(po *entity.PurchaseOrder, inputs []ReceiptInput) ([]ReceiptPlanLine, error) {
	if !po.Open() {
		return nil, ErrOrderNotOpen
	}

	byID := make(map[string]*entity.POLine, len(po.Lines))
	for i := range po.Lines {
		byID[po.Lines[i].ID] = &po.Lines[i]
	}

	plan := make([]ReceiptPlanLine, 0, len(inputs))
	var accepted float64
	for _, in := range inputs {
		line, ok := byID[in.LineID]
		if !ok {
			return nil, fmt.Errorf("line %s does not belong to order %s", in.LineID, po.ID)
		}
		qty := ClampReceipt(line.Pending(), in.Qty)
		if qty == 0 {
			continue
		}
		plan = append(plan, ReceiptPlanLine{Line: line, Qty: qty})
		accepted += qty
	}

	if accepted <= 0 {
		return nil, ErrNothingToReceive
	}
	return plan, nil
}

// NextOrderStatus derives the order status from its lines after receipts
// are applied: every line fully received makes the order received, any
// received quantity makes it partial, otherwise the current status stands.
func NextOrderStatus(po *entity.PurchaseOrder) string {
	allReceived := len(po.Lines) > 0
	anyReceived := false
	for _, l := range po.Lines {
		if l.QtyReceived > 0 {
			anyReceived = true
		}
		if l.Pending() > 0 {
			allReceived = false
		}
	}
	switch {
	case allReceived:
		return entity.POStatusReceived
	case anyReceived:
		return entity.POStatusPartial
	default:
		return po.Status
	}
}
