// Package netting classifies resolved BOM requirements against on-hand
// inventory. The status on every line is recomputed here; a label stored
// alongside the data is never trusted, so server/client drift surfaces as a
// reclassification instead of a silently wrong badge.
package netting

// Line status values.
const (
	StatusOK       = "ok"       // on hand covers the requirement
	StatusLow      = "low"      // partially available
	StatusShortage = "shortage" // nothing available
)

// Line is one flattened BOM requirement netted against inventory.
type Line struct {
	IPN         string  `json:"ipn"`
	Description string  `json:"description"`
	QtyRequired float64 `json:"qty_required"`
	QtyOnHand   float64 `json:"qty_on_hand"`
	Shortage    float64 `json:"shortage"`
	Status      string  `json:"status"`
}

// Classify nets one requirement against on-hand stock.
func Classify(required, onHand float64) (shortage float64, status string) {
	shortage = required - onHand
	if shortage < 0 {
		shortage = 0
	}
	switch {
	case onHand >= required:
		status = StatusOK
	case onHand > 0:
		status = StatusLow
	default:
		status = StatusShortage
	}
	return shortage, status
}

// Net fills Shortage and Status on every line from QtyRequired and
// QtyOnHand, replacing whatever was there.
func Net(lines []Line) []Line {
	for i := range lines {
		lines[i].Shortage, lines[i].Status = Classify(lines[i].QtyRequired, lines[i].QtyOnHand)
	}
	return lines
}

// Summary aggregates a netted line set. All values derive from the lines
// alone; no additional lookups are involved.
type Summary struct {
	TotalLines    int  `json:"total_lines"`
	OKCount       int  `json:"ok_count"`
	LowCount      int  `json:"low_count"`
	ShortageCount int  `json:"shortage_count"`
	HasShortage   bool `json:"has_shortage"`
}

// Summarize counts lines per status. HasShortage is true when any line is
// short of its requirement (low or shortage), which is what gates purchase
// order generation. An empty set yields zero counts, not an error.
func Summarize(lines []Line) Summary {
	s := Summary{TotalLines: len(lines)}
	for _, l := range lines {
		switch l.Status {
		case StatusOK:
			s.OKCount++
		case StatusLow:
			s.LowCount++
		case StatusShortage:
			s.ShortageCount++
		}
		if l.Shortage > 0 {
			s.HasShortage = true
		}
	}
	return s
}

// ShortLines returns the lines with a positive shortage, the exact set
// submitted when generating a purchase order from a work order.
func ShortLines(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.Shortage > 0 {
			out = append(out, l)
		}
	}
	return out
}
