package entity

import "time"

// PurchaseOrder is an order placed with a vendor, optionally generated from
// a work-order shortage run.
type PurchaseOrder struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	POCode      string     `json:"po_code" gorm:"size:32;uniqueIndex;not null"`
	VendorID    string     `json:"vendor_id" gorm:"size:36;not null;index"`
	WorkOrderID *string    `json:"work_order_id" gorm:"size:36;index"`
	Status      string     `json:"status" gorm:"size:20;not null;default:draft"`
	TotalAmount *float64   `json:"total_amount" gorm:"type:decimal(15,2)"`
	Notes       string     `json:"notes" gorm:"type:text"`
	CreatedBy   string     `json:"created_by" gorm:"size:36"`
	SubmittedAt *time.Time `json:"submitted_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Lines  []POLine `json:"lines,omitempty" gorm:"foreignKey:POID"`
	Vendor *Vendor  `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

const (
	POStatusDraft     = "draft"
	POStatusSubmitted = "submitted"
	POStatusPartial   = "partial"
	POStatusReceived  = "received"
	POStatusClosed    = "closed"
)

// Open reports whether the order can still accept receipts.
func (po *PurchaseOrder) Open() bool {
	return po.Status == POStatusSubmitted || po.Status == POStatusPartial
}

// POLine is one ordered IPN on a purchase order.
type POLine struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	POID        string    `json:"po_id" gorm:"size:36;not null;index"`
	IPN         string    `json:"ipn" gorm:"column:ipn;size:64;not null;index"`
	Description string    `json:"description" gorm:"size:256"`
	QtyOrdered  float64   `json:"qty_ordered" gorm:"type:decimal(12,4);not null"`
	QtyReceived float64   `json:"qty_received" gorm:"type:decimal(12,4);not null;default:0"`
	UnitPrice   *float64  `json:"unit_price" gorm:"type:decimal(12,4)"`
	SortOrder   int       `json:"sort_order" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (POLine) TableName() string {
	return "po_lines"
}

// Pending is the outstanding quantity. Over-receipts never drive it
// negative.
func (l *POLine) Pending() float64 {
	p := l.QtyOrdered - l.QtyReceived
	if p < 0 {
		return 0
	}
	return p
}
