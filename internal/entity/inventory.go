package entity

import "time"

// Inventory is the on-hand quantity for one IPN. QtyOnHand may go negative
// when issues outrun receipts; netting treats negative stock as zero
// available.
type Inventory struct {
	IPN       string    `json:"ipn" gorm:"column:ipn;primaryKey;size:64"`
	QtyOnHand float64   `json:"qty_on_hand" gorm:"type:decimal(12,4);not null;default:0"`
	Location  string    `json:"location" gorm:"size:100"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Inventory) TableName() string {
	return "inventory"
}

// InventoryTransaction is one immutable stock movement. On-hand is the
// running balance; the transaction rows are the audit trail behind it.
type InventoryTransaction struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	IPN       string    `json:"ipn" gorm:"column:ipn;size:64;not null;index"`
	Type      string    `json:"type" gorm:"size:20;not null"`
	Qty       float64   `json:"qty" gorm:"type:decimal(12,4);not null"`
	POID      *string   `json:"po_id" gorm:"size:36;index"`
	Reference string    `json:"reference" gorm:"size:200"`
	CreatedBy string    `json:"created_by" gorm:"size:36"`
	CreatedAt time.Time `json:"created_at"`
}

func (InventoryTransaction) TableName() string {
	return "inventory_transactions"
}

const (
	TxnTypeReceive = "receive"
	TxnTypeIssue   = "issue"
	TxnTypeAdjust  = "adjust"
)
