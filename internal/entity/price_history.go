package entity

import "time"

// PriceHistory is one observed purchase price for an IPN, appended at
// receipt time. "Last purchase price" is the newest row by OrderedAt.
type PriceHistory struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	IPN       string    `json:"ipn" gorm:"column:ipn;size:64;not null;index"`
	UnitPrice float64   `json:"unit_price" gorm:"type:decimal(12,4);not null"`
	POID      string    `json:"po_id" gorm:"size:36;not null"`
	VendorID  string    `json:"vendor_id" gorm:"size:36"`
	OrderedAt time.Time `json:"ordered_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

func (PriceHistory) TableName() string {
	return "price_history"
}
