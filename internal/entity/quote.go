package entity

import "time"

// Quote is a customer quotation. Lines are arbitrary sellable items; margin
// math lives in the costing package, not here.
type Quote struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	QuoteCode    string    `json:"quote_code" gorm:"size:32;uniqueIndex;not null"`
	CustomerName string    `json:"customer_name" gorm:"size:200;not null"`
	Status       string    `json:"status" gorm:"size:20;not null;default:draft"`
	Notes        string    `json:"notes" gorm:"type:text"`
	CreatedBy    string    `json:"created_by" gorm:"size:36"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Lines []QuoteLine `json:"lines,omitempty" gorm:"foreignKey:QuoteID"`
}

func (Quote) TableName() string {
	return "quotes"
}

const (
	QuoteStatusDraft    = "draft"
	QuoteStatusSent     = "sent"
	QuoteStatusAccepted = "accepted"
	QuoteStatusRejected = "rejected"
)

// QuoteLine is one priced line on a quote.
type QuoteLine struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	QuoteID     string    `json:"quote_id" gorm:"size:36;not null;index"`
	IPN         string    `json:"ipn" gorm:"column:ipn;size:64;not null"`
	Description string    `json:"description" gorm:"size:256"`
	Qty         float64   `json:"qty" gorm:"type:decimal(12,4);not null"`
	UnitPrice   float64   `json:"unit_price" gorm:"type:decimal(12,4);not null;default:0"`
	SortOrder   int       `json:"sort_order" gorm:"default:0"`
	Notes       string    `json:"notes" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (QuoteLine) TableName() string {
	return "quote_lines"
}
