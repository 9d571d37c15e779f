package entity

import "time"

// Vendor is a supplier a purchase order can be placed with.
type Vendor struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	ContactName string    `json:"contact_name" gorm:"size:100"`
	Email       string    `json:"email" gorm:"size:200"`
	Phone       string    `json:"phone" gorm:"size:50"`
	Status      string    `json:"status" gorm:"size:20;not null;default:active"`
	Notes       string    `json:"notes" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Vendor) TableName() string {
	return "vendors"
}

const (
	VendorStatusActive   = "active"
	VendorStatusInactive = "inactive"
)
