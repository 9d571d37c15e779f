package entity

import "time"

// Part is one catalog record, keyed by internal part number. IsAssembly is
// the authoritative flag for whether a BOM exists for the part; the legacy
// IPN-prefix convention is only a fallback for imported rows that predate
// the flag.
type Part struct {
	IPN          string    `json:"ipn" gorm:"column:ipn;primaryKey;size:64"`
	Description  string    `json:"description" gorm:"size:256"`
	Category     string    `json:"category" gorm:"size:64;index"`
	MPN          string    `json:"mpn" gorm:"size:128"`
	Manufacturer string    `json:"manufacturer" gorm:"size:128"`
	UnitCost     float64   `json:"unit_cost" gorm:"type:decimal(12,4);default:0"`
	IsAssembly   bool      `json:"is_assembly" gorm:"default:false"`
	Status       string    `json:"status" gorm:"size:20;not null;default:active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Part) TableName() string {
	return "parts"
}

// BOMItem is one parent→child edge of the single-level BOM table. QtyPer is
// the quantity of the child consumed by one unit of the parent. Multi-level
// trees are assembled by following edges recursively.
type BOMItem struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	ParentIPN string    `json:"parent_ipn" gorm:"column:parent_ipn;size:64;not null;index"`
	ChildIPN  string    `json:"child_ipn" gorm:"column:child_ipn;size:64;not null;index"`
	QtyPer    float64   `json:"qty_per" gorm:"type:decimal(12,4);not null"`
	Ref       string    `json:"ref" gorm:"size:256"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BOMItem) TableName() string {
	return "bom_items"
}
