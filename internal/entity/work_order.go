package entity

import "time"

// WorkOrder is a build request for an assembly: produce Qty units of
// AssemblyIPN. The BOM resolution and shortage report hang off this.
type WorkOrder struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	WOCode      string    `json:"wo_code" gorm:"size:32;uniqueIndex;not null"`
	AssemblyIPN string    `json:"assembly_ipn" gorm:"column:assembly_ipn;size:64;not null;index"`
	Qty         float64   `json:"qty" gorm:"type:decimal(12,4);not null"`
	Status      string    `json:"status" gorm:"size:20;not null;default:open"`
	Priority    string    `json:"priority" gorm:"size:20;default:normal"`
	Notes       string    `json:"notes" gorm:"type:text"`
	CreatedBy   string    `json:"created_by" gorm:"size:36"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (WorkOrder) TableName() string {
	return "work_orders"
}

const (
	WOStatusOpen       = "open"
	WOStatusInProgress = "in_progress"
	WOStatusComplete   = "complete"
	WOStatusCancelled  = "cancelled"
)
