package entity

import "time"

// AuditLog is one append-only record of a state-changing action.
type AuditLog struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	UserID     string    `json:"user_id" gorm:"size:36;index"`
	Action     string    `json:"action" gorm:"size:50;not null;index"`
	EntityType string    `json:"entity_type" gorm:"size:50;not null"`
	EntityID   string    `json:"entity_id" gorm:"size:64;index"`
	Detail     string    `json:"detail" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}
