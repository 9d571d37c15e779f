package entity

import "time"

// FirmwareCampaign is a fleet firmware rollout. Progress counts are derived
// from the device rows; the stored counters are a snapshot refreshed while
// the campaign runs.
type FirmwareCampaign struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	Name            string    `json:"name" gorm:"size:200;not null"`
	FirmwareVersion string    `json:"firmware_version" gorm:"size:50;not null"`
	Status          string    `json:"status" gorm:"size:20;not null;default:draft"`
	TargetCount     int       `json:"target_count" gorm:"default:0"`
	UpdatedCount    int       `json:"updated_count" gorm:"default:0"`
	FailedCount     int       `json:"failed_count" gorm:"default:0"`
	CreatedBy       string    `json:"created_by" gorm:"size:36"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (FirmwareCampaign) TableName() string {
	return "firmware_campaigns"
}

const (
	CampaignStatusDraft     = "draft"
	CampaignStatusRunning   = "running"
	CampaignStatusPaused    = "paused"
	CampaignStatusComplete  = "complete"
	CampaignStatusCancelled = "cancelled"
)

// CampaignDevice is one device enrolled in a campaign.
type CampaignDevice struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	CampaignID string    `json:"campaign_id" gorm:"size:36;not null;index"`
	DeviceID   string    `json:"device_id" gorm:"size:100;not null"`
	Status     string    `json:"status" gorm:"size:20;not null;default:pending"`
	UpdatedAt  time.Time `json:"updated_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func (CampaignDevice) TableName() string {
	return "campaign_devices"
}

const (
	DeviceStatusPending  = "pending"
	DeviceStatusUpdating = "updating"
	DeviceStatusUpdated  = "updated"
	DeviceStatusFailed   = "failed"
)
