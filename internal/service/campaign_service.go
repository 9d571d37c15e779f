package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jsnapoli1/zrp-sub006/internal/entity"
	"github.com/jsnapoli1/zrp-sub006/internal/repository"
)

// ErrBadTransition rejects a campaign status change the lifecycle does not
// allow.
var ErrBadTransition = errors.New("status transition not allowed")

// CampaignService owns firmware campaigns and their progress snapshots.
type CampaignService struct {
	repo   *repository.CampaignRepository
	audit  *AuditService
	logger *zap.Logger
}

func NewCampaignService(repo *repository.CampaignRepository, audit *AuditService, logger *zap.Logger) *CampaignService {
	return &CampaignService{repo: repo, audit: audit, logger: logger}
}

func (s *CampaignService) List(ctx context.Context, status string) ([]entity.FirmwareCampaign, error) {
	return s.repo.FindAll(ctx, status)
}

func (s *CampaignService) Get(ctx context.Context, id string) (*entity.FirmwareCampaign, error) {
	return s.repo.FindByID(ctx, id)
}

type CreateCampaignRequest struct {
	Name            string   `json:"name" binding:"required"`
	FirmwareVersion string   `json:"firmware_version" binding:"required"`
	DeviceIDs       []string `json:"device_ids"`
}

func (s *CampaignService) Create(ctx context.Context, userID string, req *CreateCampaignRequest) (*entity.FirmwareCampaign, error) {
	c := &entity.FirmwareCampaign{
		ID:              uuid.New().String(),
		Name:            req.Name,
		FirmwareVersion: req.FirmwareVersion,
		Status:          entity.CampaignStatusDraft,
		TargetCount:     len(req.DeviceIDs),
		CreatedBy:       userID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}

	devices := make([]entity.CampaignDevice, 0, len(req.DeviceIDs))
	for _, deviceID := range req.DeviceIDs {
		devices = append(devices, entity.CampaignDevice{
			ID:         uuid.New().String(),
			CampaignID: c.ID,
			DeviceID:   deviceID,
			Status:     entity.DeviceStatusPending,
		})
	}
	if err := s.repo.AddDevices(ctx, devices); err != nil {
		return nil, fmt.Errorf("enroll campaign devices: %w", err)
	}

	s.audit.Record(ctx, userID, "campaign.create", "firmware_campaign", c.ID, c.Name)
	return c, nil
}

// SetStatus transitions a campaign, validating the edge. running is only
// reachable from draft or paused.
func (s *CampaignService) SetStatus(ctx context.Context, id, status, userID string) (*entity.FirmwareCampaign, error) {
	switch status {
	case entity.CampaignStatusDraft, entity.CampaignStatusRunning, entity.CampaignStatusPaused,
		entity.CampaignStatusComplete, entity.CampaignStatusCancelled:
	default:
		return nil, fmt.Errorf("unknown status %q: %w", status, ErrBadTransition)
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == entity.CampaignStatusRunning &&
		c.Status != entity.CampaignStatusDraft && c.Status != entity.CampaignStatusPaused {
		return nil, fmt.Errorf("campaign %s cannot start from %s: %w", c.Name, c.Status, ErrBadTransition)
	}

	c.Status = status
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update campaign %s: %w", id, err)
	}
	s.audit.Record(ctx, userID, "campaign."+status, "firmware_campaign", c.ID, c.Name)
	return c, nil
}

// Status re-reads the current status from storage. The poller calls this
// every tick so an external transition is seen on the next interval.
func (s *CampaignService) Status(ctx context.Context, id string) (string, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return c.Status, nil
}

// Refresh recounts device states and updates the stored snapshot. When every
// enrolled device has finished the campaign completes itself.
func (s *CampaignService) Refresh(ctx context.Context, id string) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	counts, err := s.repo.DeviceCounts(ctx, id)
	if err != nil {
		return fmt.Errorf("count campaign devices: %w", err)
	}

	c.UpdatedCount = counts[entity.DeviceStatusUpdated]
	c.FailedCount = counts[entity.DeviceStatusFailed]
	finished := c.UpdatedCount + c.FailedCount
	if c.TargetCount > 0 && finished >= c.TargetCount && c.Status == entity.CampaignStatusRunning {
		c.Status = entity.CampaignStatusComplete
	}

	return s.repo.Update(ctx, c)
}
