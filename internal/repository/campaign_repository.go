package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jsnapoli1/zrp-sub006/internal/entity"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) FindAll(ctx context.Context, status string) ([]entity.FirmwareCampaign, error) {
	var items []entity.FirmwareCampaign
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&items).Error
	return items, err
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*entity.FirmwareCampaign, error) {
	var c entity.FirmwareCampaign
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) Create(ctx context.Context, c *entity.FirmwareCampaign) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CampaignRepository) Update(ctx context.Context, c *entity.FirmwareCampaign) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CampaignRepository) AddDevices(ctx context.Context, devices []entity.CampaignDevice) error {
	if len(devices) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&devices).Error
}

// DeviceCounts tallies enrolled devices by status for one campaign.
func (r *CampaignRepository) DeviceCounts(ctx context.Context, campaignID string) (map[string]int, error) {
	type row struct {
		Status string
		N      int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&entity.CampaignDevice{}).
		Select("status, COUNT(*) AS n").
		Where("campaign_id = ?", campaignID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}
