package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jsnapoli1/zrp-sub006/internal/entity"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, row *entity.AuditLog) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *AuditRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.AuditLog, int64, error) {
	var items []entity.AuditLog
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.AuditLog{})

	if action := filters["action"]; action != "" {
		query = query.Where("action = ?", action)
	}
	if entityType := filters["entity_type"]; entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}
	if entityID := filters["entity_id"]; entityID != "" {
		query = query.Where("entity_id = ?", entityID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&items).Error
	return items, total, err
}
