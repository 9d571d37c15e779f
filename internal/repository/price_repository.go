package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jsnapoli1/zrp-sub006/internal/entity"
)

// PriceRepository owns the append-only purchase price history.
type PriceRepository struct {
	db *gorm.DB
}

func NewPriceRepository(db *gorm.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

func (r *PriceRepository) Append(ctx context.Context, row *entity.PriceHistory) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *PriceRepository) AppendInTx(tx *gorm.DB, row *entity.PriceHistory) error {
	return tx.Create(row).Error
}

// LatestByIPN returns the most recent price row for an IPN, or ErrNotFound
// when the part has never been purchased.
func (r *PriceRepository) LatestByIPN(ctx context.Context, ipn string) (*entity.PriceHistory, error) {
	var row entity.PriceHistory
	err := r.db.WithContext(ctx).
		Where("ipn = ?", ipn).
		Order("ordered_at DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *PriceRepository) ListByIPN(ctx context.Context, ipn string, limit int) ([]entity.PriceHistory, error) {
	var rows []entity.PriceHistory
	query := r.db.WithContext(ctx).
		Where("ipn = ?", ipn).
		Order("ordered_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&rows).Error
	return rows, err
}
