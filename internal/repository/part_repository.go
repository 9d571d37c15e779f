package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/jsnapoli1/zrp-sub006/internal/entity"
)

// PartRepository owns the part catalog and the single-level BOM edges.
type PartRepository struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) *PartRepository {
	return &PartRepository{db: db}
}

func (r *PartRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Part, int64, error) {
	var items []entity.Part
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Part{})

	if category := filters["category"]; category != "" {
		query = query.Where("category = ?", category)
	}
	if assembly := filters["is_assembly"]; assembly != "" {
		query = query.Where("is_assembly = ?", assembly == "true")
	}
	if search := filters["search"]; search != "" {
		query = query.Where("ipn ILIKE ? OR description ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("ipn ASC").Offset(offset).Limit(pageSize).Find(&items).Error
	return items, total, err
}

func (r *PartRepository) FindByIPN(ctx context.Context, ipn string) (*entity.Part, error) {
	var part entity.Part
	err := r.db.WithContext(ctx).Where("ipn = ?", ipn).First(&part).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &part, nil
}

func (r *PartRepository) Create(ctx context.Context, part *entity.Part) error {
	return r.db.WithContext(ctx).Create(part).Error
}

func (r *PartRepository) Update(ctx context.Context, part *entity.Part) error {
	return r.db.WithContext(ctx).Save(part).Error
}

// UnitCosts loads the catalog cost for a set of IPNs in one query. IPNs
// absent from the catalog are simply absent from the map.
func (r *PartRepository) UnitCosts(ctx context.Context, ipns []string) (map[string]float64, error) {
	if len(ipns) == 0 {
		return map[string]float64{}, nil
	}
	var rows []entity.Part
	err := r.db.WithContext(ctx).
		Select("ipn", "unit_cost").
		Where("ipn IN ?", ipns).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	costs := make(map[string]float64, len(rows))
	for _, p := range rows {
		costs[p.IPN] = p.UnitCost
	}
	return costs, nil
}

// Children returns the direct BOM children of a parent, in display order.
func (r *PartRepository) Children(ctx context.Context, parentIPN string) ([]entity.BOMItem, error) {
	var items []entity.BOMItem
	err := r.db.WithContext(ctx).
		Where("parent_ipn = ?", parentIPN).
		Order("sort_order ASC, child_ipn ASC").
		Find(&items).Error
	return items, err
}

// WhereUsed returns every edge that consumes the given IPN (reverse BOM).
func (r *PartRepository) WhereUsed(ctx context.Context, childIPN string) ([]entity.BOMItem, error) {
	var items []entity.BOMItem
	err := r.db.WithContext(ctx).
		Where("child_ipn = ?", childIPN).
		Order("parent_ipn ASC").
		Find(&items).Error
	return items, err
}

// ReplaceChildren swaps a parent's full child set in one transaction.
func (r *PartRepository) ReplaceChildren(ctx context.Context, parentIPN string, items []entity.BOMItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_ipn = ?", parentIPN).Delete(&entity.BOMItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}
