package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jsnapoli1/zrp-sub006/internal/entity"
)

// PurchaseRepository owns purchase orders and their lines.
type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseOrder, int64, error) {
	var items []entity.PurchaseOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PurchaseOrder{})

	if vendorID := filters["vendor_id"]; vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if woID := filters["work_order_id"]; woID != "" {
		query = query.Where("work_order_id = ?", woID)
	}
	if search := filters["search"]; search != "" {
		query = query.Where("po_code ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Vendor").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

func (r *PurchaseRepository) FindByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", id).
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &po, nil
}

func (r *PurchaseRepository) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(po).Error
}

func (r *PurchaseRepository) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	return r.db.WithContext(ctx).Save(po).Error
}

// Transaction runs fn inside one database transaction. Receipts use this to
// update lines, stock, price history and order status as a unit.
func (r *PurchaseRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// GenerateCode produces the next PO code, PO-{year}-{4 digits}.
func (r *PurchaseRepository) GenerateCode(ctx context.Context) (string, error) {
	return nextCode(r.db.WithContext(ctx), &entity.PurchaseOrder{}, "po_code", "PO")
}

// nextCode generates sequential codes of the form {prefix}-{year}-{0001}.
// Shared by PO, WO and quote repositories.
func nextCode(db *gorm.DB, model interface{}, column, prefix string) (string, error) {
	year := time.Now().Format("2006")
	like := fmt.Sprintf("%s-%s-", prefix, year)

	var maxCode string
	err := db.Model(model).
		Select(fmt.Sprintf("COALESCE(MAX(%s), '')", column)).
		Where(column+" LIKE ?", like+"%").
		Scan(&maxCode).Error
	if err != nil {
		return "", err
	}

	var seq int
	if maxCode != "" {
		fmt.Sscanf(maxCode, prefix+"-"+year+"-%04d", &seq)
	}
	seq++
	return fmt.Sprintf("%s-%s-%04d", prefix, year, seq), nil
}
