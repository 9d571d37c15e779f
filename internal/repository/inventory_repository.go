package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jsnapoli1/zrp-sub006/internal/entity"
)

// InventoryRepository owns on-hand balances and the transaction trail.
type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) FindByIPN(ctx context.Context, ipn string) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.db.WithContext(ctx).Where("ipn = ?", ipn).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// OnHandMap loads balances for a set of IPNs in one query. IPNs with no
// inventory row map to zero on hand.
func (r *InventoryRepository) OnHandMap(ctx context.Context, ipns []string) (map[string]float64, error) {
	onHand := make(map[string]float64, len(ipns))
	for _, ipn := range ipns {
		onHand[ipn] = 0
	}
	if len(ipns) == 0 {
		return onHand, nil
	}

	var rows []entity.Inventory
	err := r.db.WithContext(ctx).Where("ipn IN ?", ipns).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		onHand[row.IPN] = row.QtyOnHand
	}
	return onHand, nil
}

// Adjust applies a signed quantity delta and appends the matching
// transaction row atomically. The inventory row is created on first touch.
func (r *InventoryRepository) Adjust(ctx context.Context, txn *entity.InventoryTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return adjustInTx(tx, txn)
	})
}

// AdjustInTx is Adjust for callers that already hold a transaction, so a
// receipt can move stock and update the order in one commit.
func (r *InventoryRepository) AdjustInTx(tx *gorm.DB, txn *entity.InventoryTransaction) error {
	return adjustInTx(tx, txn)
}

func adjustInTx(tx *gorm.DB, txn *entity.InventoryTransaction) error {
	var inv entity.Inventory
	err := tx.Where("ipn = ?", txn.IPN).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		inv = entity.Inventory{IPN: txn.IPN}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	inv.QtyOnHand += txn.Qty
	inv.UpdatedAt = time.Now()
	if err := tx.Save(&inv).Error; err != nil {
		return err
	}
	return tx.Create(txn).Error
}

func (r *InventoryRepository) ListTransactions(ctx context.Context, ipn string, limit int) ([]entity.InventoryTransaction, error) {
	var txns []entity.InventoryTransaction
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if ipn != "" {
		query = query.Where("ipn = ?", ipn)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&txns).Error
	return txns, err
}
