package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories bundles every repository over one gorm handle.
type Repositories struct {
	Part      *PartRepository
	Inventory *InventoryRepository
	Vendor    *VendorRepository
	Purchase  *PurchaseRepository
	WorkOrder *WorkOrderRepository
	Quote     *QuoteRepository
	Price     *PriceRepository
	Campaign  *CampaignRepository
	Audit     *AuditRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Part:      NewPartRepository(db),
		Inventory: NewInventoryRepository(db),
		Vendor:    NewVendorRepository(db),
		Purchase:  NewPurchaseRepository(db),
		WorkOrder: NewWorkOrderRepository(db),
		Quote:     NewQuoteRepository(db),
		Price:     NewPriceRepository(db),
		Campaign:  NewCampaignRepository(db),
		Audit:     NewAuditRepository(db),
	}
}
