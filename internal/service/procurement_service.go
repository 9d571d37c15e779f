package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jsnapoli1/zrp-sub006/internal/entity"
	"github.com/jsnapoli1/zrp-sub006/internal/netting"
	"github.com/jsnapoli1/zrp-sub006/internal/repository"
)

// ProcurementService owns purchase orders: creation, shortage-driven
// generation, submission and receiving.
type ProcurementService struct {
	poRepo     *repository.PurchaseRepository
	woRepo     *repository.WorkOrderRepository
	vendorRepo *repository.VendorRepository
	invRepo    *repository.InventoryRepository
	priceRepo  *repository.PriceRepository
	bomSvc     *BOMService
	audit      *AuditService
	logger     *zap.Logger
}

func NewProcurementService(repos *repository.Repositories, audit *AuditService, logger *zap.Logger) *ProcurementService {
	return &ProcurementService{
		poRepo:     repos.Purchase,
		woRepo:     repos.WorkOrder,
		vendorRepo: repos.Vendor,
		invRepo:    repos.Inventory,
		priceRepo:  repos.Price,
		bomSvc:     NewBOMService(repos.Part, repos.Inventory, nil),
		audit:      audit,
		logger:     logger,
	}
}

func (s *ProcurementService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.PurchaseOrder, int64, error) {
	return s.poRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *ProcurementService) Get(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return s.poRepo.FindByID(ctx, id)
}

// CreatePORequest creates a manual purchase order in draft.
type CreatePORequest struct {
	VendorID string         `json:"vendor_id" binding:"required"`
	Notes    string         `json:"notes"`
	Lines    []CreatePOLine `json:"lines" binding:"required"`
}

type CreatePOLine struct {
	IPN         string   `json:"ipn" binding:"required"`
	Description string   `json:"description"`
	Qty         float64  `json:"qty" binding:"required"`
	UnitPrice   *float64 `json:"unit_price"`
}

func (s *ProcurementService) Create(ctx context.Context, userID string, req *CreatePORequest) (*entity.PurchaseOrder, error) {
	if _, err := s.vendorRepo.FindByID(ctx, req.VendorID); err != nil {
		return nil, ErrVendorRequired
	}

	code, err := s.poRepo.GenerateCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate PO code: %w", err)
	}

	po := &entity.PurchaseOrder{
		ID:        uuid.New().String(),
		POCode:    code,
		VendorID:  req.VendorID,
		Status:    entity.POStatusDraft,
		Notes:     req.Notes,
		CreatedBy: userID,
	}

	var total float64
	for i, line := range req.Lines {
		if line.Qty <= 0 {
			return nil, fmt.Errorf("line %s: quantity must be positive", line.IPN)
		}
		po.Lines = append(po.Lines, entity.POLine{
			ID:          uuid.New().String(),
			POID:        po.ID,
			IPN:         line.IPN,
			Description: line.Description,
			QtyOrdered:  line.Qty,
			UnitPrice:   line.UnitPrice,
			SortOrder:   i + 1,
		})
		if line.UnitPrice != nil {
			total += *line.UnitPrice * line.Qty
		}
	}
	if total > 0 {
		po.TotalAmount = &total
	}

	if err := s.poRepo.Create(ctx, po); err != nil {
		return nil, fmt.Errorf("create purchase order: %w", err)
	}
	s.audit.Record(ctx, userID, "po.create", "purchase_order", po.ID, po.POCode)
	return po, nil
}

// GenerateFromWorkOrder builds a draft PO out of a work order's shortage
// lines. It is gated twice: a vendor must resolve, and the freshly netted
// BOM must actually be short. The order carries exactly the short lines at
// their shortage quantities.
func (s *ProcurementService) GenerateFromWorkOrder(ctx context.Context, woID, vendorID, userID string) (*entity.PurchaseOrder, error) {
	wo, err := s.woRepo.FindByID(ctx, woID)
	if err != nil {
		return nil, err
	}
	if vendorID == "" {
		return nil, ErrVendorRequired
	}
	if _, err := s.vendorRepo.FindByID(ctx, vendorID); err != nil {
		return nil, ErrVendorRequired
	}

	res, err := s.bomSvc.Resolve(ctx, wo.AssemblyIPN, wo.Qty)
	if err != nil {
		return nil, fmt.Errorf("resolve BOM for %s: %w", wo.WOCode, err)
	}
	if !res.Summary.HasShortage {
		return nil, ErrNoShortage
	}

	code, err := s.poRepo.GenerateCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate PO code: %w", err)
	}

	po := &entity.PurchaseOrder{
		ID:          uuid.New().String(),
		POCode:      code,
		VendorID:    vendorID,
		WorkOrderID: &wo.ID,
		Status:      entity.POStatusDraft,
		Notes:       fmt.Sprintf("Generated from %s shortage", wo.WOCode),
		CreatedBy:   userID,
	}
	for i, line := range netting.ShortLines(res.Netted) {
		po.Lines = append(po.Lines, entity.POLine{
			ID:          uuid.New().String(),
			POID:        po.ID,
			IPN:         line.IPN,
			Description: line.Description,
			QtyOrdered:  line.Shortage,
			SortOrder:   i + 1,
		})
	}

	if err := s.poRepo.Create(ctx, po); err != nil {
		return nil, fmt.Errorf("create purchase order: %w", err)
	}
	s.audit.Record(ctx, userID, "po.generate", "purchase_order", po.ID,
		fmt.Sprintf("%s from %s (%d lines)", po.POCode, wo.WOCode, len(po.Lines)))
	return po, nil
}

// Submit moves a draft order to submitted, making it receivable.
func (s *ProcurementService) Submit(ctx context.Context, id, userID string) (*entity.PurchaseOrder, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po.Status != entity.POStatusDraft {
		return nil, ErrOrderNotDraft
	}
	if len(po.Lines) == 0 {
		return nil, fmt.Errorf("order %s has no lines", po.POCode)
	}

	now := time.Now()
	po.Status = entity.POStatusSubmitted
	po.SubmittedAt = &now
	if err := s.poRepo.Update(ctx, po); err != nil {
		return nil, fmt.Errorf("submit order %s: %w", po.POCode, err)
	}
	s.audit.Record(ctx, userID, "po.submit", "purchase_order", po.ID, po.POCode)
	return po, nil
}

// Receive applies receipt quantities to an open order. In one transaction it
// updates the lines, moves stock, appends price history and recomputes the
// order status. The returned order is re-read from storage afterwards so the
// caller sees exactly what was committed, applied once.
func (s *ProcurementService) Receive(ctx context.Context, id, userID string, inputs []ReceiptInput) (*entity.PurchaseOrder, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	plan, err := BuildReceiptPlan(po, inputs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.poRepo.Transaction(ctx, func(tx *gorm.DB) error {
		for _, p := range plan {
			p.Line.QtyReceived += p.Qty
			p.Line.UpdatedAt = now
			if err := tx.Save(p.Line).Error; err != nil {
				return fmt.Errorf("update line %s: %w", p.Line.ID, err)
			}

			txn := &entity.InventoryTransaction{
				ID:        uuid.New().String(),
				IPN:       p.Line.IPN,
				Type:      entity.TxnTypeReceive,
				Qty:       p.Qty,
				POID:      &po.ID,
				Reference: po.POCode,
				CreatedBy: userID,
				CreatedAt: now,
			}
			if err := s.invRepo.AdjustInTx(tx, txn); err != nil {
				return fmt.Errorf("adjust stock for %s: %w", p.Line.IPN, err)
			}

			if p.Line.UnitPrice != nil {
				orderedAt := now
				if po.SubmittedAt != nil {
					orderedAt = *po.SubmittedAt
				}
				row := &entity.PriceHistory{
					ID:        uuid.New().String(),
					IPN:       p.Line.IPN,
					UnitPrice: *p.Line.UnitPrice,
					POID:      po.ID,
					VendorID:  po.VendorID,
					OrderedAt: orderedAt,
					CreatedAt: now,
				}
				if err := s.priceRepo.AppendInTx(tx, row); err != nil {
					return fmt.Errorf("append price history for %s: %w", p.Line.IPN, err)
				}
			}
		}

		return tx.Model(&entity.PurchaseOrder{}).
			Where("id = ?", po.ID).
			Updates(map[string]interface{}{
				"status":     NextOrderStatus(po),
				"updated_at": now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, "po.receive", "purchase_order", po.ID,
		fmt.Sprintf("%s (%d lines)", po.POCode, len(plan)))

	return s.poRepo.FindByID(ctx, id)
}

// === vendors ===

func (s *ProcurementService) ListVendors(ctx context.Context, activeOnly bool) ([]entity.Vendor, error) {
	return s.vendorRepo.FindAll(ctx, activeOnly)
}

type CreateVendorRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Notes       string `json:"notes"`
}

func (s *ProcurementService) CreateVendor(ctx context.Context, userID string, req *CreateVendorRequest) (*entity.Vendor, error) {
	vendor := &entity.Vendor{
		ID:          uuid.New().String(),
		Name:        req.Name,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Status:      entity.VendorStatusActive,
		Notes:       req.Notes,
	}
	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, fmt.Errorf("create vendor: %w", err)
	}
	s.audit.Record(ctx, userID, "vendor.create", "vendor", vendor.ID, vendor.Name)
	return vendor, nil
}
