package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jsnapoli1/zrp-sub006/internal/bom"
	"github.com/jsnapoli1/zrp-sub006/internal/costing"
	"github.com/jsnapoli1/zrp-sub006/internal/entity"
	"github.com/jsnapoli1/zrp-sub006/internal/repository"
)

// PartService owns the part catalog and the composite part detail view.
type PartService struct {
	partRepo *repository.PartRepository
	invRepo  *repository.InventoryRepository
	bomSvc   *BOMService
	costSvc  *CostService
	logger   *zap.Logger
}

func NewPartService(partRepo *repository.PartRepository, invRepo *repository.InventoryRepository, bomSvc *BOMService, costSvc *CostService, logger *zap.Logger) *PartService {
	return &PartService{
		partRepo: partRepo,
		invRepo:  invRepo,
		bomSvc:   bomSvc,
		costSvc:  costSvc,
		logger:   logger,
	}
}

func (s *PartService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Part, int64, error) {
	return s.partRepo.FindAll(ctx, page, pageSize, filters)
}

func (s *PartService) Get(ctx context.Context, ipn string) (*entity.Part, error) {
	return s.partRepo.FindByIPN(ctx, ipn)
}

// CreatePartRequest creates a catalog record.
type CreatePartRequest struct {
	IPN          string  `json:"ipn" binding:"required"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	MPN          string  `json:"mpn"`
	Manufacturer string  `json:"manufacturer"`
	UnitCost     float64 `json:"unit_cost"`
	IsAssembly   bool    `json:"is_assembly"`
}

func (s *PartService) Create(ctx context.Context, req *CreatePartRequest) (*entity.Part, error) {
	part := &entity.Part{
		IPN:          req.IPN,
		Description:  req.Description,
		Category:     req.Category,
		MPN:          req.MPN,
		Manufacturer: req.Manufacturer,
		UnitCost:     req.UnitCost,
		IsAssembly:   req.IsAssembly,
		Status:       "active",
	}
	if err := s.partRepo.Create(ctx, part); err != nil {
		return nil, fmt.Errorf("create part %s: %w", req.IPN, err)
	}
	return part, nil
}

// UpdatePartRequest carries partial catalog updates.
type UpdatePartRequest struct {
	Description  *string  `json:"description"`
	Category     *string  `json:"category"`
	MPN          *string  `json:"mpn"`
	Manufacturer *string  `json:"manufacturer"`
	UnitCost     *float64 `json:"unit_cost"`
	IsAssembly   *bool    `json:"is_assembly"`
	Status       *string  `json:"status"`
}

func (s *PartService) Update(ctx context.Context, ipn string, req *UpdatePartRequest) (*entity.Part, error) {
	part, err := s.partRepo.FindByIPN(ctx, ipn)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		part.Description = *req.Description
	}
	if req.Category != nil {
		part.Category = *req.Category
	}
	if req.MPN != nil {
		part.MPN = *req.MPN
	}
	if req.Manufacturer != nil {
		part.Manufacturer = *req.Manufacturer
	}
	if req.UnitCost != nil {
		part.UnitCost = *req.UnitCost
	}
	if req.IsAssembly != nil {
		part.IsAssembly = *req.IsAssembly
	}
	if req.Status != nil {
		part.Status = *req.Status
	}

	if err := s.partRepo.Update(ctx, part); err != nil {
		return nil, fmt.Errorf("update part %s: %w", ipn, err)
	}
	s.costSvc.InvalidateUnitCost(ctx, ipn)
	return part, nil
}

// PartDetail is the composite detail view. The part itself is mandatory;
// every other section can fail independently and is then returned null with
// a message, leaving the rest of the view intact.
type PartDetail struct {
	Part      *entity.Part      `json:"part"`
	Inventory *entity.Inventory `json:"inventory"`

	BOM      *Resolution `json:"bom"`
	BOMError string      `json:"bom_error,omitempty"`

	Cost      *costing.Entry `json:"cost"`
	CostError string         `json:"cost_error,omitempty"`

	WhereUsed      []WhereUsedEntry `json:"where_used"`
	WhereUsedError string           `json:"where_used_error,omitempty"`

	PriceHistory []entity.PriceHistory `json:"price_history"`
}

// Detail loads the part plus its secondary sections. Only a missing part
// fails the call.
func (s *PartService) Detail(ctx context.Context, ipn string) (*PartDetail, error) {
	part, err := s.partRepo.FindByIPN(ctx, ipn)
	if err != nil {
		return nil, err
	}

	detail := &PartDetail{Part: part}

	if inv, err := s.invRepo.FindByIPN(ctx, ipn); err == nil {
		detail.Inventory = inv
	} else {
		detail.Inventory = &entity.Inventory{IPN: ipn, UpdatedAt: time.Now()}
	}

	if part.IsAssembly {
		if res, err := s.bomSvc.Resolve(ctx, ipn, 1); err == nil {
			detail.BOM = res
		} else {
			s.logger.Warn("part detail: BOM section failed", zap.String("ipn", ipn), zap.Error(err))
			detail.BOMError = "BOM data unavailable"
		}
	}

	if cost, err := s.costSvc.Entry(ctx, ipn); err == nil {
		detail.Cost = cost
	} else {
		s.logger.Warn("part detail: cost section failed", zap.String("ipn", ipn), zap.Error(err))
		detail.CostError = "cost data unavailable"
	}

	if used, err := s.bomSvc.WhereUsed(ctx, ipn); err == nil {
		detail.WhereUsed = used
	} else {
		s.logger.Warn("part detail: where-used section failed", zap.String("ipn", ipn), zap.Error(err))
		detail.WhereUsedError = "where-used data unavailable"
	}

	if rows, err := s.costSvc.priceRepo.ListByIPN(ctx, ipn, 10); err == nil {
		detail.PriceHistory = rows
	}

	return detail, nil
}

// BOMLineInput is one direct child on a BOM edit.
type BOMLineInput struct {
	ChildIPN string  `json:"child_ipn" binding:"required"`
	QtyPer   float64 `json:"qty_per" binding:"required"`
	Ref      string  `json:"ref"`
}

type ReplaceBOMRequest struct {
	Lines []BOMLineInput `json:"lines"`
}

// ReplaceBOM swaps an assembly's direct children in one transaction. An
// empty line set clears the BOM. Self-reference is rejected here; deeper
// cycles surface as bom.ErrCycle at resolution time.
func (s *PartService) ReplaceBOM(ctx context.Context, ipn string, req *ReplaceBOMRequest) ([]entity.BOMItem, error) {
	if _, err := s.partRepo.FindByIPN(ctx, ipn); err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]entity.BOMItem, 0, len(req.Lines))
	for i, line := range req.Lines {
		if line.ChildIPN == ipn {
			return nil, fmt.Errorf("%w: %s cannot contain itself", bom.ErrCycle, ipn)
		}
		if line.QtyPer <= 0 {
			return nil, fmt.Errorf("line %s: qty_per must be positive", line.ChildIPN)
		}
		items = append(items, entity.BOMItem{
			ID:        uuid.New().String(),
			ParentIPN: ipn,
			ChildIPN:  line.ChildIPN,
			QtyPer:    line.QtyPer,
			Ref:       line.Ref,
			SortOrder: i + 1,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if err := s.partRepo.ReplaceChildren(ctx, ipn, items); err != nil {
		return nil, fmt.Errorf("replace BOM for %s: %w", ipn, err)
	}
	s.costSvc.InvalidateUnitCost(ctx, ipn)
	return s.partRepo.Children(ctx, ipn)
}

// === inventory ===

func (s *PartService) ListTransactions(ctx context.Context, ipn string, limit int) ([]entity.InventoryTransaction, error) {
	return s.invRepo.ListTransactions(ctx, ipn, limit)
}

type AdjustInventoryRequest struct {
	IPN       string  `json:"ipn" binding:"required"`
	Qty       float64 `json:"qty" binding:"required"`
	Reference string  `json:"reference"`
}

// AdjustInventory applies a signed manual stock correction.
func (s *PartService) AdjustInventory(ctx context.Context, userID string, req *AdjustInventoryRequest) (*entity.Inventory, error) {
	txn := &entity.InventoryTransaction{
		ID:        uuid.New().String(),
		IPN:       req.IPN,
		Type:      entity.TxnTypeAdjust,
		Qty:       req.Qty,
		Reference: req.Reference,
		CreatedBy: userID,
		CreatedAt: time.Now(),
	}
	if err := s.invRepo.Adjust(ctx, txn); err != nil {
		return nil, fmt.Errorf("adjust inventory for %s: %w", req.IPN, err)
	}
	return s.invRepo.FindByIPN(ctx, req.IPN)
}
