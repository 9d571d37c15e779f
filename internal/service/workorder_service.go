package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jsnapoli1/zrp-sub006/internal/entity"
	"github.com/jsnapoli1/zrp-sub006/internal/netting"
	"github.com/jsnapoli1/zrp-sub006/internal/repository"
)

// WorkOrderService owns work orders and their shortage reports.
type WorkOrderService struct {
	repo   *repository.WorkOrderRepository
	bomSvc *BOMService
	audit  *AuditService
}

func NewWorkOrderService(repo *repository.WorkOrderRepository, bomSvc *BOMService, audit *AuditService) *WorkOrderService {
	return &WorkOrderService{repo: repo, bomSvc: bomSvc, audit: audit}
}

func (s *WorkOrderService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.WorkOrder, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *WorkOrderService) Get(ctx context.Context, id string) (*entity.WorkOrder, error) {
	return s.repo.FindByID(ctx, id)
}

type CreateWorkOrderRequest struct {
	AssemblyIPN string  `json:"assembly_ipn" binding:"required"`
	Qty         float64 `json:"qty" binding:"required"`
	Priority    string  `json:"priority"`
	Notes       string  `json:"notes"`
}

func (s *WorkOrderService) Create(ctx context.Context, userID string, req *CreateWorkOrderRequest) (*entity.WorkOrder, error) {
	if req.Qty <= 0 {
		return nil, fmt.Errorf("build quantity must be positive")
	}

	code, err := s.repo.GenerateCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate WO code: %w", err)
	}

	wo := &entity.WorkOrder{
		ID:          uuid.New().String(),
		WOCode:      code,
		AssemblyIPN: req.AssemblyIPN,
		Qty:         req.Qty,
		Status:      entity.WOStatusOpen,
		Priority:    req.Priority,
		Notes:       req.Notes,
		CreatedBy:   userID,
	}
	if wo.Priority == "" {
		wo.Priority = "normal"
	}

	if err := s.repo.Create(ctx, wo); err != nil {
		return nil, fmt.Errorf("create work order: %w", err)
	}
	s.audit.Record(ctx, userID, "work_order.create", "work_order", wo.ID, wo.WOCode)
	return wo, nil
}

type UpdateWorkOrderRequest struct {
	Qty      *float64 `json:"qty"`
	Status   *string  `json:"status"`
	Priority *string  `json:"priority"`
	Notes    *string  `json:"notes"`
}

func (s *WorkOrderService) Update(ctx context.Context, id string, req *UpdateWorkOrderRequest) (*entity.WorkOrder, error) {
	wo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Qty != nil {
		if *req.Qty <= 0 {
			return nil, fmt.Errorf("build quantity must be positive")
		}
		wo.Qty = *req.Qty
	}
	if req.Status != nil {
		wo.Status = *req.Status
	}
	if req.Priority != nil {
		wo.Priority = *req.Priority
	}
	if req.Notes != nil {
		wo.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, wo); err != nil {
		return nil, fmt.Errorf("update work order %s: %w", id, err)
	}
	return wo, nil
}

// BOMReport is the resolved and netted requirement set for one work order.
type BOMReport struct {
	WorkOrderID string          `json:"work_order_id"`
	WOCode      string          `json:"wo_code"`
	AssemblyIPN string          `json:"assembly_ipn"`
	Qty         float64         `json:"qty"`
	BOM         []netting.Line  `json:"bom"`
	Summary     netting.Summary `json:"summary"`
}

// BOM resolves the work order's assembly at its build quantity and nets the
// leaves against current stock. Statuses come out of the netting pass, fresh
// on every call.
func (s *WorkOrderService) BOM(ctx context.Context, id string) (*BOMReport, error) {
	wo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := s.bomSvc.Resolve(ctx, wo.AssemblyIPN, wo.Qty)
	if err != nil {
		return nil, fmt.Errorf("resolve BOM for %s: %w", wo.WOCode, err)
	}

	return &BOMReport{
		WorkOrderID: wo.ID,
		WOCode:      wo.WOCode,
		AssemblyIPN: wo.AssemblyIPN,
		Qty:         wo.Qty,
		BOM:         res.Netted,
		Summary:     res.Summary,
	}, nil
}
