package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jsnapoli1/zrp-sub006/internal/bom"
	"github.com/jsnapoli1/zrp-sub006/internal/entity"
	"github.com/jsnapoli1/zrp-sub006/internal/repository"
)

// Services bundles the application services over one repository set.
type Services struct {
	Part        *PartService
	BOM         *BOMService
	Cost        *CostService
	WorkOrder   *WorkOrderService
	Procurement *ProcurementService
	Quote       *QuoteService
	Campaign    *CampaignService
	Pollers     *PollerManager
	Export      *ExportService
	Audit       *AuditService
}

// NewServices wires the service graph. rdb may be nil; cost lookups then go
// straight to the database.
func NewServices(repos *repository.Repositories, rdb *redis.Client, logger *zap.Logger, isAssembly bom.AssemblyPredicate, pollInterval time.Duration) *Services {
	audit := NewAuditService(repos.Audit, logger)
	bomSvc := NewBOMService(repos.Part, repos.Inventory, isAssembly)
	cost := NewCostService(repos.Part, repos.Price, bomSvc, rdb, logger)
	campaign := NewCampaignService(repos.Campaign, audit, logger)

	s := &Services{
		Part:        NewPartService(repos.Part, repos.Inventory, bomSvc, cost, logger),
		BOM:         bomSvc,
		Cost:        cost,
		WorkOrder:   NewWorkOrderService(repos.WorkOrder, bomSvc, audit),
		Procurement: NewProcurementService(repos, audit, logger),
		Quote:       NewQuoteService(repos.Quote, cost, audit),
		Campaign:    campaign,
		Pollers:     NewPollerManager(campaign, pollInterval, logger),
		Audit:       audit,
	}
	s.Export = NewExportService(s.WorkOrder)
	return s
}

// AuditService appends audit rows for state-changing actions. A failed
// append is logged and swallowed; auditing never fails the action itself.
type AuditService struct {
	repo   *repository.AuditRepository
	logger *zap.Logger
}

func NewAuditService(repo *repository.AuditRepository, logger *zap.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

func (s *AuditService) Record(ctx context.Context, userID, action, entityType, entityID, detail string) {
	row := &entity.AuditLog{
		ID:         uuid.New().String(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.Append(ctx, row); err != nil {
		s.logger.Warn("audit append failed",
			zap.String("action", action),
			zap.String("entity_id", entityID),
			zap.Error(err))
	}
}

func (s *AuditService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.AuditLog, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}
