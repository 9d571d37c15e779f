package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jsnapoli1/zrp-sub006/internal/costing"
	"github.com/jsnapoli1/zrp-sub006/internal/entity"
	"github.com/jsnapoli1/zrp-sub006/internal/repository"
)

// QuoteService owns quotes and their margin view.
type QuoteService struct {
	repo    *repository.QuoteRepository
	costSvc *CostService
	audit   *AuditService
}

func NewQuoteService(repo *repository.QuoteRepository, costSvc *CostService, audit *AuditService) *QuoteService {
	return &QuoteService{repo: repo, costSvc: costSvc, audit: audit}
}

func (s *QuoteService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Quote, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *QuoteService) Get(ctx context.Context, id string) (*entity.Quote, error) {
	return s.repo.FindByID(ctx, id)
}

type CreateQuoteRequest struct {
	CustomerName string            `json:"customer_name" binding:"required"`
	Notes        string            `json:"notes"`
	Lines        []CreateQuoteLine `json:"lines"`
}

type CreateQuoteLine struct {
	IPN         string  `json:"ipn" binding:"required"`
	Description string  `json:"description"`
	Qty         float64 `json:"qty" binding:"required"`
	UnitPrice   float64 `json:"unit_price"`
	Notes       string  `json:"notes"`
}

func (s *QuoteService) Create(ctx context.Context, userID string, req *CreateQuoteRequest) (*entity.Quote, error) {
	code, err := s.repo.GenerateCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate quote code: %w", err)
	}

	quote := &entity.Quote{
		ID:           uuid.New().String(),
		QuoteCode:    code,
		CustomerName: req.CustomerName,
		Status:       entity.QuoteStatusDraft,
		Notes:        req.Notes,
		CreatedBy:    userID,
	}
	for i, line := range req.Lines {
		quote.Lines = append(quote.Lines, entity.QuoteLine{
			ID:          uuid.New().String(),
			QuoteID:     quote.ID,
			IPN:         line.IPN,
			Description: line.Description,
			Qty:         line.Qty,
			UnitPrice:   line.UnitPrice,
			SortOrder:   i + 1,
			Notes:       line.Notes,
		})
	}

	if err := s.repo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}
	s.audit.Record(ctx, userID, "quote.create", "quote", quote.ID, quote.QuoteCode)
	return quote, nil
}

type UpdateQuoteRequest struct {
	CustomerName *string `json:"customer_name"`
	Status       *string `json:"status"`
	Notes        *string `json:"notes"`
}

func (s *QuoteService) Update(ctx context.Context, id string, req *UpdateQuoteRequest) (*entity.Quote, error) {
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerName != nil {
		quote.CustomerName = *req.CustomerName
	}
	if req.Status != nil {
		quote.Status = *req.Status
	}
	if req.Notes != nil {
		quote.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("update quote %s: %w", id, err)
	}
	return quote, nil
}

// CostedQuoteView is a quote with margin math applied to every line.
type CostedQuoteView struct {
	Quote  *entity.Quote       `json:"quote"`
	Costed costing.CostedQuote `json:"costed"`
}

// Costed loads a quote and derives line and total margins against the
// current cost catalog. Negative margins come back flagged, never rejected.
func (s *QuoteService) Costed(ctx context.Context, id string) (*CostedQuoteView, error) {
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ipns := make([]string, 0, len(quote.Lines))
	lines := make([]costing.QuoteLine, 0, len(quote.Lines))
	for _, l := range quote.Lines {
		ipns = append(ipns, l.IPN)
		lines = append(lines, costing.QuoteLine{
			IPN:         l.IPN,
			Description: l.Description,
			Qty:         l.Qty,
			UnitPrice:   decimal.NewFromFloat(l.UnitPrice),
			Notes:       l.Notes,
		})
	}

	lookup, err := s.costSvc.CatalogLookup(ctx, ipns)
	if err != nil {
		return nil, err
	}

	return &CostedQuoteView{
		Quote:  quote,
		Costed: costing.CostQuote(lines, lookup),
	}, nil
}
