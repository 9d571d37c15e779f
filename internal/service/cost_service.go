package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jsnapoli1/zrp-sub006/internal/bom"
	"github.com/jsnapoli1/zrp-sub006/internal/costing"
	"github.com/jsnapoli1/zrp-sub006/internal/repository"
)

const costCacheTTL = 5 * time.Minute

// CostService resolves unit costs, last purchase prices and BOM cost
// rollups. Unit costs are cached in redis with a short TTL; a cache failure
// degrades to a direct catalog read.
type CostService struct {
	partRepo  *repository.PartRepository
	priceRepo *repository.PriceRepository
	bomSvc    *BOMService
	rdb       *redis.Client
	logger    *zap.Logger
}

func NewCostService(partRepo *repository.PartRepository, priceRepo *repository.PriceRepository, bomSvc *BOMService, rdb *redis.Client, logger *zap.Logger) *CostService {
	return &CostService{
		partRepo:  partRepo,
		priceRepo: priceRepo,
		bomSvc:    bomSvc,
		rdb:       rdb,
		logger:    logger,
	}
}

func costCacheKey(ipn string) string {
	return "cost:unit:" + ipn
}

// UnitCost returns the catalog unit cost for one IPN, zero when the part is
// unknown or uncosted.
func (s *CostService) UnitCost(ctx context.Context, ipn string) decimal.Decimal {
	if s.rdb != nil {
		if v, err := s.rdb.Get(ctx, costCacheKey(ipn)).Result(); err == nil {
			if d, derr := decimal.NewFromString(v); derr == nil {
				return d
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Debug("cost cache read failed", zap.String("ipn", ipn), zap.Error(err))
		}
	}

	costs, err := s.partRepo.UnitCosts(ctx, []string{ipn})
	if err != nil {
		s.logger.Warn("unit cost lookup failed", zap.String("ipn", ipn), zap.Error(err))
		return decimal.Zero
	}
	d := decimal.NewFromFloat(costs[ipn])

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, costCacheKey(ipn), d.String(), costCacheTTL).Err(); err != nil {
			s.logger.Debug("cost cache write failed", zap.String("ipn", ipn), zap.Error(err))
		}
	}
	return d
}

// CatalogLookup preloads costs for a known IPN set and returns a Lookup
// closed over them. Used by rollup and quote costing so a large BOM is one
// query, not one per leaf.
func (s *CostService) CatalogLookup(ctx context.Context, ipns []string) (costing.Lookup, error) {
	costs, err := s.partRepo.UnitCosts(ctx, ipns)
	if err != nil {
		return nil, fmt.Errorf("load cost catalog: %w", err)
	}
	cached := make(map[string]decimal.Decimal, len(costs))
	for ipn, c := range costs {
		cached[ipn] = decimal.NewFromFloat(c)
	}
	return func(ipn string) decimal.Decimal {
		if d, ok := cached[ipn]; ok {
			return d
		}
		return decimal.Zero
	}, nil
}

// Entry assembles the costing fact sheet for one part: catalog unit cost,
// last purchase price from history, and for assemblies the BOM cost rolled
// up at quantity 1. The three facts are independent; any of them can be
// absent.
func (s *CostService) Entry(ctx context.Context, ipn string) (*costing.Entry, error) {
	entry := &costing.Entry{
		IPN:           ipn,
		UnitCost:      s.UnitCost(ctx, ipn),
		LastUnitPrice: decimal.Zero,
		BOMCost:       decimal.Zero,
	}

	last, err := s.priceRepo.LatestByIPN(ctx, ipn)
	switch {
	case err == nil:
		entry.LastUnitPrice = decimal.NewFromFloat(last.UnitPrice)
		entry.LastPOID = last.POID
		orderedAt := last.OrderedAt
		entry.LastOrderedAt = &orderedAt
	case errors.Is(err, repository.ErrNotFound):
		// never purchased, leave the fields zero
	default:
		return nil, fmt.Errorf("load price history for %s: %w", ipn, err)
	}

	if s.bomSvc.IsAssembly(ctx, ipn) {
		cost, err := s.rollup(ctx, ipn)
		if err != nil {
			return nil, err
		}
		entry.BOMCost = cost
	}
	return entry, nil
}

func (s *CostService) rollup(ctx context.Context, ipn string) (decimal.Decimal, error) {
	tree, err := s.bomSvc.BuildTree(ctx, ipn)
	if err != nil {
		return decimal.Zero, err
	}
	lines, err := bom.Flatten(tree, 1)
	if err != nil {
		return decimal.Zero, err
	}

	leaves := bom.Leaves(lines)
	ipns := make([]string, 0, len(leaves))
	for _, l := range leaves {
		ipns = append(ipns, l.IPN)
	}
	lookup, err := s.CatalogLookup(ctx, ipns)
	if err != nil {
		return decimal.Zero, err
	}
	return costing.Rollup(lines, lookup), nil
}

// InvalidateUnitCost drops the cached cost after a catalog update.
func (s *CostService) InvalidateUnitCost(ctx context.Context, ipn string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, costCacheKey(ipn)).Err(); err != nil {
		s.logger.Debug("cost cache invalidate failed", zap.String("ipn", ipn), zap.Error(err))
	}
}
