package service

import (
	"context"
	"fmt"

	"github.com/jsnapoli1/zrp-sub006/internal/bom"
	"github.com/jsnapoli1/zrp-sub006/internal/netting"
	"github.com/jsnapoli1/zrp-sub006/internal/repository"
)

// BOMService assembles BOM trees from the single-level edge table and nets
// the flattened requirements against inventory.
type BOMService struct {
	partRepo   *repository.PartRepository
	invRepo    *repository.InventoryRepository
	isAssembly bom.AssemblyPredicate
}

func NewBOMService(partRepo *repository.PartRepository, invRepo *repository.InventoryRepository, isAssembly bom.AssemblyPredicate) *BOMService {
	if isAssembly == nil {
		isAssembly = bom.PrefixPredicate()
	}
	return &BOMService{partRepo: partRepo, invRepo: invRepo, isAssembly: isAssembly}
}

// IsAssembly reports whether a BOM fetch makes sense for the part. The
// catalog flag wins; the prefix predicate only covers IPNs with no catalog
// row.
func (s *BOMService) IsAssembly(ctx context.Context, ipn string) bool {
	part, err := s.partRepo.FindByIPN(ctx, ipn)
	if err == nil {
		return part.IsAssembly
	}
	return s.isAssembly(ipn)
}

// BuildTree loads the full tree below an assembly. Edge rows can encode a
// cycle, so ancestry is tracked while loading; a cycle surfaces as
// bom.ErrCycle instead of unbounded recursion. An IPN with no edges yields
// a single-node tree.
func (s *BOMService) BuildTree(ctx context.Context, ipn string) (*bom.Node, error) {
	onPath := map[string]bool{}
	return s.buildNode(ctx, ipn, 1, "", onPath)
}

func (s *BOMService) buildNode(ctx context.Context, ipn string, qty float64, ref string, onPath map[string]bool) (*bom.Node, error) {
	if onPath[ipn] {
		return nil, fmt.Errorf("%w: %s repeats on its own path", bom.ErrCycle, ipn)
	}

	node := &bom.Node{IPN: ipn, Qty: qty, Ref: ref}
	if part, err := s.partRepo.FindByIPN(ctx, ipn); err == nil {
		node.Description = part.Description
	}

	children, err := s.partRepo.Children(ctx, ipn)
	if err != nil {
		return nil, fmt.Errorf("load BOM children of %s: %w", ipn, err)
	}

	onPath[ipn] = true
	for _, edge := range children {
		child, err := s.buildNode(ctx, edge.ChildIPN, edge.QtyPer, edge.Ref, onPath)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, *child)
	}
	delete(onPath, ipn)

	return node, nil
}

// Resolution is a fully resolved and netted BOM for one build quantity.
type Resolution struct {
	AssemblyIPN string          `json:"assembly_ipn"`
	BuildQty    float64         `json:"build_qty"`
	Tree        *bom.Node       `json:"tree"`
	Lines       []bom.Line      `json:"lines"`
	Netted      []netting.Line  `json:"netted"`
	Summary     netting.Summary `json:"summary"`
}

// Resolve explodes the assembly at buildQty and nets every leaf requirement
// against on-hand stock. Statuses are computed here from the two quantities;
// nothing stored is trusted.
func (s *BOMService) Resolve(ctx context.Context, assemblyIPN string, buildQty float64) (*Resolution, error) {
	tree, err := s.BuildTree(ctx, assemblyIPN)
	if err != nil {
		return nil, err
	}

	lines, err := bom.Flatten(tree, buildQty)
	if err != nil {
		return nil, err
	}

	leaves := bom.Leaves(lines)
	ipns := make([]string, 0, len(leaves))
	for _, l := range leaves {
		ipns = append(ipns, l.IPN)
	}
	onHand, err := s.invRepo.OnHandMap(ctx, ipns)
	if err != nil {
		return nil, fmt.Errorf("load inventory for %s: %w", assemblyIPN, err)
	}

	// The same IPN can appear on several branches; requirements merge per
	// IPN before netting so stock is not counted twice.
	order := make([]string, 0, len(leaves))
	required := map[string]*netting.Line{}
	for _, l := range leaves {
		if agg, ok := required[l.IPN]; ok {
			agg.QtyRequired += l.QtyRequired
			continue
		}
		required[l.IPN] = &netting.Line{
			IPN:         l.IPN,
			Description: l.Description,
			QtyRequired: l.QtyRequired,
			QtyOnHand:   onHand[l.IPN],
		}
		order = append(order, l.IPN)
	}

	netted := make([]netting.Line, 0, len(order))
	for _, ipn := range order {
		netted = append(netted, *required[ipn])
	}
	netted = netting.Net(netted)

	return &Resolution{
		AssemblyIPN: assemblyIPN,
		BuildQty:    buildQty,
		Tree:        tree,
		Lines:       lines,
		Netted:      netted,
		Summary:     netting.Summarize(netted),
	}, nil
}

// WhereUsed lists the assemblies that consume an IPN directly.
type WhereUsedEntry struct {
	ParentIPN   string  `json:"parent_ipn"`
	Description string  `json:"description"`
	QtyPer      float64 `json:"qty_per"`
	Ref         string  `json:"ref,omitempty"`
}

func (s *BOMService) WhereUsed(ctx context.Context, ipn string) ([]WhereUsedEntry, error) {
	edges, err := s.partRepo.WhereUsed(ctx, ipn)
	if err != nil {
		return nil, fmt.Errorf("where-used lookup for %s: %w", ipn, err)
	}
	out := make([]WhereUsedEntry, 0, len(edges))
	for _, e := range edges {
		entry := WhereUsedEntry{ParentIPN: e.ParentIPN, QtyPer: e.QtyPer, Ref: e.Ref}
		if parent, err := s.partRepo.FindByIPN(ctx, e.ParentIPN); err == nil {
			entry.Description = parent.Description
		}
		out = append(out, entry)
	}
	return out, nil
}
