package savefile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/prodgraph/internal/ctxlog"
	"github.com/vk/prodgraph/internal/graph"
	"github.com/vk/prodgraph/internal/preset"
)

// Load builds a new graph from f. The graph keeps the stored id, rate unit
// and node ids. Names the preset does not know resolve to missing
// placeholders, which show up as node errors rather than load failures.
func Load(ctx context.Context, f *File, p *preset.Preset, opts ...graph.Option) (*graph.ProductionGraph, error) {
	id, err := uuid.Parse(f.GraphID)
	if err != nil {
		return nil, fmt.Errorf("graph id %q: %w", f.GraphID, err)
	}
	unit, err := graph.ParseRateUnit(f.RateUnit)
	if err != nil {
		return nil, err
	}

	opts = append([]graph.Option{graph.WithID(id), graph.WithRateUnit(unit)}, opts...)
	g := graph.New(ctx, opts...)
	if _, err := restore(ctx, g, f, p, func(id int) graph.NodeID { return graph.NodeID(id) }); err != nil {
		return nil, err
	}
	return g, nil
}

// Import adds the nodes and links of f to an existing graph. Stored ids are
// remapped onto fresh ones; the returned map goes from stored to new id.
// On error g keeps whatever was restored before the failing record.
func Import(ctx context.Context, g *graph.ProductionGraph, f *File, p *preset.Preset) (map[int]graph.NodeID, error) {
	next := g.NextNodeID()
	ids := make(map[int]graph.NodeID, len(f.Nodes))
	for _, n := range f.Nodes {
		if _, dup := ids[n.ID]; dup {
			return nil, fmt.Errorf("node %d: stored twice", n.ID)
		}
		ids[n.ID] = next
		next++
	}
	return restore(ctx, g, f, p, func(id int) graph.NodeID {
		if nid, ok := ids[id]; ok {
			return nid
		}
		// Unknown ids only come from links; keep them unknown to the graph.
		return 0
	})
}

func restore(ctx context.Context, g *graph.ProductionGraph, f *File, p *preset.Preset, mapID func(int) graph.NodeID) (map[int]graph.NodeID, error) {
	logger := ctxlog.FromContext(ctx)
	ids := make(map[int]graph.NodeID, len(f.Nodes))

	var err error
	g.Batch(func() {
		for _, rec := range f.Nodes {
			id := mapID(rec.ID)
			if err = restoreNode(g, p, rec, id); err != nil {
				return
			}
			ids[rec.ID] = id
		}
		for _, l := range f.Links {
			if _, err = g.RestoreLink(mapID(l.Supplier), mapID(l.Consumer), p.Item(l.Item), l.Throughput); err != nil {
				err = fmt.Errorf("link %d -> %d: %w", l.Supplier, l.Consumer, err)
				return
			}
		}
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Save file restored.", "graph", g.ID().String(), "nodes", len(f.Nodes), "links", len(f.Links))
	return ids, nil
}

func restoreNode(g *graph.ProductionGraph, p *preset.Preset, rec *NodeRecord, id graph.NodeID) error {
	rt, err := graph.ParseRateType(rec.RateType)
	if err != nil {
		return fmt.Errorf("node %d: %w", rec.ID, err)
	}
	cfg := graph.NodeConfig{
		ID:          id,
		Location:    graph.Location{X: rec.X, Y: rec.Y},
		RateType:    rt,
		DesiredRate: rec.DesiredRate,
	}

	switch rec.Kind {
	case KindSupplier:
		_, err = g.RestoreSupplierNode(p.Item(rec.Item), cfg)
	case KindConsumer:
		_, err = g.RestoreConsumerNode(p.Item(rec.Item), cfg)
	case KindPassthrough:
		_, err = g.RestorePassthroughNode(p.Item(rec.Item), cfg)
	case KindRecipe:
		_, err = g.RestoreRecipeNode(p.Recipe(rec.Recipe), recipeConfig(p, rec, cfg))
	default:
		return fmt.Errorf("node %d: unknown kind %q", rec.ID, rec.Kind)
	}
	if err != nil {
		return fmt.Errorf("node %d: %w", rec.ID, err)
	}
	return nil
}

func recipeConfig(p *preset.Preset, rec *NodeRecord, base graph.NodeConfig) graph.RecipeNodeConfig {
	cfg := graph.RecipeNodeConfig{
		NodeConfig:            base,
		AssemblerModules:      modules(p, rec.Modules),
		BeaconModules:         modules(p, rec.BeaconModules),
		BeaconCount:           rec.BeaconCount,
		BeaconsPerAssembler:   rec.BeaconsPerAssembler,
		BeaconsConst:          rec.BeaconsConst,
		NeighbourCount:        rec.NeighbourCount,
		DesiredAssemblerCount: rec.DesiredAssemblerCount,
	}
	if rec.Assembler != "" {
		cfg.Assembler = p.Assembler(rec.Assembler)
	}
	if rec.Fuel != "" {
		cfg.Fuel = p.Item(rec.Fuel)
	}
	if rec.Burnt != "" {
		cfg.Burnt = p.Item(rec.Burnt)
	}
	if rec.Beacon != "" {
		cfg.Beacon = p.Beacon(rec.Beacon)
	}
	return cfg
}

func modules(p *preset.Preset, names []string) []*preset.Module {
	if len(names) == 0 {
		return nil
	}
	out := make([]*preset.Module, len(names))
	for i, name := range names {
		out[i] = p.Module(name)
	}
	return out
}
