package savefile

import (
	"fmt"

	"github.com/vk/prodgraph/internal/graph"
	"github.com/vk/prodgraph/internal/preset"
)

// Capture snapshots g into a File. Nodes and links keep graph order.
func Capture(g *graph.ProductionGraph) (*File, error) {
	f := &File{
		FormatVersion: CurrentFormatVersion,
		GraphID:       g.ID().String(),
		RateUnit:      g.RateUnit().String(),
	}
	for _, n := range g.Nodes() {
		rec, err := captureNode(n)
		if err != nil {
			return nil, err
		}
		f.Nodes = append(f.Nodes, rec)
	}
	for _, l := range g.Links() {
		f.Links = append(f.Links, &LinkRecord{
			Supplier:   int(l.SupplierID()),
			Consumer:   int(l.ConsumerID()),
			Item:       l.Item().Name,
			Throughput: l.Throughput(),
		})
	}
	return f, nil
}

func captureNode(n graph.ReadOnlyNode) (*NodeRecord, error) {
	loc := n.Location()
	rec := &NodeRecord{
		ID:       int(n.ID()),
		X:        loc.X,
		Y:        loc.Y,
		RateType: n.RateType().String(),
	}
	if n.RateType() == graph.RateManual {
		rec.DesiredRate = n.DesiredRatePerSec()
	}

	switch v := n.(type) {
	case *graph.ReadOnlySupplierNode:
		rec.Kind = KindSupplier
		rec.Item = v.SuppliedItem().Name
	case *graph.ReadOnlyConsumerNode:
		rec.Kind = KindConsumer
		rec.Item = v.ConsumedItem().Name
	case *graph.ReadOnlyPassthroughNode:
		rec.Kind = KindPassthrough
		rec.Item = v.PassthroughItem().Name
	case *graph.ReadOnlyRecipeNode:
		rec.Kind = KindRecipe
		// A recipe node's desired rate is derived from its assembler count.
		rec.DesiredRate = 0
		rec.Recipe = v.Recipe().Name
		rec.Assembler = v.SelectedAssembler().Name
		rec.Fuel = itemName(v.Fuel())
		rec.Burnt = itemName(v.FuelRemains())
		rec.Modules = moduleNames(v.AssemblerModules())
		if b := v.SelectedBeacon(); b != nil {
			rec.Beacon = b.Name
		}
		rec.BeaconModules = moduleNames(v.BeaconModules())
		rec.BeaconCount = v.BeaconCount()
		rec.BeaconsPerAssembler = v.BeaconsPerAssembler()
		rec.BeaconsConst = v.BeaconsConst()
		rec.NeighbourCount = v.NeighbourCount()
		rec.DesiredAssemblerCount = v.DesiredAssemblerCount()
	default:
		return nil, fmt.Errorf("node %d: cannot save %T", n.ID(), n)
	}
	return rec, nil
}

func itemName(it *preset.Item) string {
	if it == nil {
		return ""
	}
	return it.Name
}

func moduleNames(modules []*preset.Module) []string {
	if len(modules) == 0 {
		return nil
	}
	names := make([]string, len(modules))
	for i, m := range modules {
		names[i] = m.Name
	}
	return names
}
