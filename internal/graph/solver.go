package graph

import (
	"context"

	"github.com/vk/prodgraph/internal/ctxlog"
	"github.com/vk/prodgraph/internal/preset"
)

// Solver reconciles node rates and link throughputs across the graph. The
// graph calls it after every edit that can move a rate.
type Solver interface {
	Solve(ctx context.Context, v SolverView) error
}

// SolverView is the access a Solver gets to the graph: read everything, write
// actual rates and throughputs only.
type SolverView struct {
	g *ProductionGraph
}

// Nodes returns every node in creation order.
func (v SolverView) Nodes() []ReadOnlyNode { return v.g.Nodes() }

// Links returns every link.
func (v SolverView) Links() []*NodeLink { return v.g.Links() }

// InputRateFor is the per-unit consumption of item by node id.
func (v SolverView) InputRateFor(id NodeID, item *preset.Item) float64 {
	return v.g.byID[id].inputRateFor(item)
}

// OutputRateFor is the per-unit production of item by node id.
func (v SolverView) OutputRateFor(id NodeID, item *preset.Item) float64 {
	return v.g.byID[id].outputRateFor(item)
}

// SetActualRate stores a solved rate. Value listeners are notified when it
// changes.
func (v SolverView) SetActualRate(id NodeID, rate float64) {
	if n, ok := v.g.byID[id]; ok {
		n.base().setActualRate(n, rate)
	}
}

// SetThroughput stores a solved link flow.
func (v SolverView) SetThroughput(l *NodeLink, throughput float64) {
	l.throughput = throughput
}

// NopSolver leaves every rate untouched.
type NopSolver struct{}

func (NopSolver) Solve(context.Context, SolverView) error { return nil }

// DesiredRateSolver is a minimal solver: manual nodes run at their desired
// rate, auto nodes keep their last rate, and every valid link carries the
// consumer's demand for the item split evenly across the consumer's links for
// it. It does not balance supply against demand.
type DesiredRateSolver struct{}

func (DesiredRateSolver) Solve(ctx context.Context, v SolverView) error {
	logger := ctxlog.FromContext(ctx)
	for _, n := range v.Nodes() {
		if n.RateType() == RateManual {
			v.SetActualRate(n.ID(), n.DesiredRatePerSec())
		}
	}
	for _, l := range v.Links() {
		if !l.IsValid() {
			v.SetThroughput(l, 0)
			continue
		}
		consumer := l.consumer
		share := len(linksCarrying(consumer.base().inputLinks, l.item))
		v.SetThroughput(l, consumer.GetConsumeRate(l.item)/float64(share))
	}
	logger.Debug("Rates solved.", "nodes", len(v.g.nodes), "links", len(v.g.links))
	return nil
}
