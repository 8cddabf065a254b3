package graph

import (
	"fmt"
	"slices"

	"github.com/vk/prodgraph/internal/preset"
)

// NodeID identifies a node within its graph. It never changes.
type NodeID int

// RateType selects whether a node's rate is solved for or pinned by the user.
type RateType int

const (
	RateAuto RateType = iota
	RateManual
)

func (r RateType) String() string {
	if r == RateManual {
		return "manual"
	}
	return "auto"
}

// ParseRateType accepts "auto" or "manual".
func ParseRateType(s string) (RateType, error) {
	switch s {
	case "auto", "":
		return RateAuto, nil
	case "manual":
		return RateManual, nil
	}
	return RateAuto, fmt.Errorf("unknown rate type %q (want auto or manual)", s)
}

// NodeState is the health of a node.
type NodeState int

const (
	StateClean NodeState = iota
	StateWarning
	StateError
	// StateMissingLink is used by single-item nodes that are otherwise clean
	// but have an input or output item with no link.
	StateMissingLink
)

func (s NodeState) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateWarning:
		return "warning"
	case StateError:
		return "error"
	case StateMissingLink:
		return "missing-link"
	default:
		return "unknown"
	}
}

// Location is a node's position on the canvas. The model only persists it.
type Location struct {
	X float64
	Y float64
}

// Node is implemented by every concrete node type of this package. The
// unexported methods keep implementations inside the package.
type Node interface {
	ID() NodeID
	Inputs() []*preset.Item
	Outputs() []*preset.Item

	// UpdateState recomputes the health state and notifies state listeners
	// only if it changed.
	UpdateState()

	// GetConsumeRate and GetSupplyRate return the node's actual per-second
	// rate for one item.
	GetConsumeRate(item *preset.Item) float64
	GetSupplyRate(item *preset.Item) float64

	desiredRatePerSec() float64

	// inputRateFor and outputRateFor return the rate contributed by one unit
	// of the node (one assembler, one unit of supply).
	inputRateFor(item *preset.Item) float64
	outputRateFor(item *preset.Item) float64

	base() *baseNode
	readOnly() ReadOnlyNode
	controller() Controller
}

// baseNode holds the fields every node kind shares.
type baseNode struct {
	id       NodeID
	graph    *ProductionGraph
	location Location

	rateType    RateType
	desiredRate float64
	actualRate  float64

	inputLinks  []*NodeLink
	outputLinks []*NodeLink

	state NodeState
}

func newBaseNode(g *ProductionGraph, id NodeID, loc Location) baseNode {
	return baseNode{id: id, graph: g, location: loc}
}

func (b *baseNode) ID() NodeID       { return b.id }
func (b *baseNode) base() *baseNode  { return b }
func (b *baseNode) State() NodeState { return b.state }

// AllLinksValid reports whether every incident link joins two nodes that can
// exchange its item.
func (b *baseNode) AllLinksValid() bool {
	for _, l := range b.inputLinks {
		if !l.IsValid() {
			return false
		}
	}
	for _, l := range b.outputLinks {
		if !l.IsValid() {
			return false
		}
	}
	return true
}

// setState stores s and notifies listeners if it differs from the prior state.
func (b *baseNode) setState(self Node, s NodeState) {
	old := b.state
	b.state = s
	if old != s {
		b.graph.nodeStateChanged(self, old, s)
	}
}

func (b *baseNode) setActualRate(self Node, rate float64) {
	if b.actualRate != rate {
		b.actualRate = rate
		b.graph.nodeValuesChanged(self)
	}
}

func (b *baseNode) removeLink(l *NodeLink) {
	b.inputLinks = slices.DeleteFunc(b.inputLinks, func(x *NodeLink) bool { return x == l })
	b.outputLinks = slices.DeleteFunc(b.outputLinks, func(x *NodeLink) bool { return x == l })
}

// allLinksConnected reports whether every input and output item of n has at
// least one link.
func allLinksConnected(n Node) bool {
	b := n.base()
	for _, item := range n.Inputs() {
		if !slices.ContainsFunc(b.inputLinks, func(l *NodeLink) bool { return l.item == item }) {
			return false
		}
	}
	for _, item := range n.Outputs() {
		if !slices.ContainsFunc(b.outputLinks, func(l *NodeLink) bool { return l.item == item }) {
			return false
		}
	}
	return true
}

// singleItemState is the health rule shared by supplier, consumer and
// pass-through nodes.
func singleItemState(n Node, item *preset.Item) NodeState {
	if item.IsMissing || !n.base().AllLinksValid() {
		return StateError
	}
	if allLinksConnected(n) {
		return StateClean
	}
	return StateMissingLink
}
