package graph

import (
	"fmt"
	"slices"

	"github.com/vk/prodgraph/internal/preset"
)

// ReadOnlyNode is the accessor-only view of a node handed to reporting and
// persistence. It shares the node's storage, so it is never stale, and it has
// no way to change it.
type ReadOnlyNode interface {
	ID() NodeID
	RateType() RateType
	DesiredRatePerSec() float64
	ActualRatePerSec() float64
	State() NodeState
	Location() Location

	InputLinks() []*NodeLink
	OutputLinks() []*NodeLink
	Inputs() []*preset.Item
	Outputs() []*preset.Item

	GetConsumeRate(item *preset.Item) float64
	GetSupplyRate(item *preset.Item) float64

	AllLinksValid() bool
	AllLinksConnected() bool

	// GetErrors and GetWarnings render the node's problems as ordered,
	// human-readable messages.
	GetErrors() []string
	GetWarnings() []string

	String() string
}

type readOnlyBase struct {
	n Node
}

func (r readOnlyBase) ID() NodeID                 { return r.n.ID() }
func (r readOnlyBase) RateType() RateType         { return r.n.base().rateType }
func (r readOnlyBase) DesiredRatePerSec() float64 { return r.n.desiredRatePerSec() }
func (r readOnlyBase) ActualRatePerSec() float64  { return r.n.base().actualRate }
func (r readOnlyBase) State() NodeState           { return r.n.base().state }
func (r readOnlyBase) Location() Location         { return r.n.base().location }
func (r readOnlyBase) InputLinks() []*NodeLink    { return slices.Clone(r.n.base().inputLinks) }
func (r readOnlyBase) OutputLinks() []*NodeLink   { return slices.Clone(r.n.base().outputLinks) }
func (r readOnlyBase) Inputs() []*preset.Item     { return r.n.Inputs() }
func (r readOnlyBase) Outputs() []*preset.Item    { return r.n.Outputs() }
func (r readOnlyBase) AllLinksValid() bool        { return r.n.base().AllLinksValid() }
func (r readOnlyBase) AllLinksConnected() bool    { return allLinksConnected(r.n) }

func (r readOnlyBase) GetConsumeRate(item *preset.Item) float64 { return r.n.GetConsumeRate(item) }
func (r readOnlyBase) GetSupplyRate(item *preset.Item) float64  { return r.n.GetSupplyRate(item) }

func (r readOnlyBase) String() string { return fmt.Sprint(r.n) }

// singleItemErrors renders the errors of supplier, consumer and pass-through
// nodes. A missing item hides the link message, since deletion is the only
// remedy.
func singleItemErrors(n Node, item *preset.Item) []string {
	if item.IsMissing {
		return []string{fmt.Sprintf("> Item %q doesnt exist in preset!", item.FriendlyName)}
	}
	if !n.base().AllLinksValid() {
		return []string{"> Some links are invalid!"}
	}
	return nil
}

// ReadOnlySupplierNode is the view of a supplier node.
type ReadOnlySupplierNode struct {
	readOnlyBase
	node *supplierNode
}

// SuppliedItem returns the item the node supplies.
func (r *ReadOnlySupplierNode) SuppliedItem() *preset.Item { return r.node.item }

func (r *ReadOnlySupplierNode) GetErrors() []string { return singleItemErrors(r.node, r.node.item) }

// GetWarnings is always empty: supplier nodes have no warning state.
func (r *ReadOnlySupplierNode) GetWarnings() []string { return nil }

// ReadOnlyConsumerNode is the view of a consumer node.
type ReadOnlyConsumerNode struct {
	readOnlyBase
	node *consumerNode
}

// ConsumedItem returns the item the node consumes.
func (r *ReadOnlyConsumerNode) ConsumedItem() *preset.Item { return r.node.item }

func (r *ReadOnlyConsumerNode) GetErrors() []string   { return singleItemErrors(r.node, r.node.item) }
func (r *ReadOnlyConsumerNode) GetWarnings() []string { return nil }

// ReadOnlyPassthroughNode is the view of a pass-through node.
type ReadOnlyPassthroughNode struct {
	readOnlyBase
	node *passthroughNode
}

// PassthroughItem returns the item the node forwards.
func (r *ReadOnlyPassthroughNode) PassthroughItem() *preset.Item { return r.node.item }

func (r *ReadOnlyPassthroughNode) GetErrors() []string   { return singleItemErrors(r.node, r.node.item) }
func (r *ReadOnlyPassthroughNode) GetWarnings() []string { return nil }
