package graph

import (
	"fmt"
	"slices"

	"github.com/vk/prodgraph/internal/preset"
)

// NodeLink is a directed edge carrying one item from a supplier node to a
// consumer node. Throughput is written by the solver.
type NodeLink struct {
	supplier   Node
	consumer   Node
	item       *preset.Item
	throughput float64
}

// Item returns the item the link carries.
func (l *NodeLink) Item() *preset.Item { return l.item }

// Throughput returns the item flow through the link, per second.
func (l *NodeLink) Throughput() float64 { return l.throughput }

// SupplierID returns the id of the producing end.
func (l *NodeLink) SupplierID() NodeID { return l.supplier.ID() }

// ConsumerID returns the id of the consuming end.
func (l *NodeLink) ConsumerID() NodeID { return l.consumer.ID() }

// Supplier returns a read-only view of the producing end.
func (l *NodeLink) Supplier() ReadOnlyNode { return l.supplier.readOnly() }

// Consumer returns a read-only view of the consuming end.
func (l *NodeLink) Consumer() ReadOnlyNode { return l.consumer.readOnly() }

// IsValid reports whether the supplier still outputs and the consumer still
// accepts the link's item. Validity is derived from the endpoints every time.
func (l *NodeLink) IsValid() bool {
	return slices.Contains(l.supplier.Outputs(), l.item) && slices.Contains(l.consumer.Inputs(), l.item)
}

func (l *NodeLink) String() string {
	return fmt.Sprintf("%d -[%s]-> %d", l.supplier.ID(), l.item, l.consumer.ID())
}
