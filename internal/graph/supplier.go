package graph

import (
	"fmt"

	"github.com/vk/prodgraph/internal/preset"
)

// supplierNode is an exogenous source of one item.
type supplierNode struct {
	baseNode
	item *preset.Item

	ro   *ReadOnlySupplierNode
	ctrl *SupplierController
}

func newSupplierNode(g *ProductionGraph, id NodeID, item *preset.Item, loc Location) *supplierNode {
	n := &supplierNode{baseNode: newBaseNode(g, id, loc), item: item}
	n.ro = &ReadOnlySupplierNode{readOnlyBase: readOnlyBase{n: n}, node: n}
	n.ctrl = &SupplierController{baseController: baseController{n: n}, item: item}
	return n
}

func (n *supplierNode) Inputs() []*preset.Item  { return nil }
func (n *supplierNode) Outputs() []*preset.Item { return []*preset.Item{n.item} }

func (n *supplierNode) UpdateState() { n.setState(n, singleItemState(n, n.item)) }

func (n *supplierNode) GetConsumeRate(item *preset.Item) float64 {
	fault("supplier node %d does not consume anything (asked for %s)", n.id, item)
	return 0
}
func (n *supplierNode) GetSupplyRate(*preset.Item) float64 { return n.actualRate }

func (n *supplierNode) inputRateFor(item *preset.Item) float64 {
	fault("supplier node %d has no inputs (asked for %s)", n.id, item)
	return 0
}
func (n *supplierNode) outputRateFor(*preset.Item) float64 { return 1 }

func (n *supplierNode) readOnly() ReadOnlyNode     { return n.ro }
func (n *supplierNode) controller() Controller     { return n.ctrl }
func (n *supplierNode) String() string             { return fmt.Sprintf("Supply node for: %s", n.item.Name) }
func (n *supplierNode) desiredRatePerSec() float64 { return n.desiredRate }

// consumerNode is a sink for one item.
type consumerNode struct {
	baseNode
	item *preset.Item

	ro   *ReadOnlyConsumerNode
	ctrl *SupplierController
}

func newConsumerNode(g *ProductionGraph, id NodeID, item *preset.Item, loc Location) *consumerNode {
	n := &consumerNode{baseNode: newBaseNode(g, id, loc), item: item}
	n.ro = &ReadOnlyConsumerNode{readOnlyBase: readOnlyBase{n: n}, node: n}
	n.ctrl = &SupplierController{baseController: baseController{n: n}, item: item}
	return n
}

func (n *consumerNode) Inputs() []*preset.Item  { return []*preset.Item{n.item} }
func (n *consumerNode) Outputs() []*preset.Item { return nil }

func (n *consumerNode) UpdateState() { n.setState(n, singleItemState(n, n.item)) }

func (n *consumerNode) GetConsumeRate(*preset.Item) float64 { return n.actualRate }
func (n *consumerNode) GetSupplyRate(item *preset.Item) float64 {
	fault("consumer node %d does not supply anything (asked for %s)", n.id, item)
	return 0
}

func (n *consumerNode) inputRateFor(*preset.Item) float64 { return 1 }
func (n *consumerNode) outputRateFor(item *preset.Item) float64 {
	fault("consumer node %d has no outputs (asked for %s)", n.id, item)
	return 0
}

func (n *consumerNode) readOnly() ReadOnlyNode     { return n.ro }
func (n *consumerNode) controller() Controller     { return n.ctrl }
func (n *consumerNode) String() string             { return fmt.Sprintf("Consumer node for: %s", n.item.Name) }
func (n *consumerNode) desiredRatePerSec() float64 { return n.desiredRate }

// passthroughNode forwards one item unchanged. It exists to merge and split
// flows, and the generator temperature walk averages across it.
type passthroughNode struct {
	baseNode
	item *preset.Item

	ro   *ReadOnlyPassthroughNode
	ctrl *SupplierController
}

func newPassthroughNode(g *ProductionGraph, id NodeID, item *preset.Item, loc Location) *passthroughNode {
	n := &passthroughNode{baseNode: newBaseNode(g, id, loc), item: item}
	n.ro = &ReadOnlyPassthroughNode{readOnlyBase: readOnlyBase{n: n}, node: n}
	n.ctrl = &SupplierController{baseController: baseController{n: n}, item: item}
	return n
}

func (n *passthroughNode) Inputs() []*preset.Item  { return []*preset.Item{n.item} }
func (n *passthroughNode) Outputs() []*preset.Item { return []*preset.Item{n.item} }

func (n *passthroughNode) UpdateState() { n.setState(n, singleItemState(n, n.item)) }

func (n *passthroughNode) GetConsumeRate(*preset.Item) float64 { return n.actualRate }
func (n *passthroughNode) GetSupplyRate(*preset.Item) float64  { return n.actualRate }

func (n *passthroughNode) inputRateFor(*preset.Item) float64  { return 1 }
func (n *passthroughNode) outputRateFor(*preset.Item) float64 { return 1 }

func (n *passthroughNode) readOnly() ReadOnlyNode { return n.ro }
func (n *passthroughNode) controller() Controller { return n.ctrl }
func (n *passthroughNode) String() string {
	return fmt.Sprintf("Pass-through node for: %s", n.item.Name)
}
func (n *passthroughNode) desiredRatePerSec() float64 { return n.desiredRate }
