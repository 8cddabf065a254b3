package graph

import (
	"slices"

	"github.com/vk/prodgraph/internal/preset"
)

// Resolution is a one-click remedy for a reported error or warning. Apply is
// idempotent and leaves the node's state freshly computed.
type Resolution struct {
	Label string
	Apply func()
}

// Controller is the mutation gateway shared by every node kind.
type Controller interface {
	NodeID() NodeID
	SetRateType(t RateType)
	SetLocation(loc Location)
	// Delete removes the node's links and then the node itself.
	Delete()
	ErrorResolutions() []Resolution
	WarningResolutions() []Resolution
}

type baseController struct {
	n Node
}

func (c *baseController) graph() *ProductionGraph { return c.n.base().graph }

func (c *baseController) NodeID() NodeID { return c.n.ID() }

func (c *baseController) SetRateType(t RateType) {
	b := c.n.base()
	if b.rateType == t {
		return
	}
	b.rateType = t
	c.graph().nodeValuesChanged(c.n)
	c.graph().requestRecompute()
}

func (c *baseController) SetLocation(loc Location) {
	c.n.base().location = loc
}

func (c *baseController) Delete() {
	c.graph().deleteNode(c.n)
}

// invalidLinkResolutions offers to drop every link whose endpoints no longer
// agree on the item.
func (c *baseController) invalidLinkResolutions() []Resolution {
	if c.n.base().AllLinksValid() {
		return nil
	}
	return []Resolution{{Label: "Delete invalid links", Apply: c.deleteInvalidLinks}}
}

func (c *baseController) deleteInvalidLinks() {
	b := c.n.base()
	g := c.graph()
	g.Batch(func() {
		for _, l := range slices.Concat(b.inputLinks, b.outputLinks) {
			if !l.IsValid() {
				g.DeleteLink(l)
			}
		}
	})
}

// SupplierController drives supplier, consumer and pass-through nodes. Their
// only tunable beyond the shared ones is the desired rate.
type SupplierController struct {
	baseController
	item *preset.Item
}

// SetDesiredRate sets the rate, in items per second, a manual node aims for.
func (c *SupplierController) SetDesiredRate(rate float64) {
	b := c.n.base()
	if b.desiredRate == rate {
		return
	}
	b.desiredRate = rate
	c.graph().nodeValuesChanged(c.n)
	c.graph().requestRecompute()
}

// ErrorResolutions offers deletion for a missing item and link repair
// otherwise.
func (c *SupplierController) ErrorResolutions() []Resolution {
	if c.item.IsMissing {
		return []Resolution{{Label: "Delete node", Apply: c.Delete}}
	}
	return c.invalidLinkResolutions()
}

// WarningResolutions is always empty; single-item nodes never warn.
func (c *SupplierController) WarningResolutions() []Resolution { return nil }
