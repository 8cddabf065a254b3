package graph

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/vk/prodgraph/internal/ctxlog"
	"github.com/vk/prodgraph/internal/preset"
	"github.com/vk/prodgraph/internal/selector"
)

// AssemblerSelector picks an assembler for a recipe node.
type AssemblerSelector interface {
	Assembler(r *preset.Recipe) *preset.Assembler
	AssemblerWithStyle(r *preset.Recipe, style selector.AssemblerStyle) *preset.Assembler
}

// FuelSelector picks a fuel for a burner and is told which fuel was used.
type FuelSelector interface {
	Fuel(a *preset.Assembler) *preset.Item
	UseFuel(f *preset.Item)
}

// ModuleSelector picks assembler modules for a recipe node.
type ModuleSelector interface {
	Modules(a *preset.Assembler, r *preset.Recipe) []*preset.Module
	ModulesWithStyle(a *preset.Assembler, r *preset.Recipe, style selector.ModuleStyle) []*preset.Module
}

// StateListener is called when a node's state changes.
type StateListener func(n ReadOnlyNode, from, to NodeState)

// ValuesListener is called when an edit may have moved a node's rates.
type ValuesListener func(n ReadOnlyNode)

// ProductionGraph owns the nodes and links of one production chain. It is
// not safe for concurrent use.
type ProductionGraph struct {
	id     uuid.UUID
	ctx    context.Context
	logger *slog.Logger

	nodes      []Node
	byID       map[NodeID]Node
	links      []*NodeLink
	lastNodeID NodeID

	rateUnit   RateUnit
	assemblers AssemblerSelector
	fuels      FuelSelector
	modules    ModuleSelector
	solver     Solver

	stateListeners  []StateListener
	valuesListeners []ValuesListener

	batchDepth       int
	recomputePending bool
	solving          bool
}

// Option configures a ProductionGraph.
type Option func(*ProductionGraph)

// WithID sets the graph id, typically the one read from a save file.
func WithID(id uuid.UUID) Option { return func(g *ProductionGraph) { g.id = id } }

// WithRateUnit sets the unit report totals are expressed in.
func WithRateUnit(u RateUnit) Option { return func(g *ProductionGraph) { g.rateUnit = u } }

// WithSolver replaces the default NopSolver.
func WithSolver(s Solver) Option { return func(g *ProductionGraph) { g.solver = s } }

func WithAssemblerSelector(s AssemblerSelector) Option {
	return func(g *ProductionGraph) { g.assemblers = s }
}

func WithFuelSelector(s FuelSelector) Option { return func(g *ProductionGraph) { g.fuels = s } }

func WithModuleSelector(s ModuleSelector) Option {
	return func(g *ProductionGraph) { g.modules = s }
}

// New creates an empty graph. The context supplies the logger and is handed
// to the solver on every recompute.
func New(ctx context.Context, opts ...Option) *ProductionGraph {
	g := &ProductionGraph{
		id:         uuid.New(),
		byID:       make(map[NodeID]Node),
		assemblers: selector.NewAssemblers(),
		fuels:      selector.NewFuels(),
		modules:    selector.NewModules(),
		solver:     NopSolver{},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.ctx = ctxlog.With(ctx, "graph", g.id.String())
	g.logger = ctxlog.FromContext(g.ctx)
	g.logger.Debug("Production graph created.", "rate_unit", g.rateUnit.String())
	return g
}

func (g *ProductionGraph) ID() uuid.UUID      { return g.id }
func (g *ProductionGraph) RateUnit() RateUnit { return g.rateUnit }

// SetRateUnit changes the report unit. Node rates are unaffected.
func (g *ProductionGraph) SetRateUnit(u RateUnit) {
	g.rateUnit = u
	for _, n := range g.nodes {
		g.nodeValuesChanged(n)
	}
}

// ---------------------------------------------------------------- lookup

// Nodes returns every node in creation order.
func (g *ProductionGraph) Nodes() []ReadOnlyNode {
	out := make([]ReadOnlyNode, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.readOnly()
	}
	return out
}

// Links returns every link in creation order.
func (g *ProductionGraph) Links() []*NodeLink { return slices.Clone(g.links) }

// Node returns the read-only view of node id.
func (g *ProductionGraph) Node(id NodeID) (ReadOnlyNode, bool) {
	n, ok := g.byID[id]
	if !ok {
		return nil, false
	}
	return n.readOnly(), true
}

// Controller returns the controller of node id.
func (g *ProductionGraph) Controller(id NodeID) (Controller, error) {
	n, ok := g.byID[id]
	if !ok {
		return nil, fmt.Errorf("node %d: %w", id, ErrNodeNotFound)
	}
	return n.controller(), nil
}

// RecipeController returns the controller of recipe node id.
func (g *ProductionGraph) RecipeController(id NodeID) (*RecipeController, error) {
	n, ok := g.byID[id].(*recipeNode)
	if !ok {
		return nil, fmt.Errorf("recipe node %d: %w", id, ErrNodeNotFound)
	}
	return n.ctrl, nil
}

// SupplierController returns the controller of a supplier, consumer or
// pass-through node.
func (g *ProductionGraph) SupplierController(id NodeID) (*SupplierController, error) {
	switch n := g.byID[id].(type) {
	case *supplierNode:
		return n.ctrl, nil
	case *consumerNode:
		return n.ctrl, nil
	case *passthroughNode:
		return n.ctrl, nil
	}
	return nil, fmt.Errorf("single-item node %d: %w", id, ErrNodeNotFound)
}

// ---------------------------------------------------------------- creation

// CreateRecipeNode adds a node for recipe with its default configuration and
// lets the fuel selector fuel it if the default assembler is a burner.
func (g *ProductionGraph) CreateRecipeNode(recipe *preset.Recipe, loc Location) *ReadOnlyRecipeNode {
	n := newRecipeNode(g, g.nextID(), recipe, loc)
	g.addNode(n)
	if n.assembler.IsBurner() {
		n.ctrl.autoSetFuel()
	}
	g.requestRecompute()
	return n.ro
}

// CreateSupplierNode adds a source of item.
func (g *ProductionGraph) CreateSupplierNode(item *preset.Item, loc Location) *ReadOnlySupplierNode {
	n := newSupplierNode(g, g.nextID(), item, loc)
	g.addNode(n)
	g.requestRecompute()
	return n.ro
}

// CreateConsumerNode adds a sink for item.
func (g *ProductionGraph) CreateConsumerNode(item *preset.Item, loc Location) *ReadOnlyConsumerNode {
	n := newConsumerNode(g, g.nextID(), item, loc)
	g.addNode(n)
	g.requestRecompute()
	return n.ro
}

// CreatePassthroughNode adds a node forwarding item unchanged.
func (g *ProductionGraph) CreatePassthroughNode(item *preset.Item, loc Location) *ReadOnlyPassthroughNode {
	n := newPassthroughNode(g, g.nextID(), item, loc)
	g.addNode(n)
	g.requestRecompute()
	return n.ro
}

func (g *ProductionGraph) nextID() NodeID {
	g.lastNodeID++
	return g.lastNodeID
}

func (g *ProductionGraph) addNode(n Node) {
	g.nodes = append(g.nodes, n)
	g.byID[n.ID()] = n
	if n.ID() > g.lastNodeID {
		g.lastNodeID = n.ID()
	}
	n.UpdateState()
	g.logger.Debug("Node added.", "node", n.ID(), "kind", fmt.Sprint(n))
}

// ---------------------------------------------------------------- restore

// NodeConfig is the stored state shared by every node kind.
type NodeConfig struct {
	ID          NodeID
	Location    Location
	RateType    RateType
	DesiredRate float64
}

// RecipeNodeConfig is the stored state of a recipe node. Fields are applied
// as-is, without the repair a controller would do, so inconsistencies in a
// save surface as node errors.
type RecipeNodeConfig struct {
	NodeConfig
	Assembler             *preset.Assembler
	Fuel                  *preset.Item
	Burnt                 *preset.Item
	AssemblerModules      []*preset.Module
	Beacon                *preset.Beacon
	BeaconModules         []*preset.Module
	BeaconCount           float64
	BeaconsPerAssembler   float64
	BeaconsConst          float64
	NeighbourCount        float64
	DesiredAssemblerCount float64
}

func (g *ProductionGraph) checkRestoreID(id NodeID) error {
	if id <= 0 {
		return fmt.Errorf("restore: invalid node id %d", id)
	}
	if _, taken := g.byID[id]; taken {
		return fmt.Errorf("restore: node id %d already in use", id)
	}
	return nil
}

func applyNodeConfig(b *baseNode, cfg NodeConfig) {
	b.rateType = cfg.RateType
	b.desiredRate = cfg.DesiredRate
}

// RestoreRecipeNode re-creates a stored recipe node under its stored id.
func (g *ProductionGraph) RestoreRecipeNode(recipe *preset.Recipe, cfg RecipeNodeConfig) (*ReadOnlyRecipeNode, error) {
	if err := g.checkRestoreID(cfg.ID); err != nil {
		return nil, err
	}
	n := newRecipeNode(g, cfg.ID, recipe, cfg.Location)
	applyNodeConfig(&n.baseNode, cfg.NodeConfig)
	if cfg.Assembler != nil {
		n.assembler = cfg.Assembler
	}
	n.fuel = cfg.Fuel
	if cfg.Burnt != nil && (cfg.Fuel == nil || cfg.Fuel.BurnResult != cfg.Burnt) {
		n.fuelRemainsOverride = cfg.Burnt
	}
	n.assemblerModules = slices.Clone(cfg.AssemblerModules)
	n.beacon = cfg.Beacon
	n.beaconModules = slices.Clone(cfg.BeaconModules)
	n.beaconCount = cfg.BeaconCount
	n.beaconsPerAssembler = cfg.BeaconsPerAssembler
	n.beaconsConst = cfg.BeaconsConst
	n.neighbourCount = cfg.NeighbourCount
	n.desiredAssemblerCount = cfg.DesiredAssemblerCount
	g.addNode(n)
	g.requestRecompute()
	return n.ro, nil
}

// RestoreSupplierNode re-creates a stored supplier node.
func (g *ProductionGraph) RestoreSupplierNode(item *preset.Item, cfg NodeConfig) (*ReadOnlySupplierNode, error) {
	if err := g.checkRestoreID(cfg.ID); err != nil {
		return nil, err
	}
	n := newSupplierNode(g, cfg.ID, item, cfg.Location)
	applyNodeConfig(&n.baseNode, cfg)
	g.addNode(n)
	g.requestRecompute()
	return n.ro, nil
}

// RestoreConsumerNode re-creates a stored consumer node.
func (g *ProductionGraph) RestoreConsumerNode(item *preset.Item, cfg NodeConfig) (*ReadOnlyConsumerNode, error) {
	if err := g.checkRestoreID(cfg.ID); err != nil {
		return nil, err
	}
	n := newConsumerNode(g, cfg.ID, item, cfg.Location)
	applyNodeConfig(&n.baseNode, cfg)
	g.addNode(n)
	g.requestRecompute()
	return n.ro, nil
}

// RestorePassthroughNode re-creates a stored pass-through node.
func (g *ProductionGraph) RestorePassthroughNode(item *preset.Item, cfg NodeConfig) (*ReadOnlyPassthroughNode, error) {
	if err := g.checkRestoreID(cfg.ID); err != nil {
		return nil, err
	}
	n := newPassthroughNode(g, cfg.ID, item, cfg.Location)
	applyNodeConfig(&n.baseNode, cfg)
	g.addNode(n)
	g.requestRecompute()
	return n.ro, nil
}

// NextNodeID is the id the next created node will get.
func (g *ProductionGraph) NextNodeID() NodeID { return g.lastNodeID + 1 }

// ---------------------------------------------------------------- links

// CreateLink joins supplier to consumer for item. Both ends must be able to
// exchange the item and the pair must not already be linked for it.
func (g *ProductionGraph) CreateLink(supplierID, consumerID NodeID, item *preset.Item) (*NodeLink, error) {
	s, c, err := g.endpoints(supplierID, consumerID)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(s.Outputs(), item) {
		return nil, fmt.Errorf("node %d does not output %s: %w", supplierID, item, ErrInvalidLink)
	}
	if !slices.Contains(c.Inputs(), item) {
		return nil, fmt.Errorf("node %d does not take %s: %w", consumerID, item, ErrInvalidLink)
	}
	if slices.ContainsFunc(s.base().outputLinks, func(l *NodeLink) bool { return l.consumer == c && l.item == item }) {
		return nil, fmt.Errorf("nodes %d and %d are already linked for %s: %w", supplierID, consumerID, item, ErrInvalidLink)
	}
	return g.addLink(s, c, item, 0), nil
}

// RestoreLink re-creates a stored link without checking item compatibility,
// so a link made invalid by a preset change shows up as a node error.
func (g *ProductionGraph) RestoreLink(supplierID, consumerID NodeID, item *preset.Item, throughput float64) (*NodeLink, error) {
	s, c, err := g.endpoints(supplierID, consumerID)
	if err != nil {
		return nil, err
	}
	return g.addLink(s, c, item, throughput), nil
}

func (g *ProductionGraph) endpoints(supplierID, consumerID NodeID) (Node, Node, error) {
	s, ok := g.byID[supplierID]
	if !ok {
		return nil, nil, fmt.Errorf("supplier %d: %w", supplierID, ErrNodeNotFound)
	}
	c, ok := g.byID[consumerID]
	if !ok {
		return nil, nil, fmt.Errorf("consumer %d: %w", consumerID, ErrNodeNotFound)
	}
	return s, c, nil
}

func (g *ProductionGraph) addLink(s, c Node, item *preset.Item, throughput float64) *NodeLink {
	l := &NodeLink{supplier: s, consumer: c, item: item, throughput: throughput}
	g.links = append(g.links, l)
	s.base().outputLinks = append(s.base().outputLinks, l)
	c.base().inputLinks = append(c.base().inputLinks, l)
	s.UpdateState()
	c.UpdateState()
	g.logger.Debug("Link added.", "link", l.String())
	g.requestRecompute()
	return l
}

// DeleteLink removes l and refreshes the state of both ends.
func (g *ProductionGraph) DeleteLink(l *NodeLink) {
	g.deleteLink(l)
	g.requestRecompute()
}

func (g *ProductionGraph) deleteLink(l *NodeLink) {
	if !slices.Contains(g.links, l) {
		return
	}
	g.links = slices.DeleteFunc(g.links, func(x *NodeLink) bool { return x == l })
	l.supplier.base().removeLink(l)
	l.consumer.base().removeLink(l)
	l.supplier.UpdateState()
	l.consumer.UpdateState()
	g.logger.Debug("Link deleted.", "link", l.String())
}

func (g *ProductionGraph) deleteNode(n Node) {
	if _, ok := g.byID[n.ID()]; !ok {
		return
	}
	b := n.base()
	for _, l := range slices.Concat(b.inputLinks, b.outputLinks) {
		g.deleteLink(l)
	}
	g.nodes = slices.DeleteFunc(g.nodes, func(x Node) bool { return x == n })
	delete(g.byID, n.ID())
	g.logger.Debug("Node deleted.", "node", n.ID())
	g.requestRecompute()
}

// ---------------------------------------------------------------- notification

// OnNodeStateChanged registers l for state transitions.
func (g *ProductionGraph) OnNodeStateChanged(l StateListener) {
	g.stateListeners = append(g.stateListeners, l)
}

// OnNodeValuesChanged registers l for value edits.
func (g *ProductionGraph) OnNodeValuesChanged(l ValuesListener) {
	g.valuesListeners = append(g.valuesListeners, l)
}

func (g *ProductionGraph) nodeStateChanged(n Node, from, to NodeState) {
	g.logger.Debug("Node state changed.", "node", n.ID(), "from", from.String(), "to", to.String())
	for _, l := range g.stateListeners {
		l(n.readOnly(), from, to)
	}
}

func (g *ProductionGraph) nodeValuesChanged(n Node) {
	for _, l := range g.valuesListeners {
		l(n.readOnly())
	}
}

// Batch runs fn and issues a single recompute afterwards instead of one per
// edit.
func (g *ProductionGraph) Batch(fn func()) {
	g.batchDepth++
	defer func() {
		g.batchDepth--
		if g.batchDepth == 0 && g.recomputePending {
			g.recomputePending = false
			g.requestRecompute()
		}
	}()
	fn()
}

// Recompute runs the solver now and returns its error.
func (g *ProductionGraph) Recompute(ctx context.Context) error {
	if g.solving {
		return nil
	}
	g.solving = true
	defer func() { g.solving = false }()
	if err := g.solver.Solve(ctx, SolverView{g: g}); err != nil {
		return fmt.Errorf("solve graph %s: %w", g.id, err)
	}
	return nil
}

// requestRecompute is the trigger fired by controllers. Inside Batch it is
// deferred; solver errors are logged since controller calls cannot fail.
func (g *ProductionGraph) requestRecompute() {
	if g.batchDepth > 0 {
		g.recomputePending = true
		return
	}
	if err := g.Recompute(g.ctx); err != nil {
		g.logger.Warn("Recompute failed.", "error", err)
	}
}
