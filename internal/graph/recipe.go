package graph

import (
	"fmt"
	"slices"

	"github.com/vk/prodgraph/internal/preset"
)

// recipeNode is a production node: one recipe crafted by some number of
// identical assemblers, optionally fuelled, moduled and beaconed.
type recipeNode struct {
	baseNode
	recipe *preset.Recipe

	assembler           *preset.Assembler
	fuel                *preset.Item
	fuelRemainsOverride *preset.Item // set when importing a save whose burnt item disagrees with the fuel
	assemblerModules    []*preset.Module

	beacon              *preset.Beacon
	beaconModules       []*preset.Module
	beaconCount         float64
	beaconsPerAssembler float64
	beaconsConst        float64

	neighbourCount        float64
	desiredAssemblerCount float64

	errorSet   Errors
	warningSet Warnings

	ro   *ReadOnlyRecipeNode
	ctrl *RecipeController
}

// newRecipeNode builds a node with the recipe's first assembler, no fuel, no
// modules and no beacon. The graph computes its first state once the node is
// registered and then lets the controller pick a fuel.
func newRecipeNode(g *ProductionGraph, id NodeID, recipe *preset.Recipe, loc Location) *recipeNode {
	n := &recipeNode{baseNode: newBaseNode(g, id, loc), recipe: recipe}
	n.ro = &ReadOnlyRecipeNode{readOnlyBase: readOnlyBase{n: n}, node: n}
	n.ctrl = &RecipeController{baseController: baseController{n: n}, node: n}

	if len(recipe.Assemblers) > 0 {
		n.assembler = recipe.Assemblers[0]
	} else {
		n.assembler = preset.MissingAssembler(recipe.Name + "-assembler")
	}
	return n
}

func (n *recipeNode) readOnly() ReadOnlyNode { return n.ro }
func (n *recipeNode) controller() Controller { return n.ctrl }

func (n *recipeNode) String() string {
	return fmt.Sprintf("Recipe node for: %s", n.recipe.Name)
}

// fuelRemains is the burnt item the node emits: the override if one was
// imported, otherwise the fuel's own burn result.
func (n *recipeNode) fuelRemains() *preset.Item {
	if n.fuelRemainsOverride != nil {
		return n.fuelRemainsOverride
	}
	if n.fuel != nil {
		return n.fuel.BurnResult
	}
	return nil
}

// burnsFuel reports whether the fuel and its remains take part in the node's
// flows. A missing assembler keeps them so restored links stay attached.
func (n *recipeNode) burnsFuel() bool {
	return n.assembler.IsBurner() || n.assembler.IsMissing
}

// Inputs lists the recipe ingredients followed by the fuel, unless the fuel
// already is an ingredient or the assembler burns nothing.
func (n *recipeNode) Inputs() []*preset.Item {
	items := make([]*preset.Item, 0, len(n.recipe.Ingredients)+1)
	for _, in := range n.recipe.Ingredients {
		items = append(items, in.Item)
	}
	if n.fuel != nil && n.burnsFuel() && !n.recipe.HasIngredient(n.fuel) {
		items = append(items, n.fuel)
	}
	return items
}

// Outputs lists the recipe products followed by the burnt remains, under the
// same rules as Inputs.
func (n *recipeNode) Outputs() []*preset.Item {
	items := make([]*preset.Item, 0, len(n.recipe.Products)+1)
	for _, out := range n.recipe.Products {
		items = append(items, out.Item)
	}
	if remains := n.fuelRemains(); remains != nil && n.burnsFuel() && !n.recipe.HasProduct(remains) {
		items = append(items, remains)
	}
	return items
}

// ---------------------------------------------------------------- field writes
// Every write that can change the health state recomputes it; every write that
// can only move a rate notifies value listeners instead.

func (n *recipeNode) setAssembler(a *preset.Assembler) {
	if a == nil {
		return
	}
	n.assembler = a
	n.UpdateState()
	n.valuesChanged()
}

func (n *recipeNode) setFuel(fuel *preset.Item) {
	n.fuel = fuel
	n.fuelRemainsOverride = nil
	n.UpdateState()
	n.valuesChanged()
}

func (n *recipeNode) setBurntOverride(item *preset.Item) {
	if n.fuel == nil || n.fuel.BurnResult != item {
		n.fuelRemainsOverride = item
	}
	n.UpdateState()
}

func (n *recipeNode) setBeacon(b *preset.Beacon) {
	if n.beacon != b {
		n.beacon = b
		n.UpdateState()
		n.valuesChanged()
	}
}

func (n *recipeNode) setBeaconCount(v float64) {
	if n.beaconCount != v {
		n.beaconCount = v
		n.valuesChanged()
	}
}

func (n *recipeNode) setBeaconsPerAssembler(v float64) {
	if n.beaconsPerAssembler != v {
		n.beaconsPerAssembler = v
		n.valuesChanged()
	}
}

func (n *recipeNode) setBeaconsConst(v float64) {
	if n.beaconsConst != v {
		n.beaconsConst = v
		n.valuesChanged()
	}
}

func (n *recipeNode) setNeighbourCount(v float64) {
	if n.neighbourCount != v {
		n.neighbourCount = v
		n.valuesChanged()
	}
}

func (n *recipeNode) setDesiredAssemblerCount(v float64) {
	if n.desiredAssemblerCount != v {
		n.desiredAssemblerCount = v
		n.valuesChanged()
	}
}

func (n *recipeNode) clearAssemblerModules() {
	n.assemblerModules = nil
	n.modulesChanged()
}

func (n *recipeNode) addAssemblerModules(modules ...*preset.Module) {
	n.assemblerModules = append(n.assemblerModules, modules...)
	n.modulesChanged()
}

func (n *recipeNode) removeAssemblerModuleAt(i int) {
	if i >= 0 && i < len(n.assemblerModules) {
		n.assemblerModules = slices.Delete(n.assemblerModules, i, i+1)
		n.modulesChanged()
	}
}

func (n *recipeNode) clearBeaconModules() {
	n.beaconModules = nil
	n.modulesChanged()
}

func (n *recipeNode) addBeaconModules(modules ...*preset.Module) {
	n.beaconModules = append(n.beaconModules, modules...)
	n.modulesChanged()
}

func (n *recipeNode) removeBeaconModuleAt(i int) {
	if i >= 0 && i < len(n.beaconModules) {
		n.beaconModules = slices.Delete(n.beaconModules, i, i+1)
		n.modulesChanged()
	}
}

func (n *recipeNode) modulesChanged() {
	n.UpdateState()
	n.valuesChanged()
}

func (n *recipeNode) valuesChanged() {
	n.graph.nodeValuesChanged(n)
}

// moduleFits reports whether m may sit in an assembler of this node: it must
// exist and be accepted by both the assembler and the recipe.
func (n *recipeNode) moduleFits(m *preset.Module) bool {
	return !m.IsMissing && n.assembler.AllowsModule(m) && n.recipe.AllowsModule(m)
}

// beaconModuleFits additionally requires the selected beacon to accept m.
func (n *recipeNode) beaconModuleFits(m *preset.Module) bool {
	return n.moduleFits(m) && n.beacon != nil && n.beacon.AllowsModule(m)
}
