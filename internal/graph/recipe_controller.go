package graph

import (
	"slices"

	"github.com/vk/prodgraph/internal/preset"
	"github.com/vk/prodgraph/internal/selector"
)

// RecipeController is the only way to reconfigure a recipe node. Every call
// leaves the node consistent: fuel only on burners, module lists within slot
// capacity, no beacon modules without a beacon. Each public call ends with a
// recompute request to the graph's solver.
type RecipeController struct {
	baseController
	node *recipeNode
}

func (c *RecipeController) done() { c.graph().requestRecompute() }

// ---------------------------------------------------------------- assembler

// SetAssembler switches the assembler and repairs everything that depends on
// it: fuel, assembler modules and the beacon. A nil assembler is a
// programmer error.
func (c *RecipeController) SetAssembler(a *preset.Assembler) {
	c.setAssembler(a)
	c.done()
}

func (c *RecipeController) setAssembler(a *preset.Assembler) {
	if a == nil {
		fault("recipe node %d: nil assembler", c.node.id)
	}
	n := c.node
	n.setAssembler(a)

	switch {
	case !a.IsBurner():
		c.setFuel(nil)
	case n.fuel != nil && a.AcceptsFuel(n.fuel):
		c.setFuel(n.fuel)
	default:
		c.autoSetFuel()
	}

	c.pruneAssemblerModules()
	if len(a.Modules) == 0 || len(n.recipe.Modules) == 0 {
		c.setBeacon(nil)
	} else {
		c.setBeacon(n.beacon)
	}
}

// AutoSetAssembler lets the assembler selector choose with its default style.
func (c *RecipeController) AutoSetAssembler() {
	c.autoSetAssembler(c.graph().assemblers.Assembler(c.node.recipe))
	c.done()
}

// AutoSetAssemblerStyle lets the assembler selector choose with style.
func (c *RecipeController) AutoSetAssemblerStyle(style selector.AssemblerStyle) {
	c.autoSetAssembler(c.graph().assemblers.AssemblerWithStyle(c.node.recipe, style))
	c.done()
}

func (c *RecipeController) autoSetAssembler(a *preset.Assembler) {
	if a == nil {
		c.graph().logger.Debug("No assembler to auto-select.", "node", c.node.id, "recipe", c.node.recipe.Name)
		return
	}
	c.setAssembler(a)
	c.autoSetFuel()
}

// ---------------------------------------------------------------- fuel

// SetFuel switches the fuel. Links carrying the previous fuel or its burnt
// remains are deleted unless the recipe itself uses that item. A fuel on a
// non-burner is dropped to keep the node consistent.
func (c *RecipeController) SetFuel(fuel *preset.Item) {
	c.setFuel(fuel)
	c.done()
}

func (c *RecipeController) setFuel(fuel *preset.Item) {
	n := c.node
	if fuel != nil && !n.assembler.IsBurner() {
		fuel = nil
	}
	remains := n.fuelRemains()
	changed := n.fuel != fuel ||
		(n.fuel == nil && remains != nil) ||
		(n.fuel != nil && n.fuel.BurnResult != remains)
	if !changed {
		return
	}

	g := c.graph()
	if n.fuel != nil && !n.recipe.HasIngredient(n.fuel) {
		for _, l := range linksCarrying(n.inputLinks, n.fuel) {
			g.deleteLink(l)
		}
	}
	if remains != nil && !n.recipe.HasProduct(remains) {
		for _, l := range linksCarrying(n.outputLinks, remains) {
			g.deleteLink(l)
		}
	}
	n.setFuel(fuel)
	g.fuels.UseFuel(fuel)
}

// AutoSetFuel lets the fuel selector choose.
func (c *RecipeController) AutoSetFuel() {
	c.autoSetFuel()
	c.done()
}

func (c *RecipeController) autoSetFuel() {
	c.setFuel(c.graph().fuels.Fuel(c.node.assembler))
}

// SetBurntOverride records a burnt-remains item that differs from the fuel's
// own burn result. It is used when importing saves made against a different
// preset and surfaces as an InvalidFuelRemains error.
func (c *RecipeController) SetBurntOverride(item *preset.Item) {
	c.node.setBurntOverride(item)
	c.done()
}

// ---------------------------------------------------------------- beacon

// SetBeacon selects a beacon, or clears it together with its modules and
// counters when b is nil.
func (c *RecipeController) SetBeacon(b *preset.Beacon) {
	c.setBeacon(b)
	c.done()
}

func (c *RecipeController) setBeacon(b *preset.Beacon) {
	n := c.node
	n.setBeacon(b)
	if b == nil {
		n.clearBeaconModules()
		n.setBeaconCount(0)
		n.setBeaconsPerAssembler(0)
		n.setBeaconsConst(0)
		return
	}
	c.pruneBeaconModules()
}

// ---------------------------------------------------------------- modules

// AddAssemblerModule appends m if a slot is free.
func (c *RecipeController) AddAssemblerModule(m *preset.Module) {
	n := c.node
	if len(n.assemblerModules) < n.assembler.ModuleSlots {
		n.addAssemblerModules(m)
	}
	c.done()
}

// RemoveAssemblerModule removes the module at index i. Out of range is a no-op.
func (c *RecipeController) RemoveAssemblerModule(i int) {
	c.node.removeAssemblerModuleAt(i)
	c.done()
}

// SetAssemblerModules replaces the assembler modules, keeping at most as
// many as there are slots.
func (c *RecipeController) SetAssemblerModules(modules []*preset.Module) {
	c.setAssemblerModules(modules)
	c.done()
}

func (c *RecipeController) setAssemblerModules(modules []*preset.Module) {
	n := c.node
	n.clearAssemblerModules()
	n.addAssemblerModules(capModules(modules, n.assembler.ModuleSlots)...)
}

// AutoSetAssemblerModules lets the module selector fill the slots with its
// default style.
func (c *RecipeController) AutoSetAssemblerModules() {
	n := c.node
	c.setAssemblerModules(c.graph().modules.Modules(n.assembler, n.recipe))
	c.done()
}

// AutoSetAssemblerModulesStyle lets the module selector fill the slots with
// style.
func (c *RecipeController) AutoSetAssemblerModulesStyle(style selector.ModuleStyle) {
	n := c.node
	c.setAssemblerModules(c.graph().modules.ModulesWithStyle(n.assembler, n.recipe, style))
	c.done()
}

// AddBeaconModule appends m if a beacon is selected and has a free slot.
func (c *RecipeController) AddBeaconModule(m *preset.Module) {
	n := c.node
	if n.beacon != nil && len(n.beaconModules) < n.beacon.ModuleSlots {
		n.addBeaconModules(m)
	}
	c.done()
}

// RemoveBeaconModule removes the beacon module at index i.
func (c *RecipeController) RemoveBeaconModule(i int) {
	c.node.removeBeaconModuleAt(i)
	c.done()
}

// SetBeaconModules replaces the beacon modules. Without a beacon the list
// stays empty.
func (c *RecipeController) SetBeaconModules(modules []*preset.Module) {
	n := c.node
	n.clearBeaconModules()
	if n.beacon != nil {
		n.addBeaconModules(capModules(modules, n.beacon.ModuleSlots)...)
	}
	c.done()
}

// pruneAssemblerModules drops modules the assembler or recipe rejects, then
// trims the list to the slot count.
func (c *RecipeController) pruneAssemblerModules() {
	n := c.node
	for i := len(n.assemblerModules) - 1; i >= 0; i-- {
		if !n.moduleFits(n.assemblerModules[i]) {
			n.removeAssemblerModuleAt(i)
		}
	}
	for len(n.assemblerModules) > n.assembler.ModuleSlots {
		n.removeAssemblerModuleAt(len(n.assemblerModules) - 1)
	}
}

// pruneBeaconModules is pruneAssemblerModules for the beacon. Without a
// beacon every module goes.
func (c *RecipeController) pruneBeaconModules() {
	n := c.node
	if n.beacon == nil {
		n.clearBeaconModules()
		return
	}
	for i := len(n.beaconModules) - 1; i >= 0; i-- {
		if !n.beaconModuleFits(n.beaconModules[i]) {
			n.removeBeaconModuleAt(i)
		}
	}
	for len(n.beaconModules) > n.beacon.ModuleSlots {
		n.removeBeaconModuleAt(len(n.beaconModules) - 1)
	}
}

// ---------------------------------------------------------------- counters

func (c *RecipeController) SetNeighbourCount(v float64) {
	c.node.setNeighbourCount(v)
	c.done()
}

func (c *RecipeController) SetBeaconCount(v float64) {
	c.node.setBeaconCount(v)
	c.done()
}

func (c *RecipeController) SetBeaconsPerAssembler(v float64) {
	c.node.setBeaconsPerAssembler(v)
	c.done()
}

func (c *RecipeController) SetBeaconsConst(v float64) {
	c.node.setBeaconsConst(v)
	c.done()
}

// SetDesiredAssemblerCount pins the node's rate, through the assembler
// count, when it is in manual mode.
func (c *RecipeController) SetDesiredAssemblerCount(v float64) {
	c.node.setDesiredAssemblerCount(v)
	c.done()
}

// ---------------------------------------------------------------- resolutions

// ErrorResolutions lists the remedies for the node's current errors, in a
// stable order. A missing recipe only offers deletion.
func (c *RecipeController) ErrorResolutions() []Resolution {
	n := c.node
	e := n.errorSet
	if e.Has(RecipeIsMissing) {
		return []Resolution{{Label: "Delete node", Apply: c.Delete}}
	}

	var out []Resolution
	if e.Any(AssemblerIsMissing | AssemblerCantCraft) {
		out = append(out, Resolution{Label: "Auto-select assembler", Apply: c.AutoSetAssembler})
	}
	if e.Any(FuelIsMissing|InvalidFuel|BurnerNoFuelSet) &&
		slices.ContainsFunc(n.assembler.Fuels, func(f *preset.Item) bool { return !f.IsMissing }) {
		out = append(out, Resolution{Label: "Auto-select fuel", Apply: c.AutoSetFuel})
	}
	if e.Has(InvalidFuelRemains) && n.assembler.AcceptsFuel(n.fuel) {
		out = append(out, Resolution{Label: "Update burn result", Apply: func() { c.SetFuel(n.fuel) }})
	}
	if e.Has(FuelOnNonBurner) {
		out = append(out, Resolution{Label: "Remove fuel", Apply: func() { c.SetFuel(nil) }})
	}
	if e.Any(AModuleIsMissing | AModuleLimitExceeded) {
		out = append(out, Resolution{Label: "Fix assembler modules", Apply: func() {
			c.pruneAssemblerModules()
			c.done()
		}})
	}
	if e.Has(BeaconIsMissing) {
		out = append(out, Resolution{Label: "Remove Beacon", Apply: func() { c.SetBeacon(nil) }})
	}
	if e.Any(BModuleIsMissing | BModuleLimitExceeded) {
		out = append(out, Resolution{Label: "Fix beacon modules", Apply: func() {
			c.pruneBeaconModules()
			c.done()
		}})
	}
	return append(out, c.invalidLinkResolutions()...)
}

// WarningResolutions lists the remedies for the node's current warnings.
func (c *RecipeController) WarningResolutions() []Resolution {
	n := c.node
	w := n.warningSet
	var out []Resolution

	if w.Any(AssemblerIsDisabled|AssemblerIsUnavailable) && !w.Has(NoAvailableAssemblers) {
		out = append(out, Resolution{Label: "Switch to enabled assembler", Apply: c.AutoSetAssembler})
	}
	if w.Any(FuelIsUnavailable|FuelIsUncraftable) && !w.Has(NoAvailableFuels) {
		out = append(out, Resolution{Label: "Switch to valid fuel", Apply: c.AutoSetFuel})
	}
	if w.Any(AModuleIsDisabled | AModuleIsUnavailable) {
		out = append(out, Resolution{Label: "Remove error modules from assembler", Apply: func() {
			for i := len(n.assemblerModules) - 1; i >= 0; i-- {
				if m := n.assemblerModules[i]; !m.Enabled || !m.Available {
					n.removeAssemblerModuleAt(i)
				}
			}
			c.done()
		}})
	}
	if w.Any(BeaconIsDisabled | BeaconIsUnavailable) {
		out = append(out, Resolution{Label: "Turn off beacon", Apply: func() { c.SetBeacon(nil) }})
	}
	if w.Any(BModuleIsDisabled | BModuleIsUnavailable) {
		out = append(out, Resolution{Label: "Remove error modules from beacon", Apply: func() {
			for i := len(n.beaconModules) - 1; i >= 0; i-- {
				if m := n.beaconModules[i]; !m.Enabled || !m.Available {
					n.removeBeaconModuleAt(i)
				}
			}
			c.done()
		}})
	}
	return out
}

// linksCarrying returns a copy of the links that carry item, so callers can
// delete while iterating.
func linksCarrying(links []*NodeLink, item *preset.Item) []*NodeLink {
	var out []*NodeLink
	for _, l := range links {
		if l.item == item {
			out = append(out, l)
		}
	}
	return out
}

func capModules(modules []*preset.Module, slots int) []*preset.Module {
	if len(modules) > slots {
		modules = modules[:max(slots, 0)]
	}
	return slices.Clone(modules)
}
