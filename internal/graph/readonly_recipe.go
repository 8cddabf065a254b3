package graph

import (
	"fmt"
	"math"
	"slices"

	"github.com/vk/prodgraph/internal/preset"
)

// ReadOnlyRecipeNode is the view of a recipe node. Besides the node's fields
// it carries the per-assembler and total report formulas.
type ReadOnlyRecipeNode struct {
	readOnlyBase
	node *recipeNode
}

func (r *ReadOnlyRecipeNode) Recipe() *preset.Recipe               { return r.node.recipe }
func (r *ReadOnlyRecipeNode) SelectedAssembler() *preset.Assembler { return r.node.assembler }
func (r *ReadOnlyRecipeNode) Fuel() *preset.Item                   { return r.node.fuel }
func (r *ReadOnlyRecipeNode) FuelRemains() *preset.Item            { return r.node.fuelRemains() }
func (r *ReadOnlyRecipeNode) AssemblerModules() []*preset.Module {
	return slices.Clone(r.node.assemblerModules)
}
func (r *ReadOnlyRecipeNode) SelectedBeacon() *preset.Beacon { return r.node.beacon }
func (r *ReadOnlyRecipeNode) BeaconModules() []*preset.Module {
	return slices.Clone(r.node.beaconModules)
}

func (r *ReadOnlyRecipeNode) NeighbourCount() float64        { return r.node.neighbourCount }
func (r *ReadOnlyRecipeNode) BeaconCount() float64           { return r.node.beaconCount }
func (r *ReadOnlyRecipeNode) BeaconsPerAssembler() float64   { return r.node.beaconsPerAssembler }
func (r *ReadOnlyRecipeNode) BeaconsConst() float64          { return r.node.beaconsConst }
func (r *ReadOnlyRecipeNode) DesiredAssemblerCount() float64 { return r.node.desiredAssemblerCount }
func (r *ReadOnlyRecipeNode) ActualAssemblerCount() float64  { return r.node.actualAssemblerCount() }

func (r *ReadOnlyRecipeNode) SpeedMultiplier() float64        { return r.node.speedMultiplier() }
func (r *ReadOnlyRecipeNode) ProductivityMultiplier() float64 { return r.node.productivityMultiplier() }
func (r *ReadOnlyRecipeNode) ConsumptionMultiplier() float64  { return r.node.consumptionMultiplier() }
func (r *ReadOnlyRecipeNode) PollutionMultiplier() float64    { return r.node.pollutionMultiplier() }

// InputRateFor is the per-assembler consumption of item, per craft cycle.
func (r *ReadOnlyRecipeNode) InputRateFor(item *preset.Item) float64 {
	return r.node.inputRateFor(item)
}

// OutputRateFor is the per-assembler production of item, per craft cycle.
func (r *ReadOnlyRecipeNode) OutputRateFor(item *preset.Item) float64 {
	return r.node.outputRateFor(item)
}

// MaxIORatio is the ratio of the largest to the smallest per-unit rate.
func (r *ReadOnlyRecipeNode) MaxIORatio() float64 { return r.node.maxIORatio() }

// ErrorSet and WarningSet return the raw bitsets. GetErrors and GetWarnings
// apply the reporting rules on top of them.
func (r *ReadOnlyRecipeNode) ErrorSet() Errors     { return r.node.errorSet }
func (r *ReadOnlyRecipeNode) WarningSet() Warnings { return r.node.warningSet }

// GetErrors renders the error set. A missing recipe is reported alone.
func (r *ReadOnlyRecipeNode) GetErrors() []string {
	n := r.node
	e := n.errorSet
	var out []string

	if e.Has(RecipeIsMissing) {
		return []string{fmt.Sprintf("> Recipe %q doesnt exist in preset!", n.recipe.FriendlyName)}
	}
	if e.Has(AssemblerIsMissing) {
		out = append(out, fmt.Sprintf("> Assembler %q doesnt exist in preset!", n.assembler.FriendlyName))
	}
	if e.Has(AssemblerCantCraft) {
		out = append(out, fmt.Sprintf("> Assembler %q cant craft this recipe!", n.assembler.FriendlyName))
	}
	if e.Has(BurnerNoFuelSet) {
		out = append(out, "> Burner Assembler has no fuel set!")
	}
	if e.Has(FuelIsMissing) {
		out = append(out, "> Burner Assembler's fuel doesnt exist in preset!")
	}
	if e.Has(InvalidFuel) {
		out = append(out, "> Burner Assembler has an invalid fuel set!")
	}
	if e.Has(InvalidFuelRemains) {
		out = append(out, "> Burning result doesnt match fuel's burn result!")
	}
	if e.Has(FuelOnNonBurner) {
		out = append(out, "> Assembler doesnt burn fuel but has a fuel set!")
	}
	if e.Has(AModuleIsMissing) {
		out = append(out, "> Some of the assembler modules dont exist in preset!")
	}
	if e.Has(AModuleLimitExceeded) {
		out = append(out, fmt.Sprintf("> Assembler has too many modules (%d/%d)!", len(n.assemblerModules), n.assembler.ModuleSlots))
	}
	if e.Has(BeaconIsMissing) {
		out = append(out, fmt.Sprintf("> Beacon %q doesnt exist in preset!", n.beacon.FriendlyName))
	}
	if e.Has(BModuleIsMissing) {
		out = append(out, "> Some of the beacon modules dont exist in preset!")
	}
	if e.Has(BModuleLimitExceeded) {
		out = append(out, "> Beacon has too many modules!")
	}
	if e.Has(InvalidLinks) {
		out = append(out, "> Some links are invalid!")
	}
	return out
}

// GetWarnings renders the warning set. NoAvailableAssemblers hides the
// per-assembler warnings and NoAvailableFuels hides the per-fuel ones.
func (r *ReadOnlyRecipeNode) GetWarnings() []string {
	w := r.node.warningSet
	var out []string

	if w.Has(RecipeIsDisabled) {
		out = append(out, "X> Selected recipe is disabled.")
	}
	if w.Has(RecipeIsUnavailable) {
		out = append(out, "X> Selected recipe is unavailable in regular play.")
	}

	if w.Has(NoAvailableAssemblers) {
		out = append(out, "X> No enabled assemblers for this recipe.")
	} else {
		if w.Has(AssemblerIsDisabled) {
			out = append(out, "> Selected assembler is disabled.")
		}
		if w.Has(AssemblerIsUnavailable) {
			out = append(out, "> Selected assembler is unavailable in regular play.")
		}
	}

	if w.Has(NoAvailableFuels) {
		out = append(out, "X> No fuel can be produced.")
	} else {
		if w.Has(FuelIsUnavailable) {
			out = append(out, "> Selected fuel is unavailable in regular play.")
		}
		if w.Has(FuelIsUncraftable) {
			out = append(out, "> Selected fuel cant be produced.")
		}
	}

	if w.Has(AModuleIsDisabled) {
		out = append(out, "> Some selected assembler modules are disabled.")
	}
	if w.Has(AModuleIsUnavailable) {
		out = append(out, "> Some selected assembler modules are unavailable in regular play.")
	}
	if w.Has(BeaconIsDisabled) {
		out = append(out, "> Selected beacon is disabled.")
	}
	if w.Has(BeaconIsUnavailable) {
		out = append(out, "> Selected beacon is unavailable in regular play.")
	}
	if w.Has(BModuleIsDisabled) {
		out = append(out, "> Some selected beacon modules are disabled.")
	}
	if w.Has(BModuleIsUnavailable) {
		out = append(out, "> Some selected beacon modules are unavailable in regular play.")
	}
	return out
}

// ---------------------------------------------------------------- generators

// generatorFluid is the single ingredient a generator consumes.
func (r *ReadOnlyRecipeNode) generatorFluid(op string) *preset.Item {
	n := r.node
	if n.assembler.EntityType != preset.EntityGenerator {
		fault("recipe node %d: %s asked of non-generator %s", n.id, op, n.assembler)
	}
	if len(n.recipe.Ingredients) == 0 {
		fault("recipe node %d: generator recipe %s has no fluid input", n.id, n.recipe)
	}
	return n.recipe.Ingredients[0].Item
}

// GeneratorMinimumTemperature is the lowest useful input temperature: the
// fluid's default temperature (where output is zero) or the recipe's lower
// bound, whichever is higher.
func (r *ReadOnlyRecipeNode) GeneratorMinimumTemperature() float64 {
	fluid := r.generatorFluid("minimum temperature")
	return math.Max(fluid.DefaultTemperature+0.1, r.node.recipe.IngredientTemperature(fluid).Min)
}

// GeneratorMaximumTemperature is the recipe's upper bound for the fluid.
func (r *ReadOnlyRecipeNode) GeneratorMaximumTemperature() float64 {
	fluid := r.generatorFluid("maximum temperature")
	return r.node.recipe.IngredientTemperature(fluid).Max
}

// GeneratorAverageTemperature walks upstream from the generator and averages
// the temperature of the incoming fluid, weighted by link throughput.
// Pass-through nodes are averaged recursively, suppliers count as the
// generator's operating temperature and recipe nodes contribute their product
// temperature. A node already on the current path counts as the operating
// temperature, so loops terminate.
func (r *ReadOnlyRecipeNode) GeneratorAverageTemperature() float64 {
	fluid := r.generatorFluid("average temperature")
	gen := r.node
	opTemp := gen.assembler.OperationTemperature
	onPath := make(map[Node]bool)

	var walk func(n Node) float64
	walk = func(n Node) float64 {
		_, isPassthrough := n.(*passthroughNode)
		if n != Node(gen) && !isPassthrough {
			switch src := n.(type) {
			case *supplierNode:
				return opTemp
			case *recipeNode:
				return src.recipe.ProductTemperature(fluid)
			default:
				fault("unexpected %T upstream of generator node %d", n, gen.id)
			}
		}
		if onPath[n] {
			return opTemp
		}
		onPath[n] = true
		defer delete(onPath, n)

		links := n.base().inputLinks
		if len(links) == 0 {
			return opTemp
		}
		var flow, weighted, plain float64
		for _, l := range links {
			t := walk(l.supplier)
			flow += l.throughput
			weighted += t * l.throughput
			plain += t
		}
		if flow == 0 {
			return plain / float64(len(links))
		}
		return weighted / flow
	}
	return walk(gen)
}

// GeneratorEffectivity scales generator output by how close the incoming
// fluid is to the operating temperature, capped at 1.
func (r *ReadOnlyRecipeNode) GeneratorEffectivity() float64 {
	fluid := r.generatorFluid("effectivity")
	base := fluid.DefaultTemperature
	return math.Min(1, (r.GeneratorAverageTemperature()-base)/(r.node.assembler.OperationTemperature-base))
}

// GeneratorElectricalProduction is the output of one entity in watts. A
// generator paired with a recipe that feeds it no fluid produces nothing.
func (r *ReadOnlyRecipeNode) GeneratorElectricalProduction() float64 {
	a := r.node.assembler
	if a.EntityType == preset.EntityGenerator {
		if len(r.node.recipe.Ingredients) == 0 {
			return 0
		}
		return a.EnergyProduction * r.GeneratorEffectivity()
	}
	return a.EnergyProduction
}

// ---------------------------------------------------------------- single entity

// AssemblerSpeed is the effective crafting speed of one assembler.
func (r *ReadOnlyRecipeNode) AssemblerSpeed() float64 {
	return r.node.assembler.Speed * r.node.speedMultiplier()
}

// AssemblerEnergyConsumption is the draw of one working assembler in watts.
func (r *ReadOnlyRecipeNode) AssemblerEnergyConsumption() float64 {
	a := r.node.assembler
	return a.EnergyDrain + a.EnergyConsumption*r.node.consumptionMultiplier()
}

// AssemblerPollutionProduction is per second for one assembler. Pollution is
// emitted per unit of energy.
func (r *ReadOnlyRecipeNode) AssemblerPollutionProduction() float64 {
	return r.node.assembler.Pollution * r.node.pollutionMultiplier() * r.AssemblerEnergyConsumption()
}

// BeaconEnergyConsumption is the draw of one electric beacon in watts.
func (r *ReadOnlyRecipeNode) BeaconEnergyConsumption() float64 {
	b := r.node.beacon
	if b == nil || b.EnergySource != preset.EnergyElectric {
		return 0
	}
	return b.EnergyConsumption + b.EnergyDrain
}

// BeaconPollutionProduction is per second for one beacon.
func (r *ReadOnlyRecipeNode) BeaconPollutionProduction() float64 {
	if r.node.beacon == nil {
		return 0
	}
	return r.node.beacon.Pollution * r.BeaconEnergyConsumption()
}

// ---------------------------------------------------------------- totals
// Totals are expressed per unit of the graph's rate unit.

func (r *ReadOnlyRecipeNode) rateMultiplier() float64 {
	return r.node.graph.rateUnit.Multiplier()
}

// TotalCrafts is the number of crafts one assembler completes per time unit.
func (r *ReadOnlyRecipeNode) TotalCrafts() float64 {
	return r.AssemblerSpeed() * r.rateMultiplier() / r.node.recipe.Time
}

// TotalAssemblerFuelConsumption is fuel items burnt per time unit.
func (r *ReadOnlyRecipeNode) TotalAssemblerFuelConsumption() float64 {
	n := r.node
	if n.fuel == nil || n.fuel.FuelValue <= 0 || !n.burnsFuel() {
		return 0
	}
	a := n.assembler
	return r.rateMultiplier() * n.recipe.Time * a.EnergyConsumption * n.consumptionMultiplier() * n.actualRate /
		(a.Speed * n.speedMultiplier() * a.ConsumptionEffectivity * n.fuel.FuelValue)
}

// TotalAssemblerElectricalConsumption is joules per time unit. A partial
// assembler above 5% is charged a full idle drain; the working draw uses the
// exact count.
func (r *ReadOnlyRecipeNode) TotalAssemblerElectricalConsumption() float64 {
	n := r.node
	a := n.assembler
	if a.EnergySource != preset.EnergyElectric {
		return 0
	}
	count := n.actualAssemblerCount()
	whole, partial := math.Modf(count)
	if partial >= 0.05 {
		whole++
	}
	return r.rateMultiplier() * (whole*a.EnergyDrain + count*a.EnergyConsumption*n.consumptionMultiplier())
}

// TotalGeneratorElectricalProduction is joules per time unit.
func (r *ReadOnlyRecipeNode) TotalGeneratorElectricalProduction() float64 {
	return r.rateMultiplier() * r.GeneratorElectricalProduction() * r.node.actualAssemblerCount()
}

// TotalBeacons is the beacon count the layout needs. A partial assembler of
// 0.2 or more gets its own row of beacons.
func (r *ReadOnlyRecipeNode) TotalBeacons() float64 {
	n := r.node
	if n.beacon == nil {
		return 0
	}
	return math.Ceil(math.Floor(n.actualAssemblerCount()+0.8)*n.beaconsPerAssembler + n.beaconsConst)
}

// TotalPollutionProduction is what the node's assemblers and beacons emit
// per time unit.
func (r *ReadOnlyRecipeNode) TotalPollutionProduction() float64 {
	n := r.node
	return r.rateMultiplier() *
		(r.AssemblerPollutionProduction()*n.actualAssemblerCount() + r.BeaconPollutionProduction()*r.TotalBeacons())
}

// TotalBeaconElectricalConsumption is joules per time unit.
func (r *ReadOnlyRecipeNode) TotalBeaconElectricalConsumption() float64 {
	if r.node.beacon == nil {
		return 0
	}
	return r.rateMultiplier() * r.TotalBeacons() * r.BeaconEnergyConsumption()
}
