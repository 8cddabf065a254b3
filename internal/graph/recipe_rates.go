package graph

import (
	"math"

	"github.com/vk/prodgraph/internal/preset"
)

// minConsumptionMultiplier keeps modules from driving energy use or pollution
// to zero or below.
const minConsumptionMultiplier = 0.2

// bonusSum adds up one bonus field over the assembler modules and the beacon
// modules, the latter scaled by beacon effectivity and count.
func (n *recipeNode) bonusSum(bonus func(*preset.Module) float64) float64 {
	var sum float64
	for _, m := range n.assemblerModules {
		sum += bonus(m)
	}
	if len(n.beaconModules) == 0 {
		return sum
	}
	// Beacon modules without a beacon are an error state; they contribute
	// nothing until it is resolved.
	var effectivity float64
	if n.beacon != nil {
		effectivity = n.beacon.Effectivity
	}
	for _, m := range n.beaconModules {
		sum += bonus(m) * effectivity * n.beaconCount
	}
	return sum
}

func (n *recipeNode) speedMultiplier() float64 {
	return 1 + n.bonusSum(func(m *preset.Module) float64 { return m.SpeedBonus })
}

func (n *recipeNode) productivityMultiplier() float64 {
	return 1 + n.assembler.BaseProductivityBonus + n.bonusSum(func(m *preset.Module) float64 { return m.ProductivityBonus })
}

func (n *recipeNode) consumptionMultiplier() float64 {
	return math.Max(minConsumptionMultiplier, 1+n.bonusSum(func(m *preset.Module) float64 { return m.ConsumptionBonus }))
}

func (n *recipeNode) pollutionMultiplier() float64 {
	return math.Max(minConsumptionMultiplier, 1+n.bonusSum(func(m *preset.Module) float64 { return m.PollutionBonus }))
}

// craftTime is the seconds one assembler needs for one craft.
func (n *recipeNode) craftTime() float64 {
	return n.recipe.Time / (n.assembler.Speed * n.speedMultiplier())
}

// burnerRate converts the energy one craft draws into fuel items. It is zero
// when no usable fuel is set or the assembler burns nothing.
func (n *recipeNode) burnerRate() float64 {
	if n.fuel == nil || n.fuel.FuelValue <= 0 || !n.burnsFuel() {
		return 0
	}
	a := n.assembler
	return n.craftTime() * (a.EnergyConsumption * n.consumptionMultiplier() / a.ConsumptionEffectivity) / n.fuel.FuelValue
}

func (n *recipeNode) inputRateFor(item *preset.Item) float64 {
	amount, ok := n.recipe.IngredientAmount(item)
	if item == n.fuel && n.burnsFuel() {
		return amount + n.burnerRate()
	}
	if !ok {
		fault("recipe node %d: %s is not an ingredient of %s", n.id, item, n.recipe)
	}
	return amount
}

func (n *recipeNode) outputRateFor(item *preset.Item) float64 {
	amount, ok := n.recipe.ProductAmount(item)
	if ok && n.assembler.EntityType == preset.EntityReactor {
		amount *= 1 + n.assembler.NeighbourBonus*n.neighbourCount
	}
	if item == n.fuelRemains() && n.burnsFuel() {
		return amount*n.productivityMultiplier() + n.burnerRate()
	}
	if !ok {
		fault("recipe node %d: %s is not a product of %s", n.id, item, n.recipe)
	}
	return amount * n.productivityMultiplier()
}

func (n *recipeNode) GetConsumeRate(item *preset.Item) float64 {
	return n.inputRateFor(item) * n.actualRate
}

func (n *recipeNode) GetSupplyRate(item *preset.Item) float64 {
	return n.outputRateFor(item) * n.actualRate
}

// maxIORatio is the spread between the largest and smallest per-unit rate.
// Large values point at degenerate stoichiometry the solver handles poorly.
func (n *recipeNode) maxIORatio() float64 {
	maxRate, minRate := 0.0, math.MaxFloat64
	for _, item := range n.Inputs() {
		r := n.inputRateFor(item)
		maxRate, minRate = math.Max(maxRate, r), math.Min(minRate, r)
	}
	for _, item := range n.Outputs() {
		r := n.outputRateFor(item)
		maxRate, minRate = math.Max(maxRate, r), math.Min(minRate, r)
	}
	return maxRate / minRate
}

func (n *recipeNode) actualAssemblerCount() float64 {
	return n.actualRate * n.craftTime()
}

func (n *recipeNode) desiredRatePerSec() float64 {
	return n.desiredAssemblerCount / n.craftTime()
}
