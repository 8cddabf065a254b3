// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the linked preset entities: items, recipes, assemblers,
// modules and beacons. Every entity carries a Status so a name that a save
// file mentions but the preset lacks can still be represented.

package preset

import (
	"math"
	"slices"
)

// Status carries the tri-state every reference entity exposes. IsMissing is
// set on placeholders created for names the current preset does not know.
type Status struct {
	Enabled   bool
	Available bool
	IsMissing bool
}

// EntityType classifies assemblers. Only Reactor and Generator change the
// rate math; the rest are informational.
type EntityType int

const (
	EntityAssembler EntityType = iota
	EntityFurnace
	EntityMiner
	EntityBoiler
	EntityGenerator
	EntityReactor
	EntityBurnerGenerator
	EntityOffshorePump
)

var entityTypeNames = map[EntityType]string{
	EntityAssembler:       "assembler",
	EntityFurnace:         "furnace",
	EntityMiner:           "miner",
	EntityBoiler:          "boiler",
	EntityGenerator:       "generator",
	EntityReactor:         "reactor",
	EntityBurnerGenerator: "burner-generator",
	EntityOffshorePump:    "offshore-pump",
}

func (t EntityType) String() string {
	if name, ok := entityTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseEntityType maps a preset string onto an EntityType. The empty string
// means EntityAssembler.
func ParseEntityType(s string) (EntityType, bool) {
	if s == "" {
		return EntityAssembler, true
	}
	for t, name := range entityTypeNames {
		if name == s {
			return t, true
		}
	}
	return EntityAssembler, false
}

// EnergySource is how an assembler or beacon is powered.
type EnergySource int

const (
	EnergyElectric EnergySource = iota
	EnergyBurner
	EnergyHeat
	EnergyVoid
)

var energySourceNames = map[EnergySource]string{
	EnergyElectric: "electric",
	EnergyBurner:   "burner",
	EnergyHeat:     "heat",
	EnergyVoid:     "void",
}

func (s EnergySource) String() string {
	if name, ok := energySourceNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseEnergySource maps a preset string onto an EnergySource. The empty
// string means EnergyElectric.
func ParseEnergySource(s string) (EnergySource, bool) {
	if s == "" {
		return EnergyElectric, true
	}
	for src, name := range energySourceNames {
		if name == s {
			return src, true
		}
	}
	return EnergyElectric, false
}

// Item is an item or fluid.
type Item struct {
	Status
	Name               string
	FriendlyName       string
	FuelValue          float64 // joules per item
	BurnResult         *Item
	DefaultTemperature float64

	// ProductionRecipes lists every recipe producing this item.
	ProductionRecipes []*Recipe
}

func (i *Item) String() string {
	if i == nil {
		return "<nil>"
	}
	return i.Name
}

// IsCraftable reports whether some enabled recipe with an enabled assembler
// produces the item.
func (i *Item) IsCraftable() bool {
	return slices.ContainsFunc(i.ProductionRecipes, func(r *Recipe) bool {
		return r.Enabled && r.HasEnabledAssembler()
	})
}

// TemperatureRange bounds the temperature a fluid ingredient is accepted at.
type TemperatureRange struct {
	Min float64
	Max float64
}

// Unbounded is the range used for ingredients without explicit bounds.
var Unbounded = TemperatureRange{Min: math.Inf(-1), Max: math.Inf(1)}

// Ingredient is one recipe input.
type Ingredient struct {
	Item        *Item
	Amount      float64
	Temperature TemperatureRange
}

// Product is one recipe output.
type Product struct {
	Item        *Item
	Amount      float64
	Temperature float64
}

// Recipe transforms ingredients into products in Time seconds at speed 1.
type Recipe struct {
	Status
	Name         string
	FriendlyName string
	Time         float64
	Category     string
	Ingredients  []Ingredient
	Products     []Product

	// Assemblers lists every assembler able to craft the recipe, in preset order.
	Assemblers []*Assembler
	// Modules lists every module the recipe accepts.
	Modules []*Module
}

func (r *Recipe) String() string {
	if r == nil {
		return "<nil>"
	}
	return r.Name
}

// IngredientAmount returns the amount of item consumed per craft.
func (r *Recipe) IngredientAmount(item *Item) (float64, bool) {
	for _, in := range r.Ingredients {
		if in.Item == item {
			return in.Amount, true
		}
	}
	return 0, false
}

// ProductAmount returns the amount of item produced per craft.
func (r *Recipe) ProductAmount(item *Item) (float64, bool) {
	for _, out := range r.Products {
		if out.Item == item {
			return out.Amount, true
		}
	}
	return 0, false
}

// HasIngredient reports whether item is consumed by the recipe.
func (r *Recipe) HasIngredient(item *Item) bool {
	_, ok := r.IngredientAmount(item)
	return ok
}

// HasProduct reports whether item is produced by the recipe.
func (r *Recipe) HasProduct(item *Item) bool {
	_, ok := r.ProductAmount(item)
	return ok
}

// IngredientTemperature returns the accepted temperature range for item.
func (r *Recipe) IngredientTemperature(item *Item) TemperatureRange {
	for _, in := range r.Ingredients {
		if in.Item == item {
			return in.Temperature
		}
	}
	return Unbounded
}

// ProductTemperature returns the temperature item leaves the recipe at.
func (r *Recipe) ProductTemperature(item *Item) float64 {
	for _, out := range r.Products {
		if out.Item == item {
			return out.Temperature
		}
	}
	return item.DefaultTemperature
}

// HasEnabledAssembler reports whether any assembler able to craft the recipe
// is enabled.
func (r *Recipe) HasEnabledAssembler() bool {
	return slices.ContainsFunc(r.Assemblers, func(a *Assembler) bool { return a.Enabled })
}

// AllowsModule reports whether the recipe accepts m.
func (r *Recipe) AllowsModule(m *Module) bool {
	return slices.Contains(r.Modules, m)
}

// Assembler is any crafting entity.
type Assembler struct {
	Status
	Name                   string
	FriendlyName           string
	EntityType             EntityType
	EnergySource           EnergySource
	Speed                  float64
	EnergyConsumption      float64 // watts while working
	EnergyDrain            float64 // watts while idle
	EnergyProduction       float64 // watts, generators only
	ConsumptionEffectivity float64
	Pollution              float64 // per joule consumed
	ModuleSlots            int
	Modules                []*Module
	Fuels                  []*Item
	NeighbourBonus         float64
	OperationTemperature   float64
	BaseProductivityBonus  float64
}

func (a *Assembler) String() string {
	if a == nil {
		return "<nil>"
	}
	return a.Name
}

// IsBurner reports whether the assembler burns fuel items.
func (a *Assembler) IsBurner() bool {
	return a.EnergySource == EnergyBurner
}

// AllowsModule reports whether m can be inserted into the assembler.
func (a *Assembler) AllowsModule(m *Module) bool {
	return slices.Contains(a.Modules, m)
}

// AcceptsFuel reports whether item is a valid fuel for the assembler.
func (a *Assembler) AcceptsFuel(item *Item) bool {
	return slices.Contains(a.Fuels, item)
}

// Module alters the speed, productivity, consumption and pollution of the
// assembler or beacon it is inserted into.
type Module struct {
	Status
	Name              string
	FriendlyName      string
	SpeedBonus        float64
	ProductivityBonus float64
	ConsumptionBonus  float64
	PollutionBonus    float64
}

func (m *Module) String() string {
	if m == nil {
		return "<nil>"
	}
	return m.Name
}

// Beacon broadcasts the effect of its modules to nearby assemblers.
type Beacon struct {
	Status
	Name              string
	FriendlyName      string
	ModuleSlots       int
	Effectivity       float64
	EnergySource      EnergySource
	EnergyConsumption float64
	EnergyDrain       float64
	Pollution         float64
	Modules           []*Module
}

func (b *Beacon) String() string {
	if b == nil {
		return "<nil>"
	}
	return b.Name
}

// AllowsModule reports whether m can be inserted into the beacon.
func (b *Beacon) AllowsModule(m *Module) bool {
	return slices.Contains(b.Modules, m)
}
