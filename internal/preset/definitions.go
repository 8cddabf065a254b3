// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the raw definitions decoded from preset files, before
// names are resolved into linked entities.

package preset

// Definitions is the unified, format-agnostic representation of one or more
// preset files. References between definitions are plain names; Build turns
// them into linked entities.
type Definitions struct {
	Items      []*ItemDef
	Recipes    []*RecipeDef
	Assemblers []*AssemblerDef
	Modules    []*ModuleDef
	Beacons    []*BeaconDef
}

// Merge appends every definition of other to d.
func (d *Definitions) Merge(other *Definitions) {
	if other == nil {
		return
	}
	d.Items = append(d.Items, other.Items...)
	d.Recipes = append(d.Recipes, other.Recipes...)
	d.Assemblers = append(d.Assemblers, other.Assemblers...)
	d.Modules = append(d.Modules, other.Modules...)
	d.Beacons = append(d.Beacons, other.Beacons...)
}

// ItemDef describes an item or fluid.
type ItemDef struct {
	Name               string   `hcl:"name,label" yaml:"name"`
	FriendlyName       string   `hcl:"friendly_name,optional" yaml:"friendly_name"`
	FuelValue          float64  `hcl:"fuel_value,optional" yaml:"fuel_value"`
	BurnResult         string   `hcl:"burn_result,optional" yaml:"burn_result"`
	DefaultTemperature *float64 `hcl:"default_temperature,optional" yaml:"default_temperature"`
	Enabled            *bool    `hcl:"enabled,optional" yaml:"enabled"`
	Available          *bool    `hcl:"available,optional" yaml:"available"`
}

// IngredientDef is one recipe input. The temperature bounds only matter for
// fluids and are unbounded when omitted.
type IngredientDef struct {
	Item           string   `hcl:"item,label" yaml:"item"`
	Amount         float64  `hcl:"amount" yaml:"amount"`
	MinTemperature *float64 `hcl:"min_temperature,optional" yaml:"min_temperature"`
	MaxTemperature *float64 `hcl:"max_temperature,optional" yaml:"max_temperature"`
}

// ProductDef is one recipe output. Temperature defaults to the item's
// default temperature.
type ProductDef struct {
	Item        string   `hcl:"item,label" yaml:"item"`
	Amount      float64  `hcl:"amount" yaml:"amount"`
	Temperature *float64 `hcl:"temperature,optional" yaml:"temperature"`
}

// RecipeDef describes a recipe. Assemblers are matched by Category; Modules
// restricts the usable modules and allows every module when empty.
type RecipeDef struct {
	Name         string           `hcl:"name,label" yaml:"name"`
	FriendlyName string           `hcl:"friendly_name,optional" yaml:"friendly_name"`
	Time         float64          `hcl:"time" yaml:"time"`
	Category     string           `hcl:"category,optional" yaml:"category"`
	Modules      []string         `hcl:"modules,optional" yaml:"modules"`
	Ingredients  []*IngredientDef `hcl:"ingredient,block" yaml:"ingredients"`
	Products     []*ProductDef    `hcl:"product,block" yaml:"products"`
	Enabled      *bool            `hcl:"enabled,optional" yaml:"enabled"`
	Available    *bool            `hcl:"available,optional" yaml:"available"`
}

// AssemblerDef describes any crafting entity: assemblers, furnaces, miners,
// boilers, generators and reactors.
type AssemblerDef struct {
	Name                   string   `hcl:"name,label" yaml:"name"`
	FriendlyName           string   `hcl:"friendly_name,optional" yaml:"friendly_name"`
	EntityType             string   `hcl:"entity_type,optional" yaml:"entity_type"`
	EnergySource           string   `hcl:"energy_source,optional" yaml:"energy_source"`
	Categories             []string `hcl:"categories,optional" yaml:"categories"`
	Speed                  float64  `hcl:"speed" yaml:"speed"`
	EnergyConsumption      float64  `hcl:"energy_consumption,optional" yaml:"energy_consumption"`
	EnergyDrain            float64  `hcl:"energy_drain,optional" yaml:"energy_drain"`
	EnergyProduction       float64  `hcl:"energy_production,optional" yaml:"energy_production"`
	ConsumptionEffectivity *float64 `hcl:"consumption_effectivity,optional" yaml:"consumption_effectivity"`
	Pollution              float64  `hcl:"pollution,optional" yaml:"pollution"`
	ModuleSlots            int      `hcl:"module_slots,optional" yaml:"module_slots"`
	Modules                []string `hcl:"modules,optional" yaml:"modules"`
	Fuels                  []string `hcl:"fuels,optional" yaml:"fuels"`
	NeighbourBonus         float64  `hcl:"neighbour_bonus,optional" yaml:"neighbour_bonus"`
	OperationTemperature   float64  `hcl:"operation_temperature,optional" yaml:"operation_temperature"`
	BaseProductivityBonus  float64  `hcl:"base_productivity_bonus,optional" yaml:"base_productivity_bonus"`
	Enabled                *bool    `hcl:"enabled,optional" yaml:"enabled"`
	Available              *bool    `hcl:"available,optional" yaml:"available"`
}

// ModuleDef describes a module. Bonuses are fractions: 0.2 is +20%.
type ModuleDef struct {
	Name              string  `hcl:"name,label" yaml:"name"`
	FriendlyName      string  `hcl:"friendly_name,optional" yaml:"friendly_name"`
	SpeedBonus        float64 `hcl:"speed_bonus,optional" yaml:"speed_bonus"`
	ProductivityBonus float64 `hcl:"productivity_bonus,optional" yaml:"productivity_bonus"`
	ConsumptionBonus  float64 `hcl:"consumption_bonus,optional" yaml:"consumption_bonus"`
	PollutionBonus    float64 `hcl:"pollution_bonus,optional" yaml:"pollution_bonus"`
	Enabled           *bool   `hcl:"enabled,optional" yaml:"enabled"`
	Available         *bool   `hcl:"available,optional" yaml:"available"`
}

// BeaconDef describes a beacon.
type BeaconDef struct {
	Name              string   `hcl:"name,label" yaml:"name"`
	FriendlyName      string   `hcl:"friendly_name,optional" yaml:"friendly_name"`
	ModuleSlots       int      `hcl:"module_slots" yaml:"module_slots"`
	Effectivity       float64  `hcl:"effectivity" yaml:"effectivity"`
	EnergySource      string   `hcl:"energy_source,optional" yaml:"energy_source"`
	EnergyConsumption float64  `hcl:"energy_consumption,optional" yaml:"energy_consumption"`
	EnergyDrain       float64  `hcl:"energy_drain,optional" yaml:"energy_drain"`
	Pollution         float64  `hcl:"pollution,optional" yaml:"pollution"`
	Modules           []string `hcl:"modules,optional" yaml:"modules"`
	Enabled           *bool    `hcl:"enabled,optional" yaml:"enabled"`
	Available         *bool    `hcl:"available,optional" yaml:"available"`
}
