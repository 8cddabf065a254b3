package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/prodgraph/internal/preset"
	"github.com/vk/prodgraph/internal/preset/hclpreset"
)

// testPresetHCL is a small but complete preset: plain crafting, smelting
// with a burner furnace, a steam chain ending in a generator and a burner
// reactor with burnt remains.
const testPresetHCL = `
item "iron-ore" {}
item "iron-plate" {}
item "gear" {}
item "widget" {}
item "heat" {}
item "water" {}
item "steam" { default_temperature = 15 }
item "coal" { fuel_value = 4 * MJ }
item "wood" { fuel_value = 2 * MJ }
item "used-cell" {}
item "uranium-cell" {
  fuel_value  = 8 * GJ
  burn_result = "used-cell"
}

module "speed-1" {
  speed_bonus       = 0.2
  consumption_bonus = 0.5
}
module "prod-1" {
  productivity_bonus = 0.04
  speed_bonus        = -0.05
  consumption_bonus  = 0.4
  pollution_bonus    = 0.05
}
module "eff-3" {
  consumption_bonus = -0.45
  pollution_bonus   = -0.45
}
module "retired" {
  speed_bonus = 0.1
  enabled     = false
}

beacon "beacon" {
  module_slots       = 2
  effectivity        = 0.5
  energy_consumption = 480 * kW
  pollution          = 0.000002
  modules            = ["speed-1", "eff-3", "retired"]
}

assembler "asm-1" {
  speed              = 1
  energy_consumption = 75 * kW
  energy_drain       = 2.5 * kW
}
assembler "asm-2" {
  speed              = 2
  energy_consumption = 150 * kW
  energy_drain       = 5 * kW
  pollution          = 0.000001
  module_slots       = 2
}
assembler "old-asm" {
  categories = ["legacy"]
  speed      = 1
  enabled    = false
}
assembler "stone-furnace" {
  entity_type        = "furnace"
  energy_source      = "burner"
  categories         = ["smelting"]
  speed              = 1
  energy_consumption = 90 * kW
  fuels              = ["coal", "wood"]
}
assembler "electric-furnace" {
  entity_type        = "furnace"
  categories         = ["smelting"]
  speed              = 2
  energy_consumption = 180 * kW
  energy_drain       = 6 * kW
  module_slots       = 2
}
assembler "miner" {
  entity_type = "miner"
  categories  = ["mining"]
  speed       = 0.5
}
assembler "boiler" {
  entity_type = "boiler"
  categories  = ["boiling"]
  speed       = 1
}
assembler "steam-engine" {
  entity_type           = "generator"
  categories            = ["steam-gen"]
  speed                 = 1
  energy_production     = 900 * kW
  operation_temperature = 165
}
assembler "reactor" {
  entity_type        = "reactor"
  energy_source      = "burner"
  categories         = ["nuclear"]
  speed              = 1
  energy_consumption = 40 * MW
  neighbour_bonus    = 1
  fuels              = ["uranium-cell"]
}

recipe "gear" {
  time = 1
  ingredient "iron-plate" { amount = 2 }
  product "gear" { amount = 1 }
}
recipe "iron-plate" {
  time     = 3.2
  category = "smelting"
  modules  = ["speed-1", "eff-3"]
  ingredient "iron-ore" { amount = 1 }
  product "iron-plate" { amount = 1 }
}
recipe "mine-ore" {
  time     = 1
  category = "mining"
  product "iron-ore" { amount = 1 }
}
recipe "mine-coal" {
  time     = 1
  category = "mining"
  product "coal" { amount = 1 }
}
recipe "make-cell" {
  time = 10
  ingredient "iron-plate" { amount = 1 }
  product "uranium-cell" { amount = 1 }
}
recipe "legacy-widget" {
  time     = 1
  category = "legacy"
  product "widget" { amount = 1 }
}
recipe "boil" {
  time     = 1
  category = "boiling"
  ingredient "water" { amount = 1 }
  product "steam" {
    amount      = 1
    temperature = 100
  }
}
recipe "steam-power" {
  time     = 1
  category = "steam-gen"
  ingredient "steam" {
    amount          = 1
    min_temperature = 15
    max_temperature = 165
  }
}
recipe "reactor-heat" {
  time     = 1
  category = "nuclear"
  product "heat" { amount = 10 }
}
`

func newTestPreset(t *testing.T) *preset.Preset {
	t.Helper()
	defs, err := hclpreset.Parse([]byte(testPresetHCL), "test.hcl")
	require.NoError(t, err)
	p, err := preset.Build(context.Background(), "test", defs)
	require.NoError(t, err)
	return p
}

func newTestGraph(t *testing.T, opts ...Option) (*ProductionGraph, *preset.Preset) {
	t.Helper()
	return New(context.Background(), opts...), newTestPreset(t)
}

// recipeNodeFor creates a recipe node and returns both its view and its
// controller.
func recipeNodeFor(t *testing.T, g *ProductionGraph, r *preset.Recipe) (*ReadOnlyRecipeNode, *RecipeController) {
	t.Helper()
	ro := g.CreateRecipeNode(r, Location{})
	ctrl, err := g.RecipeController(ro.ID())
	require.NoError(t, err)
	return ro, ctrl
}
