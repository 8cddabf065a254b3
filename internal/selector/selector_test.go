package selector_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/prodgraph/internal/preset"
	"github.com/vk/prodgraph/internal/preset/hclpreset"
	"github.com/vk/prodgraph/internal/selector"
)

const selectorPreset = `
item "ore" {}
item "plate" {}
item "coal" { fuel_value = 4 * MJ }
item "solid" { fuel_value = 12 * MJ }
item "wood" { fuel_value = 2 * MJ }

module "speed" {
  speed_bonus       = 0.5
  consumption_bonus = 0.7
}
module "prod" {
  productivity_bonus = 0.1
  speed_bonus        = -0.15
}
module "eff" { consumption_bonus = -0.3 }

assembler "stone" {
  energy_source = "burner"
  categories    = ["smelting"]
  speed         = 1
  fuels         = ["wood", "coal", "solid"]
}
assembler "steel" {
  energy_source = "burner"
  categories    = ["smelting"]
  speed         = 2
  fuels         = ["coal"]
}
assembler "electric" {
  categories   = ["smelting"]
  speed        = 2
  module_slots = 2
}
assembler "prototype" {
  categories = ["smelting"]
  speed      = 10
  enabled    = false
}
assembler "mine" {
  categories = ["mining"]
  speed      = 1
}

recipe "plate" {
  time     = 3.2
  category = "smelting"
  ingredient "ore" { amount = 1 }
  product "plate" { amount = 1 }
}
recipe "mine-coal" {
  time     = 1
  category = "mining"
  product "coal" { amount = 1 }
}
recipe "press-solid" {
  time     = 1
  category = "mining"
  enabled  = false
  product "solid" { amount = 1 }
}
recipe "speed-only" {
  time     = 1
  category = "smelting"
  modules  = ["speed", "eff"]
  ingredient "ore" { amount = 1 }
  product "plate" { amount = 1 }
}
recipe "nowhere" {
  time     = 1
  category = "void"
}
`

func loadPreset(t *testing.T) *preset.Preset {
	t.Helper()
	defs, err := hclpreset.Parse([]byte(selectorPreset), "selector.hcl")
	require.NoError(t, err)
	p, err := preset.Build(context.Background(), "selector", defs)
	require.NoError(t, err)
	return p
}

func TestAssemblers_Styles(t *testing.T) {
	p := loadPreset(t)
	s := selector.NewAssemblers()
	r := p.Recipe("plate")

	testCases := []struct {
		style selector.AssemblerStyle
		want  string
	}{
		// electric and steel tie on speed; more slots wins.
		{style: selector.AssemblerBest, want: "electric"},
		{style: selector.AssemblerWorst, want: "stone"},
		{style: selector.AssemblerBestNonBurner, want: "electric"},
		{style: selector.AssemblerWorstNonBurner, want: "electric"},
		{style: selector.AssemblerMostModules, want: "electric"},
	}
	for _, tc := range testCases {
		t.Run(tc.style.String(), func(t *testing.T) {
			got := s.AssemblerWithStyle(r, tc.style)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got.Name)
		})
	}

	assert.Equal(t, "electric", s.Assembler(r).Name)
	s.DefaultStyle = selector.AssemblerWorst
	assert.Equal(t, "stone", s.Assembler(r).Name)
	assert.Nil(t, s.Assembler(p.Recipe("nowhere")))
}

func TestAssemblers_DisabledIsNeverPreferred(t *testing.T) {
	p := loadPreset(t)
	got := selector.NewAssemblers().AssemblerWithStyle(p.Recipe("plate"), selector.AssemblerBest)
	assert.NotEqual(t, "prototype", got.Name, "prototype is fastest but disabled")
}

func TestFuels_Fuel(t *testing.T) {
	p := loadPreset(t)
	stone := p.Assembler("stone")

	s := selector.NewFuels()
	assert.Nil(t, s.Fuel(p.Assembler("electric")))
	// solid is worth more, but its recipe is disabled; wood is not craftable.
	assert.Equal(t, p.Item("coal"), s.Fuel(stone))

	s.UseFuel(p.Item("wood"))
	assert.Equal(t, p.Item("coal"), s.Fuel(stone), "uncraftable preference is skipped")
}

func TestFuels_FallsBackToFirstFuel(t *testing.T) {
	p := loadPreset(t)
	a := &preset.Assembler{
		Status:       preset.Status{Enabled: true, Available: true},
		EnergySource: preset.EnergyBurner,
		Fuels:        []*preset.Item{p.Item("wood"), p.Item("solid")},
	}
	assert.Equal(t, p.Item("wood"), selector.NewFuels().Fuel(a))
}

func TestFuels_UseFuel(t *testing.T) {
	p := loadPreset(t)
	coal, wood := p.Item("coal"), p.Item("wood")

	s := selector.NewFuels(wood)
	s.UseFuel(coal)
	s.UseFuel(nil)
	s.UseFuel(wood)
	s.UseFuel(coal)
	assert.Equal(t, []*preset.Item{coal, wood}, s.Preference())
}

func TestModules_Styles(t *testing.T) {
	p := loadPreset(t)
	s := selector.NewModules()
	electric := p.Assembler("electric")
	plate := p.Recipe("plate")
	speed, prod, eff := p.Module("speed"), p.Module("prod"), p.Module("eff")

	assert.Empty(t, s.Modules(electric, plate), "default style leaves slots empty")

	testCases := []struct {
		name   string
		recipe *preset.Recipe
		style  selector.ModuleStyle
		want   []*preset.Module
	}{
		{name: "speed", recipe: plate, style: selector.ModuleSpeed, want: []*preset.Module{speed, speed}},
		{name: "productivity", recipe: plate, style: selector.ModuleProductivity, want: []*preset.Module{prod, prod}},
		{name: "efficiency", recipe: plate, style: selector.ModuleEfficiency, want: []*preset.Module{eff, eff}},
		{name: "productivity or speed", recipe: plate, style: selector.ModuleProductivityOrSpeed, want: []*preset.Module{prod, prod}},
		{name: "speed fallback", recipe: p.Recipe("speed-only"), style: selector.ModuleProductivityOrSpeed, want: []*preset.Module{speed, speed}},
		{name: "nothing fits", recipe: p.Recipe("speed-only"), style: selector.ModuleProductivity, want: nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.ModulesWithStyle(electric, tc.recipe, tc.style))
		})
	}

	assert.Nil(t, s.ModulesWithStyle(p.Assembler("stone"), plate, selector.ModuleSpeed), "no slots")
}

func TestParseStyles(t *testing.T) {
	as, err := selector.ParseAssemblerStyle("worst-non-burner")
	require.NoError(t, err)
	assert.Equal(t, selector.AssemblerWorstNonBurner, as)
	_, err = selector.ParseAssemblerStyle("fastest")
	assert.Error(t, err)

	ms, err := selector.ParseModuleStyle("productivity-or-speed")
	require.NoError(t, err)
	assert.Equal(t, selector.ModuleProductivityOrSpeed, ms)
	_, err = selector.ParseModuleStyle("")
	assert.Error(t, err)
	assert.Equal(t, "ModuleStyle(42)", selector.ModuleStyle(42).String())
}
