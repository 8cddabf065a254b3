package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/prodgraph/internal/preset"
)

func TestRecipeNode_CleanByDefault(t *testing.T) {
	g, p := newTestGraph(t)
	ro, _ := recipeNodeFor(t, g, p.Recipe("gear"))

	assert.Equal(t, StateClean, ro.State())
	assert.Zero(t, ro.ErrorSet())
	assert.Zero(t, ro.WarningSet())
	assert.Empty(t, ro.GetErrors())
	assert.Empty(t, ro.GetWarnings())
}

func TestRecipeNode_MissingRecipeReportedAlone(t *testing.T) {
	g, p := newTestGraph(t)
	ro, err := g.RestoreRecipeNode(p.Recipe("ghost-recipe"), RecipeNodeConfig{
		NodeConfig:       NodeConfig{ID: 7},
		Assembler:        p.Assembler("ghost-assembler"),
		AssemblerModules: []*preset.Module{p.Module("ghost-module")},
		BeaconModules:    []*preset.Module{p.Module("speed-1")},
	})
	require.NoError(t, err)

	assert.Equal(t, StateError, ro.State())
	assert.True(t, ro.ErrorSet().Has(RecipeIsMissing|AssemblerIsMissing|AModuleIsMissing|AModuleLimitExceeded|BModuleLimitExceeded))
	assert.Equal(t, []string{`> Recipe "ghost-recipe" doesnt exist in preset!`}, ro.GetErrors())

	ctrl, err := g.RecipeController(ro.ID())
	require.NoError(t, err)
	res := ctrl.ErrorResolutions()
	require.Len(t, res, 1)
	assert.Equal(t, "Delete node", res[0].Label)

	res[0].Apply()
	_, ok := g.Node(7)
	assert.False(t, ok)
}

func TestRecipeNode_ErrorFlags(t *testing.T) {
	testCases := []struct {
		name     string
		recipe   string
		cfg      func(p *preset.Preset) RecipeNodeConfig
		want     Errors
		messages []string
	}{
		{
			name:   "burner without fuel",
			recipe: "iron-plate",
			cfg: func(p *preset.Preset) RecipeNodeConfig {
				return RecipeNodeConfig{Assembler: p.Assembler("stone-furnace")}
			},
			want:     BurnerNoFuelSet,
			messages: []string{"> Burner Assembler has no fuel set!"},
		},
		{
			name:   "fuel the assembler does not burn",
			recipe: "iron-plate",
			cfg: func(p *preset.Preset) RecipeNodeConfig {
				return RecipeNodeConfig{Assembler: p.Assembler("stone-furnace"), Fuel: p.Item("uranium-cell")}
			},
			want:     InvalidFuel,
			messages: []string{"> Burner Assembler has an invalid fuel set!"},
		},
		{
			name:   "burnt remains differ from burn result",
			recipe: "reactor-heat",
			cfg: func(p *preset.Preset) RecipeNodeConfig {
				return RecipeNodeConfig{
					Assembler: p.Assembler("reactor"),
					Fuel:      p.Item("uranium-cell"),
					Burnt:     p.Item("iron-plate"),
				}
			},
			want:     InvalidFuelRemains,
			messages: []string{"> Burning result doesnt match fuel's burn result!"},
		},
		{
			name:   "fuel on a non-burner",
			recipe: "iron-plate",
			cfg: func(p *preset.Preset) RecipeNodeConfig {
				return RecipeNodeConfig{Assembler: p.Assembler("electric-furnace"), Fuel: p.Item("coal")}
			},
			want:     FuelOnNonBurner,
			messages: []string{"> Assembler doesnt burn fuel but has a fuel set!"},
		},
		{
			name:   "assembler outside the recipe category",
			recipe: "mine-ore",
			cfg: func(p *preset.Preset) RecipeNodeConfig {
				return RecipeNodeConfig{Assembler: p.Assembler("steam-engine")}
			},
			want:     AssemblerCantCraft,
			messages: []string{`> Assembler "steam-engine" cant craft this recipe!`},
		},
		{
			name:   "missing fuel",
			recipe: "iron-plate",
			cfg: func(p *preset.Preset) RecipeNodeConfig {
				return RecipeNodeConfig{Assembler: p.Assembler("stone-furnace"), Fuel: p.Item("peat")}
			},
			want: FuelIsMissing | InvalidFuel,
			messages: []string{
				"> Burner Assembler's fuel doesnt exist in preset!",
				"> Burner Assembler has an invalid fuel set!",
			},
		},
		{
			name:   "too many assembler modules",
			recipe: "gear",
			cfg: func(p *preset.Preset) RecipeNodeConfig {
				m := p.Module("speed-1")
				return RecipeNodeConfig{Assembler: p.Assembler("asm-2"), AssemblerModules: []*preset.Module{m, m, m}}
			},
			want:     AModuleLimitExceeded,
			messages: []string{"> Assembler has too many modules (3/2)!"},
		},
		{
			name:   "missing beacon",
			recipe: "gear",
			cfg: func(p *preset.Preset) RecipeNodeConfig {
				return RecipeNodeConfig{Assembler: p.Assembler("asm-2"), Beacon: p.Beacon("old-beacon")}
			},
			want:     BeaconIsMissing,
			messages: []string{`> Beacon "old-beacon" doesnt exist in preset!`},
		},
		{
			name:   "beacon modules without beacon",
			recipe: "gear",
			cfg: func(p *preset.Preset) RecipeNodeConfig {
				return RecipeNodeConfig{Assembler: p.Assembler("asm-2"), BeaconModules: []*preset.Module{p.Module("ghost")}}
			},
			want:     BModuleLimitExceeded,
			messages: []string{"> Beacon has too many modules!"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, p := newTestGraph(t)
			cfg := tc.cfg(p)
			cfg.ID = 1
			ro, err := g.RestoreRecipeNode(p.Recipe(tc.recipe), cfg)
			require.NoError(t, err)

			assert.Equal(t, tc.want, ro.ErrorSet(), "got %s", ro.ErrorSet())
			assert.Equal(t, tc.messages, ro.GetErrors())
			assert.Equal(t, StateError, ro.State())
		})
	}
}

func TestRecipeNode_NoAvailableAssemblersHidesAssemblerWarnings(t *testing.T) {
	g, p := newTestGraph(t)
	ro, _ := recipeNodeFor(t, g, p.Recipe("legacy-widget"))

	require.Equal(t, "old-asm", ro.SelectedAssembler().Name)
	assert.True(t, ro.WarningSet().Has(AssemblerIsDisabled|NoAvailableAssemblers))
	assert.Equal(t, StateWarning, ro.State())
	assert.Equal(t, []string{"X> No enabled assemblers for this recipe."}, ro.GetWarnings())

	ctrl, err := g.RecipeController(ro.ID())
	require.NoError(t, err)
	assert.Empty(t, ctrl.WarningResolutions(), "switching assembler cannot help")
}

func TestRecipeNode_UncraftableFuelWarning(t *testing.T) {
	g, p := newTestGraph(t)
	ro, ctrl := recipeNodeFor(t, g, p.Recipe("iron-plate"))
	ctrl.SetFuel(p.Item("wood"))

	assert.Equal(t, FuelIsUncraftable, ro.WarningSet())
	assert.Equal(t, []string{"> Selected fuel cant be produced."}, ro.GetWarnings())

	res := ctrl.WarningResolutions()
	require.Len(t, res, 1)
	assert.Equal(t, "Switch to valid fuel", res[0].Label)

	res[0].Apply()
	assert.Equal(t, p.Item("coal"), ro.Fuel())
	assert.Equal(t, StateClean, ro.State())
}

func TestRecipeNode_DisabledModuleWarnings(t *testing.T) {
	g, p := newTestGraph(t)
	ro, ctrl := recipeNodeFor(t, g, p.Recipe("gear"))
	ctrl.SetAssembler(p.Assembler("asm-2"))
	ctrl.SetAssemblerModules([]*preset.Module{p.Module("retired"), p.Module("speed-1")})
	ctrl.SetBeacon(p.Beacon("beacon"))
	ctrl.SetBeaconModules([]*preset.Module{p.Module("retired")})

	assert.Equal(t, AModuleIsDisabled|BModuleIsDisabled, ro.WarningSet())
	assert.Equal(t, []string{
		"> Some selected assembler modules are disabled.",
		"> Some selected beacon modules are disabled.",
	}, ro.GetWarnings())

	labels := []string{}
	for _, r := range ctrl.WarningResolutions() {
		labels = append(labels, r.Label)
		r.Apply()
	}
	assert.Equal(t, []string{"Remove error modules from assembler", "Remove error modules from beacon"}, labels)
	assert.Equal(t, []*preset.Module{p.Module("speed-1")}, ro.AssemblerModules())
	assert.Empty(t, ro.BeaconModules())
	assert.Equal(t, StateClean, ro.State())
}

func TestErrors_String(t *testing.T) {
	assert.Equal(t, "Clean", Errors(0).String())
	assert.Equal(t, "RecipeIsMissing|InvalidLinks", (RecipeIsMissing | InvalidLinks).String())
	assert.Equal(t, "AssemblerCantCraft|FuelOnNonBurner", (FuelOnNonBurner | AssemblerCantCraft).String())
	assert.Equal(t, "NoAvailableFuels", NoAvailableFuels.String())
}

func TestStateNotification_EdgeTriggered(t *testing.T) {
	g, p := newTestGraph(t)
	type transition struct {
		id       NodeID
		from, to NodeState
	}
	var got []transition
	g.OnNodeStateChanged(func(n ReadOnlyNode, from, to NodeState) {
		got = append(got, transition{n.ID(), from, to})
	})

	ro, ctrl := recipeNodeFor(t, g, p.Recipe("gear"))
	ctrl.SetAssembler(p.Assembler("asm-2"))
	ctrl.SetAssembler(p.Assembler("asm-2"))
	ctrl.SetBeaconCount(3)
	assert.Empty(t, got, "clean to clean is not a transition")

	ctrl.SetAssemblerModules([]*preset.Module{p.Module("retired")})
	ctrl.AddAssemblerModule(p.Module("retired"))
	ctrl.RemoveAssemblerModule(0)
	assert.Equal(t, []transition{{ro.ID(), StateClean, StateWarning}}, got)

	ctrl.RemoveAssemblerModule(0)
	assert.Equal(t, []transition{
		{ro.ID(), StateClean, StateWarning},
		{ro.ID(), StateWarning, StateClean},
	}, got)
}

func TestValuesNotification(t *testing.T) {
	g, p := newTestGraph(t)
	var count int
	g.OnNodeValuesChanged(func(ReadOnlyNode) { count++ })

	_, ctrl := recipeNodeFor(t, g, p.Recipe("gear"))
	ctrl.SetNeighbourCount(1)
	assert.Equal(t, 1, count)
	ctrl.SetNeighbourCount(1)
	assert.Equal(t, 1, count, "unchanged value does not notify")
	ctrl.SetDesiredAssemblerCount(2)
	assert.Equal(t, 2, count)
}
