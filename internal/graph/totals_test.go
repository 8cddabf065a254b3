package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steamChain builds boiler -> pass-through -> steam-engine with a second steam
// supplier feeding the pass-through.
func steamChain(t *testing.T) (*ProductionGraph, *ReadOnlyRecipeNode, *ReadOnlyPassthroughNode) {
	t.Helper()
	g, p := newTestGraph(t)
	steam := p.Item("steam")

	boiler, _ := recipeNodeFor(t, g, p.Recipe("boil"))
	engine, _ := recipeNodeFor(t, g, p.Recipe("steam-power"))
	require.Equal(t, "steam-engine", engine.SelectedAssembler().Name)
	pipe := g.CreatePassthroughNode(steam, Location{})
	tank := g.CreateSupplierNode(steam, Location{})

	_, err := g.RestoreLink(boiler.ID(), pipe.ID(), steam, 3)
	require.NoError(t, err)
	_, err = g.RestoreLink(tank.ID(), pipe.ID(), steam, 1)
	require.NoError(t, err)
	_, err = g.RestoreLink(pipe.ID(), engine.ID(), steam, 4)
	require.NoError(t, err)
	return g, engine, pipe
}

func TestGenerator_Temperatures(t *testing.T) {
	_, engine, _ := steamChain(t)

	// (3 * 100 + 1 * 165) / 4
	assert.InDelta(t, 116.25, engine.GeneratorAverageTemperature(), 1e-9)
	assert.InDelta(t, 15.1, engine.GeneratorMinimumTemperature(), 1e-9)
	assert.Equal(t, 165.0, engine.GeneratorMaximumTemperature())
	// (116.25 - 15) / (165 - 15)
	assert.InDelta(t, 0.675, engine.GeneratorEffectivity(), 1e-9)
	assert.InDelta(t, 607500, engine.GeneratorElectricalProduction(), 1e-6)
}

func TestGenerator_UnlinkedRunsAtOperatingTemperature(t *testing.T) {
	g, p := newTestGraph(t)
	engine, _ := recipeNodeFor(t, g, p.Recipe("steam-power"))

	assert.Equal(t, 165.0, engine.GeneratorAverageTemperature())
	assert.Equal(t, 1.0, engine.GeneratorEffectivity())
	assert.Equal(t, 900000.0, engine.GeneratorElectricalProduction())
}

func TestGenerator_ZeroThroughputAveragesPlainly(t *testing.T) {
	g, p := newTestGraph(t)
	steam := p.Item("steam")
	boiler, _ := recipeNodeFor(t, g, p.Recipe("boil"))
	engine, _ := recipeNodeFor(t, g, p.Recipe("steam-power"))
	tank := g.CreateSupplierNode(steam, Location{})
	_, err := g.CreateLink(boiler.ID(), engine.ID(), steam)
	require.NoError(t, err)
	_, err = g.CreateLink(tank.ID(), engine.ID(), steam)
	require.NoError(t, err)

	assert.InDelta(t, 132.5, engine.GeneratorAverageTemperature(), 1e-9)
}

func TestGenerator_PassthroughLoopTerminates(t *testing.T) {
	g, p := newTestGraph(t)
	steam := p.Item("steam")
	boiler, _ := recipeNodeFor(t, g, p.Recipe("boil"))
	engine, _ := recipeNodeFor(t, g, p.Recipe("steam-power"))
	a := g.CreatePassthroughNode(steam, Location{})
	b := g.CreatePassthroughNode(steam, Location{})

	for _, l := range []struct {
		from, to NodeID
		rate     float64
	}{
		{b.ID(), a.ID(), 1},
		{boiler.ID(), a.ID(), 1},
		{a.ID(), b.ID(), 1},
		{a.ID(), engine.ID(), 2},
	} {
		_, err := g.RestoreLink(l.from, l.to, steam, l.rate)
		require.NoError(t, err)
	}

	// b only sees a, which is already on the path: (165 + 100) / 2.
	assert.InDelta(t, 132.5, engine.GeneratorAverageTemperature(), 1e-9)
}

func TestGenerator_NonGeneratorPanics(t *testing.T) {
	g, p := newTestGraph(t)
	ro, _ := recipeNodeFor(t, g, p.Recipe("gear"))

	assert.Panics(t, func() { ro.GeneratorAverageTemperature() })
	assert.Zero(t, ro.GeneratorElectricalProduction())
}

func TestTotals_Electrical(t *testing.T) {
	testCases := []struct {
		name      string
		count     float64
		wantDrain float64
	}{
		{name: "whole", count: 2, wantDrain: 2},
		{name: "partial above threshold", count: 2.5, wantDrain: 3},
		{name: "partial below threshold", count: 2.02, wantDrain: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, p := newTestGraph(t, WithSolver(DesiredRateSolver{}))
			ro, ctrl := recipeNodeFor(t, g, p.Recipe("gear"))
			ctrl.SetAssembler(p.Assembler("asm-2"))
			ctrl.SetRateType(RateManual)
			ctrl.SetDesiredAssemblerCount(tc.count)

			require.InDelta(t, tc.count, ro.ActualAssemblerCount(), 1e-9)
			want := tc.wantDrain*5000 + tc.count*150000
			assert.InDelta(t, want, ro.TotalAssemblerElectricalConsumption(), 1e-6)

			g.SetRateUnit(PerMinute)
			assert.InDelta(t, 60*want, ro.TotalAssemblerElectricalConsumption(), 1e-4)
		})
	}
}

func TestTotals_Beacons(t *testing.T) {
	testCases := []struct {
		count float64
		want  float64
	}{
		{count: 2.5, want: 7},
		{count: 2.1, want: 5},
		{count: 0, want: 1},
	}

	for _, tc := range testCases {
		g, p := newTestGraph(t, WithSolver(DesiredRateSolver{}))
		ro, ctrl := recipeNodeFor(t, g, p.Recipe("gear"))
		ctrl.SetAssembler(p.Assembler("asm-2"))
		assert.Zero(t, ro.TotalBeacons(), "no beacon selected")

		ctrl.SetBeacon(p.Beacon("beacon"))
		ctrl.SetBeaconsPerAssembler(2)
		ctrl.SetBeaconsConst(1)
		ctrl.SetRateType(RateManual)
		ctrl.SetDesiredAssemblerCount(tc.count)

		assert.Equal(t, tc.want, ro.TotalBeacons(), "count %v", tc.count)
		assert.InDelta(t, tc.want*480000, ro.TotalBeaconElectricalConsumption(), 1e-6, "count %v", tc.count)
	}
}

func TestTotals_CraftsFuelAndPollution(t *testing.T) {
	g, p := newTestGraph(t, WithSolver(DesiredRateSolver{}), WithRateUnit(PerMinute))

	gear, gearCtrl := recipeNodeFor(t, g, p.Recipe("gear"))
	gearCtrl.SetAssembler(p.Assembler("asm-2"))
	assert.InDelta(t, 120, gear.TotalCrafts(), 1e-9)
	// 0.000001 per joule over 155kW.
	assert.InDelta(t, 0.155, gear.AssemblerPollutionProduction(), 1e-12)
	assert.Zero(t, gear.TotalAssemblerFuelConsumption())

	plate, plateCtrl := recipeNodeFor(t, g, p.Recipe("iron-plate"))
	plateCtrl.SetRateType(RateManual)
	plateCtrl.SetDesiredAssemblerCount(2)
	// Two furnaces, each burning 90kW of 4MJ coal.
	assert.InDelta(t, 60*2*90000.0/4e6, plate.TotalAssemblerFuelConsumption(), 1e-9)
	assert.Zero(t, plate.TotalAssemblerElectricalConsumption(), "burners draw no power")
}

func TestTotals_PollutionWithBeacons(t *testing.T) {
	g, p := newTestGraph(t, WithSolver(DesiredRateSolver{}), WithRateUnit(PerMinute))
	ro, ctrl := recipeNodeFor(t, g, p.Recipe("gear"))
	ctrl.SetAssembler(p.Assembler("asm-2"))
	assert.Zero(t, ro.BeaconPollutionProduction(), "no beacon selected")

	ctrl.SetBeacon(p.Beacon("beacon"))
	ctrl.SetBeaconsPerAssembler(1)
	ctrl.SetRateType(RateManual)
	ctrl.SetDesiredAssemblerCount(2)
	require.Equal(t, 2.0, ro.TotalBeacons())

	// 0.000002 per joule over 480kW.
	assert.InDelta(t, 0.96, ro.BeaconPollutionProduction(), 1e-12)
	// Two assemblers at 0.155 and two beacons at 0.96, per minute.
	assert.InDelta(t, 60*(2*0.155+2*0.96), ro.TotalPollutionProduction(), 1e-9)
}
