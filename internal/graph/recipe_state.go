package graph

import (
	"slices"

	"github.com/vk/prodgraph/internal/preset"
)

// Errors is the set of configuration errors of a recipe node. Every flag is
// evaluated independently on each state update.
type Errors uint16

const (
	RecipeIsMissing Errors = 1 << iota
	AssemblerIsMissing
	AssemblerCantCraft
	BurnerNoFuelSet
	FuelIsMissing
	InvalidFuel
	InvalidFuelRemains
	FuelOnNonBurner
	AModuleIsMissing
	AModuleLimitExceeded
	BeaconIsMissing
	BModuleIsMissing
	BModuleLimitExceeded
	InvalidLinks
)

// Has reports whether every flag of f is set in e.
func (e Errors) Has(f Errors) bool { return e&f == f }

// Any reports whether at least one flag of f is set in e.
func (e Errors) Any(f Errors) bool { return e&f != 0 }

var errorNames = []struct {
	flag Errors
	name string
}{
	{RecipeIsMissing, "RecipeIsMissing"},
	{AssemblerIsMissing, "AssemblerIsMissing"},
	{AssemblerCantCraft, "AssemblerCantCraft"},
	{BurnerNoFuelSet, "BurnerNoFuelSet"},
	{FuelIsMissing, "FuelIsMissing"},
	{InvalidFuel, "InvalidFuel"},
	{InvalidFuelRemains, "InvalidFuelRemains"},
	{FuelOnNonBurner, "FuelOnNonBurner"},
	{AModuleIsMissing, "AModuleIsMissing"},
	{AModuleLimitExceeded, "AModuleLimitExceeded"},
	{BeaconIsMissing, "BeaconIsMissing"},
	{BModuleIsMissing, "BModuleIsMissing"},
	{BModuleLimitExceeded, "BModuleLimitExceeded"},
	{InvalidLinks, "InvalidLinks"},
}

func (e Errors) String() string {
	if e == 0 {
		return "Clean"
	}
	var s string
	for _, en := range errorNames {
		if e.Has(en.flag) {
			if s != "" {
				s += "|"
			}
			s += en.name
		}
	}
	return s
}

// Warnings is the set of configuration warnings of a recipe node.
type Warnings uint16

const (
	RecipeIsDisabled Warnings = 1 << iota
	RecipeIsUnavailable
	AssemblerIsDisabled
	AssemblerIsUnavailable
	NoAvailableAssemblers
	FuelIsUnavailable
	FuelIsUncraftable
	NoAvailableFuels
	AModuleIsDisabled
	AModuleIsUnavailable
	BeaconIsDisabled
	BeaconIsUnavailable
	BModuleIsDisabled
	BModuleIsUnavailable
)

// Has reports whether every flag of f is set in w.
func (w Warnings) Has(f Warnings) bool { return w&f == f }

// Any reports whether at least one flag of f is set in w.
func (w Warnings) Any(f Warnings) bool { return w&f != 0 }

var warningNames = []struct {
	flag Warnings
	name string
}{
	{RecipeIsDisabled, "RecipeIsDisabled"},
	{RecipeIsUnavailable, "RecipeIsUnavailable"},
	{AssemblerIsDisabled, "AssemblerIsDisabled"},
	{AssemblerIsUnavailable, "AssemblerIsUnavailable"},
	{NoAvailableAssemblers, "NoAvailableAssemblers"},
	{FuelIsUnavailable, "FuelIsUnavailable"},
	{FuelIsUncraftable, "FuelIsUncraftable"},
	{NoAvailableFuels, "NoAvailableFuels"},
	{AModuleIsDisabled, "AModuleIsDisabled"},
	{AModuleIsUnavailable, "AModuleIsUnavailable"},
	{BeaconIsDisabled, "BeaconIsDisabled"},
	{BeaconIsUnavailable, "BeaconIsUnavailable"},
	{BModuleIsDisabled, "BModuleIsDisabled"},
	{BModuleIsUnavailable, "BModuleIsUnavailable"},
}

func (w Warnings) String() string {
	if w == 0 {
		return "Clean"
	}
	var s string
	for _, wn := range warningNames {
		if w.Has(wn.flag) {
			if s != "" {
				s += "|"
			}
			s += wn.name
		}
	}
	return s
}

// UpdateState recomputes both bitsets and the node state.
func (n *recipeNode) UpdateState() {
	n.errorSet = n.computeErrors()
	n.warningSet = n.computeWarnings()

	s := StateClean
	switch {
	case n.errorSet != 0:
		s = StateError
	case n.warningSet != 0:
		s = StateWarning
	}
	n.setState(n, s)
}

func (n *recipeNode) computeErrors() Errors {
	var e Errors
	a := n.assembler

	if n.recipe.IsMissing {
		e |= RecipeIsMissing
	}
	if a.IsMissing {
		e |= AssemblerIsMissing
	} else if !n.recipe.IsMissing && !slices.Contains(n.recipe.Assemblers, a) {
		e |= AssemblerCantCraft
	}

	if a.IsBurner() {
		if n.fuel == nil {
			e |= BurnerNoFuelSet
		} else {
			if n.fuel.IsMissing {
				e |= FuelIsMissing
			}
			if !a.AcceptsFuel(n.fuel) {
				e |= InvalidFuel
			}
			if n.fuel.BurnResult != n.fuelRemains() {
				e |= InvalidFuelRemains
			}
		}
	} else if !a.IsMissing && (n.fuel != nil || n.fuelRemainsOverride != nil) {
		e |= FuelOnNonBurner
	}

	if slices.ContainsFunc(n.assemblerModules, isMissingModule) {
		e |= AModuleIsMissing
	}
	if len(n.assemblerModules) > a.ModuleSlots {
		e |= AModuleLimitExceeded
	}

	if n.beacon != nil {
		if n.beacon.IsMissing {
			e |= BeaconIsMissing
		}
		if slices.ContainsFunc(n.beaconModules, isMissingModule) {
			e |= BModuleIsMissing
		}
		if len(n.beaconModules) > n.beacon.ModuleSlots {
			e |= BModuleLimitExceeded
		}
	} else if len(n.beaconModules) != 0 {
		e |= BModuleLimitExceeded
	}

	if !n.AllLinksValid() {
		e |= InvalidLinks
	}
	return e
}

func (n *recipeNode) computeWarnings() Warnings {
	var w Warnings
	a := n.assembler

	if !n.recipe.Enabled {
		w |= RecipeIsDisabled
	}
	if !n.recipe.Available {
		w |= RecipeIsUnavailable
	}
	if !a.Enabled {
		w |= AssemblerIsDisabled
	}
	if !a.Available {
		w |= AssemblerIsUnavailable
	}
	if !n.recipe.HasEnabledAssembler() {
		w |= NoAvailableAssemblers
	}

	if n.fuel != nil {
		if !n.fuel.Available {
			w |= FuelIsUnavailable
		}
		if !n.fuel.IsCraftable() {
			w |= FuelIsUncraftable
		}
		if !slices.ContainsFunc(a.Fuels, func(f *preset.Item) bool { return f.Enabled && f.IsCraftable() }) {
			w |= NoAvailableFuels
		}
	}

	if slices.ContainsFunc(n.assemblerModules, isDisabledModule) {
		w |= AModuleIsDisabled
	}
	if slices.ContainsFunc(n.assemblerModules, isUnavailableModule) {
		w |= AModuleIsUnavailable
	}
	if n.beacon != nil {
		if !n.beacon.Enabled {
			w |= BeaconIsDisabled
		}
		if !n.beacon.Available {
			w |= BeaconIsUnavailable
		}
	}
	if slices.ContainsFunc(n.beaconModules, isDisabledModule) {
		w |= BModuleIsDisabled
	}
	if slices.ContainsFunc(n.beaconModules, isUnavailableModule) {
		w |= BModuleIsUnavailable
	}
	return w
}

func isMissingModule(m *preset.Module) bool     { return m.IsMissing }
func isDisabledModule(m *preset.Module) bool    { return !m.Enabled }
func isUnavailableModule(m *preset.Module) bool { return !m.Available }
