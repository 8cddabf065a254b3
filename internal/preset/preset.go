// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Preset lookup tables and the missing placeholders
// handed out for unknown names.

package preset

import "sort"

// Preset is the linked, read-only reference data set. Lookups never fail:
// unknown names resolve to cached placeholders marked IsMissing, so resolving
// the same unknown name twice yields the same pointer.
type Preset struct {
	Name string

	items      map[string]*Item
	recipes    map[string]*Recipe
	assemblers map[string]*Assembler
	modules    map[string]*Module
	beacons    map[string]*Beacon

	missingItems      map[string]*Item
	missingRecipes    map[string]*Recipe
	missingAssemblers map[string]*Assembler
	missingModules    map[string]*Module
	missingBeacons    map[string]*Beacon
}

func newPreset(name string) *Preset {
	return &Preset{
		Name:              name,
		items:             make(map[string]*Item),
		recipes:           make(map[string]*Recipe),
		assemblers:        make(map[string]*Assembler),
		modules:           make(map[string]*Module),
		beacons:           make(map[string]*Beacon),
		missingItems:      make(map[string]*Item),
		missingRecipes:    make(map[string]*Recipe),
		missingAssemblers: make(map[string]*Assembler),
		missingModules:    make(map[string]*Module),
		missingBeacons:    make(map[string]*Beacon),
	}
}

// Item resolves an item by name.
func (p *Preset) Item(name string) *Item {
	if it, ok := p.items[name]; ok {
		return it
	}
	if it, ok := p.missingItems[name]; ok {
		return it
	}
	it := &Item{Status: missing(), Name: name, FriendlyName: name}
	p.missingItems[name] = it
	return it
}

// Recipe resolves a recipe by name. A missing recipe has no ingredients,
// products or assemblers.
func (p *Preset) Recipe(name string) *Recipe {
	if r, ok := p.recipes[name]; ok {
		return r
	}
	if r, ok := p.missingRecipes[name]; ok {
		return r
	}
	r := &Recipe{Status: missing(), Name: name, FriendlyName: name, Time: 1}
	p.missingRecipes[name] = r
	return r
}

// Assembler resolves an assembler by name.
func (p *Preset) Assembler(name string) *Assembler {
	if a, ok := p.assemblers[name]; ok {
		return a
	}
	if a, ok := p.missingAssemblers[name]; ok {
		return a
	}
	a := MissingAssembler(name)
	p.missingAssemblers[name] = a
	return a
}

// Module resolves a module by name.
func (p *Preset) Module(name string) *Module {
	if m, ok := p.modules[name]; ok {
		return m
	}
	if m, ok := p.missingModules[name]; ok {
		return m
	}
	m := &Module{Status: missing(), Name: name, FriendlyName: name}
	p.missingModules[name] = m
	return m
}

// Beacon resolves a beacon by name.
func (p *Preset) Beacon(name string) *Beacon {
	if b, ok := p.beacons[name]; ok {
		return b
	}
	if b, ok := p.missingBeacons[name]; ok {
		return b
	}
	b := &Beacon{Status: missing(), Name: name, FriendlyName: name}
	p.missingBeacons[name] = b
	return b
}

// LookupRecipe returns a recipe only if the preset defines it.
func (p *Preset) LookupRecipe(name string) (*Recipe, bool) {
	r, ok := p.recipes[name]
	return r, ok
}

// LookupItem returns an item only if the preset defines it.
func (p *Preset) LookupItem(name string) (*Item, bool) {
	it, ok := p.items[name]
	return it, ok
}

// Items returns every defined item sorted by name.
func (p *Preset) Items() []*Item { return sortedValues(p.items) }

// Recipes returns every defined recipe sorted by name.
func (p *Preset) Recipes() []*Recipe { return sortedValues(p.recipes) }

// Assemblers returns every defined assembler sorted by name.
func (p *Preset) Assemblers() []*Assembler { return sortedValues(p.assemblers) }

// Modules returns every defined module sorted by name.
func (p *Preset) Modules() []*Module { return sortedValues(p.modules) }

// Beacons returns every defined beacon sorted by name.
func (p *Preset) Beacons() []*Beacon { return sortedValues(p.beacons) }

// MissingAssembler builds a standalone placeholder assembler. Speed and
// consumption effectivity are 1 so rate math on a broken node stays finite.
func MissingAssembler(name string) *Assembler {
	return &Assembler{
		Status:                 missing(),
		Name:                   name,
		FriendlyName:           name,
		Speed:                  1,
		ConsumptionEffectivity: 1,
	}
}

func missing() Status {
	return Status{IsMissing: true}
}

func sortedValues[T any](m map[string]T) []T {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
