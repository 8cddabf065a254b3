// Package selector holds the default heuristics a production graph uses to
// pick assemblers, fuels and modules for recipe nodes.
package selector

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/vk/prodgraph/internal/preset"
)

// AssemblerStyle ranks the assemblers able to craft a recipe.
type AssemblerStyle int

const (
	AssemblerBest AssemblerStyle = iota
	AssemblerWorst
	AssemblerBestNonBurner
	AssemblerWorstNonBurner
	AssemblerMostModules
)

var assemblerStyleNames = map[AssemblerStyle]string{
	AssemblerBest:           "best",
	AssemblerWorst:          "worst",
	AssemblerBestNonBurner:  "best-non-burner",
	AssemblerWorstNonBurner: "worst-non-burner",
	AssemblerMostModules:    "most-modules",
}

func (s AssemblerStyle) String() string {
	if name, ok := assemblerStyleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("AssemblerStyle(%d)", int(s))
}

// ParseAssemblerStyle maps a style name onto an AssemblerStyle.
func ParseAssemblerStyle(s string) (AssemblerStyle, error) {
	for style, name := range assemblerStyleNames {
		if name == s {
			return style, nil
		}
	}
	return AssemblerBest, fmt.Errorf("unknown assembler style %q", s)
}

// Assemblers picks assemblers for recipes.
type Assemblers struct {
	DefaultStyle AssemblerStyle
}

// NewAssemblers returns a selector preferring the fastest assembler.
func NewAssemblers() *Assemblers {
	return &Assemblers{DefaultStyle: AssemblerBest}
}

// Assembler picks an assembler for r using the default style.
func (s *Assemblers) Assembler(r *preset.Recipe) *preset.Assembler {
	return s.AssemblerWithStyle(r, s.DefaultStyle)
}

// AssemblerWithStyle picks an assembler for r. Enabled assemblers are
// preferred; if none is enabled every assembler of the recipe competes. It
// returns nil only when the recipe has no assembler at all.
func (s *Assemblers) AssemblerWithStyle(r *preset.Recipe, style AssemblerStyle) *preset.Assembler {
	candidates := make([]*preset.Assembler, 0, len(r.Assemblers))
	for _, a := range r.Assemblers {
		if a.Enabled && !a.IsMissing {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		candidates = slices.Clone(r.Assemblers)
	}
	if len(candidates) == 0 {
		return nil
	}

	bySpeed := func(a, b *preset.Assembler) int {
		if c := cmp.Compare(b.Speed, a.Speed); c != 0 {
			return c
		}
		return cmp.Compare(b.ModuleSlots, a.ModuleSlots)
	}
	burnersLast := func(a, b *preset.Assembler) int {
		switch {
		case a.IsBurner() == b.IsBurner():
			return 0
		case a.IsBurner():
			return 1
		default:
			return -1
		}
	}

	var order func(a, b *preset.Assembler) int
	switch style {
	case AssemblerWorst:
		order = func(a, b *preset.Assembler) int { return bySpeed(b, a) }
	case AssemblerBestNonBurner:
		order = func(a, b *preset.Assembler) int {
			return cmp.Or(burnersLast(a, b), bySpeed(a, b))
		}
	case AssemblerWorstNonBurner:
		order = func(a, b *preset.Assembler) int {
			return cmp.Or(burnersLast(a, b), bySpeed(b, a))
		}
	case AssemblerMostModules:
		order = func(a, b *preset.Assembler) int {
			return cmp.Or(cmp.Compare(b.ModuleSlots, a.ModuleSlots), bySpeed(a, b))
		}
	default:
		order = bySpeed
	}
	slices.SortStableFunc(candidates, order)
	return candidates[0]
}
