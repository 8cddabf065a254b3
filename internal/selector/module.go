package selector

import (
	"fmt"

	"github.com/vk/prodgraph/internal/preset"
)

// ModuleStyle decides which module fills an assembler's slots.
type ModuleStyle int

const (
	ModuleNone ModuleStyle = iota
	ModuleSpeed
	ModuleProductivity
	ModuleProductivityOrSpeed
	ModuleEfficiency
)

var moduleStyleNames = map[ModuleStyle]string{
	ModuleNone:                "none",
	ModuleSpeed:               "speed",
	ModuleProductivity:        "productivity",
	ModuleProductivityOrSpeed: "productivity-or-speed",
	ModuleEfficiency:          "efficiency",
}

func (s ModuleStyle) String() string {
	if name, ok := moduleStyleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ModuleStyle(%d)", int(s))
}

// ParseModuleStyle maps a style name onto a ModuleStyle.
func ParseModuleStyle(s string) (ModuleStyle, error) {
	for style, name := range moduleStyleNames {
		if name == s {
			return style, nil
		}
	}
	return ModuleNone, fmt.Errorf("unknown module style %q", s)
}

// Modules picks assembler modules.
type Modules struct {
	DefaultStyle ModuleStyle
}

// NewModules returns a selector that leaves assemblers empty by default.
func NewModules() *Modules {
	return &Modules{DefaultStyle: ModuleNone}
}

// Modules picks modules for a crafting r using the default style.
func (s *Modules) Modules(a *preset.Assembler, r *preset.Recipe) []*preset.Module {
	return s.ModulesWithStyle(a, r, s.DefaultStyle)
}

// ModulesWithStyle fills every slot of a with the single best module for the
// style. Only enabled modules accepted by both a and r are considered. The
// result is empty when no module improves the chosen metric.
func (s *Modules) ModulesWithStyle(a *preset.Assembler, r *preset.Recipe, style ModuleStyle) []*preset.Module {
	if a == nil || a.ModuleSlots == 0 || style == ModuleNone {
		return nil
	}
	var allowed []*preset.Module
	for _, m := range a.Modules {
		if m.Enabled && !m.IsMissing && r.AllowsModule(m) {
			allowed = append(allowed, m)
		}
	}

	var pick *preset.Module
	switch style {
	case ModuleSpeed:
		pick = bestBy(allowed, func(m *preset.Module) float64 { return m.SpeedBonus })
	case ModuleProductivity:
		pick = bestBy(allowed, func(m *preset.Module) float64 { return m.ProductivityBonus })
	case ModuleProductivityOrSpeed:
		pick = bestBy(allowed, func(m *preset.Module) float64 { return m.ProductivityBonus })
		if pick == nil {
			pick = bestBy(allowed, func(m *preset.Module) float64 { return m.SpeedBonus })
		}
	case ModuleEfficiency:
		pick = bestBy(allowed, func(m *preset.Module) float64 { return -m.ConsumptionBonus })
	}
	if pick == nil {
		return nil
	}

	out := make([]*preset.Module, a.ModuleSlots)
	for i := range out {
		out[i] = pick
	}
	return out
}

// bestBy returns the module with the highest positive score, or nil.
func bestBy(modules []*preset.Module, score func(*preset.Module) float64) *preset.Module {
	var best *preset.Module
	var bestScore float64
	for _, m := range modules {
		if sc := score(m); sc > bestScore {
			best, bestScore = m, sc
		}
	}
	return best
}
