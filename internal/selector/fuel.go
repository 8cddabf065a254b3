package selector

import (
	"slices"

	"github.com/vk/prodgraph/internal/preset"
)

// Fuels picks fuels for burner assemblers. It remembers which fuels were used
// last and prefers them, so a graph tends to settle on one fuel.
type Fuels struct {
	preference []*preset.Item
}

// NewFuels returns a selector with an optional initial preference order.
func NewFuels(preferred ...*preset.Item) *Fuels {
	return &Fuels{preference: slices.Clone(preferred)}
}

// Fuel picks a fuel for a. Non-burners get nil. The most recently used
// craftable fuel the assembler accepts wins; otherwise the enabled, craftable
// fuel with the highest fuel value; otherwise the assembler's first fuel.
func (s *Fuels) Fuel(a *preset.Assembler) *preset.Item {
	if a == nil || !a.IsBurner() || len(a.Fuels) == 0 {
		return nil
	}
	for _, f := range s.preference {
		if a.AcceptsFuel(f) && usable(f) {
			return f
		}
	}

	var best *preset.Item
	for _, f := range a.Fuels {
		if !usable(f) {
			continue
		}
		if best == nil || f.FuelValue > best.FuelValue {
			best = f
		}
	}
	if best != nil {
		return best
	}
	return a.Fuels[0]
}

func usable(f *preset.Item) bool {
	return f.Enabled && !f.IsMissing && f.IsCraftable()
}

// UseFuel moves f to the front of the preference order. A nil fuel is
// ignored.
func (s *Fuels) UseFuel(f *preset.Item) {
	if f == nil {
		return
	}
	s.preference = slices.DeleteFunc(s.preference, func(x *preset.Item) bool { return x == f })
	s.preference = slices.Insert(s.preference, 0, f)
}

// Preference returns the current preference order, most recent first.
func (s *Fuels) Preference() []*preset.Item {
	return slices.Clone(s.preference)
}
