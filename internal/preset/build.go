package preset

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/vk/prodgraph/internal/ctxlog"
)

const (
	// DefaultCategory is the crafting category of recipes and assemblers
	// that do not declare one.
	DefaultCategory = "crafting"
	// DefaultTemperature is the temperature of items that do not declare one.
	DefaultTemperature = 15.0
)

// Build links definitions into a Preset. Unlike save-file resolution, a
// dangling reference inside the preset itself is a hard error: the preset is
// the authority the rest of the program resolves against.
func Build(ctx context.Context, name string, defs *Definitions) (*Preset, error) {
	logger := ctxlog.FromContext(ctx).With("preset", name)
	logger.Debug("Building preset.", "items", len(defs.Items), "recipes", len(defs.Recipes),
		"assemblers", len(defs.Assemblers), "modules", len(defs.Modules), "beacons", len(defs.Beacons))

	p := newPreset(name)
	b := &builder{p: p}

	for _, d := range defs.Items {
		b.addItem(d)
	}
	for _, d := range defs.Items {
		b.linkBurnResult(d)
	}
	for _, d := range defs.Modules {
		b.addModule(d)
	}
	allModules := p.Modules()
	for _, d := range defs.Beacons {
		b.addBeacon(d, allModules)
	}
	for _, d := range defs.Assemblers {
		b.addAssembler(d, allModules)
	}
	for _, d := range defs.Recipes {
		b.addRecipe(d, allModules)
	}

	if len(b.errs) > 0 {
		return nil, fmt.Errorf("preset %q is invalid:\n  %s", name, strings.Join(b.errs, "\n  "))
	}

	for _, r := range p.Recipes() {
		if len(r.Assemblers) == 0 {
			logger.Warn("Recipe has no assembler able to craft it.", "recipe", r.Name, "category", r.Category)
		}
	}
	logger.Debug("Preset built.")
	return p, nil
}

type builder struct {
	p    *Preset
	errs []string

	// byCategory is filled while assemblers are added and read by recipes.
	byCategory map[string][]*Assembler
}

func (b *builder) fail(format string, args ...any) {
	b.errs = append(b.errs, fmt.Sprintf(format, args...))
}

func (b *builder) item(owner, name string) *Item {
	it, ok := b.p.items[name]
	if !ok {
		b.fail("%s: unknown item %q", owner, name)
	}
	return it
}

func (b *builder) modules(owner string, names []string, all []*Module) []*Module {
	if len(names) == 0 {
		return slices.Clone(all)
	}
	out := make([]*Module, 0, len(names))
	for _, name := range names {
		m, ok := b.p.modules[name]
		if !ok {
			b.fail("%s: unknown module %q", owner, name)
			continue
		}
		out = append(out, m)
	}
	return out
}

func (b *builder) addItem(d *ItemDef) {
	if _, dup := b.p.items[d.Name]; dup {
		b.fail("item %q: defined more than once", d.Name)
		return
	}
	b.p.items[d.Name] = &Item{
		Status:             status(d.Enabled, d.Available),
		Name:               d.Name,
		FriendlyName:       friendly(d.FriendlyName, d.Name),
		FuelValue:          d.FuelValue,
		DefaultTemperature: floatOr(d.DefaultTemperature, DefaultTemperature),
	}
}

func (b *builder) linkBurnResult(d *ItemDef) {
	if d.BurnResult == "" {
		return
	}
	it := b.p.items[d.Name]
	if it == nil {
		return
	}
	it.BurnResult = b.item("item "+d.Name, d.BurnResult)
}

func (b *builder) addModule(d *ModuleDef) {
	if _, dup := b.p.modules[d.Name]; dup {
		b.fail("module %q: defined more than once", d.Name)
		return
	}
	b.p.modules[d.Name] = &Module{
		Status:            status(d.Enabled, d.Available),
		Name:              d.Name,
		FriendlyName:      friendly(d.FriendlyName, d.Name),
		SpeedBonus:        d.SpeedBonus,
		ProductivityBonus: d.ProductivityBonus,
		ConsumptionBonus:  d.ConsumptionBonus,
		PollutionBonus:    d.PollutionBonus,
	}
}

func (b *builder) addBeacon(d *BeaconDef, allModules []*Module) {
	owner := "beacon " + d.Name
	if _, dup := b.p.beacons[d.Name]; dup {
		b.fail("%s: defined more than once", owner)
		return
	}
	src, ok := ParseEnergySource(d.EnergySource)
	if !ok {
		b.fail("%s: unknown energy source %q", owner, d.EnergySource)
	}
	b.p.beacons[d.Name] = &Beacon{
		Status:            status(d.Enabled, d.Available),
		Name:              d.Name,
		FriendlyName:      friendly(d.FriendlyName, d.Name),
		ModuleSlots:       d.ModuleSlots,
		Effectivity:       d.Effectivity,
		EnergySource:      src,
		EnergyConsumption: d.EnergyConsumption,
		EnergyDrain:       d.EnergyDrain,
		Pollution:         d.Pollution,
		Modules:           b.modules(owner, d.Modules, allModules),
	}
}

func (b *builder) addAssembler(d *AssemblerDef, allModules []*Module) {
	owner := "assembler " + d.Name
	if _, dup := b.p.assemblers[d.Name]; dup {
		b.fail("%s: defined more than once", owner)
		return
	}
	et, ok := ParseEntityType(d.EntityType)
	if !ok {
		b.fail("%s: unknown entity type %q", owner, d.EntityType)
	}
	src, ok := ParseEnergySource(d.EnergySource)
	if !ok {
		b.fail("%s: unknown energy source %q", owner, d.EnergySource)
	}
	if d.Speed <= 0 {
		b.fail("%s: speed must be positive, got %v", owner, d.Speed)
	}

	a := &Assembler{
		Status:                 status(d.Enabled, d.Available),
		Name:                   d.Name,
		FriendlyName:           friendly(d.FriendlyName, d.Name),
		EntityType:             et,
		EnergySource:           src,
		Speed:                  d.Speed,
		EnergyConsumption:      d.EnergyConsumption,
		EnergyDrain:            d.EnergyDrain,
		EnergyProduction:       d.EnergyProduction,
		ConsumptionEffectivity: floatOr(d.ConsumptionEffectivity, 1),
		Pollution:              d.Pollution,
		ModuleSlots:            d.ModuleSlots,
		NeighbourBonus:         d.NeighbourBonus,
		OperationTemperature:   d.OperationTemperature,
		BaseProductivityBonus:  d.BaseProductivityBonus,
	}
	if d.ModuleSlots > 0 {
		a.Modules = b.modules(owner, d.Modules, allModules)
	}
	for _, name := range d.Fuels {
		if it := b.item(owner, name); it != nil {
			a.Fuels = append(a.Fuels, it)
		}
	}
	if a.IsBurner() && len(a.Fuels) == 0 {
		b.fail("%s: burner assembler declares no fuels", owner)
	}

	categories := d.Categories
	if len(categories) == 0 {
		categories = []string{DefaultCategory}
	}
	b.p.assemblers[d.Name] = a
	if b.byCategory == nil {
		b.byCategory = make(map[string][]*Assembler)
	}
	for _, c := range categories {
		b.byCategory[c] = append(b.byCategory[c], a)
	}
}

func (b *builder) addRecipe(d *RecipeDef, allModules []*Module) {
	owner := "recipe " + d.Name
	if _, dup := b.p.recipes[d.Name]; dup {
		b.fail("%s: defined more than once", owner)
		return
	}
	if d.Time <= 0 {
		b.fail("%s: time must be positive, got %v", owner, d.Time)
	}
	category := d.Category
	if category == "" {
		category = DefaultCategory
	}

	r := &Recipe{
		Status:       status(d.Enabled, d.Available),
		Name:         d.Name,
		FriendlyName: friendly(d.FriendlyName, d.Name),
		Time:         d.Time,
		Category:     category,
		Modules:      b.modules(owner, d.Modules, allModules),
		Assemblers:   slices.Clone(b.byCategory[category]),
	}
	for _, in := range d.Ingredients {
		it := b.item(owner, in.Item)
		if it == nil {
			continue
		}
		tr := Unbounded
		if in.MinTemperature != nil {
			tr.Min = *in.MinTemperature
		}
		if in.MaxTemperature != nil {
			tr.Max = *in.MaxTemperature
		}
		r.Ingredients = append(r.Ingredients, Ingredient{Item: it, Amount: in.Amount, Temperature: tr})
	}
	for _, out := range d.Products {
		it := b.item(owner, out.Item)
		if it == nil {
			continue
		}
		r.Products = append(r.Products, Product{Item: it, Amount: out.Amount, Temperature: floatOr(out.Temperature, it.DefaultTemperature)})
		it.ProductionRecipes = append(it.ProductionRecipes, r)
	}
	b.p.recipes[d.Name] = r
}

func status(enabled, available *bool) Status {
	return Status{Enabled: boolOr(enabled, true), Available: boolOr(available, true)}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func friendly(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
