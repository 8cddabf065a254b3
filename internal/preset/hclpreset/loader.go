// Package hclpreset loads preset definitions from HCL files.
//
// A preset file is a flat list of item, recipe, assembler, module and beacon
// blocks. Attribute expressions are evaluated with a small set of unit
// variables so energy figures can be written the way they are quoted:
//
//	assembler "assembling-machine-2" {
//	  speed              = 0.75
//	  energy_consumption = 150 * kW
//	  energy_drain       = 5 * kW
//	  module_slots       = 2
//	}
package hclpreset

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/prodgraph/internal/ctxlog"
	"github.com/vk/prodgraph/internal/fsutil"
	"github.com/vk/prodgraph/internal/preset"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL-specific implementation of the preset.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL preset loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Items      []*preset.ItemDef      `hcl:"item,block"`
	Recipes    []*preset.RecipeDef    `hcl:"recipe,block"`
	Assemblers []*preset.AssemblerDef `hcl:"assembler,block"`
	Modules    []*preset.ModuleDef    `hcl:"module,block"`
	Beacons    []*preset.BeaconDef    `hcl:"beacon,block"`
	Remain     hcl.Body               `hcl:",remain"`
}

// Load parses every .hcl file reachable from paths and merges the blocks.
func (l *Loader) Load(ctx context.Context, paths ...string) (*preset.Definitions, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL preset loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL preset files.", "count", len(files))

	parser := hclparse.NewParser()
	defs := &preset.Definitions{}
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		part, err := decode(hclFile.Body, file)
		if err != nil {
			return nil, err
		}
		defs.Merge(part)
	}

	logger.Debug("HCL preset loading complete.", "items", len(defs.Items), "recipes", len(defs.Recipes),
		"assemblers", len(defs.Assemblers), "modules", len(defs.Modules), "beacons", len(defs.Beacons))
	return defs, nil
}

// Parse decodes a single in-memory HCL document.
func Parse(src []byte, filename string) (*preset.Definitions, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decode(hclFile.Body, filename)
}

func decode(body hcl.Body, filename string) (*preset.Definitions, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, unitsContext(), &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	return &preset.Definitions{
		Items:      root.Items,
		Recipes:    root.Recipes,
		Assemblers: root.Assemblers,
		Modules:    root.Modules,
		Beacons:    root.Beacons,
	}, nil
}

// unitsContext exposes SI multipliers for watts and joules.
func unitsContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}
	for name, factor := range map[string]float64{
		"kW": 1e3, "MW": 1e6, "GW": 1e9,
		"kJ": 1e3, "MJ": 1e6, "GJ": 1e9,
	} {
		vars[name] = cty.NumberFloatVal(factor)
	}
	return &hcl.EvalContext{Variables: vars}
}
