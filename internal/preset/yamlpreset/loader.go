// Package yamlpreset loads preset definitions from YAML documents. Each file
// holds top-level items, recipes, assemblers, modules and beacons lists whose
// keys match the HCL attribute names.
package yamlpreset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/prodgraph/internal/ctxlog"
	"github.com/vk/prodgraph/internal/fsutil"
	"github.com/vk/prodgraph/internal/preset"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML-specific implementation of the preset.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML preset loader.
func NewLoader() *Loader {
	return &Loader{}
}

type document struct {
	Items      []*preset.ItemDef      `yaml:"items"`
	Recipes    []*preset.RecipeDef    `yaml:"recipes"`
	Assemblers []*preset.AssemblerDef `yaml:"assemblers"`
	Modules    []*preset.ModuleDef    `yaml:"modules"`
	Beacons    []*preset.BeaconDef    `yaml:"beacons"`
}

// Load reads every .yaml / .yml file under paths, recursively. A file may carry
// several documents separated by "---".
func (l *Loader) Load(ctx context.Context, paths ...string) (*preset.Definitions, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML preset loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(paths, ".yaml", ".yml")
	if err != nil {
		return nil, err
	}

	defs := &preset.Definitions{}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", file, err)
		}
		part, err := Parse(data, file)
		if err != nil {
			return nil, err
		}
		defs.Merge(part)
	}

	logger.Debug("YAML preset loading complete.", "files", len(files), "items", len(defs.Items), "recipes", len(defs.Recipes))
	return defs, nil
}

// Parse decodes an in-memory YAML stream.
func Parse(data []byte, filename string) (*preset.Definitions, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	defs := &preset.Definitions{}
	for {
		var doc document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
		}
		defs.Merge(&preset.Definitions{
			Items:      doc.Items,
			Recipes:    doc.Recipes,
			Assemblers: doc.Assemblers,
			Modules:    doc.Modules,
			Beacons:    doc.Beacons,
		})
	}
	return defs, nil
}
