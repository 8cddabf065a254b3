// Package preset defines the reference data a production graph is built
// from: items, recipes, assemblers, modules and beacons. The data is read-only
// for the lifetime of a graph.
//
// Presets are loaded in two steps. A format-specific Loader (see the
// hclpreset and yamlpreset packages) decodes files into the format-agnostic
// Definitions model, and Build links the definitions by name into a Preset.
//
// Names that cannot be resolved when a saved graph is re-loaded do not fail
// the load. Preset.Item, Preset.Recipe and the other lookups hand back a
// placeholder marked IsMissing, so the owning node reports an ordinary
// "missing" error instead.
package preset
