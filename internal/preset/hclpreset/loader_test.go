package hclpreset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestParse_UnitVariables(t *testing.T) {
	defs, err := Parse([]byte(`
assembler "asm-2" {
  speed              = 0.75
  energy_consumption = 150 * kW
  energy_drain       = 5 * kW
  module_slots       = 2
}
item "cell" {
  fuel_value  = 8 * GJ
  burn_result = "spent"
}
`), "units.hcl")
	require.NoError(t, err)

	require.Len(t, defs.Assemblers, 1)
	a := defs.Assemblers[0]
	assert.Equal(t, "asm-2", a.Name)
	assert.Equal(t, 150000.0, a.EnergyConsumption)
	assert.Equal(t, 5000.0, a.EnergyDrain)
	assert.Equal(t, 2, a.ModuleSlots)
	require.Len(t, defs.Items, 1)
	assert.Equal(t, 8e9, defs.Items[0].FuelValue)
	assert.Equal(t, "spent", defs.Items[0].BurnResult)
}

func TestParse_RecipeBlocks(t *testing.T) {
	defs, err := Parse([]byte(`
recipe "steam-power" {
  time     = 1
  category = "steam-gen"
  ingredient "steam" {
    amount          = 1
    min_temperature = 15
  }
  product "power" { amount = 1 }
}
`), "recipes.hcl")
	require.NoError(t, err)

	require.Len(t, defs.Recipes, 1)
	r := defs.Recipes[0]
	require.Len(t, r.Ingredients, 1)
	assert.Equal(t, "steam", r.Ingredients[0].Item)
	require.NotNil(t, r.Ingredients[0].MinTemperature)
	assert.Equal(t, 15.0, *r.Ingredients[0].MinTemperature)
	assert.Nil(t, r.Ingredients[0].MaxTemperature)
	assert.Equal(t, "power", r.Products[0].Item)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte(`item "x" {`), "broken.hcl")
	assert.ErrorContains(t, err, "failed to parse HCL file broken.hcl")

	_, err = Parse([]byte(`assembler "a" { speed = 1 * TW }`), "units.hcl")
	assert.ErrorContains(t, err, "failed to decode HCL file units.hcl")

	_, err = Parse([]byte(`recipe "r" {}`), "required.hcl")
	assert.ErrorContains(t, err, "failed to decode HCL file required.hcl")
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "items.hcl"), `item "ore" {}`)
	writeFile(t, filepath.Join(dir, "nested", "recipes.hcl"), `
recipe "mine" {
  time = 1
  product "ore" { amount = 1 }
}`)
	writeFile(t, filepath.Join(dir, "notes.txt"), `not a preset`)
	extra := filepath.Join(t.TempDir(), "extra.hcl")
	writeFile(t, extra, `module "speed" { speed_bonus = 0.2 }`)

	defs, err := NewLoader().Load(context.Background(), dir, extra, filepath.Join(dir, "items.hcl"))
	require.NoError(t, err)
	assert.Len(t, defs.Items, 1, "a file listed twice is read once")
	assert.Len(t, defs.Recipes, 1)
	assert.Len(t, defs.Modules, 1)

	_, err = NewLoader().Load(context.Background(), filepath.Join(dir, "absent"))
	assert.ErrorContains(t, err, "error accessing preset path")
}
