package savefile

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Encode renders f as HCL. Zero-valued optional attributes are left out.
func Encode(f *File) []byte {
	out := hclwrite.NewEmptyFile()
	root := out.Body()
	root.SetAttributeValue("format_version", cty.StringVal(f.FormatVersion))
	root.SetAttributeValue("graph_id", cty.StringVal(f.GraphID))
	if f.RateUnit != "" {
		root.SetAttributeValue("rate_unit", cty.StringVal(f.RateUnit))
	}

	for _, n := range f.Nodes {
		root.AppendNewline()
		body := root.AppendNewBlock("node", []string{n.Kind}).Body()
		body.SetAttributeValue("id", cty.NumberIntVal(int64(n.ID)))
		setNumber(body, "x", n.X)
		setNumber(body, "y", n.Y)
		setString(body, "rate_type", n.RateType)
		setNumber(body, "desired_rate", n.DesiredRate)
		setString(body, "item", n.Item)
		setString(body, "recipe", n.Recipe)
		setString(body, "assembler", n.Assembler)
		setString(body, "fuel", n.Fuel)
		setString(body, "burnt", n.Burnt)
		setStrings(body, "modules", n.Modules)
		setString(body, "beacon", n.Beacon)
		setStrings(body, "beacon_modules", n.BeaconModules)
		setNumber(body, "beacon_count", n.BeaconCount)
		setNumber(body, "beacons_per_assembler", n.BeaconsPerAssembler)
		setNumber(body, "beacons_const", n.BeaconsConst)
		setNumber(body, "neighbour_count", n.NeighbourCount)
		setNumber(body, "desired_assembler_count", n.DesiredAssemblerCount)
	}

	for _, l := range f.Links {
		root.AppendNewline()
		body := root.AppendNewBlock("link", nil).Body()
		body.SetAttributeValue("supplier", cty.NumberIntVal(int64(l.Supplier)))
		body.SetAttributeValue("consumer", cty.NumberIntVal(int64(l.Consumer)))
		body.SetAttributeValue("item", cty.StringVal(l.Item))
		setNumber(body, "throughput", l.Throughput)
	}
	return out.Bytes()
}

// Write encodes f to w.
func Write(w io.Writer, f *File) error {
	if _, err := w.Write(Encode(f)); err != nil {
		return fmt.Errorf("write save file: %w", err)
	}
	return nil
}

// WriteFile encodes f to path, replacing any existing file.
func WriteFile(path string, f *File) error {
	if err := os.WriteFile(path, Encode(f), 0o644); err != nil {
		return fmt.Errorf("write save file %s: %w", path, err)
	}
	return nil
}

func setString(body *hclwrite.Body, name, v string) {
	if v != "" {
		body.SetAttributeValue(name, cty.StringVal(v))
	}
}

func setNumber(body *hclwrite.Body, name string, v float64) {
	if v != 0 {
		body.SetAttributeValue(name, cty.NumberFloatVal(v))
	}
}

func setStrings(body *hclwrite.Body, name string, vs []string) {
	if len(vs) == 0 {
		return
	}
	vals := make([]cty.Value, len(vs))
	for i, v := range vs {
		vals[i] = cty.StringVal(v)
	}
	body.SetAttributeValue(name, cty.ListVal(vals))
}
