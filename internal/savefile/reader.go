package savefile

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Decode parses an HCL save file and checks its format version.
func Decode(src []byte, filename string) (*File, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse save file %s: %w", filename, diags)
	}
	var f File
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &f); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode save file %s: %w", filename, diags)
	}
	if err := CheckVersion(f.FormatVersion); err != nil {
		return nil, fmt.Errorf("save file %s: %w", filename, err)
	}
	return &f, nil
}

// Read decodes a save file from r.
func Read(r io.Reader, filename string) (*File, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read save file %s: %w", filename, err)
	}
	return Decode(src, filename)
}

// ReadFile decodes the save file at path.
func ReadFile(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read save file: %w", err)
	}
	return Decode(src, path)
}
