package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/prodgraph/internal/preset"
	"github.com/vk/prodgraph/internal/preset/hclpreset"
	"github.com/vk/prodgraph/internal/preset/yamlpreset"
)

// LoaderFor picks the preset loader for path. An explicit format wins;
// otherwise a file is judged by its extension and a directory by the first
// preset file found at its top level. HCL is the fallback.
func LoaderFor(format, path string) (preset.Loader, error) {
	if format == "" {
		detected, err := detectFormat(path)
		if err != nil {
			return nil, err
		}
		format = detected
	}
	switch format {
	case "hcl":
		return hclpreset.NewLoader(), nil
	case "yaml":
		return yamlpreset.NewLoader(), nil
	}
	return nil, fmt.Errorf("unknown preset format %q (want hcl or yaml)", format)
}

func detectFormat(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("preset path: %w", err)
	}
	if !info.IsDir() {
		return formatOf(path), nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("preset path: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch ext := strings.ToLower(filepath.Ext(e.Name())); ext {
		case ".hcl", ".yaml", ".yml":
			return formatOf(e.Name()), nil
		}
	}
	return "hcl", nil
}

func formatOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "hcl"
}
