package preset

import "context"

// Loader is the interface for a format-specific preset loader.
type Loader interface {
	// Load reads every preset file reachable from paths and returns the
	// merged, format-agnostic definitions.
	Load(ctx context.Context, paths ...string) (*Definitions, error)
}
