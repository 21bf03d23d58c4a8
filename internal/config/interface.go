package config

import (
	"context"
)

// Loader is the interface for a format-specific project definition loader.
type Loader interface {
	// Load reads project definitions from the given paths, translates
	// them into the format-agnostic model, and validates the scalar
	// fields. Paths may be files or directories.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
