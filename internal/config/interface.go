package config

import "context"

// Manifest is the format-agnostic representation of a project manifest. A
// zero value means "no override"; Configure fills in the defaults.
type Manifest struct {
	Entry          string
	OutputDir      string
	BundleName     string
	Template       string
	StaticDir      string
	CrateDir       string
	WasmOutDir     string
	FallbackModule string
}

// Loader is the interface for a format-specific manifest loader. Loaders
// translate their source format into the format-agnostic Manifest model.
type Loader interface {
	// Load reads the manifest at path, relative to the project root. A
	// missing file is not an error; the returned Manifest is then empty and
	// defaults apply. Mode is exposed to the manifest's expression scope.
	Load(ctx context.Context, root, path string, mode Mode) (*Manifest, error)
}
