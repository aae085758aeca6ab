package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ProjectRoot is the directory every configured path resolves inside.
	ProjectRoot string

	// ManifestPath is the project manifest, relative to ProjectRoot.
	ManifestPath string

	// OutputDir overrides the manifest's output directory when non-empty.
	OutputDir string

	// EnvMode is the raw NODE_ENV value read at startup.
	EnvMode string

	LogFormat string
	LogLevel  string

	// DryRun prints the resolved configuration and performs no build I/O.
	DryRun bool
}

// NewConfig validates an app configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProjectRoot == "" {
		return nil, errors.New("ProjectRoot is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
