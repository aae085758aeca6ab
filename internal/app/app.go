package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/wasmbundle/internal/config"
	"github.com/vk/wasmbundle/internal/ctxlog"
	"github.com/vk/wasmbundle/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
	build    *config.BuildConfig
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registry. It
// panics on startup configuration errors; the caller recovers and turns the
// panic into a clean exit.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	mode := config.ModeFromEnv(appConfig.EnvMode)
	manifest, err := loader.Load(ctx, appConfig.ProjectRoot, appConfig.ManifestPath, mode)
	if err != nil {
		// A failure to load the manifest is a fatal startup error.
		panic(fmt.Errorf("failed to load manifest: %w", err))
	}
	logger.Debug("Manifest loaded into format-agnostic model.")

	buildCfg, err := config.Configure(config.Options{
		Root:      appConfig.ProjectRoot,
		EnvMode:   appConfig.EnvMode,
		Manifest:  manifest,
		OutputDir: appConfig.OutputDir,
	})
	if err != nil {
		panic(fmt.Errorf("invalid pipeline configuration: %w", err))
	}
	logger.Debug("Pipeline configuration resolved.", "mode", buildCfg.Mode, "steps", len(buildCfg.Steps))

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All step modules registered.", "count", reg.Len())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   appConfig,
		build:    buildCfg,
	}
}

// BuildConfig returns the resolved pipeline configuration. This is primarily
// for testing.
func (a *App) BuildConfig() *config.BuildConfig {
	return a.build
}
