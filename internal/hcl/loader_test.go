package hcl

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/wasmbundle/internal/config"
	"github.com/vk/wasmbundle/internal/ctxlog"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return ctxlog.WithLogger(context.Background(), logger)
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "bundle.hcl"), []byte(content), 0o644))
	return root
}

func TestLoadMissingManifestYieldsDefaults(t *testing.T) {
	t.Parallel()

	loader := NewLoader()
	m, err := loader.Load(testContext(), t.TempDir(), "bundle.hcl", config.ModeDevelopment)
	require.NoError(t, err)
	require.Equal(t, &config.Manifest{}, m)
}

func TestLoadFlatAttributes(t *testing.T) {
	t.Parallel()

	root := writeManifest(t, `
entry        = "src/main.js"
output_dir   = "build"
bundle       = "app.js"
template     = "shell.html"
static_dir   = "public"
crate_dir    = "crate"
wasm_out     = "wasm"
provide_from = "fast-text-encoding"
`)

	loader := NewLoader()
	m, err := loader.Load(testContext(), root, "bundle.hcl", config.ModeDevelopment)
	require.NoError(t, err)

	require.Equal(t, &config.Manifest{
		Entry:          "src/main.js",
		OutputDir:      "build",
		BundleName:     "app.js",
		Template:       "shell.html",
		StaticDir:      "public",
		CrateDir:       "crate",
		WasmOutDir:     "wasm",
		FallbackModule: "fast-text-encoding",
	}, m)
}

func TestLoadModeInterpolation(t *testing.T) {
	t.Parallel()

	root := writeManifest(t, `output_dir = "dist-${mode}"`)

	loader := NewLoader()
	m, err := loader.Load(testContext(), root, "bundle.hcl", config.ModeProduction)
	require.NoError(t, err)
	require.Equal(t, "dist-production", m.OutputDir)
}

func TestLoadRejectsUnknownAttribute(t *testing.T) {
	t.Parallel()

	root := writeManifest(t, `watch = "true"`)

	loader := NewLoader()
	_, err := loader.Load(testContext(), root, "bundle.hcl", config.ModeDevelopment)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown manifest attribute")
}

func TestLoadRejectsNonStringValue(t *testing.T) {
	t.Parallel()

	root := writeManifest(t, `static_dir = ["a", "b"]`)

	loader := NewLoader()
	_, err := loader.Load(testContext(), root, "bundle.hcl", config.ModeDevelopment)
	require.Error(t, err)
	require.Contains(t, err.Error(), "must be a string")
}

func TestLoadRejectsInvalidSyntax(t *testing.T) {
	t.Parallel()

	root := writeManifest(t, `entry = `)

	loader := NewLoader()
	_, err := loader.Load(testContext(), root, "bundle.hcl", config.ModeDevelopment)
	require.Error(t, err)
}
