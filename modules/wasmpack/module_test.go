package wasmpack

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/wasmbundle/internal/config"
	"github.com/vk/wasmbundle/internal/ctxlog"
	"github.com/vk/wasmbundle/internal/registry"
	"github.com/vk/wasmbundle/internal/report"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return ctxlog.WithLogger(context.Background(), logger)
}

func testStepContext(root string) *registry.StepContext {
	return &registry.StepContext{
		Root:   root,
		Mode:   config.ModeDevelopment,
		Report: report.New("development"),
	}
}

func testStep() config.CompileExternalStep {
	return config.CompileExternalStep{
		Tool:      "wasm-pack",
		CrateDir:  ".",
		OutDir:    "pkg",
		ForceMode: "production",
		Target:    "web",
	}
}

// installFakeTool writes an executable shell script named wasm-pack into a
// fresh directory and points PATH at it.
func installFakeTool(t *testing.T, script string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "wasm-pack")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	t.Setenv("PATH", dir)
}

func TestBuildArgs(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		forceMode string
		modeFlag  string
	}{
		{"production forces release", "production", "--release"},
		{"development uses dev profile", "development", "--dev"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			step := testStep()
			step.ForceMode = tc.forceMode

			args := BuildArgs(step, "/proj")
			require.Equal(t, []string{
				"build", "/proj",
				tc.modeFlag,
				"--target", "web",
				"--out-dir", "/proj/pkg",
			}, args)
		})
	}
}

func TestOnRunCompileExternalToolNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	err := OnRunCompileExternal(testContext(), testStepContext(t.TempDir()), testStep())
	require.ErrorIs(t, err, config.ErrExternalCompileFailed)
	require.Contains(t, err.Error(), "not found in PATH")
}

func TestOnRunCompileExternalSuccess(t *testing.T) {
	installFakeTool(t, "exit 0")

	err := OnRunCompileExternal(testContext(), testStepContext(t.TempDir()), testStep())
	require.NoError(t, err)
}

func TestOnRunCompileExternalNonZeroExit(t *testing.T) {
	installFakeTool(t, `echo "error[E0432]: unresolved import" >&2
exit 101`)

	err := OnRunCompileExternal(testContext(), testStepContext(t.TempDir()), testStep())
	require.ErrorIs(t, err, config.ErrExternalCompileFailed)
	// The diagnostic carries the tool's stderr tail.
	require.Contains(t, err.Error(), "unresolved import")
}
