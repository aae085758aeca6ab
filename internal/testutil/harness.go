// Package testutil provides shared helpers for pipeline tests: a thread-safe
// log buffer, a temp-project harness, and a no-op replacement for the
// external compile step so tests never shell out to the real toolchain.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/wasmbundle/internal/app"
	"github.com/vk/wasmbundle/internal/config"
	"github.com/vk/wasmbundle/internal/hcl"
	"github.com/vk/wasmbundle/internal/registry"
	"github.com/vk/wasmbundle/modules/copystatic"
	"github.com/vk/wasmbundle/modules/htmltemplate"
	"github.com/vk/wasmbundle/modules/provide"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// NoopCompileModule registers a no-op handler for the compile_external step.
type NoopCompileModule struct{}

// Register implements registry.Module.
func (m *NoopCompileModule) Register(r *registry.Registry) {
	r.RegisterHandler(config.KindCompileExternal, func(ctx context.Context, sc *registry.StepContext, step config.Step) error {
		return nil
	})
}

// HarnessResult holds the outcomes of a pipeline test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
	Root      string
	OutputDir string
}

// RunPipelineTest builds a temporary project from the given relative
// file-path/content map, constructs the app with the provided NODE_ENV
// value, and runs the full pipeline with the external compile step stubbed
// out. Startup panics are recovered into the result's Err.
func RunPipelineTest(t *testing.T, files map[string]string, envMode string) *HarnessResult {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	appConfig := &app.Config{
		ProjectRoot:  root,
		ManifestPath: "bundle.hcl",
		EnvMode:      envMode,
		LogFormat:    "text",
		LogLevel:     "debug",
	}

	logBuffer := &SafeBuffer{}
	modules := []registry.Module{
		&htmltemplate.Module{},
		&NoopCompileModule{},
		&copystatic.Module{},
		&provide.Module{},
	}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, hcl.NewLoader(), modules...)
	}()

	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(context.Background())

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		Root:      root,
		OutputDir: filepath.Join(root, filepath.Dir(testApp.BuildConfig().OutputPath)),
	}
}
