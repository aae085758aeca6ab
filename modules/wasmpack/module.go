// Package wasmpack invokes the external crate build tool that compiles the
// separately-versioned module into a loadable wasm artifact. The tool is an
// opaque subprocess: it either produces the artifact or exits non-zero.
package wasmpack

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/vk/wasmbundle/internal/config"
	"github.com/vk/wasmbundle/internal/ctxlog"
	"github.com/vk/wasmbundle/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// stderrTailLines bounds how much tool output ends up in the diagnostic.
const stderrTailLines = 10

// BuildArgs assembles the tool's argument list for a compile step. The
// optimization flag follows the step's ForceMode, never the ambient mode.
func BuildArgs(cs config.CompileExternalStep, root string) []string {
	args := []string{"build", filepath.Join(root, cs.CrateDir)}
	if cs.ForceMode == string(config.ModeProduction) {
		args = append(args, "--release")
	} else {
		args = append(args, "--dev")
	}
	args = append(args,
		"--target", cs.Target,
		"--out-dir", filepath.Join(root, cs.OutDir),
	)
	return args
}

// OnRunCompileExternal is the handler for the compile_external step.
func OnRunCompileExternal(ctx context.Context, sc *registry.StepContext, step config.Step) error {
	logger := ctxlog.FromContext(ctx)
	cs := step.(config.CompileExternalStep)

	tool, err := exec.LookPath(cs.Tool)
	if err != nil {
		return fmt.Errorf("%w: tool '%s' not found in PATH", config.ErrExternalCompileFailed, cs.Tool)
	}

	args := BuildArgs(cs, sc.Root)
	logger.Info("Invoking external module build tool.", "tool", tool, "args", args)

	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Dir = sc.Root
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v%s", config.ErrExternalCompileFailed, cs.Tool, err, stderrTail(stderr.String()))
	}

	logger.Debug("External compile finished.", "crate", cs.CrateDir, "out", cs.OutDir)
	return nil
}

// stderrTail formats the last few lines of the tool's stderr for the
// diagnostic, or nothing when the tool was silent.
func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > stderrTailLines {
		lines = lines[len(lines)-stderrTailLines:]
	}
	return "\n" + strings.Join(lines, "\n")
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(config.KindCompileExternal, OnRunCompileExternal)
}
