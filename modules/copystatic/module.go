// Package copystatic copies the project's static asset tree verbatim into
// the output directory.
package copystatic

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/wasmbundle/internal/config"
	"github.com/vk/wasmbundle/internal/ctxlog"
	"github.com/vk/wasmbundle/internal/fsutil"
	"github.com/vk/wasmbundle/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnRunCopyStatic is the handler for the copy_static step. The source
// directory is checked before any write so that a failing step leaves no
// files behind in the output directory.
func OnRunCopyStatic(ctx context.Context, sc *registry.StepContext, step config.Step) error {
	logger := ctxlog.FromContext(ctx)
	cs := step.(config.CopyStaticStep)

	src := filepath.Join(sc.Root, cs.SourceDir)
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", config.ErrSourceDirMissing, src)
		}
		return fmt.Errorf("error accessing static directory %s: %w", src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", config.ErrSourceDirMissing, src)
	}

	copied, err := fsutil.CopyDir(src, sc.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to copy static tree from %s: %w", src, err)
	}
	for _, f := range copied {
		sc.Report.RecordFile(f)
	}

	logger.Debug("Static assets copied.", "source", src, "files", len(copied))
	return nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(config.KindCopyStatic, OnRunCopyStatic)
}
