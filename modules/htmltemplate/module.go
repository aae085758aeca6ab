// Package htmltemplate renders the HTML shell of the bundle from a template
// file in the project root.
package htmltemplate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/vk/wasmbundle/internal/config"
	"github.com/vk/wasmbundle/internal/ctxlog"
	"github.com/vk/wasmbundle/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// shellData is the template's evaluation scope.
type shellData struct {
	Mode   string
	Entry  string
	Bundle string
}

// OnRunTemplate is the handler for the template step. The template is
// required: its absence aborts the build.
func OnRunTemplate(ctx context.Context, sc *registry.StepContext, step config.Step) error {
	logger := ctxlog.FromContext(ctx)
	ts := step.(config.TemplateStep)

	src := filepath.Join(sc.Root, ts.TemplatePath)
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", config.ErrTemplateMissing, src)
		}
		return fmt.Errorf("error accessing template %s: %w", src, err)
	}

	tmpl, err := template.ParseFiles(src)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", src, err)
	}

	if err := os.MkdirAll(sc.OutputDir, 0o755); err != nil {
		return err
	}
	dst := filepath.Join(sc.OutputDir, ts.OutputName)
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	data := shellData{
		Mode:   string(sc.Mode),
		Entry:  sc.EntryPath,
		Bundle: filepath.Base(sc.BundlePath),
	}
	if err := tmpl.Execute(out, data); err != nil {
		return fmt.Errorf("failed to render template %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	sc.Report.RecordFile(dst)
	logger.Debug("HTML shell rendered.", "template", src, "output", dst)
	return nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(config.KindTemplate, OnRunTemplate)
}
