package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vk/wasmbundle/internal/config"
	"github.com/vk/wasmbundle/internal/ctxlog"
	"github.com/vk/wasmbundle/internal/executor"
	"github.com/vk/wasmbundle/internal/registry"
	"github.com/vk/wasmbundle/internal/report"
)

// Run executes the main application logic based on the resolved pipeline
// configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.DryRun {
		return a.printResolvedConfig()
	}

	root, err := filepath.Abs(a.config.ProjectRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve project root: %w", err)
	}

	rep := report.New(string(a.build.Mode))
	sc := &registry.StepContext{
		Root:       root,
		OutputDir:  filepath.Join(root, filepath.Dir(a.build.OutputPath)),
		EntryPath:  a.build.EntryPath,
		BundlePath: a.build.OutputPath,
		Mode:       a.build.Mode,
		Report:     rep,
	}

	a.logger.Info("🚀 Starting build", "build_id", rep.BuildID, "mode", a.build.Mode, "root", root)

	// A doomed build must leave the output directory untouched, so the
	// existence preconditions of every step are verified before the first
	// step is allowed to write.
	if err := preflight(root, a.build.Steps); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	exec := executor.New(a.registry)
	if err := exec.Run(ctx, a.build, sc); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if err := a.emitArtifacts(sc, rep); err != nil {
		return fmt.Errorf("failed to write build artifacts: %w", err)
	}

	a.logger.Info("🏁 Build finished.", "output", sc.OutputDir, "files", len(rep.EmittedFiles))
	return nil
}

// preflight runs the pure existence checks of the configured steps before
// any of them executes. The returned error carries the failing step's kind
// and the matching sentinel, exactly as a runtime step failure would.
func preflight(root string, steps []config.Step) error {
	for _, step := range steps {
		switch s := step.(type) {
		case config.TemplateStep:
			src := filepath.Join(root, s.TemplatePath)
			if _, err := os.Stat(src); os.IsNotExist(err) {
				return &executor.StepError{
					Kind: s.Kind(),
					Err:  fmt.Errorf("%w: %s", config.ErrTemplateMissing, src),
				}
			}
		case config.CopyStaticStep:
			src := filepath.Join(root, s.SourceDir)
			info, err := os.Stat(src)
			if os.IsNotExist(err) || (err == nil && !info.IsDir()) {
				return &executor.StepError{
					Kind: s.Kind(),
					Err:  fmt.Errorf("%w: %s", config.ErrSourceDirMissing, src),
				}
			}
		}
	}
	return nil
}

// emitArtifacts writes the polyfill shim rendered from the registered
// substitutions, then the build report, into the output directory.
func (a *App) emitArtifacts(sc *registry.StepContext, rep *report.Report) error {
	if err := os.MkdirAll(sc.OutputDir, 0o755); err != nil {
		return err
	}

	if len(rep.Substitutions) > 0 {
		name := sc.ShimName
		if name == "" {
			name = config.ShimOutputName
		}
		shim := filepath.Join(sc.OutputDir, name)
		if err := os.WriteFile(shim, []byte(rep.RenderShim()), 0o644); err != nil {
			return err
		}
		rep.RecordFile(shim)
	}

	data, err := rep.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(sc.OutputDir, report.FileName), data, 0o644)
}

// stepView is the dry-run rendering of a single step.
type stepView struct {
	Kind   string      `yaml:"kind"`
	Detail config.Step `yaml:"detail"`
}

// configView is the dry-run rendering of the resolved configuration.
type configView struct {
	Mode   string     `yaml:"mode"`
	Entry  string     `yaml:"entry"`
	Output string     `yaml:"output"`
	Steps  []stepView `yaml:"steps"`
}

// printResolvedConfig renders the resolved configuration to the output
// writer without performing any build I/O.
func (a *App) printResolvedConfig() error {
	view := configView{
		Mode:   string(a.build.Mode),
		Entry:  a.build.EntryPath,
		Output: a.build.OutputPath,
	}
	for _, s := range a.build.Steps {
		view.Steps = append(view.Steps, stepView{Kind: string(s.Kind()), Detail: s})
	}

	data, err := yaml.Marshal(view)
	if err != nil {
		return err
	}
	_, err = a.outW.Write(data)
	return err
}
