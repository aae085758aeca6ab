package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/wasmbundle/internal/config"
	"github.com/vk/wasmbundle/internal/ctxlog"
	"github.com/vk/wasmbundle/internal/registry"
)

// StepError wraps a step failure with the kind of the failing step so the
// final diagnostic can name it. The underlying sentinel stays reachable via
// errors.Is.
type StepError struct {
	Kind config.StepKind
	Err  error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step '%s' failed: %v", e.Kind, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *StepError) Unwrap() error {
	return e.Err
}

// Executor dispatches pipeline steps to their registered handlers.
type Executor struct {
	registry *registry.Registry
}

// New creates an executor backed by the given handler registry.
func New(reg *registry.Registry) *Executor {
	return &Executor{registry: reg}
}

// Run executes every step of the configuration in declared order. The first
// failure stops the run; there are no retries and no partial-success notion.
func (e *Executor) Run(ctx context.Context, cfg *config.BuildConfig, sc *registry.StepContext) error {
	logger := ctxlog.FromContext(ctx)

	for i, step := range cfg.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		stepLogger := logger.With("step", string(step.Kind()), "index", i)
		handler, ok := e.registry.Handler(step.Kind())
		if !ok {
			return &StepError{Kind: step.Kind(), Err: fmt.Errorf("no handler registered")}
		}

		stepLogger.Info("▶️ Starting step")
		start := time.Now()
		if err := handler(ctx, sc, step); err != nil {
			stepLogger.Error("Step failed.", "error", err)
			return &StepError{Kind: step.Kind(), Err: err}
		}
		elapsed := time.Since(start)
		sc.Report.RecordStep(string(step.Kind()), elapsed)
		stepLogger.Info("✅ Finished step", "duration", elapsed)
	}

	return nil
}
