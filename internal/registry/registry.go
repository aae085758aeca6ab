package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/wasmbundle/internal/config"
	"github.com/vk/wasmbundle/internal/report"
)

// Module is the interface all step modules implement to be registered.
type Module interface {
	Register(r *Registry)
}

// StepContext carries the per-build environment a handler needs: resolved
// directories, the ambient mode, and the report recorder.
type StepContext struct {
	// Root is the absolute project root directory.
	Root string

	// OutputDir is the absolute output directory.
	OutputDir string

	// EntryPath is the bundle entry file, relative to Root.
	EntryPath string

	// BundlePath is the bundled output file, relative to Root.
	BundlePath string

	// Mode is the ambient build mode.
	Mode config.Mode

	// ShimName is the polyfill shim's file name, set by the symbol-provide
	// handler when it registers substitutions.
	ShimName string

	// Report records step outcomes, emitted files, and substitutions.
	Report *report.Report
}

// Handler executes one pipeline step. The concrete Step value matches the
// kind the handler was registered under.
type Handler func(ctx context.Context, sc *StepContext, step config.Step) error

// Registry maps step kinds to their handlers for a single app instance.
type Registry struct {
	handlers map[config.StepKind]Handler
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{handlers: make(map[config.StepKind]Handler)}
}

// RegisterHandler registers the handler for a step kind. Registering the
// same kind twice is a programmer error.
func (r *Registry) RegisterHandler(kind config.StepKind, h Handler) {
	if _, exists := r.handlers[kind]; exists {
		panic(fmt.Sprintf("handler for step kind '%s' already registered", kind))
	}
	slog.Debug("Registering step handler.", "kind", kind)
	r.handlers[kind] = h
}

// Handler returns the handler for a step kind, or false if none is
// registered.
func (r *Registry) Handler(kind config.StepKind) (Handler, bool) {
	h, ok := r.handlers[kind]
	return h, ok
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	return len(r.handlers)
}
