// Package provide registers global symbol substitutions: identifiers that
// are referenced but undefined in the target engine get an implementation
// from a fallback module. Registration is pure string bookkeeping; the shim
// file itself is emitted with the build report.
package provide

import (
	"context"

	"github.com/vk/wasmbundle/internal/config"
	"github.com/vk/wasmbundle/internal/ctxlog"
	"github.com/vk/wasmbundle/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnRunProvide is the handler for the global_symbol_provide step. It has no
// failure mode.
func OnRunProvide(ctx context.Context, sc *registry.StepContext, step config.Step) error {
	logger := ctxlog.FromContext(ctx)
	ps := step.(config.GlobalSymbolProvideStep)

	for _, symbol := range ps.Symbols {
		sc.Report.RecordSubstitution(symbol, ps.FallbackModule)
	}
	if ps.OutputName != "" {
		sc.ShimName = ps.OutputName
	}

	logger.Debug("Global symbols registered.", "symbols", ps.Symbols, "from", ps.FallbackModule)
	return nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler(config.KindGlobalSymbolProvide, OnRunProvide)
}
