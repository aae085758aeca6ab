package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Defaults mirroring the original project layout. A manifest may override
// any of them; the step order and count never change.
const (
	DefaultEntry          = "index.js"
	DefaultOutputDir      = "dist"
	DefaultBundleName     = "bundle.js"
	DefaultTemplate       = "index.html"
	DefaultStaticDir      = "static"
	DefaultCrateDir       = "."
	DefaultWasmOutDir     = "pkg"
	DefaultFallbackModule = "text-encoding"
	DefaultTool           = "wasm-pack"
	DefaultTarget         = "web"

	// TemplateOutputName is the rendered shell's file name.
	TemplateOutputName = "index.html"

	// ShimOutputName is the generated polyfill shim's file name.
	ShimOutputName = "polyfill.js"
)

// ProvidedSymbols are the global identifiers substituted by the
// GlobalSymbolProvideStep. The older browser engine the bundle targets lacks
// both.
var ProvidedSymbols = []string{"TextDecoder", "TextEncoder"}

// Options are the inputs to Configure.
type Options struct {
	// Root is the project root directory. Every configured path must
	// resolve inside it.
	Root string

	// EnvMode is the raw NODE_ENV value.
	EnvMode string

	// Manifest carries loaded manifest overrides; nil means all defaults.
	Manifest *Manifest

	// OutputDir, when non-empty, overrides both the default and the
	// manifest's output directory.
	OutputDir string
}

// Configure builds the pipeline configuration. It is a pure computation
// with no I/O, clocks, or counters: identical options always yield a
// structurally identical BuildConfig.
//
// The resulting Steps slice always holds exactly four steps, in this order:
// template, compile_external, copy_static, global_symbol_provide.
func Configure(opts Options) (*BuildConfig, error) {
	m := opts.Manifest
	if m == nil {
		m = &Manifest{}
	}

	bundle := fallback(m.BundleName, DefaultBundleName)
	provideFrom := fallback(m.FallbackModule, DefaultFallbackModule)

	// Every configured path must resolve inside the project root. The first
	// violation aborts configuration.
	var pathErr error
	resolve := func(name, raw string) string {
		p, err := resolveInRoot(opts.Root, raw)
		if err != nil && pathErr == nil {
			pathErr = fmt.Errorf("%s %q: %w", name, raw, err)
		}
		return p
	}

	entry := resolve("entry", fallback(m.Entry, DefaultEntry))
	outDir := resolve("output_dir", fallback(opts.OutputDir, fallback(m.OutputDir, DefaultOutputDir)))
	template := resolve("template", fallback(m.Template, DefaultTemplate))
	staticDir := resolve("static_dir", fallback(m.StaticDir, DefaultStaticDir))
	crateDir := resolve("crate_dir", fallback(m.CrateDir, DefaultCrateDir))
	wasmOut := resolve("wasm_out", fallback(m.WasmOutDir, DefaultWasmOutDir))
	if pathErr != nil {
		return nil, pathErr
	}

	return &BuildConfig{
		Mode:       ModeFromEnv(opts.EnvMode),
		EntryPath:  entry,
		OutputPath: filepath.Join(outDir, bundle),
		Steps: []Step{
			TemplateStep{
				TemplatePath: template,
				OutputName:   TemplateOutputName,
			},
			CompileExternalStep{
				Tool:     DefaultTool,
				CrateDir: crateDir,
				OutDir:   wasmOut,
				// Intentional override: the crate is always compiled
				// optimized, independent of the ambient mode.
				ForceMode: string(ModeProduction),
				Target:    DefaultTarget,
			},
			CopyStaticStep{
				SourceDir: staticDir,
			},
			GlobalSymbolProvideStep{
				Symbols:        append([]string(nil), ProvidedSymbols...),
				FallbackModule: provideFrom,
				OutputName:     ShimOutputName,
			},
		},
	}, nil
}

// fallback returns v unless it is empty, in which case it returns def.
func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

// resolveInRoot normalizes a configured path to be relative to the project
// root and rejects paths that resolve outside it.
func resolveInRoot(root, path string) (string, error) {
	if filepath.IsAbs(path) {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", ErrPathEscapesRoot
		}
		path = rel
	}
	clean := filepath.Clean(path)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrPathEscapesRoot
	}
	return clean, nil
}
