package config

// Mode is the build optimization mode.
type Mode string

const (
	// ModeDevelopment disables optimizations. It is the default for any
	// environment value other than the exact literal "production".
	ModeDevelopment Mode = "development"

	// ModeProduction enables optimizations.
	ModeProduction Mode = "production"
)

// ModeFromEnv maps the raw NODE_ENV value to a Mode. Only the exact literal
// "production" selects production; everything else, including the empty
// string, falls back to development.
func ModeFromEnv(value string) Mode {
	if value == string(ModeProduction) {
		return ModeProduction
	}
	return ModeDevelopment
}

// StepKind discriminates the step variants of a pipeline.
type StepKind string

const (
	KindTemplate            StepKind = "template"
	KindCompileExternal     StepKind = "compile_external"
	KindCopyStatic          StepKind = "copy_static"
	KindGlobalSymbolProvide StepKind = "global_symbol_provide"
)

// Step is the sealed tagged-variant interface over the four pipeline step
// types. Only the types in this package implement it, so a switch over
// Kind() is exhaustive.
type Step interface {
	Kind() StepKind
}

// TemplateStep renders the HTML shell from a template file. The template
// must exist at TemplatePath; its absence is a fatal build error.
type TemplateStep struct {
	// TemplatePath is the HTML template, relative to the project root.
	TemplatePath string

	// OutputName is the rendered file name inside the output directory.
	OutputName string
}

// Kind implements Step.
func (s TemplateStep) Kind() StepKind { return KindTemplate }

// CompileExternalStep asks an external toolchain to compile a
// separately-versioned crate into a loadable wasm module. The toolchain is
// an opaque subprocess: it either produces the artifact or exits non-zero.
type CompileExternalStep struct {
	// Tool is the external build tool binary name.
	Tool string

	// CrateDir is the crate source directory, relative to the project root.
	CrateDir string

	// OutDir is where the tool places the compiled module, relative to the
	// project root.
	OutDir string

	// ForceMode is the optimization mode passed to the tool. It is always
	// the literal "production", decoupled from the ambient build mode.
	ForceMode string

	// Target is the output-format flag for the tool.
	Target string
}

// Kind implements Step.
func (s CompileExternalStep) Kind() StepKind { return KindCompileExternal }

// CopyStaticStep copies a static directory tree verbatim into the output
// directory. A missing source directory is a fatal build error, detected
// before anything is written.
type CopyStaticStep struct {
	// SourceDir is the static assets directory, relative to the project root.
	SourceDir string
}

// Kind implements Step.
func (s CopyStaticStep) Kind() StepKind { return KindCopyStatic }

// GlobalSymbolProvideStep registers named global symbols to be substituted
// wherever referenced but undefined, sourced from a fallback module. This is
// pure string registration and has no failure mode.
type GlobalSymbolProvideStep struct {
	// Symbols are the global identifiers to provide.
	Symbols []string

	// FallbackModule is the module the substituted implementations are
	// imported from.
	FallbackModule string

	// OutputName is the shim file name inside the output directory.
	OutputName string
}

// Kind implements Step.
func (s GlobalSymbolProvideStep) Kind() StepKind { return KindGlobalSymbolProvide }

// BuildConfig is the fully-resolved pipeline configuration. It is
// constructed once by Configure, is immutable thereafter, and is consumed
// once by the executor.
type BuildConfig struct {
	Mode       Mode
	EntryPath  string
	OutputPath string
	Steps      []Step
}
