// Package report accumulates the outcome of a pipeline run: which steps ran,
// what files were emitted, and which global symbol substitutions were
// registered. The finished report is serialized to YAML next to the build
// output, and the registered substitutions are rendered into the polyfill
// shim that ships with the bundle.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// FileName is the report's file name inside the output directory.
const FileName = "build-report.yaml"

// StepResult records the outcome of a single executed step.
type StepResult struct {
	Kind     string        `yaml:"kind"`
	Duration time.Duration `yaml:"duration"`
}

// Substitution maps an undefined global identifier to the module providing
// its implementation.
type Substitution struct {
	Symbol string `yaml:"symbol"`
	From   string `yaml:"from"`
}

// Report is the mutable recorder for a single build. It is written to from
// the single executor goroutine only; the pipeline is sequential.
type Report struct {
	BuildID       string         `yaml:"build_id"`
	Mode          string         `yaml:"mode"`
	Steps         []StepResult   `yaml:"steps"`
	EmittedFiles  []string       `yaml:"emitted_files"`
	Substitutions []Substitution `yaml:"substitutions"`
}

// New creates a report for a fresh build with a unique build id.
func New(mode string) *Report {
	return &Report{
		BuildID: uuid.NewString(),
		Mode:    mode,
	}
}

// RecordStep appends the outcome of an executed step.
func (r *Report) RecordStep(kind string, d time.Duration) {
	r.Steps = append(r.Steps, StepResult{Kind: kind, Duration: d})
}

// RecordFile appends an emitted output file path.
func (r *Report) RecordFile(path string) {
	r.EmittedFiles = append(r.EmittedFiles, path)
}

// RecordSubstitution registers a symbol-to-module substitution.
func (r *Report) RecordSubstitution(symbol, from string) {
	r.Substitutions = append(r.Substitutions, Substitution{Symbol: symbol, From: from})
}

// Marshal renders the report as YAML. The serialized emitted-file list is
// sorted so the report is stable regardless of directory walk order; the
// receiver itself is not modified.
func (r *Report) Marshal() ([]byte, error) {
	out := *r
	out.EmittedFiles = append([]string(nil), r.EmittedFiles...)
	sort.Strings(out.EmittedFiles)
	return yaml.Marshal(out)
}

// RenderShim renders the polyfill shim module from the registered
// substitutions: each symbol is assigned onto the global object only where
// it is not already defined.
func (r *Report) RenderShim() string {
	var b strings.Builder
	b.WriteString("// Generated polyfill shim. Do not edit.\n")
	for _, s := range r.Substitutions {
		fmt.Fprintf(&b, "if (typeof globalThis.%s === \"undefined\") {\n", s.Symbol)
		fmt.Fprintf(&b, "  globalThis.%s = require(%q).%s;\n", s.Symbol, s.From, s.Symbol)
		b.WriteString("}\n")
	}
	return b.String()
}
