package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/wasmbundle/internal/config"
	"github.com/vk/wasmbundle/internal/ctxlog"
)

// Loader is the HCL-specific implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// setters maps manifest attribute names to Manifest fields. Any attribute
// outside this set is rejected.
var setters = map[string]func(*config.Manifest, string){
	"entry":        func(m *config.Manifest, v string) { m.Entry = v },
	"output_dir":   func(m *config.Manifest, v string) { m.OutputDir = v },
	"bundle":       func(m *config.Manifest, v string) { m.BundleName = v },
	"template":     func(m *config.Manifest, v string) { m.Template = v },
	"static_dir":   func(m *config.Manifest, v string) { m.StaticDir = v },
	"crate_dir":    func(m *config.Manifest, v string) { m.CrateDir = v },
	"wasm_out":     func(m *config.Manifest, v string) { m.WasmOutDir = v },
	"provide_from": func(m *config.Manifest, v string) { m.FallbackModule = v },
}

// Load implements config.Loader. A missing manifest file yields an empty
// Manifest, not an error: the manifest is optional and defaults apply.
func (l *Loader) Load(ctx context.Context, root, path string, mode config.Mode) (*config.Manifest, error) {
	logger := ctxlog.FromContext(ctx)

	file := path
	if !filepath.IsAbs(file) {
		file = filepath.Join(root, path)
	}

	manifest := &config.Manifest{}
	if _, err := os.Stat(file); err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No manifest file found, using defaults.", "path", file)
			return manifest, nil
		}
		return nil, fmt.Errorf("error accessing manifest %s: %w", file, err)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(file)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", file, diags)
	}

	attrs, diags := hclFile.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read manifest attributes in %s: %w", file, diags)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"mode": cty.StringVal(string(mode)),
			"root": cty.StringVal(root),
		},
	}

	for name, attr := range attrs {
		set, ok := setters[name]
		if !ok {
			return nil, fmt.Errorf("unknown manifest attribute %q at %s", name, attr.Range)
		}

		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate manifest attribute %q: %w", name, diags)
		}
		val, err := convert.Convert(val, cty.String)
		if err != nil {
			return nil, fmt.Errorf("manifest attribute %q must be a string: %w", name, err)
		}
		set(manifest, val.AsString())
	}

	logger.Debug("Manifest loaded.", "path", file, "attributes", len(attrs))
	return manifest, nil
}
