package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestModeFromEnv(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		value    string
		expected Mode
	}{
		{"production", ModeProduction},
		{"", ModeDevelopment},
		{"development", ModeDevelopment},
		{"prod", ModeDevelopment},
		{"PRODUCTION", ModeDevelopment},
		{"Production", ModeDevelopment},
		{"staging", ModeDevelopment},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run("value="+tc.value, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.expected, ModeFromEnv(tc.value))
		})
	}
}

func TestConfigureStepOrderIsFixed(t *testing.T) {
	t.Parallel()

	for _, env := range []string{"", "development", "production", "garbage"} {
		cfg, err := Configure(Options{Root: "/proj", EnvMode: env})
		require.NoError(t, err)

		require.Len(t, cfg.Steps, 4)
		require.Equal(t, KindTemplate, cfg.Steps[0].Kind())
		require.Equal(t, KindCompileExternal, cfg.Steps[1].Kind())
		require.Equal(t, KindCopyStatic, cfg.Steps[2].Kind())
		require.Equal(t, KindGlobalSymbolProvide, cfg.Steps[3].Kind())
	}
}

func TestConfigureForceModeDecoupledFromAmbientMode(t *testing.T) {
	t.Parallel()

	for _, env := range []string{"", "development", "production"} {
		cfg, err := Configure(Options{Root: "/proj", EnvMode: env})
		require.NoError(t, err)

		compile, ok := cfg.Steps[1].(CompileExternalStep)
		require.True(t, ok)
		require.Equal(t, "production", compile.ForceMode, "ForceMode must not follow NODE_ENV=%q", env)
	}
}

func TestConfigureProductionScenario(t *testing.T) {
	t.Parallel()

	cfg, err := Configure(Options{Root: "/proj", EnvMode: "production"})
	require.NoError(t, err)

	require.Equal(t, ModeProduction, cfg.Mode)
	compile := cfg.Steps[1].(CompileExternalStep)
	require.Equal(t, "production", compile.ForceMode)
}

func TestConfigureUnsetEnvScenario(t *testing.T) {
	t.Parallel()

	cfg, err := Configure(Options{Root: "/proj"})
	require.NoError(t, err)

	require.Equal(t, ModeDevelopment, cfg.Mode)
	require.Len(t, cfg.Steps, 4)
}

func TestConfigureIsDeterministic(t *testing.T) {
	t.Parallel()

	opts := Options{
		Root:    "/proj",
		EnvMode: "production",
		Manifest: &Manifest{
			Entry:     "main.js",
			StaticDir: "assets",
		},
	}

	first, err := Configure(opts)
	require.NoError(t, err)
	second, err := Configure(opts)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("configurations differ between identical runs (-first +second):\n%s", diff)
	}
}

func TestConfigureDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Configure(Options{Root: "/proj"})
	require.NoError(t, err)

	require.Equal(t, "index.js", cfg.EntryPath)
	require.Equal(t, "dist/bundle.js", cfg.OutputPath)

	tmplStep := cfg.Steps[0].(TemplateStep)
	require.Equal(t, "index.html", tmplStep.TemplatePath)

	compile := cfg.Steps[1].(CompileExternalStep)
	require.Equal(t, "wasm-pack", compile.Tool)
	require.Equal(t, "web", compile.Target)
	require.Equal(t, "pkg", compile.OutDir)

	copyStep := cfg.Steps[2].(CopyStaticStep)
	require.Equal(t, "static", copyStep.SourceDir)

	prov := cfg.Steps[3].(GlobalSymbolProvideStep)
	require.Equal(t, []string{"TextDecoder", "TextEncoder"}, prov.Symbols)
	require.Equal(t, "text-encoding", prov.FallbackModule)
}

func TestConfigureManifestOverrides(t *testing.T) {
	t.Parallel()

	cfg, err := Configure(Options{
		Root: "/proj",
		Manifest: &Manifest{
			Entry:          "src/main.js",
			OutputDir:      "build",
			BundleName:     "app.js",
			Template:       "shell.html",
			StaticDir:      "public",
			CrateDir:       "crate",
			WasmOutDir:     "wasm",
			FallbackModule: "fast-text-encoding",
		},
	})
	require.NoError(t, err)

	require.Equal(t, "src/main.js", cfg.EntryPath)
	require.Equal(t, "build/app.js", cfg.OutputPath)
	require.Equal(t, "shell.html", cfg.Steps[0].(TemplateStep).TemplatePath)
	require.Equal(t, "crate", cfg.Steps[1].(CompileExternalStep).CrateDir)
	require.Equal(t, "public", cfg.Steps[2].(CopyStaticStep).SourceDir)
	require.Equal(t, "fast-text-encoding", cfg.Steps[3].(GlobalSymbolProvideStep).FallbackModule)
}

func TestConfigureOutputDirFlagWinsOverManifest(t *testing.T) {
	t.Parallel()

	cfg, err := Configure(Options{
		Root:      "/proj",
		OutputDir: "override",
		Manifest:  &Manifest{OutputDir: "build"},
	})
	require.NoError(t, err)
	require.Equal(t, "override/bundle.js", cfg.OutputPath)
}

func TestConfigureRejectsEscapingPaths(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		manifest *Manifest
	}{
		{"entry escapes", &Manifest{Entry: "../outside.js"}},
		{"output escapes", &Manifest{OutputDir: "../../dist"}},
		{"static escapes", &Manifest{StaticDir: "assets/../../static"}},
		{"absolute outside root", &Manifest{CrateDir: "/etc"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Configure(Options{Root: "/proj", Manifest: tc.manifest})
			require.ErrorIs(t, err, ErrPathEscapesRoot)
		})
	}
}

func TestConfigureAcceptsAbsolutePathInsideRoot(t *testing.T) {
	t.Parallel()

	cfg, err := Configure(Options{
		Root:     "/proj",
		Manifest: &Manifest{StaticDir: "/proj/static"},
	})
	require.NoError(t, err)
	// Absolute paths inside the root are normalized to root-relative.
	require.Equal(t, "static", cfg.Steps[2].(CopyStaticStep).SourceDir)
}
