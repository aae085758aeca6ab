package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vk/wasmbundle/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("wasmbundle", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
wasmbundle - An asset pipeline for wasm-powered web bundles.

Usage:
  wasmbundle [options] [PROJECT_ROOT]

Arguments:
  PROJECT_ROOT
    Path to the project root directory. Defaults to the current directory.

The build mode is read from the NODE_ENV environment variable: the exact
value "production" selects production, anything else selects development.

Options:
`)
		flagSet.PrintDefaults()
	}

	projectFlag := flagSet.String("project", "", "Path to the project root directory.")
	pFlag := flagSet.String("p", "", "Path to the project root directory (shorthand).")
	manifestFlag := flagSet.String("manifest", "bundle.hcl", "Path to the project manifest, relative to the project root.")
	outFlag := flagSet.String("out", "", "Output directory override. Empty uses the manifest or the default.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Print the resolved configuration without building.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	root := ""
	if *projectFlag != "" {
		root = *projectFlag
	} else if *pFlag != "" {
		root = *pFlag
	} else if flagSet.NArg() > 0 {
		root = flagSet.Arg(0)
	}
	if root == "" {
		root = "."
	}
	slog.Debug("Project root determined.", "root", root)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ProjectRoot:  root,
		ManifestPath: *manifestFlag,
		OutputDir:    *outFlag,
		EnvMode:      os.Getenv("NODE_ENV"),
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		DryRun:       *dryRunFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
