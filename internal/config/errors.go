package config

import "errors"

// Sentinel errors for the pipeline's fatal failure taxonomy. All of them
// abort the build; none are retried.
var (
	// ErrTemplateMissing reports that the HTML template does not exist at
	// its configured path.
	ErrTemplateMissing = errors.New("html template missing")

	// ErrSourceDirMissing reports that the static assets directory does not
	// exist.
	ErrSourceDirMissing = errors.New("static source directory missing")

	// ErrExternalCompileFailed reports that the external module build tool
	// could not be run or returned a non-zero exit status.
	ErrExternalCompileFailed = errors.New("external compile failed")

	// ErrPathEscapesRoot reports a configured path that resolves outside
	// the project root.
	ErrPathEscapesRoot = errors.New("path escapes project root")
)
