// Package app wires the application together: logger, manifest loading,
// pipeline configuration, step handler registration, and the run lifecycle.
package app
