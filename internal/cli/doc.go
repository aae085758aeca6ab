// Package cli parses command-line arguments into an app.Config. The build
// mode itself is never a flag: it comes only from the NODE_ENV environment
// variable, matching the contract of the original pipeline.
package cli
