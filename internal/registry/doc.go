// Package registry holds the step handlers compiled into the binary. Each
// step module registers the handler for its StepKind at startup; the
// executor looks handlers up by the kind tag of each configured step.
package registry
