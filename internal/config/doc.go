// Package config defines the format-agnostic build configuration model for
// the application: the immutable BuildConfig value, the sealed set of
// pipeline step variants, and the Loader interface that format-specific
// manifest loaders (such as HCL) implement.
//
// The BuildConfig is the single source of truth for the executor. It is
// constructed exactly once per invocation by Configure and never mutated
// afterwards.
package config
