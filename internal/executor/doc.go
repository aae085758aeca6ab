// Package executor runs the configured pipeline steps strictly in their
// declared order. Execution is sequential and fail-fast: the first step
// error aborts the run, wrapped in a StepError naming the failing step.
package executor
