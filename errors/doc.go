// Package errors provides structured error types for the signal-host library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes the signal number and resource handle involved, plus a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseBind, errors.KindSubscription).
//		Signo(9).
//		Detail("SIGKILL cannot be caught").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidResource(rid)
//	err := errors.FeatureDisabled(errors.PhasePoll, "signal")
//
// All errors implement the standard error interface and support errors.Is/As;
// Is matches on the Phase and Kind pair.
package errors
