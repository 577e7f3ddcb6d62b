// Package errs provides standardized error types for the dispatch services.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout both services.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrInvalidState) for errors.Is checks
//   - A struct type carrying the error details
//   - Constructor functions, with and without an underlying cause
//   - Error() for formatting and Unwrap() for classification
//
// Besides the general-purpose validation errors, the package enumerates the
// domain error taxonomy shared by the tracking and courier services:
// InvalidStateError for lifecycle guard violations, NoCourierAvailableError
// and AssignmentNotFoundError for dispatch, TransientEstimationError for the
// payout path, and ConcurrentModificationError for conditional-write
// conflicts.
package errs
