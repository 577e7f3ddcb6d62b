package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification via errors.Is.
var (
	ErrObjectNotFound         = errors.New("object not found")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrValueIsRequired        = errors.New("value is required")
	ErrInvalidState           = errors.New("invalid state")
	ErrNoCourierAvailable     = errors.New("no courier available")
	ErrAssignmentNotFound     = errors.New("assignment not found")
	ErrTransientEstimation    = errors.New("transient estimation failure")
	ErrConcurrentModification = errors.New("concurrent modification")
)

// sanitize strips newlines so error messages stay on a single log line.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %s)", msg, sanitize(cause))
}

// ObjectNotFoundError indicates that a requested object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the given parameter and identifier.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	return withCause(fmt.Sprintf("%s: %s is %s", ErrObjectNotFound, e.ParamName, sanitize(e.ID)), e.Cause)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a supplied value violates a validation rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the named parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsRequiredError indicates that a mandatory value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the named parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidStateError indicates that a lifecycle operation was invoked while the
// aggregate was not in a compatible state. The failed call is a no-op; callers
// must not retry blindly since it signals an ordering bug upstream.
type InvalidStateError struct {
	Operation string
	Status    string
	Cause     error
}

// NewInvalidStateError creates an InvalidStateError for an operation rejected in the given status.
func NewInvalidStateError(operation, status string) *InvalidStateError {
	return &InvalidStateError{Operation: operation, Status: status}
}

func (e *InvalidStateError) Error() string {
	return withCause(fmt.Sprintf("%s: cannot %s in status %s", ErrInvalidState, e.Operation, e.Status), e.Cause)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// NoCourierAvailableError indicates that dispatch was attempted against an
// empty courier population. The triggering event should be retried later with
// bounded backoff; the population is expected to eventually be non-empty.
type NoCourierAvailableError struct {
	DeliveryID string
}

// NewNoCourierAvailableError creates a NoCourierAvailableError for the delivery awaiting a courier.
func NewNoCourierAvailableError(deliveryID string) *NoCourierAvailableError {
	return &NoCourierAvailableError{DeliveryID: deliveryID}
}

func (e *NoCourierAvailableError) Error() string {
	return fmt.Sprintf("%s: delivery %s", ErrNoCourierAvailable, e.DeliveryID)
}

func (e *NoCourierAvailableError) Unwrap() error {
	return ErrNoCourierAvailable
}

// AssignmentNotFoundError indicates that a fulfillment referenced a delivery
// not currently assigned to any courier. Benign when it follows a prior
// successful fulfillment (duplicate event delivery); a consistency alarm
// otherwise.
type AssignmentNotFoundError struct {
	DeliveryID string
}

// NewAssignmentNotFoundError creates an AssignmentNotFoundError for the unassigned delivery.
func NewAssignmentNotFoundError(deliveryID string) *AssignmentNotFoundError {
	return &AssignmentNotFoundError{DeliveryID: deliveryID}
}

func (e *AssignmentNotFoundError) Error() string {
	return fmt.Sprintf("%s: delivery %s is not assigned to any courier", ErrAssignmentNotFound, e.DeliveryID)
}

func (e *AssignmentNotFoundError) Unwrap() error {
	return ErrAssignmentNotFound
}

// TransientEstimationError indicates a retryable payout estimation failure.
// Callers retry with jittered backoff up to a bound; exhaustion surfaces the
// failure, never a zero default.
type TransientEstimationError struct {
	Cause error
}

// NewTransientEstimationError creates a TransientEstimationError wrapping an underlying cause.
func NewTransientEstimationError(cause error) *TransientEstimationError {
	return &TransientEstimationError{Cause: cause}
}

func (e *TransientEstimationError) Error() string {
	return withCause(ErrTransientEstimation.Error(), e.Cause)
}

func (e *TransientEstimationError) Unwrap() error {
	return ErrTransientEstimation
}

// ConcurrentModificationError indicates that a conditional write lost a race:
// the record changed between read and write. Callers re-read and retry.
type ConcurrentModificationError struct {
	ParamName string
	ID        any
}

// NewConcurrentModificationError creates a ConcurrentModificationError for the contested record.
func NewConcurrentModificationError(paramName string, id any) *ConcurrentModificationError {
	return &ConcurrentModificationError{ParamName: paramName, ID: id}
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: %s is %s", ErrConcurrentModification, e.ParamName, sanitize(e.ID))
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}
