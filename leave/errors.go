/*
errors.go - Centralized error types for the leave engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The engine favors permissive fallbacks over hard failure: unparseable
  start dates fall back to full entitlement, negative balances clamp to
  zero. Errors here mark either structurally invalid input (a programming
  error on the caller's side) or illegal lifecycle transitions.

USAGE:
  if errors.Is(err, leave.ErrIllegalTransition) { ... }

SEE ALSO:
  - service.go: Lifecycle transitions that produce TransitionError
  - date.go: ParseDate produces InvalidDateError
*/
package leave

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned for a structurally unparseable date where
	// no fallback applies (e.g. inside a candidate day list).
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidRange is returned when a request range is malformed
	// (to-date before from-date).
	ErrInvalidRange = errors.New("invalid range: to before from")

	// ErrIllegalTransition is returned for a status transition outside the
	// pending -> approved/rejected/cancelled, approved -> cancelled graph.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrNotAuthorized is returned when the acting identity may not perform
	// the requested transition (e.g. a non-requester cancelling a pending
	// request).
	ErrNotAuthorized = errors.New("actor not authorized for transition")

	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrRequestNotFound is returned when a referenced request doesn't exist.
	ErrRequestNotFound = errors.New("request not found")

	// ErrTemplateNotFound is returned when a referenced template doesn't exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrUnknownLeaveType is returned when input names a leave type outside
	// the fixed enumeration.
	ErrUnknownLeaveType = errors.New("unknown leave type")

	// ErrUnknownSchedule is returned for a work schedule outside the three
	// supported patterns.
	ErrUnknownSchedule = errors.New("unknown work schedule")

	// ErrUnknownSelection is returned for a per-day session selection outside
	// full/morning/afternoon/none.
	ErrUnknownSelection = errors.New("unknown session selection")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidDateError reports the input that failed both date layouts.
type InvalidDateError struct {
	Input string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q (want 2006-01-02 or 02/01/2006)", e.Input)
}

func (e *InvalidDateError) Unwrap() error { return ErrInvalidDate }

// TransitionError reports an attempted illegal lifecycle transition.
type TransitionError struct {
	RequestID string
	From      RequestStatus
	To        RequestStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("request %s: cannot transition %s -> %s", e.RequestID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrIllegalTransition }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrIllegalTransition) ||
		errors.Is(err, ErrNotAuthorized) ||
		errors.Is(err, ErrUnknownLeaveType) ||
		errors.Is(err, ErrUnknownSchedule) ||
		errors.Is(err, ErrUnknownSelection)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrRequestNotFound) ||
		errors.Is(err, ErrTemplateNotFound)
}
