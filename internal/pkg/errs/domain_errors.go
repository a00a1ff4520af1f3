package errs

import "errors"

// Saga error taxonomy. Use cases mark concrete failures with one of these so
// callers can classify them with errors.Is regardless of the wrapped cause.
var (
	// NotFound: device, booking or user missing. Never retried.
	ErrNotFound = errors.New("not found")

	// Conflict: a conditional write lost a race. Retried once by the caller.
	ErrConflict = errors.New("conflict")

	// Declined: the payment processor refused the charge. Terminal.
	ErrDeclined = errors.New("payment declined")

	// Timeout: an upstream call exceeded its deadline and its outcome is unknown.
	ErrTimeout = errors.New("upstream timeout")

	// Inconsistent: compensation itself failed. Recorded for operators, never
	// returned to the end user.
	ErrInconsistent = errors.New("inconsistent state")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrDomainValidation        = errors.New("domain validation error")
)
