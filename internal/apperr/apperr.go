// Package apperr defines the typed errors shared across services and
// handlers. Everything else in the codebase wraps with fmt.Errorf("%w").
package apperr

import "fmt"

// ValidationError rejects malformed caller input before any write happens.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError signals a lookup with no matching record and no side effects.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// GatewayError wraps a failed or unusable reply from the payment gateway.
// StatusCode is the gateway's HTTP status, 0 when the call never completed.
type GatewayError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("payment gateway error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("payment gateway error: %s", e.Message)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// ReconciliationError marks a webhook callback that could not be applied to
// an order status. Malformed correlation keys and missing statuses share this
// one type on purpose: the audit log is the place operators tell them apart.
type ReconciliationError struct {
	Message string
}

func (e *ReconciliationError) Error() string { return e.Message }

func Reconciliationf(format string, args ...any) *ReconciliationError {
	return &ReconciliationError{Message: fmt.Sprintf(format, args...)}
}
