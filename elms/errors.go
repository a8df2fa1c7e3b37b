package elms

import "fmt"

// ValidationError is the single error kind raised by the order pipeline.
// StatusCode is zero except for transport failures, where it carries the
// HTTP status reported by the fulfillment service.
type ValidationError struct {
	Message    string
	StatusCode int
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
