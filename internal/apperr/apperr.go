package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error so the HTTP layer can translate it
// to a status code without inspecting message strings.
type Kind string

const (
	ValidationFailed    Kind = "validation_failed"
	Unauthenticated     Kind = "unauthenticated"
	Forbidden           Kind = "forbidden"
	NotFound            Kind = "not_found"
	Conflict            Kind = "conflict"
	AmountMismatch      Kind = "amount_mismatch"
	PaymentGatewayError Kind = "payment_gateway_error"
	RateLimited         Kind = "rate_limited"
	Internal            Kind = "internal_error"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error

	// RetryAfter is set for rate-limit errors, in seconds.
	RetryAfter int
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or Internal for untyped errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// MessageOf returns the user-facing message of err. Untyped errors collapse
// to a generic message so internals never leak to clients.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}

// HTTPStatus maps an error kind to its response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case ValidationFailed, AmountMismatch:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case RateLimited:
		return http.StatusTooManyRequests
	case PaymentGatewayError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RetryAfterOf returns the retry-after hint in seconds, 0 when absent.
func RetryAfterOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.RetryAfter
	}
	return 0
}
