package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies an error surfaced at the HTTP boundary.
type Kind string

const (
	KindInvalidRequest          Kind = "invalid_request"
	KindUnauthorized            Kind = "unauthorized"
	KindForbidden               Kind = "forbidden"
	KindNotFound                Kind = "not_found"
	KindContentNotFound         Kind = "content_not_found"
	KindNotApproved             Kind = "not_approved"
	KindNotConnected            Kind = "not_connected"
	KindNoConnection            Kind = "no_connection"
	KindReauthorizationRequired Kind = "reauthorization_required"
	KindRefreshFailed           Kind = "refresh_failed"
	KindTokenExchangeFailed     Kind = "token_exchange_failed"
	KindTokenRevoked            Kind = "token_revoked"
	KindInsufficientScope       Kind = "insufficient_scope"
	KindRateLimited             Kind = "rate_limited"
	KindPostNotConfirmed        Kind = "post_not_confirmed"
	KindTransportExhausted      Kind = "transport_exhausted"
	KindInternal                Kind = "internal"
)

// Error is a structured error carrying a machine-readable kind alongside
// a human-readable message. It wraps an optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error

	// NextAllowedAt is set only for rate-limited errors and reports the
	// earliest time the caller may retry.
	NextAllowedAt *time.Time
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a structured error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a structured error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a structured error wrapping an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// RateLimited creates a rate-limited error reporting the next allowed time.
func RateLimited(message string, nextAllowedAt time.Time) *Error {
	return &Error{Kind: KindRateLimited, Message: message, NextAllowedAt: &nextAllowedAt}
}

// KindOf returns the kind of a structured error, or KindInternal for
// unclassified errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether the error carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error kind to the HTTP status code returned to callers.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidRequest, KindNotApproved, KindNotConnected, KindNoConnection:
		return http.StatusBadRequest
	case KindUnauthorized, KindTokenRevoked, KindReauthorizationRequired, KindRefreshFailed:
		return http.StatusUnauthorized
	case KindForbidden, KindInsufficientScope:
		return http.StatusForbidden
	case KindNotFound, KindContentNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindPostNotConfirmed:
		return http.StatusBadGateway
	case KindTransportExhausted:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
