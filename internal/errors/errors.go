// Package errors classifies failures so handlers can pick the right response
// without inspecting upstream status codes or net errors themselves.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode names a failure category.
type ErrorCode string

const (
	// ErrCodeNotFound: the requested resource does not exist upstream.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation: input rejected, locally or by the lesson API
	// with a 4xx.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeUnauthorized: the lesson API rejected the access token.
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	// ErrCodeTransport: the lesson API could not be reached at all.
	ErrCodeTransport ErrorCode = "transport"
	// ErrCodeUpstream: the lesson API answered with a 5xx.
	ErrCodeUpstream ErrorCode = "upstream"
	// ErrCodeInternal: a failure on our side of the wire.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout: the call ran out of time.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled: the caller gave up before the call finished.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError is the error type crossing layer boundaries. Cause keeps the chain
// intact for errors.Is/As; Field names the offending form field on
// validation errors.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Field   string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NotFound builds a not-found error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf builds a not-found error from a format string.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation builds a validation error without a field.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Validationf builds a validation error from a format string.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationField builds a validation error pinned to one form field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Unauthorized builds an unauthorized error.
func Unauthorized(message string) *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Message: message}
}

// Transport builds a transport error.
func Transport(message string) *AppError {
	return &AppError{Code: ErrCodeTransport, Message: message}
}

// Upstream builds an upstream-failure error.
func Upstream(message string) *AppError {
	return &AppError{Code: ErrCodeUpstream, Message: message}
}

// Wrap classifies an existing error. Returns nil for a nil err so call sites
// can wrap unconditionally.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound reports whether err is classified not-found.
func IsNotFound(err error) bool { return isCode(err, ErrCodeNotFound) }

// IsValidation reports whether err is classified as a validation failure.
func IsValidation(err error) bool { return isCode(err, ErrCodeValidation) }

// IsUnauthorized reports whether err is classified unauthorized.
func IsUnauthorized(err error) bool { return isCode(err, ErrCodeUnauthorized) }

// IsTransport reports whether err is classified as a transport failure.
func IsTransport(err error) bool { return isCode(err, ErrCodeTransport) }

// IsUpstream reports whether err is classified as an upstream failure.
func IsUpstream(err error) bool { return isCode(err, ErrCodeUpstream) }

// IsTimeout reports whether err is classified as a timeout.
func IsTimeout(err error) bool { return isCode(err, ErrCodeTimeout) }

// IsCanceled reports whether err is classified as canceled.
func IsCanceled(err error) bool { return isCode(err, ErrCodeCanceled) }

// GetField returns the form field attached to a validation error, or "".
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
