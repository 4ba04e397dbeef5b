package httpx

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/guitarguru/gg-dashboard/internal/errors"
)

// ErrorRenderer renders the page or fragment that carries the error state.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, data any)

// ErrorOpts configures one RenderError call.
type ErrorOpts struct {
	W http.ResponseWriter
	R *http.Request
	// Err may be nil when only FieldErrors are being reported.
	Err error
	// FieldErrors maps field name to message for validation failures.
	FieldErrors map[string]string
	Renderer    ErrorRenderer
	PageMeta    PageMeta
	// Data is merged into the template data, e.g. to keep form values.
	Data map[string]any
	// StatusCode defaults to 200 so htmx swaps error fragments in place.
	StatusCode int
	// ShowToast additionally fires a showToast event with the message.
	ShowToast bool
}

// DetermineErrorStatus returns 401 for a rejected session so the client-side
// redirect kicks in, and 0 otherwise, meaning keep the default status.
func DetermineErrorStatus(err error) int {
	if apperrors.IsUnauthorized(err) {
		return http.StatusUnauthorized
	}
	return 0
}

// RenderError turns a service error into a rendered error state. Validation
// failures surface the upstream message verbatim; everything else collapses
// to a generic message so backend internals never reach the page.
func RenderError(opts ErrorOpts) {
	if opts.Renderer == nil {
		http.Error(opts.W, "misconfigured error renderer", http.StatusInternalServerError)
		return
	}

	builder := NewTemplateData(opts.R, opts.PageMeta)

	// userMessage may promote the error into FieldErrors when it names a field.
	generalError := userMessage(opts.Err, &opts.FieldErrors)

	if len(opts.FieldErrors) > 0 {
		builder.WithFieldErrors(opts.FieldErrors)
	}
	switch {
	case generalError != "":
		builder.WithError(generalError)
	case len(opts.FieldErrors) > 0:
		builder.WithError(errMsgFixBelow)
	}
	for k, v := range opts.Data {
		builder.With(k, v)
	}

	if opts.ShowToast && generalError != "" {
		triggerToast(opts.W, generalError, "error")
	}
	if opts.StatusCode != 0 {
		opts.W.WriteHeader(opts.StatusCode)
	}
	opts.Renderer(opts.W, opts.R, builder.Build())
}

// userMessage maps an error to the message shown to the user. When the error
// names a form field, the message lands in fieldErrors instead and the banner
// gets the generic fix-below text.
func userMessage(err error, fieldErrors *map[string]string) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) || apperrors.IsTimeout(err) {
		return "Request timed out. Please try again."
	}
	if errors.Is(err, context.Canceled) || apperrors.IsCanceled(err) {
		return "Request was canceled."
	}

	switch {
	case apperrors.IsValidation(err):
		// The lesson API's 4xx messages are user-facing; show them as-is.
		if field := apperrors.GetField(err); field != "" && fieldErrors != nil {
			if *fieldErrors == nil {
				*fieldErrors = make(map[string]string)
			}
			(*fieldErrors)[field] = err.Error()
			return errMsgFixBelow
		}
		return err.Error()
	case apperrors.IsUnauthorized(err):
		return err.Error()
	case apperrors.IsNotFound(err):
		return "That item no longer exists. It may have been deleted."
	case apperrors.IsTransport(err):
		return "Could not reach the lesson service. Check your connection and try again."
	case apperrors.IsUpstream(err):
		return "The lesson service hit a problem. Please try again shortly."
	default:
		return "An error occurred. Please try again."
	}
}
