package httpx

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/guitarguru/gg-dashboard/internal/errors"
)

// FormParser extracts a request struct from submitted form values and reports
// per-field validation problems keyed by field name.
type FormParser[T any] func(r *http.Request) (T, map[string]string)

// FormService is the slice of a domain service the form workflow needs: one
// call for create mode, one for edit mode.
type FormService[T any] interface {
	Create(ctx context.Context, req T) (any, error)
	Update(ctx context.Context, id string, req T) (any, error)
}

// FormRenderer re-renders the form template with the merged template data.
type FormRenderer func(w http.ResponseWriter, r *http.Request, data map[string]any)

// ErrorHandler maps a service error to field errors and/or a banner message.
// Returning (nil, "") defers to the built-in handling.
type ErrorHandler func(err error) (fieldErrors map[string]string, generalError string)

// FormHandlerOpts configures one HandleForm invocation.
type FormHandlerOpts[T any] struct {
	W        http.ResponseWriter
	R        *http.Request
	Mode     FormMode
	Parser   FormParser[T]
	Service  FormService[T]
	Renderer FormRenderer

	// SuccessURL is where the client is sent after a successful save.
	SuccessURL string
	// PageMeta feeds the base template data when the form re-renders.
	PageMeta PageMeta
	// ExtraData is merged into the template data on re-render, e.g. select
	// options the form template needs regardless of outcome.
	ExtraData map[string]any
	// GetID overrides ID extraction for edit mode. Defaults to the "id"
	// path value.
	GetID func(r *http.Request) string
	// HandleError intercepts service errors before the built-in mapping.
	HandleError ErrorHandler
	// ErrorStatus is written when field validation fails. Zero keeps 200 so
	// htmx swaps the fragment without special response handling.
	ErrorStatus int
}

// HandleForm runs the shared create/edit workflow: parse, validate, call the
// service, and either redirect on success or re-render the form carrying the
// submitted values and errors back to the user.
func HandleForm[T any](opts FormHandlerOpts[T]) {
	if opts.Parser == nil || opts.Service == nil || opts.Renderer == nil {
		http.Error(opts.W, "misconfigured form handler", http.StatusInternalServerError)
		return
	}
	if opts.Mode != FormModeCreate && opts.Mode != FormModeEdit {
		http.Error(opts.W, "invalid form mode", http.StatusBadRequest)
		return
	}

	var id string
	if opts.Mode == FormModeEdit {
		if id = opts.formID(); id == "" {
			http.NotFound(opts.W, opts.R)
			return
		}
	}

	data, fieldErrors := opts.Parser(opts.R)
	if len(fieldErrors) > 0 {
		opts.renderWithErrors(fieldErrors, "", data)
		return
	}

	var err error
	if opts.Mode == FormModeEdit {
		_, err = opts.Service.Update(opts.R.Context(), id, data)
	} else {
		_, err = opts.Service.Create(opts.R.Context(), data)
	}
	if err != nil {
		opts.serviceError(err, data)
		return
	}

	HTMX(opts.W).Redirect(opts.SuccessURL)
}

func (fh FormHandlerOpts[T]) formID() string {
	if fh.GetID != nil {
		return fh.GetID(fh.R)
	}
	return fh.R.PathValue("id")
}

// serviceError translates a failed Create/Update into a user-visible response.
func (fh FormHandlerOpts[T]) serviceError(err error, data T) {
	// A canceled request gets no re-render; the client already left.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		http.Error(fh.W, "request canceled", http.StatusRequestTimeout)
		return
	}

	if fh.HandleError != nil {
		fieldErrors, general := fh.HandleError(err)
		if fieldErrors != nil || general != "" {
			fh.renderWithErrors(fieldErrors, general, data)
			return
		}
	}

	// Expired session: send the client back to sign-in.
	if apperrors.IsUnauthorized(err) {
		HTMX(fh.W).Redirect("/")
		return
	}

	// Upstream rejections carry user-facing messages. Pin the message to the
	// named field when one is known, otherwise show it as a banner.
	if apperrors.IsValidation(err) {
		if field := apperrors.GetField(err); field != "" {
			fh.renderWithErrors(map[string]string{field: err.Error()}, "", data)
			return
		}
		fh.renderWithErrors(nil, err.Error(), data)
		return
	}

	fh.renderWithErrors(nil, "Unable to save. Please try again.", data)
}

// renderWithErrors re-renders the form, keeping the submitted values so the
// user does not lose their input.
func (fh FormHandlerOpts[T]) renderWithErrors(fieldErrors map[string]string, generalError string, data T) {
	if fh.ErrorStatus != 0 && len(fieldErrors) > 0 {
		fh.W.WriteHeader(fh.ErrorStatus)
	}

	td := NewTemplateData(fh.R, fh.PageMeta)
	if len(fieldErrors) > 0 {
		td.WithFieldErrors(fieldErrors)
	}
	switch {
	case generalError != "":
		td.WithError(generalError)
	case len(fieldErrors) > 0:
		td.WithError(errMsgFixBelow)
	}
	td.With("Mode", fh.Mode)

	// ExtraData first so the form data wins on a key collision.
	for k, v := range fh.ExtraData {
		td.With(k, v)
	}
	td.With("FormData", data)

	fh.Renderer(fh.W, fh.R, td.Build())
}
