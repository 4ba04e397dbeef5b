package httpx

import (
	"errors"
	"net/http"
	"strings"

	domainauth "github.com/guitarguru/gg-dashboard/internal/domain/auth"
	apperrors "github.com/guitarguru/gg-dashboard/internal/errors"
)

func resetPasswordMeta() PageMeta {
	return PageMeta{
		Title:       "Guitar Guru - Reset Password",
		PageTitle:   "Reset Password",
		CurrentPage: PageResetPassword,
	}
}

// ResetPassword renders the password reset form.
// GET /reset-password?token=...&type=admin|student.
// Reachable regardless of session state so an emailed link always works.
func (h *UIHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	data := basePageData(r, resetPasswordMeta())
	data["Token"] = strings.TrimSpace(r.URL.Query().Get("token"))
	data["Kind"] = resetKindParam(r.URL.Query().Get("type"))
	h.renderDashboardPage(w, r, data)
}

// ResetPasswordSubmit applies a new password using the emailed token.
// POST /reset-password (form: token, password, password_confirm, type).
func (h *UIHandlers) ResetPasswordSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderResetError(w, r, "", "", "Could not read the form. Please try again.")
		return
	}

	token := strings.TrimSpace(r.FormValue("token"))
	kind := resetKindParam(r.FormValue("type"))
	password := r.FormValue("password")
	confirm := r.FormValue("password_confirm")

	if password == "" {
		h.renderResetError(w, r, token, kind, "Enter a new password.")
		return
	}
	if password != confirm {
		h.renderResetError(w, r, token, kind, "Passwords do not match.")
		return
	}

	actorKind := domainauth.ActorStudent
	if kind == "admin" {
		actorKind = domainauth.ActorAdmin
	}

	if err := h.Sessions.ResetPassword(r.Context(), token, password, actorKind); err != nil {
		h.logger().WarnContext(r.Context(), "password reset failed", "error", err)
		h.renderResetError(w, r, token, kind, resetErrorMessage(err))
		return
	}

	data := basePageData(r, resetPasswordMeta())
	data["ResetComplete"] = true
	h.renderDashboardPage(w, r, data)
}

func (h *UIHandlers) renderResetError(w http.ResponseWriter, r *http.Request, token, kind, msg string) {
	data := basePageData(r, resetPasswordMeta())
	data["Token"] = token
	data["Kind"] = kind
	data["Error"] = true
	data["ErrorMessage"] = msg
	h.renderDashboardPage(w, r, data)
}

func resetKindParam(v string) string {
	if strings.EqualFold(strings.TrimSpace(v), "admin") {
		return "admin"
	}
	return "student"
}

func resetErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case apperrors.IsValidation(err):
		return err.Error()
	case apperrors.IsTransport(err):
		return "Could not reach the lesson service. Check your connection and try again."
	default:
		return "The reset link may have expired. Request a new one and try again."
	}
}

// VerifyEmail handles the verification callback from the signup email.
// GET /verify?token=...
//
// On success the page announces the result and sends the browser to the root
// a few seconds later. A missing or rejected token renders the failure state
// with no redirect, so the message stays on screen.
func (h *UIHandlers) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	meta := PageMeta{Title: "Guitar Guru - Verify Email", PageTitle: "Verify Email", CurrentPage: PageVerify}
	data := basePageData(r, meta)

	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		data["Verified"] = false
		data["ErrorMessage"] = "The verification link is missing its token. Use the link from your email."
		h.renderDashboardPage(w, r, data)
		return
	}

	if err := h.Sessions.VerifyEmail(r.Context(), token); err != nil {
		h.logger().WarnContext(r.Context(), "email verification failed", "error", err)
		data["Verified"] = false
		data["ErrorMessage"] = verifyErrorMessage(err)
		h.renderDashboardPage(w, r, data)
		return
	}

	data["Verified"] = true
	// The verify template emits a meta refresh back to / when Redirect is set.
	data["Redirect"] = true
	h.renderDashboardPage(w, r, data)
}

func verifyErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case apperrors.IsValidation(err):
		return err.Error()
	case apperrors.IsTransport(err):
		return "Could not reach the lesson service. Check your connection and try again."
	default:
		return "Verification failed. The link may have expired."
	}
}

// NotFound handles 404 errors with auth-aware behavior.
// For browser requests, it renders an HTML error page.
// For API requests, it returns a JSON error response.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		h.renderBrowserNotFound(w, r)
	} else {
		h.renderAPINotFound(w, r)
	}
}

// renderBrowserNotFound renders an HTML 404 page with auth-aware content.
func (h *UIHandlers) renderBrowserNotFound(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	isAuthenticated := session != nil && session.State() == domainauth.StateAuthenticated

	data := map[string]any{
		"Title":           "Page Not Found - Guitar Guru",
		"Code":            "404",
		"Message":         "The page you're looking for doesn't exist.",
		"IsAuthenticated": isAuthenticated,
		"ShowLogin":       !isAuthenticated,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if h.T != nil {
		if err := h.T.RenderError(w, r, data); err != nil {
			// Fallback to plain text if template rendering fails
			http.Error(w, "Page not found", http.StatusNotFound)
		}
	} else {
		// Fallback to plain text if no template renderer available
		http.Error(w, "Page not found", http.StatusNotFound)
	}
}

// renderAPINotFound renders a JSON 404 response.
func (h *UIHandlers) renderAPINotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, ErrorParams{
		Code:    http.StatusNotFound,
		ErrCode: "not_found",
		Err:     errors.New("not found"),
	})
}
