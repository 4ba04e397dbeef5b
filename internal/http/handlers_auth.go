package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/guitarguru/gg-dashboard/internal/domain/auth"
	apperrors "github.com/guitarguru/gg-dashboard/internal/errors"
)

// SessionManager defines the session operations the HTTP layer needs.
type SessionManager interface {
	GetSession(ctx context.Context, sessionID string) domainauth.Session
	Bootstrap(ctx context.Context, sess domainauth.Session) (domainauth.Session, error)
	Login(ctx context.Context, email, password string, adminAttempt bool) (domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
	Signup(ctx context.Context, email, password, name string) error
	ForgotPassword(ctx context.Context, email string, kind domainauth.ActorKind) error
	ResetPassword(ctx context.Context, token, newPassword string, kind domainauth.ActorKind) error
	VerifyEmail(ctx context.Context, token string) error
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          SessionManager
	T            *TemplateRenderer
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login handles the credential sign-in form.
// POST /auth/login (form: email, password, admin).
//
// The admin toggle routes the attempt to the admin endpoint upstream; a
// failed attempt leaves the browser anonymous and re-renders the form with
// the upstream message.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, loginViewData{Mode: "signin", Error: "Could not read the form. Please try again."})
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	adminAttempt := formBool(r.FormValue("admin"))

	sess, err := h.Svc.Login(r.Context(), email, password, adminAttempt)
	if err != nil {
		h.renderLogin(w, r, loginViewData{
			Mode:         "signin",
			Email:        email,
			AdminAttempt: adminAttempt,
			Error:        loginErrorMessage(err),
		})
		return
	}

	h.setSessionCookie(w, r, sess)
	redirectHome(w, r)
}

// Signup handles the account creation form.
// POST /auth/signup (form: email, password, name).
func (h *AuthHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, loginViewData{Mode: "signup", Error: "Could not read the form. Please try again."})
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	name := strings.TrimSpace(r.FormValue("name"))

	if err := h.Svc.Signup(r.Context(), email, r.FormValue("password"), name); err != nil {
		h.renderLogin(w, r, loginViewData{
			Mode:  "signup",
			Email: email,
			Name:  name,
			Error: loginErrorMessage(err),
		})
		return
	}

	h.renderLogin(w, r, loginViewData{
		Mode:   "signin",
		Email:  email,
		Notice: "Account created. Check your email for a verification link before signing in.",
	})
}

// ForgotPassword handles the reset-link request form.
// POST /auth/forgot-password (form: email, admin).
func (h *AuthHandlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, loginViewData{Mode: "forgot", Error: "Could not read the form. Please try again."})
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	adminAttempt := formBool(r.FormValue("admin"))
	kind := domainauth.ActorStudent
	if adminAttempt {
		kind = domainauth.ActorAdmin
	}

	if err := h.Svc.ForgotPassword(r.Context(), email, kind); err != nil {
		h.renderLogin(w, r, loginViewData{
			Mode:         "forgot",
			Email:        email,
			AdminAttempt: adminAttempt,
			Error:        loginErrorMessage(err),
		})
		return
	}

	// Neutral wording: do not confirm whether the address has an account.
	h.renderLogin(w, r, loginViewData{
		Mode:   "signin",
		Email:  email,
		Notice: "If that address has an account, a reset link is on its way.",
	})
}

// Logout drops the server-side session record and clears the cookie.
// POST /auth/logout. Always lands on / with a full page load so no cached
// state survives in the DOM.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if logoutErr := h.Svc.Logout(r.Context(), cookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}

	clearSessionCookie(w, r, h.CookieDomain)

	if IsHTMX(r) {
		// HX-Redirect performs a full navigation, not a swap.
		SetHXRedirect(w, "/")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// loginViewData carries the state of the sign-in surface across re-renders.
type loginViewData struct {
	Mode         string // signin | signup | forgot
	Email        string
	Name         string
	AdminAttempt bool
	Error        string
	Notice       string
}

// renderLogin renders the sign-in view with the given state. HTMX requests
// get just the content fragment so the form swaps in place.
func (h *AuthHandlers) renderLogin(w http.ResponseWriter, r *http.Request, view loginViewData) {
	if view.Mode == "" {
		view.Mode = "signin"
	}

	data := basePageData(r, loginPageMeta())
	data["Mode"] = view.Mode
	data["Email"] = view.Email
	data["Name"] = view.Name
	data["AdminAttempt"] = view.AdminAttempt
	if view.Error != "" {
		data["Error"] = true
		data["ErrorMessage"] = view.Error
	}
	if view.Notice != "" {
		data["Notice"] = view.Notice
	}

	if h.T == nil {
		http.Error(w, "templates unavailable", http.StatusInternalServerError)
		return
	}

	if WantsPartial(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := h.T.t.ExecuteTemplate(w, ContentTemplateFor(PageLogin), data); err != nil {
			h.logger().Error("login partial render failed", "error", err)
		}
		return
	}
	if err := h.T.RenderFull(w, r, data); err != nil {
		h.logger().Error("login page render failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func loginPageMeta() PageMeta {
	return PageMeta{Title: "Sign in - Guitar Guru", PageTitle: "Sign in", CurrentPage: PageLogin}
}

// loginErrorMessage maps service errors to form messages. Upstream 4xx
// messages are user-facing and pass through verbatim.
func loginErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case apperrors.IsValidation(err), apperrors.IsUnauthorized(err):
		return err.Error()
	case apperrors.IsTransport(err):
		return "Could not reach the lesson service. Check your connection and try again."
	default:
		return "Something went wrong. Please try again."
	}
}

// formBool interprets checkbox-style form values.
func formBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

// redirectHome sends the browser to / after a state change; HTMX requests
// get a full navigation so the whole shell re-renders under the new session.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	if IsHTMX(r) {
		SetHXRedirect(w, "/")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}
