package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/guitarguru/gg-dashboard/internal/domain/auth"
	"github.com/guitarguru/gg-dashboard/internal/service"
)

// SessionCookieName is the browser cookie that names the server-side session record.
const SessionCookieName = "gg_session"

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// LoadSession returns a middleware that resolves the browser session for every
// request. The session cookie names a server-side record; if that record is
// still unverified the cached identity is reconciled with the lesson API
// before any handler trusts it. Reconcile failures drop the record, so the
// request proceeds as anonymous with the stale cookie cleared.
func LoadSession(svc SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess := svc.GetSession(r.Context(), cookie.Value)
			if sess.State() == domainauth.StateBootstrapping {
				sess, err = svc.Bootstrap(r.Context(), sess)
				if err != nil {
					clearSessionCookie(w, r, "")
					next.ServeHTTP(w, r)
					return
				}
			}
			if sess.State() == domainauth.StateAnonymous {
				clearSessionCookie(w, r, "")
				next.ServeHTTP(w, r)
				return
			}

			ctx := SetSessionInContext(r.Context(), &sess)
			// Carry the session ID so an upstream 401 can invalidate the
			// record and token together.
			ctx = service.WithSessionID(ctx, sess.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// clearSessionCookie expires the session cookie on the client.
func clearSessionCookie(w http.ResponseWriter, r *http.Request, domain string) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   isSecure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireAuthBrowser returns a middleware that requires an authenticated
// session with browser-aware behavior: browsers are sent back to the root
// (which renders the sign-in view), API requests get a 401 JSON response.
func RequireAuthBrowser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := GetSessionFromContext(r.Context())
			if session == nil || session.State() != domainauth.StateAuthenticated {
				if IsBrowserRequest(r) {
					redirectToSignIn(w, r)
					return
				}
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdminBrowser returns a middleware that restricts a route to admin
// sessions. Signed-in students are sent to their own dashboard rather than
// shown an error page; API requests get 401/403 JSON responses.
func RequireAdminBrowser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := GetSessionFromContext(r.Context())
			if session == nil || session.State() != domainauth.StateAuthenticated {
				if IsBrowserRequest(r) {
					redirectToSignIn(w, r)
					return
				}
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}

			if !session.IsAdmin() {
				if IsBrowserRequest(r) {
					if IsHTMX(r) {
						SetHXRedirect(w, "/")
						w.WriteHeader(http.StatusOK)
						return
					}
					http.Redirect(w, r, "/", http.StatusSeeOther)
					return
				}
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     errors.New("insufficient permissions"),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// redirectToSignIn sends browser requests back to the root, where the
// dispatcher renders the sign-in view for anonymous sessions.
func redirectToSignIn(w http.ResponseWriter, r *http.Request) {
	if IsHTMX(r) {
		// For HTMX requests, instruct the browser to navigate rather than
		// swapping a login page fragment into an arbitrary target.
		SetHXRedirect(w, "/")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type browserRequestKey struct{}

// BrowserDetection classifies each request as browser or API traffic and
// stashes the verdict in the context. Handlers and the error writer use it
// to pick between an HTML page and a JSON body.
func BrowserDetection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), browserRequestKey{}, isBrowserRequest(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsBrowserRequest reports whether the request came from a browser. The
// middleware's classification wins; without it the headers are inspected
// directly.
func IsBrowserRequest(r *http.Request) bool {
	if isBrowser, ok := r.Context().Value(browserRequestKey{}).(bool); ok {
		return isBrowser
	}
	return isBrowserRequest(r)
}

// isBrowserRequest classifies by path first (API and static routes are never
// browser navigation), then by the HTMX marker header, then by whether the
// Accept header asks for HTML. A missing Accept header counts as a browser
// since curl-style API clients set one.
func isBrowserRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/static/") {
		return false
	}
	if IsHTMX(r) {
		return true
	}
	accept := r.Header.Get("Accept")
	return accept == "" || strings.Contains(accept, "text/html")
}
