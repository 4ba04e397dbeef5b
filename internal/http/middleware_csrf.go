package httpx

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// Double-submit cookie CSRF. The browser holds the token in a JS-readable
// cookie; every mutating request must echo it back in a header or form field
// that a cross-site attacker cannot set.
const (
	// DefaultCSRFCookieName names both the cookie and the hidden form field.
	DefaultCSRFCookieName = "csrf_token"

	csrfHeaderName   = "X-Csrf-Token"
	csrfTokenBytes   = 32
	csrfCookieMaxAge = 12 * 3600
)

// CSRFConfig holds configuration for the CSRF middleware.
type CSRFConfig struct {
	// CookieDomain scopes the token cookie; empty means host-only.
	CookieDomain string
}

// CSRFProtection issues a token cookie on first contact and rejects any
// POST/PUT/PATCH/DELETE whose submitted token does not match it. Reads are
// exempt. Boosted forms carry the token as a hidden field; scripted requests
// may send the X-Csrf-Token header instead.
func CSRFProtection(cfg CSRFConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := csrfCookieValue(r)
			if token == "" {
				fresh, err := newCSRFToken()
				if err != nil {
					http.Error(w, "unable to generate CSRF token", http.StatusInternalServerError)
					return
				}
				token = fresh
				issueCSRFCookie(w, r, cfg.CookieDomain, token)
			}

			// Templates read the token from the context to stamp it into forms.
			r = r.WithContext(withCSRFToken(r.Context(), token))

			if mutatingMethod(r.Method) && !csrfTokenMatches(r, token) {
				http.Error(w, "CSRF token validation failed", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func mutatingMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	}
	return true
}

func csrfCookieValue(r *http.Request) string {
	c, err := r.Cookie(DefaultCSRFCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// newCSRFToken fails rather than ever handing out a predictable value.
func newCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("csrf token generation failed: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func issueCSRFCookie(w http.ResponseWriter, r *http.Request, domain, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:   DefaultCSRFCookieName,
		Value:  token,
		Path:   "/",
		Domain: domain,
		// Not HttpOnly: the double-submit pattern needs client-side reads.
		HttpOnly: false,
		Secure:   r.TLS != nil || forwardedHTTPS(r),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   csrfCookieMaxAge,
	})
}

// forwardedHTTPS reports whether a proxy terminated TLS in front of us.
// X-Forwarded-Proto may hold a comma-separated chain.
func forwardedHTTPS(r *http.Request) bool {
	for _, proto := range strings.Split(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}

// csrfTokenMatches compares the submitted token against the cookie in
// constant time. The header wins when both are present; the form field is
// only consulted for form-encoded bodies so we never consume a body we
// shouldn't.
func csrfTokenMatches(r *http.Request, cookieToken string) bool {
	if cookieToken == "" {
		return false
	}

	if sent := r.Header.Get(csrfHeaderName); sent != "" {
		return subtle.ConstantTimeCompare([]byte(sent), []byte(cookieToken)) == 1
	}

	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "application/x-www-form-urlencoded") &&
		!strings.HasPrefix(ct, "multipart/form-data") {
		return false
	}
	if err := r.ParseForm(); err != nil {
		return false
	}
	if sent := r.FormValue(DefaultCSRFCookieName); sent != "" {
		return subtle.ConstantTimeCompare([]byte(sent), []byte(cookieToken)) == 1
	}
	return false
}

type csrfTokenKey struct{}

func withCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfTokenKey{}, token)
}

// GetCSRFToken returns the token the middleware attached to the request, or
// "" outside the middleware.
func GetCSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfTokenKey{}).(string)
	return token
}
