package httpx

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter builds the full router from the embedded assets. Tests run
// from the package directory, so templates come from the embedded FS just as
// in production.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); err != nil {
		t.Skipf("templates not available: %v", err)
	}
	return NewRouter(RouterServices{})
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_RootRendersSignInForAnonymous(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/auth/login"`)
}

func TestRouter_VerifyReachableWithoutSession(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/verify", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Verification failed")
}

func TestRouter_ResetPasswordReachableWithoutSession(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reset-password?token=abc", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Choose a new password")
}

func TestRouter_LessonRoutesGuardedForAnonymous(t *testing.T) {
	router := newTestRouter(t)

	paths := []string{"/lessons", "/lessons/new", "/lessons/l1", "/lessons/l1/edit"}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/", w.Header().Get("Location"))
		})
	}
}

func TestRouter_UnknownPathRendersHTML404(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "404")
}

func TestRouter_MissingStaticAssetKeepsPlain404(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/nope.css", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "<html")
}

func TestRouter_AnonymousRequestsGetCSRFCookie(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == DefaultCSRFCookieName {
			found = true
			require.NotEmpty(t, c.Value)
		}
	}
	assert.True(t, found, "expected a CSRF cookie on first visit")
}
