package httpx

import (
	"strings"

	domainauth "github.com/guitarguru/gg-dashboard/internal/domain/auth"
)

// View identifies the top-level surface a request resolves to.
type View string

const (
	ViewResetPassword    View = "reset-password"
	ViewVerifyEmail      View = "verify-email"
	ViewLoading          View = "loading"
	ViewLogin            View = "login"
	ViewAdminDashboard   View = "admin-dashboard"
	ViewStudentDashboard View = "student-dashboard"
)

// ResolveView maps a request path and session to a view. Password reset and
// the email verification callback are reachable no matter what the session
// says, so a signed-in admin can still follow an emailed link. Everything
// else keys off the session state alone.
func ResolveView(path string, session domainauth.Session) View {
	switch normalizePath(path) {
	case "/reset-password":
		return ViewResetPassword
	case "/verify":
		return ViewVerifyEmail
	}

	switch session.State() {
	case domainauth.StateBootstrapping:
		return ViewLoading
	case domainauth.StateAuthenticated:
		if session.IsAdmin() {
			return ViewAdminDashboard
		}
		return ViewStudentDashboard
	default:
		return ViewLogin
	}
}

// normalizePath strips a trailing slash so /reset-password/ matches too.
func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
