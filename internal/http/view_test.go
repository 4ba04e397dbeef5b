package httpx

import (
	"testing"

	domainauth "github.com/guitarguru/gg-dashboard/internal/domain/auth"
)

func anonymous() domainauth.Session {
	return domainauth.Session{}
}

func bootstrapping() domainauth.Session {
	return domainauth.Session{ID: "s1", Token: "t1", Identity: domainauth.Identity{Kind: domainauth.ActorStudent}}
}

func authedStudent() domainauth.Session {
	return domainauth.Session{ID: "s1", Token: "t1", Verified: true, Identity: domainauth.Identity{Kind: domainauth.ActorStudent}}
}

func authedAdmin() domainauth.Session {
	return domainauth.Session{ID: "s1", Token: "t1", Verified: true, Identity: domainauth.Identity{Kind: domainauth.ActorAdmin}}
}

func TestResolveView(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		session domainauth.Session
		want    View
	}{
		{name: "root anonymous", path: "/", session: anonymous(), want: ViewLogin},
		{name: "root bootstrapping", path: "/", session: bootstrapping(), want: ViewLoading},
		{name: "root student", path: "/", session: authedStudent(), want: ViewStudentDashboard},
		{name: "root admin", path: "/", session: authedAdmin(), want: ViewAdminDashboard},

		// Emailed-link routes win over session state in every state
		{name: "reset anonymous", path: "/reset-password", session: anonymous(), want: ViewResetPassword},
		{name: "reset bootstrapping", path: "/reset-password", session: bootstrapping(), want: ViewResetPassword},
		{name: "reset admin", path: "/reset-password", session: authedAdmin(), want: ViewResetPassword},
		{name: "verify anonymous", path: "/verify", session: anonymous(), want: ViewVerifyEmail},
		{name: "verify student", path: "/verify", session: authedStudent(), want: ViewVerifyEmail},

		// Trailing slashes resolve the same way
		{name: "reset trailing slash", path: "/reset-password/", session: anonymous(), want: ViewResetPassword},
		{name: "verify trailing slash", path: "/verify/", session: authedAdmin(), want: ViewVerifyEmail},

		// Missing token means anonymous even with a cached identity
		{
			name:    "identity without token is anonymous",
			path:    "/",
			session: domainauth.Session{ID: "s1", Identity: domainauth.Identity{Kind: domainauth.ActorAdmin}, Verified: true},
			want:    ViewLogin,
		},
		{name: "empty path treated as root", path: "", session: authedAdmin(), want: ViewAdminDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveView(tt.path, tt.session); got != tt.want {
				t.Fatalf("ResolveView(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/verify", "/verify"},
		{"/verify/", "/verify"},
		{"/reset-password//", "/reset-password"},
	}
	for _, tt := range tests {
		if got := normalizePath(tt.in); got != tt.want {
			t.Fatalf("normalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
