package httpx

import (
	"context"

	domainauth "github.com/guitarguru/gg-dashboard/internal/domain/auth"
)

// sessionKey is unexported so no other package can collide with or spoof the
// session value.
type sessionKey struct{}

// SetSessionInContext attaches the session for downstream handlers. A nil
// session leaves the context untouched.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the session LoadSession stored, or nil for an
// anonymous request.
func GetSessionFromContext(ctx context.Context) *domainauth.Session {
	if s, ok := ctx.Value(sessionKey{}).(*domainauth.Session); ok {
		return s
	}
	return nil
}

// sessionOrZero treats an absent session as the anonymous zero session so
// callers can read state without a nil check.
func sessionOrZero(s *domainauth.Session) domainauth.Session {
	if s == nil {
		return domainauth.Session{}
	}
	return *s
}
