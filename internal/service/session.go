package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/guitarguru/gg-dashboard/internal/domain/auth"
	apperrors "github.com/guitarguru/gg-dashboard/internal/errors"
	"github.com/guitarguru/gg-dashboard/internal/ports"
)

// sessionIDKey carries the active session ID through contexts so the
// unauthorized hook can find the record to drop.
type sessionIDKey struct{}

// WithSessionID tags a context with the browser session ID.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// SessionIDFromContext extracts the browser session ID, if any.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey{}).(string)
	return id, ok && id != ""
}

// SessionServiceConfig groups tuning knobs for SessionService.
type SessionServiceConfig struct {
	// TTL is how long a browser session lives without a fresh login.
	TTL time.Duration

	// ReverifyInterval bounds how long a confirmed identity is trusted before
	// the next request must reconcile it upstream again. A revoked token is
	// caught within this window instead of riding out the full TTL.
	ReverifyInterval time.Duration
}

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	Auth     ports.AuthAPI
	Sessions ports.SessionStore
	Config   SessionServiceConfig
	Logger   *slog.Logger
}

// SessionService owns the browser session lifecycle: login, signup, the
// optimistic bootstrap reconcile, password flows, and logout. The token and
// cached identity always live and die together in one session record.
type SessionService struct {
	auth     ports.AuthAPI
	sessions ports.SessionStore
	ttl      time.Duration
	reverify time.Duration
	logger   *slog.Logger
}

// NewSessionService constructs a new SessionService.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	if opts.Auth == nil {
		panic("AuthAPI is required")
	}
	if opts.Sessions == nil {
		panic("SessionStore is required")
	}

	ttl := opts.Config.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	reverify := opts.Config.ReverifyInterval
	if reverify <= 0 {
		reverify = 5 * time.Minute
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionService{
		auth:     opts.Auth,
		sessions: opts.Sessions,
		ttl:      ttl,
		reverify: reverify,
		logger:   logger,
	}
}

// InvalidateFromContext drops the session named by the context, if any. It is
// installed as the API client's unauthorized hook so that any 401, on any
// endpoint, clears the token and cached identity in one stroke.
func (s *SessionService) InvalidateFromContext(ctx context.Context) {
	id, ok := SessionIDFromContext(ctx)
	if !ok {
		return
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		s.logger.Error("drop rejected session", "session_id", id, "error", err)
		return
	}
	s.logger.Info("session invalidated after upstream 401", "session_id", id)
}

// GetSession loads a session record. A missing or expired record comes back
// as the zero Session; callers branch on State(). Store failures are logged
// and treated as anonymous rather than blocking the page. A verified session
// whose last upstream confirmation predates the reverify window is returned
// unverified, which sends the caller back through Bootstrap.
func (s *SessionService) GetSession(ctx context.Context, id string) domainauth.Session {
	if id == "" {
		return domainauth.Session{}
	}
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, ports.ErrSessionNotFound) {
			s.logger.Error("get session", "session_id", id, "error", err)
		}
		return domainauth.Session{}
	}
	if sess.Verified && time.Since(sess.VerifiedAt) > s.reverify {
		sess.Verified = false
	}
	return sess
}

// Login authenticates against the lesson API and, only on success, mints a
// fresh session. The actor kind is asserted by which form was used; the
// upstream payload cannot override it. A failed attempt writes nothing.
func (s *SessionService) Login(
	ctx context.Context,
	email, password string,
	adminAttempt bool,
) (domainauth.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domainauth.Session{}, apperrors.Validation("email and password are required")
	}

	result, err := s.auth.Login(ctx, ports.LoginInput{
		Email:        email,
		Password:     password,
		AdminAttempt: adminAttempt,
	})
	if err != nil {
		return domainauth.Session{}, err
	}

	kind := domainauth.ActorStudent
	if adminAttempt {
		kind = domainauth.ActorAdmin
	}
	identity := result.Identity
	identity.Kind = kind

	now := time.Now()
	sess := domainauth.Session{
		ID:         uuid.NewString(),
		Token:      result.Token,
		Identity:   identity,
		Verified:   true,
		VerifiedAt: now,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("login", "user_id", identity.UserID, "kind", kind)
	return sess, nil
}

// Bootstrap reconciles a cached identity against the lesson API. On success
// the confirmed identity replaces the cached one (keeping the asserted kind
// when upstream omits it) and the session is marked verified. Any failure
// fails closed: the record is dropped and the browser is anonymous again.
func (s *SessionService) Bootstrap(ctx context.Context, sess domainauth.Session) (domainauth.Session, error) {
	if sess.State() == domainauth.StateAnonymous {
		return domainauth.Session{}, nil
	}

	ctx = WithSessionID(ctx, sess.ID)
	identity, err := s.auth.Me(ctx, sess.Token)
	if err != nil {
		// The 401 hook already dropped the record; drop it here too for
		// transport-class failures so a dead API cannot strand a stale
		// identity on screen.
		if deleteErr := s.sessions.Delete(ctx, sess.ID); deleteErr != nil {
			s.logger.Error("drop unverifiable session", "session_id", sess.ID, "error", deleteErr)
		}
		s.logger.Info("session bootstrap failed", "session_id", sess.ID, "error", err)
		return domainauth.Session{}, err
	}

	if !identity.Kind.Valid() {
		identity.Kind = sess.Identity.Kind
	}
	sess.Identity = identity
	sess.Verified = true
	sess.VerifiedAt = time.Now()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("save verified session: %w", err)
	}
	return sess, nil
}

// Logout drops the session record. The handler owns the cookie and the hard
// redirect; a missing record is not an error.
func (s *SessionService) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Signup registers a student account upstream. No session is created; the
// account must verify its email and then log in.
func (s *SessionService) Signup(ctx context.Context, email, password, name string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return apperrors.Validation("email and password are required")
	}
	return s.auth.Signup(ctx, ports.SignupInput{Email: email, Password: password, Name: strings.TrimSpace(name)})
}

// ForgotPassword requests a reset email.
func (s *SessionService) ForgotPassword(ctx context.Context, email string, kind domainauth.ActorKind) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperrors.Validation("email is required")
	}
	return s.auth.ForgotPassword(ctx, email, kind)
}

// ResetPassword redeems a reset token. It works for any session state; the
// reset screen must stay reachable while signed out.
func (s *SessionService) ResetPassword(ctx context.Context, token, newPassword string, kind domainauth.ActorKind) error {
	if strings.TrimSpace(token) == "" {
		return apperrors.Validation("reset token is missing")
	}
	if newPassword == "" {
		return apperrors.Validation("a new password is required")
	}
	return s.auth.ResetPassword(ctx, token, newPassword, kind)
}

// VerifyEmail redeems an email verification token.
func (s *SessionService) VerifyEmail(ctx context.Context, token string) error {
	return s.auth.VerifyEmail(ctx, token)
}
