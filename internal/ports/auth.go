package ports

// Package ports defines interfaces (hexagonal ports) for upstream API access
// and session persistence. Implementations live in internal/adapters;
// orchestration in internal/service.

import (
	"context"
	"errors"
	"io"

	domainauth "github.com/guitarguru/gg-dashboard/internal/domain/auth"
	"github.com/guitarguru/gg-dashboard/internal/domain/model"
)

// ErrSessionNotFound is returned by SessionStore implementations when no
// record exists for an ID.
var ErrSessionNotFound = errors.New("session not found")

// LoginInput carries credentials for a sign-in attempt. AdminAttempt selects
// the admin endpoint and tags the resulting identity.
type LoginInput struct {
	Email        string
	Password     string
	AdminAttempt bool
}

// LoginResult is the upstream response to a successful sign-in.
type LoginResult struct {
	Token    string
	Identity domainauth.Identity
}

// SignupInput carries fields for a new student account.
type SignupInput struct {
	Email    string
	Password string
	Name     string
}

// AuthAPI talks to the auth surface of the lesson API.
type AuthAPI interface {
	// Login exchanges credentials for an access token and identity.
	Login(ctx context.Context, in LoginInput) (LoginResult, error)

	// Signup registers a student account. The account still requires email
	// verification before login succeeds.
	Signup(ctx context.Context, in SignupInput) error

	// Me fetches the identity bound to the token.
	Me(ctx context.Context, token string) (domainauth.Identity, error)

	// VerifyEmail redeems an email verification token.
	VerifyEmail(ctx context.Context, token string) error

	// ForgotPassword requests a reset email for the given account kind.
	ForgotPassword(ctx context.Context, email string, kind domainauth.ActorKind) error

	// ResetPassword redeems a reset token with a new password.
	ResetPassword(ctx context.Context, token, newPassword string, kind domainauth.ActorKind) error
}

// LessonAPI talks to the lesson CRUD surface of the lesson API. Every call
// carries the session token; the API enforces actual authorization.
type LessonAPI interface {
	List(ctx context.Context, token string) ([]model.Lesson, error)
	Create(ctx context.Context, token string, req model.CreateLessonRequest) (model.Lesson, error)
	Update(ctx context.Context, token, id string, req model.UpdateLessonRequest) (model.Lesson, error)
	Delete(ctx context.Context, token, id string) error
}

// AssetAPI uploads lesson attachments to the lesson API.
type AssetAPI interface {
	Upload(ctx context.Context, token string, req model.UploadAssetRequest, file io.Reader) (model.Asset, error)
}

// SessionStore persists and retrieves browser sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// LessonCache holds the most recent lesson list per actor kind so repeat
// dashboard renders do not refetch. Mutations must invalidate it.
type LessonCache interface {
	Get(ctx context.Context, key string) ([]model.Lesson, bool, error)
	Set(ctx context.Context, key string, lessons []model.Lesson) error
	Delete(ctx context.Context, key string) error
}
