package guruapi

import (
	"context"
	"net/url"
	"strings"

	domainauth "github.com/guitarguru/gg-dashboard/internal/domain/auth"
	apperrors "github.com/guitarguru/gg-dashboard/internal/errors"
	"github.com/guitarguru/gg-dashboard/internal/ports"
)

// userPayload is the upstream user object. Field names follow the lesson API
// contract, not our domain types.
type userPayload struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	LessonsDone     int    `json:"lessonsCompleted"`
	PracticeMinutes int    `json:"practiceMinutes"`
}

func (u userPayload) toIdentity() domainauth.Identity {
	kind := domainauth.ActorKind(strings.ToLower(u.Role))
	if !kind.Valid() {
		// The API is free to omit or rename roles; the session layer
		// overlays the kind asserted at login anyway.
		kind = ""
	}
	return domainauth.Identity{
		UserID:       u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Kind:         kind,
		LessonsDone:  u.LessonsDone,
		PracticeMins: u.PracticeMinutes,
	}
}

// Login exchanges credentials for a token and identity. AdminAttempt routes to
// the admin endpoint; a failed attempt returns the upstream message untouched
// and leaves no other trace.
func (c *Client) Login(ctx context.Context, in ports.LoginInput) (ports.LoginResult, error) {
	path := "/auth/login"
	if in.AdminAttempt {
		path = "/auth/admin/login"
	}

	envelope, err := c.do(ctx, "POST", path, "", map[string]string{
		"email":    in.Email,
		"password": in.Password,
	}, "", nil)
	if err != nil {
		return ports.LoginResult{}, err
	}

	var token string
	if err := c.extract(envelope, c.paths.AccessToken, &token); err != nil {
		return ports.LoginResult{}, err
	}
	if token == "" {
		return ports.LoginResult{}, apperrors.Upstream("lesson API returned an empty access token")
	}

	var user userPayload
	if err := c.extract(envelope, c.paths.User, &user); err != nil {
		return ports.LoginResult{}, err
	}

	return ports.LoginResult{Token: token, Identity: user.toIdentity()}, nil
}

// Signup registers a student account.
func (c *Client) Signup(ctx context.Context, in ports.SignupInput) error {
	_, err := c.do(ctx, "POST", "/auth/signup", "", map[string]string{
		"email":    in.Email,
		"password": in.Password,
		"name":     in.Name,
	}, "", nil)
	return err
}

// Me fetches the identity bound to the token.
func (c *Client) Me(ctx context.Context, token string) (domainauth.Identity, error) {
	envelope, err := c.do(ctx, "GET", "/auth/me", token, nil, "", nil)
	if err != nil {
		return domainauth.Identity{}, err
	}

	var user userPayload
	if err := c.extract(envelope, c.paths.User, &user); err != nil {
		return domainauth.Identity{}, err
	}
	return user.toIdentity(), nil
}

// VerifyEmail redeems an email verification token.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return apperrors.Validation("verification token is missing")
	}
	_, err := c.do(ctx, "GET", "/auth/verify?token="+url.QueryEscape(token), "", nil, "", nil)
	return err
}

// ForgotPassword requests a reset email for the given account kind.
func (c *Client) ForgotPassword(ctx context.Context, email string, kind domainauth.ActorKind) error {
	if !kind.Valid() {
		kind = domainauth.ActorStudent
	}
	_, err := c.do(ctx, "POST", "/auth/forgot-password", "", map[string]string{
		"email": email,
		"type":  string(kind),
	}, "", nil)
	return err
}

// ResetPassword redeems a reset token with a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string, kind domainauth.ActorKind) error {
	if strings.TrimSpace(token) == "" {
		return apperrors.Validation("reset token is missing")
	}
	if !kind.Valid() {
		kind = domainauth.ActorStudent
	}
	_, err := c.do(ctx, "POST", "/auth/reset-password", "", map[string]string{
		"token":       token,
		"newPassword": newPassword,
		"type":        string(kind),
	}, "", nil)
	return err
}

var _ ports.AuthAPI = (*Client)(nil)
