package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// ActorKind distinguishes the two login surfaces. The kind is asserted by the
// login form that was used, not derived from the credentials, and stays with
// the identity until the browser session ends.
type ActorKind string

const (
	ActorStudent ActorKind = "student"
	ActorAdmin   ActorKind = "admin"
)

// Valid reports whether k is one of the known actor kinds.
func (k ActorKind) Valid() bool {
	return k == ActorStudent || k == ActorAdmin
}

// Identity represents the signed-in principal as returned by the lesson API.
type Identity struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Kind         ActorKind `json:"kind"`
	LessonsDone  int       `json:"lessons_done"`
	PracticeMins int       `json:"practice_mins"`
}

// SessionState is the lifecycle of a browser session.
type SessionState string

const (
	// StateAnonymous means no session record exists for the browser.
	StateAnonymous SessionState = "anonymous"
	// StateBootstrapping means a cached identity exists but has not yet been
	// confirmed against the lesson API. The UI may render optimistically.
	StateBootstrapping SessionState = "bootstrapping"
	// StateAuthenticated means the identity has been confirmed upstream.
	StateAuthenticated SessionState = "authenticated"
)

// Session is the server-side record kept for a signed-in browser. The access
// token and the cached identity live in the same record so that clearing one
// always clears the other.
type Session struct {
	ID       string   `json:"id"`
	Token    string   `json:"token"`
	Identity Identity `json:"identity"`
	Verified bool     `json:"verified"`
	// VerifiedAt records when the identity was last confirmed upstream.
	// A verified session whose confirmation has gone stale drops back to
	// bootstrapping so the next request re-checks it.
	VerifiedAt time.Time `json:"verified_at"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// State returns the lifecycle state implied by the record. A missing record
// (the zero Session) is anonymous; an unverified one is still bootstrapping.
func (s Session) State() SessionState {
	switch {
	case s.ID == "" || s.Token == "":
		return StateAnonymous
	case !s.Verified:
		return StateBootstrapping
	default:
		return StateAuthenticated
	}
}

// IsAdmin returns true if the session identity was asserted as an admin.
func (s Session) IsAdmin() bool { return s.Identity.Kind == ActorAdmin }
