package auth

import (
	"testing"
	"time"
)

func TestSession_State(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		sess Session
		want SessionState
	}{
		{name: "zero session is anonymous", sess: Session{}, want: StateAnonymous},
		{
			name: "session without token is anonymous",
			sess: Session{ID: "s1", Identity: Identity{UserID: "u1"}},
			want: StateAnonymous,
		},
		{
			name: "unverified session is bootstrapping",
			sess: Session{ID: "s1", Token: "tok", Identity: Identity{UserID: "u1"}, CreatedAt: now},
			want: StateBootstrapping,
		},
		{
			name: "verified session is authenticated",
			sess: Session{ID: "s1", Token: "tok", Verified: true, CreatedAt: now},
			want: StateAuthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sess.State(); got != tt.want {
				t.Fatalf("State() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSession_IsAdmin(t *testing.T) {
	s := Session{Identity: Identity{Kind: ActorAdmin}}
	if !s.IsAdmin() {
		t.Fatalf("expected admin")
	}
	if (Session{Identity: Identity{Kind: ActorStudent}}).IsAdmin() {
		t.Fatalf("did not expect admin")
	}
}

func TestActorKind_Valid(t *testing.T) {
	if !ActorStudent.Valid() || !ActorAdmin.Valid() {
		t.Fatalf("known kinds should be valid")
	}
	if ActorKind("teacher").Valid() {
		t.Fatalf("unknown kind should be invalid")
	}
}
