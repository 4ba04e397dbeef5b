package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/guitarguru/gg-dashboard/internal/domain/auth"
	"github.com/guitarguru/gg-dashboard/internal/domain/model"
)

// LessonBuilder provides a fluent interface for building Lesson objects for testing.
type LessonBuilder struct {
	lesson model.Lesson
}

// NewLesson creates a new LessonBuilder with sensible defaults.
func NewLesson() *LessonBuilder {
	now := TestTime()
	return &LessonBuilder{
		lesson: model.Lesson{
			ID:           uuid.NewString(),
			Title:        "Open Chords",
			Slug:         "open-chords",
			Description:  "Learn the CAGED open chord shapes.",
			Difficulty:   model.DifficultyBeginner,
			DurationMins: 30,
			Published:    true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}

// WithID sets the lesson ID.
func (b *LessonBuilder) WithID(id string) *LessonBuilder {
	b.lesson.ID = id
	return b
}

// WithTitle sets the title and re-derives the slug the way the form does.
func (b *LessonBuilder) WithTitle(title string) *LessonBuilder {
	b.lesson.Title = title
	b.lesson.Slug = model.DeriveSlug(title)
	return b
}

// WithDescription sets the description markup.
func (b *LessonBuilder) WithDescription(desc string) *LessonBuilder {
	b.lesson.Description = desc
	return b
}

// WithDifficulty sets the difficulty grade.
func (b *LessonBuilder) WithDifficulty(d model.Difficulty) *LessonBuilder {
	b.lesson.Difficulty = d
	return b
}

// WithDuration sets the duration in minutes.
func (b *LessonBuilder) WithDuration(mins int) *LessonBuilder {
	b.lesson.DurationMins = mins
	return b
}

// Published sets the published flag.
func (b *LessonBuilder) Published(published bool) *LessonBuilder {
	b.lesson.Published = published
	return b
}

// WithAssets attaches assets to the lesson.
func (b *LessonBuilder) WithAssets(assets ...model.Asset) *LessonBuilder {
	b.lesson.Assets = assets
	return b
}

// WithUpdatedAt sets the updated timestamp.
func (b *LessonBuilder) WithUpdatedAt(t time.Time) *LessonBuilder {
	b.lesson.UpdatedAt = t
	return b
}

// Build returns the constructed Lesson.
func (b *LessonBuilder) Build() model.Lesson {
	return b.lesson
}

// AssetBuilder provides a fluent interface for building Asset objects for testing.
type AssetBuilder struct {
	asset model.Asset
}

// NewAsset creates a new AssetBuilder with sensible defaults.
func NewAsset() *AssetBuilder {
	return &AssetBuilder{
		asset: model.Asset{
			ID:          uuid.NewString(),
			LessonID:    uuid.NewString(),
			Type:        model.AssetTypePDF,
			DisplayName: "Chord Chart",
			URL:         "https://cdn.example.com/chord-chart.pdf",
			CreatedAt:   TestTime(),
		},
	}
}

// ForLesson sets the owning lesson ID.
func (b *AssetBuilder) ForLesson(lessonID string) *AssetBuilder {
	b.asset.LessonID = lessonID
	return b
}

// WithType sets the asset type.
func (b *AssetBuilder) WithType(t model.AssetType) *AssetBuilder {
	b.asset.Type = t
	return b
}

// WithDisplayName sets the display name.
func (b *AssetBuilder) WithDisplayName(name string) *AssetBuilder {
	b.asset.DisplayName = name
	return b
}

// Build returns the constructed Asset.
func (b *AssetBuilder) Build() model.Asset {
	return b.asset
}

// SessionBuilder provides a fluent interface for building Session records for testing.
type SessionBuilder struct {
	session auth.Session
}

// NewSession creates a new SessionBuilder defaulting to a verified student session.
func NewSession() *SessionBuilder {
	now := TestTime()
	return &SessionBuilder{
		session: auth.Session{
			ID:    uuid.NewString(),
			Token: "tok-" + uuid.NewString(),
			Identity: auth.Identity{
				UserID: uuid.NewString(),
				Email:  "student@example.com",
				Name:   "Test Student",
				Kind:   auth.ActorStudent,
			},
			Verified:   true,
			VerifiedAt: now,
			CreatedAt:  now,
			ExpiresAt:  now.Add(24 * time.Hour),
		},
	}
}

// Admin marks the identity as an admin.
func (b *SessionBuilder) Admin() *SessionBuilder {
	b.session.Identity.Kind = auth.ActorAdmin
	return b
}

// WithID sets the session ID.
func (b *SessionBuilder) WithID(id string) *SessionBuilder {
	b.session.ID = id
	return b
}

// Unverified marks the record as not yet reconciled upstream.
func (b *SessionBuilder) Unverified() *SessionBuilder {
	b.session.Verified = false
	return b
}

// WithIdentity replaces the cached identity.
func (b *SessionBuilder) WithIdentity(id auth.Identity) *SessionBuilder {
	b.session.Identity = id
	return b
}

// WithToken sets the upstream bearer token.
func (b *SessionBuilder) WithToken(token string) *SessionBuilder {
	b.session.Token = token
	return b
}

// WithExpiry sets the expiry timestamp.
func (b *SessionBuilder) WithExpiry(t time.Time) *SessionBuilder {
	b.session.ExpiresAt = t
	return b
}

// Build returns the constructed Session.
func (b *SessionBuilder) Build() auth.Session {
	return b.session
}
