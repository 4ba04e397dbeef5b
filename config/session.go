package config

import "time"

// SessionConfig contains browser session configuration.
type SessionConfig struct {
	// TTL is how long a browser session lives without a fresh login.
	TTL time.Duration `env:"TTL" envDefault:"24h"`

	// ReverifyInterval bounds how long a cached identity is trusted before the
	// next request re-confirms it against the lesson API. Keeps a revoked
	// token from riding out the full session TTL.
	ReverifyInterval time.Duration `env:"REVERIFY_INTERVAL" envDefault:"5m"`

	// LessonCacheTTL is how long a fetched lesson list is served from Redis
	// before the next render refetches. Mutations invalidate it early.
	LessonCacheTTL time.Duration `env:"LESSON_CACHE_TTL" envDefault:"1m"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.TTL < time.Minute {
		s.TTL = 24 * time.Hour
	}
	if s.ReverifyInterval <= 0 {
		s.ReverifyInterval = 5 * time.Minute
	}
	if s.LessonCacheTTL <= 0 {
		s.LessonCacheTTL = time.Minute
	}
}

// UploadConfig contains asset upload configuration.
type UploadConfig struct {
	// MaxBytes caps accepted asset uploads.
	MaxBytes int64 `env:"MAX_BYTES" envDefault:"26214400"`
}

// Sanitize applies guardrails to upload configuration values.
func (u *UploadConfig) Sanitize() {
	if u.MaxBytes <= 0 {
		u.MaxBytes = 25 << 20
	}
}
