package config

import (
	"strings"
	"time"
)

// APIConfig contains lesson API client configuration.
type APIConfig struct {
	// BaseURL is the origin of the Guitar Guru lesson API.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:4000"`

	// Timeout bounds every upstream request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`

	// Envelope extraction paths (JMESPath). Override only if the upstream
	// contract moves payloads inside the envelope.
	UserPath        string `env:"USER_PATH"         envDefault:"data.user"`
	LessonsPath     string `env:"LESSONS_PATH"      envDefault:"data.lessons"`
	LessonPath      string `env:"LESSON_PATH"       envDefault:"data.lesson"`
	AssetPath       string `env:"ASSET_PATH"        envDefault:"data.asset"`
	AccessTokenPath string `env:"ACCESS_TOKEN_PATH" envDefault:"data.accessToken"`
	MessagePath     string `env:"MESSAGE_PATH"      envDefault:"message"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if a.Timeout <= 0 {
		a.Timeout = 15 * time.Second
	}
}
