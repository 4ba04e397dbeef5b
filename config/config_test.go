package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.guitarguru.example/")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("REDIS_URI", "redis:6379")
	t.Setenv("SESSION_TTL", "12h")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("UPLOAD_MAX_BYTES", "1048576")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.BaseURL != "https://api.guitarguru.example" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Fatalf("unexpected API timeout: %v", cfg.API.Timeout)
	}
	if cfg.Redis.URI != "redis:6379" {
		t.Fatalf("unexpected redis URI: %q", cfg.Redis.URI)
	}
	if cfg.Session.TTL != 12*time.Hour {
		t.Fatalf("unexpected session TTL: %v", cfg.Session.TTL)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected HTTP addr: %q", cfg.HTTP.Addr)
	}
	if cfg.Uploads.MaxBytes != 1<<20 {
		t.Fatalf("unexpected upload cap: %d", cfg.Uploads.MaxBytes)
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.UserPath != "data.user" {
		t.Fatalf("unexpected user path: %q", cfg.API.UserPath)
	}
	if cfg.API.AccessTokenPath != "data.accessToken" {
		t.Fatalf("unexpected access token path: %q", cfg.API.AccessTokenPath)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Fatalf("unexpected session TTL default: %v", cfg.Session.TTL)
	}
	if cfg.Session.LessonCacheTTL != time.Minute {
		t.Fatalf("unexpected lesson cache TTL default: %v", cfg.Session.LessonCacheTTL)
	}
}

func TestHTTPConfig_SanitizeClampsCompressionLevel(t *testing.T) {
	cfg := HTTPConfig{CompressionLevel: 42}
	cfg.Sanitize()
	if cfg.CompressionLevel != 9 {
		t.Fatalf("expected compression level clamped to 9, got %d", cfg.CompressionLevel)
	}

	cfg = HTTPConfig{CompressionLevel: -1}
	cfg.Sanitize()
	if cfg.CompressionLevel != 1 {
		t.Fatalf("expected compression level clamped to 1, got %d", cfg.CompressionLevel)
	}
}

func TestHTTPConfig_SanitizeRejectsPublicSuffixCookieDomain(t *testing.T) {
	cfg := HTTPConfig{CompressionLevel: 6, CookieDomain: ".co.uk"}
	cfg.Sanitize()
	if cfg.CookieDomain != "" {
		t.Fatalf("expected public-suffix cookie domain dropped, got %q", cfg.CookieDomain)
	}

	cfg = HTTPConfig{CompressionLevel: 6, CookieDomain: "app.guitarguru.io"}
	cfg.Sanitize()
	if cfg.CookieDomain != "app.guitarguru.io" {
		t.Fatalf("expected registrable cookie domain kept, got %q", cfg.CookieDomain)
	}
}

func TestAPIConfig_SanitizeGuardrails(t *testing.T) {
	cfg := APIConfig{BaseURL: "  http://api.local/  ", Timeout: -time.Second}
	cfg.Sanitize()
	if cfg.BaseURL != "http://api.local" {
		t.Fatalf("unexpected base URL: %q", cfg.BaseURL)
	}
	if cfg.Timeout != 15*time.Second {
		t.Fatalf("expected timeout fallback, got %v", cfg.Timeout)
	}
}

func TestSessionConfig_SanitizeGuardrails(t *testing.T) {
	cfg := SessionConfig{TTL: time.Second, LessonCacheTTL: 0}
	cfg.Sanitize()
	if cfg.TTL != 24*time.Hour {
		t.Fatalf("expected TTL fallback, got %v", cfg.TTL)
	}
	if cfg.LessonCacheTTL != time.Minute {
		t.Fatalf("expected cache TTL fallback, got %v", cfg.LessonCacheTTL)
	}
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	cfg.Sanitize()
	if !cfg.IsDev {
		t.Fatal("expected NODE_ENV=development to enable dev mode")
	}
}
