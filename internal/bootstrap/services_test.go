package bootstrap

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guitarguru/gg-dashboard/config"
)

func testAppConfig() *config.AppConfig {
	cfg := &config.AppConfig{}
	cfg.API.BaseURL = "http://localhost:4000"
	cfg.API.Timeout = 15 * time.Second
	cfg.Sanitize()
	return cfg
}

func TestNewServicesWiresContainer(t *testing.T) {
	// Construction never dials; a throwaway client is enough.
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	services, err := NewServices(&ServiceDeps{
		Config:      testAppConfig(),
		RedisClient: client,
	})
	if err != nil {
		t.Fatalf("NewServices() error = %v", err)
	}

	if services.API == nil {
		t.Fatal("NewServices() left API client nil")
	}
	if services.Sessions == nil || services.Lessons == nil || services.Assets == nil {
		t.Fatalf("NewServices() left a service nil: %+v", services)
	}
}

func TestNewServicesRequiresConfig(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	if _, err := NewServices(&ServiceDeps{RedisClient: client}); err == nil {
		t.Fatal("NewServices() with nil config should fail")
	}
	if _, err := NewServices(nil); err == nil {
		t.Fatal("NewServices(nil) should fail")
	}
}

func TestNewServicesRequiresRedis(t *testing.T) {
	if _, err := NewServices(&ServiceDeps{Config: testAppConfig()}); err == nil {
		t.Fatal("NewServices() with nil redis client should fail")
	}
}

func TestNewServicesRejectsBadBaseURL(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	cfg := testAppConfig()
	cfg.API.BaseURL = "   "

	if _, err := NewServices(&ServiceDeps{Config: cfg, RedisClient: client}); err == nil {
		t.Fatal("NewServices() with blank base URL should fail")
	}
}
