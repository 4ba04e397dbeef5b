package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/guitarguru/gg-dashboard/config"
	"github.com/guitarguru/gg-dashboard/internal/adapters/guruapi"
	redisadapter "github.com/guitarguru/gg-dashboard/internal/adapters/redis"
	"github.com/guitarguru/gg-dashboard/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	API      *guruapi.Client
	Sessions *service.SessionService
	Lessons  *service.LessonService
	Assets   *service.AssetService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires the lesson API client, the Redis adapters, and the
// services on top of them. The client's unauthorized hook is installed last:
// the session service needs the client to exist, and the client needs the
// session service to drop rejected sessions.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	if deps.RedisClient == nil {
		return ServiceContainer{}, errors.New("redis client is required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg := deps.Config

	apiClient, err := guruapi.NewClient(guruapi.ClientOptions{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.API.Timeout},
		Paths: guruapi.ExtractPaths{
			User:        cfg.API.UserPath,
			Lessons:     cfg.API.LessonsPath,
			Lesson:      cfg.API.LessonPath,
			Asset:       cfg.API.AssetPath,
			AccessToken: cfg.API.AccessTokenPath,
			Message:     cfg.API.MessagePath,
		},
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build lesson API client: %w", err)
	}

	sessionStore := redisadapter.NewSessionStore(deps.RedisClient)
	lessonCache := redisadapter.NewLessonCache(deps.RedisClient, cfg.Session.LessonCacheTTL)

	sessions := service.NewSessionService(service.SessionServiceOptions{
		Auth:     apiClient,
		Sessions: sessionStore,
		Config: service.SessionServiceConfig{
			TTL:              cfg.Session.TTL,
			ReverifyInterval: cfg.Session.ReverifyInterval,
		},
		Logger: logger,
	})

	// Any 401 from the upstream API drops the browser session record, so the
	// token and the cached identity disappear together.
	apiClient.SetUnauthorizedHook(sessions.InvalidateFromContext)

	lessons := service.NewLessonService(service.LessonServiceOptions{
		API:    apiClient,
		Cache:  lessonCache,
		Logger: logger,
	})

	assets := service.NewAssetService(service.AssetServiceOptions{
		API:    apiClient,
		Config: service.AssetServiceConfig{MaxUploadBytes: cfg.Uploads.MaxBytes},
		Logger: logger,
	})

	return ServiceContainer{
		API:      apiClient,
		Sessions: sessions,
		Lessons:  lessons,
		Assets:   assets,
	}, nil
}
