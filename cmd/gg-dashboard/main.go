// Command gg-dashboard runs the lesson-management dashboard: a server-rendered
// UI in front of the Guitar Guru lesson API, with Redis for sessions and the
// lesson cache.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/guitarguru/gg-dashboard/internal/bootstrap"
)

func main() {
	logger := bootstrap.InitLogger()
	if err := run(logger); err != nil {
		logger.Error("fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // non-zero exit on fatal startup errors
	}
}

func run(logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	logger.Info("starting gg-dashboard",
		"addr", cfg.HTTP.Addr,
		"api_base_url", cfg.API.BaseURL,
		"dev", cfg.IsDev)

	redisClient, err := bootstrap.ConnectRedis(bootstrap.RedisOptions{
		Config: cfg.Redis,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			logger.ErrorContext(context.Background(), "close redis failed", "error", cerr)
		}
	}()

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cfg,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	return bootstrap.RunWithShutdown(&bootstrap.RunConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})
}
