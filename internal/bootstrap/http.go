package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guitarguru/gg-dashboard/config"
	httpx "github.com/guitarguru/gg-dashboard/internal/http"
)

const (
	defaultAddr      = ":8080"
	httpReadTimeout  = 30 * time.Second
	httpWriteTimeout = 30 * time.Second
	httpIdleTimeout  = 120 * time.Second
	httpDrainTimeout = 10 * time.Second
)

// RunConfig carries what the blocking server loop needs.
type RunConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunWithShutdown starts the HTTP server and blocks until SIGINT or SIGTERM,
// then drains in-flight requests before returning.
func RunWithShutdown(cfg *RunConfig) error {
	if cfg == nil {
		return errors.New("run config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	handler := buildHandler(appCfg, cfg.Services, logger)
	server := listenAndServe(logger, handler, appCfg.HTTP.Addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig.String())

	logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpDrainTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("HTTP server stopped")
	return nil
}

// buildHandler stacks the middleware around the router. Compression sits
// innermost so the access log records compressed sizes.
func buildHandler(appCfg *config.AppConfig, services ServiceContainer, logger *slog.Logger) http.Handler {
	h := httpx.NewRouter(httpx.RouterServices{
		Sessions:     services.Sessions,
		Lessons:      services.Lessons,
		Assets:       services.Assets,
		CookieDomain: appCfg.HTTP.CookieDomain,
		IsDev:        appCfg.IsDev,
		Logger:       logger,
	})

	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel)
		h = httpx.Compression(httpx.CompressionConfig{Level: appCfg.HTTP.CompressionLevel})(h)
	}
	h = httpx.Logging(logger)(h)
	return httpx.Recover(logger)(h)
}

func listenAndServe(logger *slog.Logger, handler http.Handler, addr string) *http.Server {
	if addr == "" {
		addr = defaultAddr
	}
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  httpReadTimeout,
		WriteTimeout: httpWriteTimeout,
		IdleTimeout:  httpIdleTimeout,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
		}
	}()
	return server
}
