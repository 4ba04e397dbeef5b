// Reference skeleton for new services. Not compiled: the Example* types are
// placeholders. Copy the shape, not the names.
//
//go:build ignore

package service

// Every service in this package follows the same few rules:
//
//   - Dependencies arrive through an Options struct and a single
//     New<Name>Service constructor. Required ports panic when nil; optional
//     ones (cache, logger) are nil-checked at use.
//   - Services depend on the interfaces in internal/ports, never on the
//     adapters that implement them, and never import internal/http.
//   - Every method that can block takes a context.Context first.
//   - Errors are wrapped once at the call boundary with
//     fmt.Errorf("verb noun: %w", err) so handlers can errors.Is against
//     upstream sentinels.
//
// LessonService and SessionService are the live references; this file shows
// the bare skeleton.

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/guitarguru/gg-dashboard/internal/domain/model"
	"github.com/guitarguru/gg-dashboard/internal/ports"
)

// ExampleServiceOptions groups dependencies for ExampleService. Keep it to a
// handful of fields; related knobs go in a nested config struct (see
// SessionServiceConfig).
type ExampleServiceOptions struct {
	API    ports.ExampleAPI
	Cache  ports.ExampleCache
	Logger *slog.Logger
}

// ExampleService holds the orchestration logic: caching strategy, upstream
// calls, business rules. Fields are private; nothing reaches in from outside.
type ExampleService struct {
	api    ports.ExampleAPI
	cache  ports.ExampleCache
	logger *slog.Logger
}

func NewExampleService(opts ExampleServiceOptions) *ExampleService {
	if opts.API == nil {
		panic("ExampleAPI is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ExampleService{
		api:    opts.API,
		cache:  opts.Cache,
		logger: logger,
	}
}

// Get shows the read path: cache first, upstream on miss, best-effort cache
// write. Cache failures are logged and swallowed; the upstream answer wins.
func (s *ExampleService) Get(ctx context.Context, token, id string) (model.Example, error) {
	if s.cache != nil {
		if ex, hit, err := s.cache.Get(ctx, id); err == nil && hit {
			return ex, nil
		} else if err != nil {
			s.logger.Warn("example cache read failed", "error", err)
		}
	}

	ex, err := s.api.Get(ctx, token, id)
	if err != nil {
		return model.Example{}, fmt.Errorf("get example: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, id, ex); err != nil {
			s.logger.Warn("example cache write failed", "error", err)
		}
	}
	return ex, nil
}

// Update shows the write path: mutate upstream, then invalidate so the next
// read refetches. Invalidation failures must not fail a mutation that
// already landed.
func (s *ExampleService) Update(ctx context.Context, token, id string, req model.UpdateExampleRequest) (model.Example, error) {
	ex, err := s.api.Update(ctx, token, id, req)
	if err != nil {
		return model.Example{}, fmt.Errorf("update example: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, id); err != nil {
			s.logger.Warn("example cache invalidation failed", "error", err)
		}
	}
	return ex, nil
}
