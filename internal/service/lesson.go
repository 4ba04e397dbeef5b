package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/sync/singleflight"

	"github.com/guitarguru/gg-dashboard/internal/domain/model"
	apperrors "github.com/guitarguru/gg-dashboard/internal/errors"
	"github.com/guitarguru/gg-dashboard/internal/ports"
)

// lessonListKey is the cache key for the shared lesson list. The catalog is
// the same for every viewer; authorization lives upstream.
const lessonListKey = "all"

// LessonServiceOptions groups dependencies for LessonService.
type LessonServiceOptions struct {
	API    ports.LessonAPI
	Cache  ports.LessonCache
	Logger *slog.Logger
}

// LessonService orchestrates the lesson catalog: cached, deduplicated reads
// and write-through mutations that always invalidate before the UI refetches.
type LessonService struct {
	api       ports.LessonAPI
	cache     ports.LessonCache
	logger    *slog.Logger
	group     singleflight.Group
	sanitizer *bluemonday.Policy
}

// NewLessonService constructs a new LessonService.
func NewLessonService(opts LessonServiceOptions) *LessonService {
	if opts.API == nil {
		panic("LessonAPI is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &LessonService{
		api:       opts.API,
		cache:     opts.Cache,
		logger:    logger,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// List returns the lesson catalog, serving from cache when possible.
// Concurrent misses collapse into a single upstream fetch.
func (s *LessonService) List(ctx context.Context, token string) ([]model.Lesson, error) {
	if s.cache != nil {
		if lessons, hit, err := s.cache.Get(ctx, lessonListKey); err == nil && hit {
			return lessons, nil
		} else if err != nil {
			s.logger.Warn("lesson cache read failed", "error", err)
		}
	}

	result, err, _ := s.group.Do(lessonListKey, func() (any, error) {
		lessons, fetchErr := s.api.List(ctx, token)
		if fetchErr != nil {
			return nil, fetchErr
		}
		if s.cache != nil {
			if cacheErr := s.cache.Set(ctx, lessonListKey, lessons); cacheErr != nil {
				s.logger.Warn("lesson cache write failed", "error", cacheErr)
			}
		}
		return lessons, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	lessons, _ := result.([]model.Lesson)
	return lessons, nil
}

// Refresh invalidates the cache and fetches a fresh catalog. Mutation
// handlers call it after the mutation response so the table always shows
// server truth, not an optimistic guess.
func (s *LessonService) Refresh(ctx context.Context, token string) ([]model.Lesson, error) {
	s.invalidate(ctx)
	return s.List(ctx, token)
}

// Create validates, sanitizes, and posts a new lesson. The slug is derived
// from the title inside Validate; callers never supply one.
func (s *LessonService) Create(ctx context.Context, token string, req model.CreateLessonRequest) (model.Lesson, error) {
	req.Description = s.sanitizer.Sanitize(req.Description)
	if err := req.Validate(); err != nil {
		return model.Lesson{}, apperrors.Validation(err.Error())
	}

	lesson, err := s.api.Create(ctx, token, req)
	if err != nil {
		return model.Lesson{}, err
	}

	s.invalidate(ctx)
	s.logger.Info("lesson created", "id", lesson.ID, "slug", lesson.Slug)
	return lesson, nil
}

// Update validates, sanitizes, and patches a lesson.
func (s *LessonService) Update(
	ctx context.Context,
	token, id string,
	req model.UpdateLessonRequest,
) (model.Lesson, error) {
	if req.Description != nil {
		clean := s.sanitizer.Sanitize(*req.Description)
		req.Description = &clean
	}
	if err := req.Validate(); err != nil {
		return model.Lesson{}, apperrors.Validation(err.Error())
	}

	lesson, err := s.api.Update(ctx, token, id, req)
	if err != nil {
		return model.Lesson{}, err
	}

	s.invalidate(ctx)
	s.logger.Info("lesson updated", "id", id)
	return lesson, nil
}

// Delete removes a lesson. The confirmation step happens in the UI; by the
// time this runs the operator has already said yes.
func (s *LessonService) Delete(ctx context.Context, token, id string) error {
	if id == "" {
		return apperrors.Validation("lesson id is required")
	}

	if err := s.api.Delete(ctx, token, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Info("lesson deleted", "id", id)
	return nil
}

// Find returns one lesson from the catalog by ID.
func (s *LessonService) Find(ctx context.Context, token, id string) (model.Lesson, error) {
	lessons, err := s.List(ctx, token)
	if err != nil {
		return model.Lesson{}, err
	}
	for _, lesson := range lessons {
		if lesson.ID == id {
			return lesson, nil
		}
	}
	return model.Lesson{}, apperrors.NotFoundf("lesson %s not found", id)
}

func (s *LessonService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, lessonListKey); err != nil {
		s.logger.Warn("lesson cache invalidation failed", "error", err)
	}
}

// Excerpt flattens lesson description markup into plain text for table cells,
// truncating on a rune boundary.
func Excerpt(markup string, maxRunes int) string {
	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.WriteString(tokenizer.Token().Data)
			b.WriteByte(' ')
		}
	}

	text := strings.Join(strings.Fields(b.String()), " ")
	runes := []rune(text)
	if maxRunes > 0 && len(runes) > maxRunes {
		return strings.TrimSpace(string(runes[:maxRunes])) + "…"
	}
	return text
}
