package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/guitarguru/gg-dashboard/internal/domain/model"
	apperrors "github.com/guitarguru/gg-dashboard/internal/errors"
	"github.com/guitarguru/gg-dashboard/internal/mocks"
	authmocks "github.com/guitarguru/gg-dashboard/internal/mocks/auth"
)

func newLessonService(t *testing.T) (*LessonService, *mocks.MockLessonAPI, *authmocks.MemoryLessonCache) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	api := mocks.NewMockLessonAPI(ctrl)
	cache := authmocks.NewMemoryLessonCache()
	svc := NewLessonService(LessonServiceOptions{API: api, Cache: cache})
	return svc, api, cache
}

func TestLessonList_CachesFetch(t *testing.T) {
	svc, api, cache := newLessonService(t)
	ctx := context.Background()

	lessons := []model.Lesson{{ID: "l1", Title: "Open Chords", Slug: "open-chords"}}
	api.EXPECT().List(gomock.Any(), "tok").Return(lessons, nil).Times(1)

	got, err := svc.List(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, lessons, got)
	assert.Equal(t, 1, cache.Sets)

	// Second call is served from cache; the single EXPECT above enforces it.
	got, err = svc.List(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, lessons, got)
}

func TestLessonCreate_DerivesSlugAndInvalidates(t *testing.T) {
	svc, api, cache := newLessonService(t)
	ctx := context.Background()

	var sent model.CreateLessonRequest
	api.EXPECT().
		Create(gomock.Any(), "tok", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req model.CreateLessonRequest) (model.Lesson, error) {
			sent = req
			return model.Lesson{ID: "l9", Title: req.Title, Slug: req.Slug}, nil
		})

	lesson, err := svc.Create(ctx, "tok", model.CreateLessonRequest{
		Title:      "New Lesson",
		Difficulty: model.DifficultyBeginner,
	})
	require.NoError(t, err)
	assert.Equal(t, "new-lesson", sent.Slug)
	assert.Equal(t, "l9", lesson.ID)
	assert.Equal(t, 1, cache.Deletes, "a mutation must invalidate the cached list")
}

func TestLessonCreate_SanitizesDescription(t *testing.T) {
	svc, api, _ := newLessonService(t)
	ctx := context.Background()

	var sent model.CreateLessonRequest
	api.EXPECT().
		Create(gomock.Any(), "tok", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req model.CreateLessonRequest) (model.Lesson, error) {
			sent = req
			return model.Lesson{ID: "l1"}, nil
		})

	_, err := svc.Create(ctx, "tok", model.CreateLessonRequest{
		Title:       "Strumming",
		Difficulty:  model.DifficultyBeginner,
		Description: `<p>Keep it loose</p><script>alert("x")</script>`,
	})
	require.NoError(t, err)
	assert.Contains(t, sent.Description, "Keep it loose")
	assert.NotContains(t, sent.Description, "<script>")
}

func TestLessonCreate_InvalidRequestNeverReachesAPI(t *testing.T) {
	svc, _, cache := newLessonService(t)

	_, err := svc.Create(context.Background(), "tok", model.CreateLessonRequest{Title: "  "})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, 0, cache.Deletes)
}

func TestLessonUpdate_Invalidates(t *testing.T) {
	svc, api, cache := newLessonService(t)
	ctx := context.Background()

	title := "Renamed"
	api.EXPECT().
		Update(gomock.Any(), "tok", "l1", gomock.Any()).
		Return(model.Lesson{ID: "l1", Title: title}, nil)

	lesson, err := svc.Update(ctx, "tok", "l1", model.UpdateLessonRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", lesson.Title)
	assert.Equal(t, 1, cache.Deletes)
}

func TestLessonDelete_Invalidates(t *testing.T) {
	svc, api, cache := newLessonService(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, lessonListKey, []model.Lesson{{ID: "l1"}}))
	api.EXPECT().Delete(gomock.Any(), "tok", "l1").Return(nil)

	require.NoError(t, svc.Delete(ctx, "tok", "l1"))
	_, hit, _ := cache.Get(ctx, lessonListKey)
	assert.False(t, hit)
}

func TestLessonDelete_FailureKeepsCache(t *testing.T) {
	svc, api, cache := newLessonService(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, lessonListKey, []model.Lesson{{ID: "l1"}}))
	api.EXPECT().
		Delete(gomock.Any(), "tok", "l1").
		Return(apperrors.Upstream("lesson service unavailable"))

	err := svc.Delete(ctx, "tok", "l1")
	require.Error(t, err)
	_, hit, _ := cache.Get(ctx, lessonListKey)
	assert.True(t, hit, "a failed mutation should not drop server truth")
}

func TestLessonRefresh_BypassesCache(t *testing.T) {
	svc, api, cache := newLessonService(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, lessonListKey, []model.Lesson{{ID: "stale"}}))
	fresh := []model.Lesson{{ID: "l1"}, {ID: "l2"}}
	api.EXPECT().List(gomock.Any(), "tok").Return(fresh, nil)

	got, err := svc.Refresh(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, fresh, got)
}

func TestLessonFind(t *testing.T) {
	svc, api, _ := newLessonService(t)
	ctx := context.Background()

	api.EXPECT().
		List(gomock.Any(), "tok").
		Return([]model.Lesson{{ID: "l1"}, {ID: "l2"}}, nil)

	lesson, err := svc.Find(ctx, "tok", "l2")
	require.NoError(t, err)
	assert.Equal(t, "l2", lesson.ID)

	_, err = svc.Find(ctx, "tok", "l9")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		max    int
		want   string
	}{
		{name: "strips tags", markup: "<p>Keep it <b>loose</b></p>", max: 0, want: "Keep it loose"},
		{name: "collapses whitespace", markup: "a\n\n  b", max: 0, want: "a b"},
		{name: "truncates on rune boundary", markup: "ábcdef", max: 3, want: "ábc…"},
		{name: "plain text passes through", markup: "no markup here", max: 0, want: "no markup here"},
		{name: "empty", markup: "", max: 10, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Excerpt(tt.markup, tt.max))
		})
	}
}
