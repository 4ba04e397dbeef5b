package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guitarguru/gg-dashboard/internal/domain/model"
	"github.com/guitarguru/gg-dashboard/internal/testutil"
)

func TestLessonCache_SetGetDelete(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	cache := NewLessonCache(client, time.Minute)
	ctx := context.Background()

	lessons := []model.Lesson{
		testutil.NewLesson().WithID("l1").WithTitle("Open Chords").Build(),
		testutil.NewLesson().WithID("l2").WithTitle("Barre Chords").
			WithDifficulty(model.DifficultyIntermediate).Build(),
	}

	_, hit, err := cache.Get(ctx, "admin")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, "admin", lessons))

	got, hit, err := cache.Get(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, lessons, got)

	require.NoError(t, cache.Delete(ctx, "admin"))

	_, hit, err = cache.Get(ctx, "admin")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestLessonCache_CorruptEntryIsAMiss(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	cache := NewLessonCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "lessons:bad", "{not json", time.Minute).Err())

	_, hit, err := cache.Get(ctx, "bad")
	require.NoError(t, err)
	assert.False(t, hit)

	exists := client.Exists(ctx, "lessons:bad").Val()
	assert.Equal(t, int64(0), exists, "corrupt entry should have been dropped")
}

func TestLessonCache_EmptyKey(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer client.Close()

	cache := NewLessonCache(client, time.Minute)
	ctx := context.Background()

	_, _, err := cache.Get(ctx, "")
	assert.Error(t, err)

	assert.Error(t, cache.Set(ctx, "", nil))
	assert.NoError(t, cache.Delete(ctx, ""))
}
