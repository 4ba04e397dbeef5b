package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guitarguru/gg-dashboard/internal/domain/model"
)

// LessonCache keeps the most recent lesson list in Redis so repeated dashboard
// renders do not hammer the lesson API. Mutation paths invalidate it; a miss
// simply means the caller refetches.
type LessonCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewLessonCache creates a lesson list cache with the given TTL.
func NewLessonCache(client redis.UniversalClient, ttl time.Duration) *LessonCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &LessonCache{
		client: client,
		prefix: "lessons:",
		ttl:    ttl,
	}
}

// Get retrieves a cached lesson list. The bool reports whether the key was
// present; a corrupt entry is dropped and treated as a miss.
func (c *LessonCache) Get(ctx context.Context, key string) ([]model.Lesson, bool, error) {
	if key == "" {
		return nil, false, errors.New("key cannot be empty")
	}

	data, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var lessons []model.Lesson
	if unmarshalErr := json.Unmarshal([]byte(data), &lessons); unmarshalErr != nil {
		if deleteErr := c.Delete(ctx, key); deleteErr != nil {
			return nil, false, fmt.Errorf("drop corrupt cache entry: %w", deleteErr)
		}
		return nil, false, nil
	}

	return lessons, true, nil
}

// Set stores a lesson list under the given key.
func (c *LessonCache) Set(ctx context.Context, key string, lessons []model.Lesson) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	data, err := json.Marshal(lessons)
	if err != nil {
		return fmt.Errorf("marshal lessons: %w", err)
	}

	return c.client.Set(ctx, c.prefix+key, data, c.ttl).Err()
}

// Delete invalidates a cached lesson list.
func (c *LessonCache) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	return c.client.Del(ctx, c.prefix+key).Err()
}
