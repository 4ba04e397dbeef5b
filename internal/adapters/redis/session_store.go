// Package redis provides the Redis-backed adapters: the session store and
// the lesson list cache.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/guitarguru/gg-dashboard/internal/domain/auth"
	"github.com/guitarguru/gg-dashboard/internal/ports"
)

// ErrNotFound aliases the port sentinel so services can match misses without
// importing this package.
var ErrNotFound = ports.ErrSessionNotFound

const defaultSessionPrefix = "session:"

// SessionStore keeps sessions in Redis, with the key TTL tracking the
// session's own expiry so Redis evicts what the dashboard would reject.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
}

// NewSessionStore builds a store under the default "session:" prefix.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return NewSessionStoreWithPrefix(client, defaultSessionPrefix)
}

// NewSessionStoreWithPrefix builds a store with a custom key prefix, used to
// isolate parallel test runs sharing one Redis.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	return &SessionStore{client: client, prefix: prefix}
}

func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session is expired")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, s.prefix+sess.ID, data, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ErrNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}

	// Redis TTL normally evicts these first, but clock skew between the app
	// and Redis can leave an expired session readable.
	if time.Now().After(sess.ExpiresAt) {
		if err := s.Delete(ctx, id); err != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", err)
		}
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}
