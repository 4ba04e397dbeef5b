package bootstrap

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimAddrs(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{name: "empty", raw: nil, want: []string{}},
		{name: "trims whitespace", raw: []string{" a:6379 ", "b:6379"}, want: []string{"a:6379", "b:6379"}},
		{name: "drops blanks", raw: []string{"", "  ", "c:6379"}, want: []string{"c:6379"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trimAddrs(tt.raw))
		})
	}
}

func TestIsRedisURL(t *testing.T) {
	assert.True(t, isRedisURL("redis://localhost:6379"))
	assert.True(t, isRedisURL("rediss://cache.example:6380"))
	assert.False(t, isRedisURL("localhost:6379"))
	assert.False(t, isRedisURL(""))
}

func TestSeedClusterFromURI(t *testing.T) {
	t.Run("blank URI leaves options alone", func(t *testing.T) {
		opts := &redis.ClusterOptions{Password: "secret"}
		require.NoError(t, seedClusterFromURI(opts, "  "))
		assert.Empty(t, opts.Addrs)
		assert.Equal(t, "secret", opts.Password)
	})

	t.Run("plain host becomes the node list", func(t *testing.T) {
		opts := &redis.ClusterOptions{Password: "secret"}
		require.NoError(t, seedClusterFromURI(opts, "node-1:6379"))
		assert.Equal(t, []string{"node-1:6379"}, opts.Addrs)
		assert.Equal(t, "secret", opts.Password)
	})

	t.Run("redis URL carries its own credentials", func(t *testing.T) {
		opts := &redis.ClusterOptions{Password: "fallback"}
		require.NoError(t, seedClusterFromURI(opts, "redis://user:pw@node-1:6380"))
		assert.Equal(t, []string{"node-1:6380"}, opts.Addrs)
		assert.Equal(t, "user", opts.Username)
		assert.Equal(t, "pw", opts.Password)
	})

	t.Run("bad URL errors", func(t *testing.T) {
		assert.Error(t, seedClusterFromURI(&redis.ClusterOptions{}, "redis://bad url"))
	})
}

func TestRedactAddr(t *testing.T) {
	assert.Equal(t, "redis://*@cache.example:6380", redactAddr("redis://user:pw@cache.example:6380"))
	assert.Equal(t, "node-1:6379", redactAddr("user:pw@node-1:6379"))
	assert.Equal(t, "localhost:6379", redactAddr("localhost:6379"))
}
