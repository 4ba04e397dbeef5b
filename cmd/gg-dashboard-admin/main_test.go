package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/guitarguru/gg-dashboard/config"
)

func TestValidateClearSelector(t *testing.T) {
	tests := []struct {
		name    string
		opts    clearSessionsOptions
		wantErr bool
	}{
		{name: "no selector", opts: clearSessionsOptions{}, wantErr: true},
		{name: "session only", opts: clearSessionsOptions{SessionID: "abc"}},
		{name: "email only", opts: clearSessionsOptions{Email: "student@example.com"}},
		{name: "all only", opts: clearSessionsOptions{All: true}},
		{name: "session and all", opts: clearSessionsOptions{SessionID: "abc", All: true}, wantErr: true},
		{name: "email and session", opts: clearSessionsOptions{Email: "a@b.c", SessionID: "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateClearSelector(&tt.opts)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestHasRedisConfig(t *testing.T) {
	require.False(t, hasRedisConfig(nil))
	require.False(t, hasRedisConfig(&config.RedisConfig{}))
	require.True(t, hasRedisConfig(&config.RedisConfig{URI: "localhost:6379"}))
	require.True(t, hasRedisConfig(&config.RedisConfig{UseSentinel: true, SentinelNodes: []string{"s:26379"}}))
	require.False(t, hasRedisConfig(&config.RedisConfig{UseSentinel: true}))
	require.True(t, hasRedisConfig(&config.RedisConfig{UseCluster: true, ClusterNodes: []string{"c:6379"}}))
	require.False(t, hasRedisConfig(&config.RedisConfig{UseCluster: true}))
}
