package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guitarguru/gg-dashboard/config"
)

const redisPingTimeout = 5 * time.Second

// RedisOptions configures the Redis connection built at startup.
type RedisOptions struct {
	Config config.RedisConfig
	Logger *slog.Logger
}

// ConnectRedis builds the right client flavor for the configured topology and
// verifies the connection with a ping before handing it out.
//
//nolint:ireturn // redis.UniversalClient covers single, sentinel, and cluster clients.
func ConnectRedis(opts RedisOptions) (redis.UniversalClient, error) {
	var (
		client   redis.UniversalClient
		addrDesc string
		err      error
	)
	switch {
	case opts.Config.UseCluster:
		client, addrDesc, err = newClusterClient(opts.Config)
	case opts.Config.UseSentinel:
		client, addrDesc, err = newSentinelClient(opts.Config)
	default:
		client, addrDesc, err = newDirectClient(opts.Config)
	}
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if pingErr := client.Ping(ctx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis: %w", pingErr)
	}

	if opts.Logger != nil {
		opts.Logger.Info("redis connected", "addr", redactAddr(addrDesc))
	}
	return client, nil
}

// redactAddr strips credentials from a connection description before logging.
func redactAddr(addrDesc string) string {
	if u, err := url.Parse(addrDesc); err == nil && u.User != nil {
		u.User = url.User("*")
		return u.Redacted()
	}
	if i := strings.LastIndex(addrDesc, "@"); i > -1 {
		return addrDesc[i+1:]
	}
	return addrDesc
}

//nolint:ireturn // see ConnectRedis.
func newClusterClient(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	clusterOpts := &redis.ClusterOptions{
		Addrs:    trimAddrs(cfg.ClusterNodes),
		Password: cfg.Password,
	}

	// Single-URI deployments can still ask for a cluster client; seed the
	// node list from the URI then.
	if len(clusterOpts.Addrs) == 0 {
		if err := seedClusterFromURI(clusterOpts, cfg.URI); err != nil {
			return nil, "", err
		}
	}
	if len(clusterOpts.Addrs) == 0 {
		return nil, "", errors.New("redis cluster configuration requires at least one address")
	}

	client := redis.NewClusterClient(clusterOpts)
	return client, "cluster:" + strings.Join(clusterOpts.Addrs, ","), nil
}

func seedClusterFromURI(clusterOpts *redis.ClusterOptions, uri string) error {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil
	}
	if !isRedisURL(uri) {
		clusterOpts.Addrs = []string{uri}
		return nil
	}

	parsed, err := redis.ParseURL(uri)
	if err != nil {
		return fmt.Errorf("parse redis cluster url: %w", err)
	}
	clusterOpts.Addrs = []string{parsed.Addr}
	clusterOpts.Username = parsed.Username
	if parsed.Password != "" {
		clusterOpts.Password = parsed.Password
	}
	clusterOpts.TLSConfig = parsed.TLSConfig
	return nil
}

//nolint:ireturn // see ConnectRedis.
func newSentinelClient(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	if len(cfg.SentinelNodes) == 0 {
		return nil, "", errors.New("redis sentinel configuration requires at least one sentinel node")
	}
	client := redis.NewFailoverClient(&redis.FailoverOptions{
		MasterName:       cfg.SentinelMasterName,
		SentinelAddrs:    cfg.SentinelNodes,
		Password:         cfg.Password,
		SentinelPassword: cfg.SentinelPassword,
		DB:               0,
	})
	return client, "sentinel:" + cfg.SentinelMasterName, nil
}

//nolint:ireturn // see ConnectRedis.
func newDirectClient(cfg config.RedisConfig) (redis.UniversalClient, string, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, "", errors.New("redis direct configuration requires a URI")
	}

	if isRedisURL(uri) {
		opt, err := redis.ParseURL(uri)
		if err != nil {
			return nil, "", fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opt), opt.Addr, nil
	}

	// Bare host:port. Credentials come from the separate password field.
	return redis.NewClient(&redis.Options{
		Addr:     uri,
		Password: cfg.Password,
		DB:       0,
	}), uri, nil
}

func trimAddrs(raw []string) []string {
	result := make([]string, 0, len(raw))
	for _, addr := range raw {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func isRedisURL(value string) bool {
	return strings.HasPrefix(value, "redis://") || strings.HasPrefix(value, "rediss://")
}
