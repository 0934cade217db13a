package redis

import (
	"context"
	"time"

	"engagesphere/internal/config"

	"github.com/go-redis/redis/v8"
)

// Nil is returned by Get when the key does not exist.
var Nil = redis.Nil

// RedisClient covers the commands the OTP store and the rate limiter need.
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Close() error
}

var _ RedisClient = (*client)(nil)

type client struct {
	cli *redis.Client
}

// NewClient connects and verifies the connection before returning. The URL
// may be a redis:// URL or a bare host:port; password and db from the config
// override whatever the URL carries.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		opts = &redis.Options{Addr: cfg.URL}
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	c := redis.NewClient(opts)
	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return nil, err
	}
	return &client{cli: c}, nil
}

func (c *client) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.cli.Set(ctx, key, value, ttl).Err()
}

func (c *client) Get(ctx context.Context, key string) (string, error) {
	return c.cli.Get(ctx, key).Result()
}

func (c *client) Del(ctx context.Context, keys ...string) error {
	return c.cli.Del(ctx, keys...).Err()
}

func (c *client) Incr(ctx context.Context, key string) (int64, error) {
	return c.cli.Incr(ctx, key).Result()
}

func (c *client) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.cli.Expire(ctx, key, ttl).Err()
}

func (c *client) Close() error { return c.cli.Close() }
