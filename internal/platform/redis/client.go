package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"walletcore/internal/platform/config"
)

// Client is the shared go-redis client. It backs token revocation and the
// ledger record stream.
type Client struct {
	*redis.Client
	stream       string
	streamMaxLen int64
}

// New connects to Redis. Returns nil if the URL is empty (Redis disabled).
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{
		Client:       client,
		stream:       cfg.Stream,
		streamMaxLen: cfg.StreamMaxLen,
	}, nil
}

// Stream is the key ledger records are appended to.
func (c *Client) Stream() string {
	return c.stream
}

// StreamMaxLen is the approximate cap on the stream length; zero means unbounded.
func (c *Client) StreamMaxLen() int64 {
	return c.streamMaxLen
}

func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
