package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	cacherepo "signdesk/internal/repositories/cache"

	"github.com/redis/go-redis/v9"
)

const pkg = "redis/"

type Config struct {
	Addr     string
	Password string
	DB       int
}

// Client wraps go-redis behind the cacherepo interfaces. A missing key
// (redis.Nil) is surfaced as an empty result, not an error: every caller
// treats a miss as "nothing cached".
type Client struct {
	rdb *redis.Client
}

func New(ctx context.Context, cfg Config) (*Client, error) {
	op := pkg + "New"

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: ping failed: %w", op, err)
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func (c *Client) Get(ctx context.Context, key string) cacherepo.CacheResponse[string] {
	cmd := c.rdb.Get(ctx, key)
	return response[string]{cmd: cmd, result: cmd.Result}
}

func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) cacherepo.CacheResponse[string] {
	cmd := c.rdb.Set(ctx, key, value, expiration)
	return response[string]{cmd: cmd, result: cmd.Result}
}

func (c *Client) Del(ctx context.Context, keys ...string) cacherepo.CacheResponse[int64] {
	cmd := c.rdb.Del(ctx, keys...)
	return response[int64]{cmd: cmd, result: cmd.Result}
}

type response[T any] struct {
	cmd    redis.Cmder
	result func() (T, error)
}

func (r response[T]) Err() error {
	if err := r.cmd.Err(); !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

func (r response[T]) Result() (T, error) {
	res, err := r.result()
	if errors.Is(err, redis.Nil) {
		var zero T
		return zero, nil
	}

	return res, err
}
