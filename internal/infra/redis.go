package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis opens the redis connection that backs the menu cache and the
// factura/email job queues. Fails fast if the server is unreachable.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
