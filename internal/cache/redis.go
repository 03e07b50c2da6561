// Package cache provides the optional redis-backed read cache. Every entry
// point degrades to a no-op when redis is not configured or unreachable, so
// the service keeps working without it.
package cache

import (
	"context"
	"time"

	"codemmunity/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to redis at addr and verifies the connection. It
// returns nil (cache disabled) when addr is empty or redis is unreachable.
func NewClient(addr string) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("Redis unavailable, continuing without cache", "error", err.Error())
		return nil
	}

	middleware.Logger.Info("Redis connected successfully")
	return client
}
