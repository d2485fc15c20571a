package app

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mealdash/mealdash-backend/internal/pkg/logger"
)

// newSnapshotCache connects the optional analytics cache. Returns nil
// when REDIS_ADDR is unset or the server is unreachable, and the app
// runs without caching.
func newSnapshotCache(log *logger.Logger, addr string) *goredis.Client {
	if addr == "" {
		return nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, analytics cache disabled", "addr", addr, "error", err)
		_ = rdb.Close()
		return nil
	}

	log.Info("Analytics cache connected", "addr", addr)
	return rdb
}
