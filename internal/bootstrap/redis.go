package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/atelier-north/studio-backend/config"
)

// OpenRedis connects to Redis with the configured address. A missing or
// unreachable Redis is not fatal: the public read cache degrades to
// pass-through, so a nil client is returned instead of an error.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		log.Printf("[bootstrap] redis unreachable, cache disabled: %v", err)
		_ = client.Close()
		return nil
	}

	return client
}
