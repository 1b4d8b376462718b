package db

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewRedis connects to redisURL. It returns nil when the URL is empty,
// malformed or unreachable; callers then fall back to per-instance state.
func NewRedis(ctx context.Context, redisURL string) *redis.Client {
	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, shared rate limiting disabled")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis: invalid URL, shared rate limiting disabled")
		return nil
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, shared rate limiting disabled")
		rdb.Close()
		return nil
	}

	log.Info().Msg("redis: connected")
	return rdb
}
