package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/TRrajputDEV/Pixels-sub000/internal/metrics"
)

// RateLimitConfig defines the limit for a specific route or group.
type RateLimitConfig struct {
	Max    int                      // Maximum requests allowed in the window
	Window time.Duration            // Time window for the limit
	KeyFn  func(c fiber.Ctx) string // Returns the key to rate limit on
}

// Counter increments a fixed-window hit counter and reports when the
// window ends.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}

// RateLimiter is a fixed-window rate limiter over a Counter.
type RateLimiter struct {
	counter Counter
	config  RateLimitConfig
}

// NewRateLimiter creates a rate limiter with the given counter and config.
func NewRateLimiter(counter Counter, cfg RateLimitConfig) *RateLimiter {
	return &RateLimiter{counter: counter, config: cfg}
}

// Handler returns a Fiber middleware handler that enforces the rate limit.
// Counter failures let the request through.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		key := rl.config.KeyFn(c)

		count, resetAt, err := rl.counter.Incr(c.Context(), key, rl.config.Window)
		if err != nil {
			log.Warn().Err(err).Msg("rate limit counter unavailable, allowing request")
			return c.Next()
		}

		remaining := rl.config.Max - int(count)
		setRateLimitHeaders(c, rl.config.Max, remaining, resetAt)

		if remaining < 0 {
			metrics.RateLimited.Inc()
			retryAfter := int(time.Until(resetAt).Seconds()) + 1
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": fiber.Map{
					"code":       "RATE_LIMITED",
					"message":    fmt.Sprintf("Too many requests. Try again in %d seconds.", retryAfter),
					"retryAfter": retryAfter,
				},
			})
		}

		return c.Next()
	}
}

func setRateLimitHeaders(c fiber.Ctx, limit, remaining int, resetAt time.Time) {
	c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
	c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", max(remaining, 0)))
	c.Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetAt.Unix()))
}

// KeyByIP returns the client IP as the rate limit key.
func KeyByIP(c fiber.Ctx) string {
	return "ip:" + c.IP()
}

// NewAPIRateLimiter limits every API route to perMinute requests per IP.
func NewAPIRateLimiter(counter Counter, perMinute int) *RateLimiter {
	return NewRateLimiter(counter, RateLimitConfig{
		Max:    perMinute,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})
}

// entry tracks request count and window end for a single key.
type entry struct {
	count     int64
	windowEnd time.Time
}

// MemoryCounter keeps counters in process. Limits are per instance.
type MemoryCounter struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewMemoryCounter creates a counter that sweeps expired windows every
// five minutes until ctx is done.
func NewMemoryCounter(ctx context.Context) *MemoryCounter {
	m := &MemoryCounter{entries: make(map[string]*entry)}
	go m.cleanup(ctx)
	return m
}

func (m *MemoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	e, exists := m.entries[key]
	if !exists || now.After(e.windowEnd) {
		e = &entry{windowEnd: now.Add(window)}
		m.entries[key] = e
	}
	e.count++
	return e.count, e.windowEnd, nil
}

func (m *MemoryCounter) cleanup(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		m.mu.Lock()
		now := time.Now()
		for key, e := range m.entries {
			if now.After(e.windowEnd) {
				delete(m.entries, key)
			}
		}
		m.mu.Unlock()
	}
}

// RedisCounter shares counters across instances through Redis.
type RedisCounter struct {
	client *redis.Client
	prefix string
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client, prefix: "ratelimit:"}
}

// Incr bumps the key and sets its expiry on the first hit of a window.
func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	key = r.prefix + key

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	ttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit incr: %w", err)
	}

	remaining := ttl.Val()
	if remaining <= 0 {
		remaining = window
	}
	return incr.Val(), time.Now().Add(remaining), nil
}
