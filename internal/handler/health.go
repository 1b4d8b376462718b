package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// pinger is a dependency the readiness probe can check.
type pinger interface {
	Ping(ctx context.Context) error
}

type redisPinger struct {
	rdb *redis.Client
}

func (r redisPinger) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

type HealthHandler struct {
	db      pinger
	cache   pinger
	version string
	startAt time.Time
}

// NewHealthHandler checks pool and, when non-nil, rdb. A nil rdb is reported
// as disabled and does not degrade readiness.
func NewHealthHandler(pool *pgxpool.Pool, rdb *redis.Client, version string) *HealthHandler {
	h := &HealthHandler{version: version, startAt: time.Now()}
	if pool != nil {
		h.db = pool
	}
	if rdb != nil {
		h.cache = redisPinger{rdb: rdb}
	}
	return h
}

// Live handles GET /health/live (liveness probe).
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready (readiness probe with dependency checks).
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	dbCheck := check(ctx, h.db)
	redisCheck := check(ctx, h.cache)

	overallStatus := "healthy"
	if dbCheck["status"] != "up" || redisCheck["status"] == "down" {
		overallStatus = "degraded"
	}

	resp := fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbCheck,
			"redis":    redisCheck,
		},
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
		"version":        h.version,
	}

	status := fiber.StatusOK
	if overallStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(resp)
}

func check(ctx context.Context, p pinger) fiber.Map {
	if p == nil {
		return fiber.Map{
			"status": "disabled",
		}
	}

	start := time.Now()
	err := p.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}
