package middleware

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// Browsers may read the limiter headers on cross-origin responses.
var exposedHeaders = []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"}

// NewCORS allows the read-mostly feed API to be called from browsers.
// origins is the CORS_ORIGINS value.
func NewCORS(origins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  splitOrigins(origins),
		AllowMethods:  []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: exposedHeaders,
		MaxAge:        86400,
	})
}

// splitOrigins turns a comma list into the allowed origin set. An empty list
// or any "*" entry allows every origin.
func splitOrigins(raw string) []string {
	var out []string
	for o := range strings.SplitSeq(raw, ",") {
		o = strings.TrimSuffix(strings.TrimSpace(o), "/")
		if o == "*" {
			return []string{"*"}
		}
		if o != "" && !slices.Contains(out, o) {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
