package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Collectors are created eagerly so code paths can record into them before
// (or without) Register being called, e.g. in tests.
var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pixels_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pixels_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Classifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pixels_classifications_total",
			Help: "Texts classified, by resulting category.",
		},
		[]string{"category"},
	)

	ViewIncrementFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pixels_view_increment_failures_total",
			Help: "Fire-and-forget view count increments that failed and were dropped.",
		},
	)

	FeedDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pixels_feed_build_duration_seconds",
			Help:    "Time spent building a ranked video listing.",
			Buckets: prometheus.DefBuckets,
		},
	)

	StatsDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pixels_channel_stats_duration_seconds",
			Help:    "Time spent computing a channel statistics rollup.",
			Buckets: prometheus.DefBuckets,
		},
	)

	BackfillTagged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pixels_backfill_videos_tagged_total",
			Help: "Videos that received discovery metadata from the back-fill worker.",
		},
	)

	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pixels_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		},
	)
)

// Register registers all collectors with the default registry, plus pool
// gauges when pool is non-nil. Call once at startup.
func Register(pool *pgxpool.Pool) {
	if pool != nil {
		prometheus.MustRegister(
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "pixels_db_connection_pool_active",
					Help: "Number of active database connections.",
				},
				func() float64 { return float64(pool.Stat().AcquiredConns()) },
			),
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "pixels_db_connection_pool_idle",
					Help: "Number of idle database connections.",
				},
				func() float64 { return float64(pool.Stat().IdleConns()) },
			),
		)
	}

	prometheus.MustRegister(
		RequestDuration,
		RequestsInFlight,
		Classifications,
		ViewIncrementFailures,
		FeedDuration,
		StatsDuration,
		BackfillTagged,
		RateLimited,
	)
}

// ObserveSince records the seconds elapsed since start on h.
func ObserveSince(h prometheus.Observer, start time.Time) {
	h.Observe(time.Since(start).Seconds())
}

// Middleware records request duration and in-flight count.
func Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Fiber hands out views into the fasthttp buffer; copy before c.Next().
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		status := strconv.Itoa(c.Response().StatusCode())
		RequestDuration.WithLabelValues(endpoint, method, status).Observe(time.Since(start).Seconds())
		RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint collapses id segments to keep label cardinality bounded.
func sanitizeEndpoint(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/videos/"):
		return "/api/videos/:videoId"
	case strings.HasPrefix(path, "/api/channels/"):
		return "/api/channels/:ownerId/stats"
	default:
		return path
	}
}

// Handler serves the Prometheus /metrics endpoint via Fiber.
func Handler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
