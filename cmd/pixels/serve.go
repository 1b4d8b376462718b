package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/TRrajputDEV/Pixels-sub000/internal/config"
	"github.com/TRrajputDEV/Pixels-sub000/internal/db"
	"github.com/TRrajputDEV/Pixels-sub000/internal/discovery"
	"github.com/TRrajputDEV/Pixels-sub000/internal/handler"
	"github.com/TRrajputDEV/Pixels-sub000/internal/metrics"
	"github.com/TRrajputDEV/Pixels-sub000/internal/middleware"
	"github.com/TRrajputDEV/Pixels-sub000/internal/repository"
	"github.com/TRrajputDEV/Pixels-sub000/internal/router"
	"github.com/TRrajputDEV/Pixels-sub000/internal/service"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the tag back-fill worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		middleware.InitLogger(cfg.LogLevel, "pixels-api")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg, rulesPath(cmd, cfg))
	},
}

func init() {
	serveCmd.Flags().String("rules", "", "YAML rule table replacing the embedded one")
}

func serve(ctx context.Context, cfg *config.Config, rules string) error {
	table, err := loadRules(rules)
	if err != nil {
		return err
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	metrics.Register(pool)

	rdb := db.NewRedis(ctx, cfg.RedisURL)
	if rdb != nil {
		defer rdb.Close()
	}

	videos := repository.NewVideoRepo(pool)
	likes := repository.NewLikeRepo(pool)
	comments := repository.NewCommentRepo(pool)
	subs := repository.NewSubscriptionRepo(pool)
	users := repository.NewUserRepo(pool)

	classifier := discovery.NewClassifier(table)
	tagger := discovery.NewTagger(classifier)
	weights := service.Weights{View: cfg.ViewWeight, Like: cfg.LikeWeight, Comment: cfg.CommentWeight}

	feed := service.NewFeedService(videos, likes, comments, weights)
	defer feed.Close()
	videoSvc := service.NewVideoService(videos, tagger)
	stats := service.NewChannelStatsService(users, videos, likes, subs)

	worker := service.NewBackfillWorker(videoSvc, cfg.BackfillInterval, cfg.BackfillBatch)
	go worker.Start(ctx)
	defer worker.Stop()

	var limiter *middleware.RateLimiter
	if cfg.RateLimitPerMinute > 0 {
		var counter middleware.Counter = middleware.NewMemoryCounter(ctx)
		if rdb != nil {
			counter = middleware.NewRedisCounter(rdb)
		}
		limiter = middleware.NewAPIRateLimiter(counter, cfg.RateLimitPerMinute)
	}

	app := fiber.New(fiber.Config{
		AppName:      "Pixels API",
		ServerHeader: "Pixels",
	})
	router.Setup(app, &router.Handlers{
		Health:    handler.NewHealthHandler(pool, rdb, version),
		Video:     handler.NewVideoHandler(feed, videoSvc),
		Channel:   handler.NewChannelHandler(stats),
		Discovery: handler.NewDiscoveryHandler(classifier, tagger),
	}, cfg.CORSOrigins, limiter)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Int("rules", table.Len()).Msg("pixels api starting")
		errCh <- app.Listen(":"+cfg.Port, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
	return nil
}
