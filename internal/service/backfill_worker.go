package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// BackfillWorker is a periodic background job that attaches discovery
// metadata to videos stored before the tagger ran on them.
type BackfillWorker struct {
	videos   *VideoService
	interval time.Duration
	batch    int
	stopCh   chan struct{}
}

// NewBackfillWorker creates a worker that tags up to batch videos every interval.
func NewBackfillWorker(videos *VideoService, interval time.Duration, batch int) *BackfillWorker {
	return &BackfillWorker{
		videos:   videos,
		interval: interval,
		batch:    batch,
		stopCh:   make(chan struct{}),
	}
}

// Start runs one tick immediately, then every interval, until ctx is done or
// Stop is called.
func (w *BackfillWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Int("batch", w.batch).Msg("backfill-worker: starting")

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Info().Msg("backfill-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Info().Msg("backfill-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *BackfillWorker) Stop() {
	close(w.stopCh)
}

func (w *BackfillWorker) tick(ctx context.Context) {
	start := time.Now()

	tagged, err := w.videos.Backfill(ctx, w.batch)
	if err != nil {
		log.Error().Err(err).Msg("backfill-worker: tick failed")
		return
	}
	if tagged == 0 {
		return
	}

	log.Info().
		Int("tagged", tagged).
		Dur("elapsed", time.Since(start).Round(time.Millisecond)).
		Msg("backfill-worker: tick complete")
}
