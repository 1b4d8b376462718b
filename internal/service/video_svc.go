package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/TRrajputDEV/Pixels-sub000/internal/discovery"
	"github.com/TRrajputDEV/Pixels-sub000/internal/metrics"
	"github.com/TRrajputDEV/Pixels-sub000/internal/model"
)

// Postgres foreign_key_violation.
const fkViolation = "23503"

// VideoService writes video records and attaches discovery metadata to them.
type VideoService struct {
	videos VideoStore
	tagger *discovery.Tagger
	now    func() time.Time
}

func NewVideoService(videos VideoStore, tagger *discovery.Tagger) *VideoService {
	return &VideoService{videos: videos, tagger: tagger, now: time.Now}
}

// Create registers a video and tags it before insert.
func (s *VideoService) Create(ctx context.Context, req model.CreateVideoRequest) (*model.Video, error) {
	const op = "create video"

	req.OwnerID = strings.TrimSpace(req.OwnerID)
	req.Title = strings.TrimSpace(req.Title)
	switch {
	case req.OwnerID == "":
		return nil, invalid(op, "ownerId is required")
	case req.Title == "":
		return nil, invalid(op, "title is required")
	case req.Duration < 0:
		return nil, invalid(op, "duration must not be negative")
	}

	d := s.Discover(req.Title, req.Description)
	v := &model.Video{
		ID:               uuid.NewString(),
		OwnerID:          req.OwnerID,
		Title:            req.Title,
		Description:      req.Description,
		Duration:         req.Duration,
		IsPublished:      req.IsPublished,
		Tags:             d.Tags,
		Mood:             d.Mood,
		Category:         d.Category,
		DurationCategory: d.DurationCategory,
		CreatedAt:        s.now().UTC(),
	}

	if err := s.videos.Create(ctx, v); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
			return nil, notFound(op, "owner not found")
		}
		return nil, storeErr(op, err, "")
	}

	log.Info().Str("video_id", v.ID).Str("owner_id", v.OwnerID).Str("category", v.Category).Msg("video created")
	return v, nil
}

// Discover runs the tagger over a title/description pair.
func (s *VideoService) Discover(title, description string) model.Discovery {
	t := s.tagger.Tag(title, description)
	metrics.Classifications.WithLabelValues(string(t.Category)).Inc()
	return model.Discovery{
		Tags:             t.Tags,
		Mood:             string(t.Mood),
		Category:         string(t.Category),
		DurationCategory: string(t.Duration),
	}
}

// Backfill tags up to limit videos that have never been through the tagger.
// A failed update is logged and skipped; the pass continues.
func (s *VideoService) Backfill(ctx context.Context, limit int) (tagged int, err error) {
	videos, err := s.videos.FindUntagged(ctx, limit)
	if err != nil {
		return 0, storeErr("backfill", err, "")
	}

	for _, v := range videos {
		if err := ctx.Err(); err != nil {
			return tagged, err
		}
		d := s.Discover(v.Title, v.Description)
		if err := s.videos.UpdateDiscovery(ctx, v.ID, d); err != nil {
			log.Error().Err(err).Str("video_id", v.ID).Msg("backfill: update failed")
			continue
		}
		tagged++
	}

	metrics.BackfillTagged.Add(float64(tagged))
	return tagged, nil
}
