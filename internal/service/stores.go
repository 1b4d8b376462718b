package service

import (
	"context"

	"github.com/TRrajputDEV/Pixels-sub000/internal/model"
)

// VideoStore is the video record collaborator. FindByID returns pgx.ErrNoRows
// for unknown ids.
type VideoStore interface {
	FindByID(ctx context.Context, id string) (*model.Video, error)
	Find(ctx context.Context, filter model.VideoFilter) ([]model.Video, error)
	Create(ctx context.Context, v *model.Video) error
	UpdateDiscovery(ctx context.Context, id string, d model.Discovery) error
	FindUntagged(ctx context.Context, limit int) ([]model.Video, error)
	IncrementViews(ctx context.Context, id string) error
}

// LikeStore counts like records by target video and by actor.
type LikeStore interface {
	CountByVideos(ctx context.Context, videoIDs []string) (map[string]int64, error)
	CountByLiker(ctx context.Context, userID string) (int64, error)
	CountReceivedByOwner(ctx context.Context, ownerID string) (int64, error)
}

// CommentStore counts comment records by target video.
type CommentStore interface {
	CountByVideos(ctx context.Context, videoIDs []string) (map[string]int64, error)
}

// SubscriptionStore counts subscription records from either side.
type SubscriptionStore interface {
	CountByChannel(ctx context.Context, channelID string) (int64, error)
	CountBySubscriber(ctx context.Context, subscriberID string) (int64, error)
}

// UserStore answers whether an account exists.
type UserStore interface {
	Exists(ctx context.Context, id string) (bool, error)
}
