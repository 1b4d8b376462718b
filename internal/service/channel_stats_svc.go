package service

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/TRrajputDEV/Pixels-sub000/internal/metrics"
	"github.com/TRrajputDEV/Pixels-sub000/internal/model"
)

type ChannelStatsService struct {
	users  UserStore
	videos VideoStore
	likes  LikeStore
	subs   SubscriptionStore
}

func NewChannelStatsService(users UserStore, videos VideoStore, likes LikeStore, subs SubscriptionStore) *ChannelStatsService {
	return &ChannelStatsService{users: users, videos: videos, likes: likes, subs: subs}
}

// ChannelInputs is everything the rollup reads from the stores.
type ChannelInputs struct {
	Videos        []model.Video
	Subscribers   int64
	Subscriptions int64
	LikesReceived int64
	LikesGiven    int64
}

// ComputeStats returns the dashboard rollup for ownerID as of now. The
// sub-queries run concurrently; the first failure cancels the rest and no
// partial result is returned.
func (s *ChannelStatsService) ComputeStats(ctx context.Context, ownerID string, now time.Time) (*model.ChannelStats, error) {
	const op = "channel stats"
	start := time.Now()
	defer metrics.ObserveSince(metrics.StatsDuration, start)

	if ownerID == "" {
		return nil, invalid(op, "owner id is required")
	}

	exists, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, storeErr(op, err, "")
	}
	if !exists {
		return nil, notFound(op, "channel not found")
	}

	var in ChannelInputs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Videos, err = s.videos.Find(gctx, model.VideoFilter{OwnerID: ownerID})
		return err
	})
	g.Go(func() (err error) {
		in.Subscribers, err = s.subs.CountByChannel(gctx, ownerID)
		return err
	})
	g.Go(func() (err error) {
		in.Subscriptions, err = s.subs.CountBySubscriber(gctx, ownerID)
		return err
	})
	g.Go(func() (err error) {
		in.LikesReceived, err = s.likes.CountReceivedByOwner(gctx, ownerID)
		return err
	})
	g.Go(func() (err error) {
		in.LikesGiven, err = s.likes.CountByLiker(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, &Error{Kind: ErrUnavailable, Op: op, Err: err}
	}

	return BuildChannelStats(in, now), nil
}

// BuildChannelStats computes the rollup from raw store results. Totals cover
// published and unpublished videos alike.
func BuildChannelStats(in ChannelInputs, now time.Time) *model.ChannelStats {
	stats := &model.ChannelStats{
		TotalVideos:        len(in.Videos),
		TotalSubscribers:   in.Subscribers,
		TotalSubscriptions: in.Subscriptions,
		TotalLikesReceived: in.LikesReceived,
		TotalLikesGiven:    in.LikesGiven,
	}

	monthStart, weekStart := StartOfMonth(now), StartOfWeek(now)
	for _, v := range in.Videos {
		stats.TotalViews += v.ViewCount
		stats.TotalVideoDuration += v.Duration
		if !v.CreatedAt.Before(monthStart) {
			stats.VideosThisMonth++
		}
		if !v.CreatedAt.Before(weekStart) {
			stats.VideosThisWeek++
		}
	}

	if stats.TotalVideos > 0 {
		stats.AverageViewsPerVideo = int64(math.Round(float64(stats.TotalViews) / float64(stats.TotalVideos)))
	}
	if stats.TotalViews > 0 {
		rate := float64(in.LikesReceived) / float64(stats.TotalViews) * 100
		stats.EngagementRate = model.Percent(math.Round(rate*100) / 100)
	}
	return stats
}

// StartOfMonth is 00:00 on the first day of now's month, in now's location.
func StartOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// StartOfWeek is 00:00 on the most recent Sunday (today, if now is a
// Sunday), in now's location.
func StartOfWeek(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.AddDate(0, 0, -int(now.Weekday()))
}
