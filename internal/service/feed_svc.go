package service

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/TRrajputDEV/Pixels-sub000/internal/metrics"
	"github.com/TRrajputDEV/Pixels-sub000/internal/model"
)

// MaxPageLimit bounds the page size a caller may request.
const MaxPageLimit = 100

// viewIncrementTimeout bounds the detached view-count write.
const viewIncrementTimeout = 5 * time.Second

// Sort keys accepted by ListVideos.
const (
	SortCreatedAt       = "createdAt"
	SortViews           = "views"
	SortView            = "view" // alias of SortViews
	SortTitle           = "title"
	SortEngagementScore = "engagementScore"
	SortLikes           = "likes"
	SortComments        = "comments"
	SortDuration        = "duration"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

var sortKeys = map[string]func(a, b *model.VideoSummary) int{
	SortCreatedAt: func(a, b *model.VideoSummary) int { return a.CreatedAt.Compare(b.CreatedAt) },
	SortViews:     byViews,
	SortView:      byViews,
	SortTitle: func(a, b *model.VideoSummary) int {
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	},
	SortEngagementScore: func(a, b *model.VideoSummary) int { return cmp.Compare(a.EngagementScore, b.EngagementScore) },
	SortLikes:           func(a, b *model.VideoSummary) int { return cmp.Compare(a.LikeCount, b.LikeCount) },
	SortComments:        func(a, b *model.VideoSummary) int { return cmp.Compare(a.CommentCount, b.CommentCount) },
	SortDuration:        func(a, b *model.VideoSummary) int { return cmp.Compare(a.Duration, b.Duration) },
}

func byViews(a, b *model.VideoSummary) int { return cmp.Compare(a.ViewCount, b.ViewCount) }

// VideoQuery selects, orders and pages a video listing. Empty SortBy and
// SortType default to createdAt descending.
type VideoQuery struct {
	OwnerID   string
	Published *bool
	Search    string
	SortBy    string
	SortType  string
	Page      int
	Limit     int
}

// FeedService builds engagement-ranked video listings and single-video reads.
type FeedService struct {
	videos   VideoStore
	likes    LikeStore
	comments CommentStore
	weights  Weights

	pending sync.WaitGroup
}

func NewFeedService(videos VideoStore, likes LikeStore, comments CommentStore, weights Weights) *FeedService {
	return &FeedService{videos: videos, likes: likes, comments: comments, weights: weights}
}

// ListVideos filters videos, derives like/comment counts and engagement
// score for each, sorts stably by the requested key and returns one page.
// Videos with equal keys keep the order the store returned them in.
func (s *FeedService) ListVideos(ctx context.Context, q VideoQuery) (*model.Page[model.VideoSummary], error) {
	const op = "list videos"
	start := time.Now()
	defer metrics.ObserveSince(metrics.FeedDuration, start)

	compare, err := sortFunc(op, q.SortBy, q.SortType)
	if err != nil {
		return nil, err
	}
	if q.Page < 1 {
		return nil, invalid(op, "page must be at least 1")
	}
	if q.Limit < 1 {
		return nil, invalid(op, "limit must be at least 1")
	}
	if q.Limit > MaxPageLimit {
		return nil, invalid(op, "limit must be at most %d", MaxPageLimit)
	}

	videos, err := s.videos.Find(ctx, model.VideoFilter{
		OwnerID:   q.OwnerID,
		Published: q.Published,
		Search:    strings.TrimSpace(q.Search),
	})
	if err != nil {
		return nil, storeErr(op, err, "")
	}

	summaries, err := s.summarize(ctx, op, videos)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(summaries, func(a, b model.VideoSummary) int {
		return compare(&a, &b)
	})

	return Paginate(summaries, q.Page, q.Limit), nil
}

// GetVideo returns a published video with derived counts and schedules a
// view-count increment. The increment runs detached from ctx and is dropped,
// not retried, if it fails.
func (s *FeedService) GetVideo(ctx context.Context, id string) (*model.VideoSummary, error) {
	const op = "get video"

	v, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(op, err, "video not found")
	}
	if !v.IsPublished {
		return nil, notFound(op, "video not found")
	}

	summaries, err := s.summarize(ctx, op, []model.Video{*v})
	if err != nil {
		return nil, err
	}

	s.countView(id)
	return &summaries[0], nil
}

// Close waits for in-flight view increments.
func (s *FeedService) Close() {
	s.pending.Wait()
}

func (s *FeedService) countView(id string) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), viewIncrementTimeout)
		defer cancel()

		if err := s.videos.IncrementViews(ctx, id); err != nil {
			metrics.ViewIncrementFailures.Inc()
			log.Warn().Err(err).Str("video_id", id).Msg("view increment dropped")
		}
	}()
}

// summarize joins videos with their like and comment counts. Either count
// query failing fails the whole call.
func (s *FeedService) summarize(ctx context.Context, op string, videos []model.Video) ([]model.VideoSummary, error) {
	summaries := make([]model.VideoSummary, 0, len(videos))
	if len(videos) == 0 {
		return summaries, nil
	}

	ids := make([]string, len(videos))
	for i, v := range videos {
		ids[i] = v.ID
	}

	var likes, comments map[string]int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		likes, err = s.likes.CountByVideos(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.comments.CountByVideos(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, storeErr(op, err, "")
	}

	for _, v := range videos {
		lc, cc := likes[v.ID], comments[v.ID]
		tags := v.Tags
		if tags == nil {
			tags = []string{}
		}
		summaries = append(summaries, model.VideoSummary{
			ID:              v.ID,
			OwnerID:         v.OwnerID,
			Title:           v.Title,
			Description:     v.Description,
			Duration:        v.Duration,
			ViewCount:       v.ViewCount,
			LikeCount:       lc,
			CommentCount:    cc,
			EngagementScore: s.weights.Score(v.ViewCount, lc, cc),
			IsPublished:     v.IsPublished,
			Tags:            tags,
			Mood:            v.Mood,
			Category:        v.Category,
			CreatedAt:       v.CreatedAt,
		})
	}
	return summaries, nil
}

func sortFunc(op, key, direction string) (func(a, b *model.VideoSummary) int, error) {
	if key == "" {
		key = SortCreatedAt
	}
	if direction == "" {
		direction = SortDesc
	}

	compare, ok := sortKeys[key]
	if !ok {
		return nil, invalid(op, "unsupported sortBy %q", key)
	}
	switch direction {
	case SortAsc:
		return compare, nil
	case SortDesc:
		return func(a, b *model.VideoSummary) int { return compare(b, a) }, nil
	default:
		return nil, invalid(op, "sortType must be %q or %q", SortAsc, SortDesc)
	}
}

// Paginate slices items into a 1-indexed page. page and limit must be >= 1.
func Paginate[T any](items []T, page, limit int) *model.Page[T] {
	total := len(items)
	totalPages := (total + limit - 1) / limit

	pageItems := []T{}
	if page <= totalPages {
		start := (page - 1) * limit
		end := min(start+limit, total)
		pageItems = items[start:end]
	}

	return &model.Page[T]{
		Items:       pageItems,
		Page:        page,
		Limit:       limit,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
