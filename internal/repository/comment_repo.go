package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

// CountByVideos returns comment counts keyed by video id.
func (r *CommentRepo) CountByVideos(ctx context.Context, videoIDs []string) (map[string]int64, error) {
	return countByVideo(ctx, r.pool, `
		SELECT video_id, COUNT(*)
		FROM comments
		WHERE video_id = ANY($1)
		GROUP BY video_id`, videoIDs)
}
