package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LikeRepo struct {
	pool *pgxpool.Pool
}

func NewLikeRepo(pool *pgxpool.Pool) *LikeRepo {
	return &LikeRepo{pool: pool}
}

// CountByVideos returns like counts keyed by video id. Videos without likes
// are absent from the map.
func (r *LikeRepo) CountByVideos(ctx context.Context, videoIDs []string) (map[string]int64, error) {
	return countByVideo(ctx, r.pool, `
		SELECT video_id, COUNT(*)
		FROM likes
		WHERE video_id = ANY($1)
		GROUP BY video_id`, videoIDs)
}

// CountByLiker counts likes the user has given.
func (r *LikeRepo) CountByLiker(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE liked_by = $1`, userID).Scan(&n)
	return n, err
}

// CountReceivedByOwner counts likes on every video the owner has, published or not.
func (r *LikeRepo) CountReceivedByOwner(ctx context.Context, ownerID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM likes l
		JOIN videos v ON v.id = l.video_id
		WHERE v.owner_id = $1`, ownerID).Scan(&n)
	return n, err
}
