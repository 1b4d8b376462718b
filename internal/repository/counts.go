package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// countByVideo runs a (video_id, count) grouping query over ids.
func countByVideo(ctx context.Context, pool *pgxpool.Pool, query string, ids []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	rows, err := pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}
