package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TRrajputDEV/Pixels-sub000/internal/model"
)

const videoColumns = `
	id, owner_id, title, description, duration, view_count, is_published, tags,
	COALESCE(mood, ''), COALESCE(category, ''), COALESCE(duration_category, ''), created_at`

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

// FindByID returns a single video, published or not. Missing ids yield pgx.ErrNoRows.
func (r *VideoRepo) FindByID(ctx context.Context, id string) (*model.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`

	v, err := scanVideo(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Find returns every video matching filter, oldest first with id as the
// tie-break so callers get a deterministic base order.
func (r *VideoRepo) Find(ctx context.Context, filter model.VideoFilter) ([]model.Video, error) {
	where, args := filterClause(filter)
	query := `SELECT ` + videoColumns + ` FROM videos` + where + ` ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectVideos(rows)
}

// FindUntagged returns up to limit videos the tagger has not processed yet,
// oldest first.
func (r *VideoRepo) FindUntagged(ctx context.Context, limit int) ([]model.Video, error) {
	query := `SELECT ` + videoColumns + `
		FROM videos
		WHERE category IS NULL
		ORDER BY created_at, id
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return collectVideos(rows)
}

func (r *VideoRepo) Create(ctx context.Context, v *model.Video) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO videos (id, owner_id, title, description, duration, view_count, is_published,
		                    tags, mood, category, duration_category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), $12)`,
		v.ID, v.OwnerID, v.Title, v.Description, v.Duration, v.ViewCount, v.IsPublished,
		nonNil(v.Tags), v.Mood, v.Category, v.DurationCategory, v.CreatedAt)
	return err
}

// UpdateDiscovery overwrites the classifier-derived columns of one video.
func (r *VideoRepo) UpdateDiscovery(ctx context.Context, id string, d model.Discovery) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE videos
		SET tags = $1, mood = NULLIF($2, ''), category = NULLIF($3, ''), duration_category = NULLIF($4, '')
		WHERE id = $5`,
		nonNil(d.Tags), d.Mood, d.Category, d.DurationCategory, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// IncrementViews adds one view atomically.
func (r *VideoRepo) IncrementViews(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE videos SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// filterClause builds the WHERE clause and positional args for filter.
func filterClause(filter model.VideoFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		conds = append(conds, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if filter.Published != nil {
		args = append(args, *filter.Published)
		conds = append(conds, fmt.Sprintf("is_published = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, likePattern(filter.Search))
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(title ILIKE $%d ESCAPE '\' OR description ILIKE $%d ESCAPE '\')`, n, n))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern turns a literal search string into a substring ILIKE pattern.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func scanVideo(row pgx.Row) (model.Video, error) {
	var v model.Video
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.Duration, &v.ViewCount, &v.IsPublished,
		&v.Tags, &v.Mood, &v.Category, &v.DurationCategory, &v.CreatedAt,
	)
	return v, err
}

func collectVideos(rows pgx.Rows) ([]model.Video, error) {
	defer rows.Close()

	var videos []model.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
