package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/storage"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
)

const videoColumns = `id, slug, title, description, thumbnail_url, video_url, category, client,
	to_char(date, 'YYYY-MM-DD'), featured, display_order, created_at, updated_at`

const videoOrder = `ORDER BY display_order ASC, created_at DESC`

func scanVideo(row rowScanner) (types.Video, error) {
	var (
		v                                            types.Video
		category                                     string
		description, thumbnail, videoURL, client, dt sql.NullString
	)

	err := row.Scan(&v.ID, &v.Slug, &v.Title, &description, &thumbnail, &videoURL, &category, &client,
		&dt, &v.Featured, &v.DisplayOrder, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return types.Video{}, err
	}

	v.Category = types.Category(category)
	v.Description = fromNull(description)
	v.ThumbnailURL = fromNull(thumbnail)
	v.VideoURL = fromNull(videoURL)
	v.Client = fromNull(client)
	v.Date = fromNull(dt)

	return v, nil
}

func (p *Postgres) queryVideos(ctx context.Context, op, query string, args ...any) ([]types.Video, error) {
	rows, err := p.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()

	videos := []types.Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, mapError(op, err)
		}
		videos = append(videos, v)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(op, err)
	}

	return videos, nil
}

func (p *Postgres) ListVideos(ctx context.Context) ([]types.Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM videos %s`, videoColumns, videoOrder)
	return p.queryVideos(ctx, "list videos", query)
}

func (p *Postgres) FindVideos(ctx context.Context, filter types.VideoFilter) ([]types.Video, error) {
	var (
		where []string
		args  []any
	)

	if filter.Category != nil {
		args = append(args, string(*filter.Category))
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		where = append(where, fmt.Sprintf("featured = $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM videos`, videoColumns)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " " + videoOrder

	return p.queryVideos(ctx, "find videos", query, args...)
}

func (p *Postgres) GetVideo(ctx context.Context, id string) (types.Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM videos WHERE id = $1`, videoColumns)

	v, err := scanVideo(p.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return types.Video{}, mapError("get video", err)
	}

	return v, nil
}

func (p *Postgres) GetVideoBySlug(ctx context.Context, slug string) (types.Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM videos WHERE slug = $1`, videoColumns)

	v, err := scanVideo(p.q.QueryRowContext(ctx, query, slug))
	if err != nil {
		return types.Video{}, mapError("get video by slug", err)
	}

	return v, nil
}

func (p *Postgres) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := p.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM videos WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, mapError("check slug", err)
	}

	return exists, nil
}

func (p *Postgres) CreateVideo(ctx context.Context, video types.Video) (types.Video, error) {
	query := fmt.Sprintf(`
	INSERT INTO videos (slug, title, description, thumbnail_url, video_url, category, client, date, featured, display_order)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8::date, $9, $10)
	RETURNING %s
	`, videoColumns)

	created, err := scanVideo(p.q.QueryRowContext(ctx, query,
		video.Slug,
		video.Title,
		nullable(video.Description),
		nullable(video.ThumbnailURL),
		nullable(video.VideoURL),
		string(video.Category),
		nullable(video.Client),
		nullable(video.Date),
		video.Featured,
		video.DisplayOrder,
	))
	if err != nil {
		return types.Video{}, mapError("create video", err)
	}

	return created, nil
}

func (p *Postgres) UpdateVideo(ctx context.Context, id string, patch types.VideoPatch) (types.Video, error) {
	var (
		sets []string
		args []any
	)

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Slug != nil {
		set("slug", *patch.Slug)
	}
	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", nullable(patch.Description))
	}
	if patch.ThumbnailURL != nil {
		set("thumbnail_url", nullable(patch.ThumbnailURL))
	}
	if patch.VideoURL != nil {
		set("video_url", nullable(patch.VideoURL))
	}
	if patch.Category != nil {
		set("category", string(*patch.Category))
	}
	if patch.Client != nil {
		set("client", nullable(patch.Client))
	}
	if patch.Date != nil {
		args = append(args, nullable(patch.Date))
		sets = append(sets, fmt.Sprintf("date = $%d::date", len(args)))
	}
	if patch.Featured != nil {
		set("featured", *patch.Featured)
	}
	if patch.DisplayOrder != nil {
		set("display_order", *patch.DisplayOrder)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE videos SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), videoColumns)

	updated, err := scanVideo(p.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return types.Video{}, mapError("update video", err)
	}

	return updated, nil
}

func (p *Postgres) DeleteVideo(ctx context.Context, id string) error {
	res, err := p.q.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return mapError("delete video", err)
	}

	return expectRows("delete video", res)
}

// expectRows reports ErrNotFound when a statement touched nothing.
func expectRows(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}
