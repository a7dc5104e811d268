package postgres

import (
	"context"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
)

func (p *Postgres) ListTags(ctx context.Context) ([]types.Tag, error) {
	rows, err := p.q.QueryContext(ctx, `SELECT id, name, color, created_at FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, mapError("list tags", err)
	}
	defer rows.Close()

	tags := []types.Tag{}
	for rows.Next() {
		var t types.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
			return nil, mapError("list tags", err)
		}
		tags = append(tags, t)
	}

	return tags, mapError("list tags", rows.Err())
}

func (p *Postgres) CreateTag(ctx context.Context, name, color string) (types.Tag, error) {
	var t types.Tag
	err := p.q.QueryRowContext(ctx,
		`INSERT INTO tags (name, color) VALUES ($1, $2) RETURNING id, name, color, created_at`,
		name, color,
	).Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt)
	if err != nil {
		return types.Tag{}, mapError("create tag", err)
	}

	return t, nil
}

func (p *Postgres) DeleteTag(ctx context.Context, id string) error {
	res, err := p.q.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return mapError("delete tag", err)
	}

	return expectRows("delete tag", res)
}

func (p *Postgres) GetTagsForVideo(ctx context.Context, videoID string) ([]types.Tag, error) {
	query := `
	SELECT t.id, t.name, t.color, t.created_at
	FROM tags t
	JOIN video_tags vt ON vt.tag_id = t.id
	WHERE vt.video_id = $1
	ORDER BY t.name ASC
	`

	rows, err := p.q.QueryContext(ctx, query, videoID)
	if err != nil {
		return nil, mapError("get video tags", err)
	}
	defer rows.Close()

	tags := []types.Tag{}
	for rows.Next() {
		var t types.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
			return nil, mapError("get video tags", err)
		}
		tags = append(tags, t)
	}

	return tags, mapError("get video tags", rows.Err())
}

func (p *Postgres) DeleteVideoTags(ctx context.Context, videoID string) error {
	_, err := p.q.ExecContext(ctx, `DELETE FROM video_tags WHERE video_id = $1`, videoID)
	return mapError("clear video tags", err)
}

func (p *Postgres) InsertVideoTag(ctx context.Context, videoID, tagID string) error {
	_, err := p.q.ExecContext(ctx, `INSERT INTO video_tags (video_id, tag_id) VALUES ($1, $2)`, videoID, tagID)
	return mapError("insert video tag", err)
}

func (p *Postgres) DeleteVideoTag(ctx context.Context, videoID, tagID string) error {
	_, err := p.q.ExecContext(ctx, `DELETE FROM video_tags WHERE video_id = $1 AND tag_id = $2`, videoID, tagID)
	return mapError("delete video tag", err)
}
