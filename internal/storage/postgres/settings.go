package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
)

// GetSetting returns nil when the key has never been written.
func (p *Postgres) GetSetting(ctx context.Context, key string) (*string, error) {
	var value sql.NullString
	err := p.q.QueryRowContext(ctx, `SELECT value FROM site_settings WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get setting", err)
	}

	return fromNull(value), nil
}

func (p *Postgres) ListSettings(ctx context.Context) ([]types.SiteSetting, error) {
	rows, err := p.q.QueryContext(ctx,
		`SELECT id, key, value, description, created_at, updated_at FROM site_settings ORDER BY key ASC`)
	if err != nil {
		return nil, mapError("list settings", err)
	}
	defer rows.Close()

	settings := []types.SiteSetting{}
	for rows.Next() {
		var (
			s     types.SiteSetting
			value sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.Key, &value, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, mapError("list settings", err)
		}
		s.Value = fromNull(value)
		settings = append(settings, s)
	}

	return settings, mapError("list settings", rows.Err())
}

func (p *Postgres) UpsertSetting(ctx context.Context, key string, value *string) error {
	query := `
	INSERT INTO site_settings (key, value)
	VALUES ($1, $2)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	_, err := p.q.ExecContext(ctx, query, key, nullable(value))
	return mapError("upsert setting", err)
}
