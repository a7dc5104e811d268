package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/config"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/storage"
	"github.com/lib/pq"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

type Postgres struct {
	Db *sql.DB
	q  querier
	tx bool
}

var _ storage.Storage = (*Postgres)(nil)

func NewPostgres(cfg *config.Config) (*Postgres, error) {
	db, err := sql.Open("postgres", cfg.PGSQL.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.PGSQL.MaxConns)
	db.SetMaxIdleConns(cfg.PGSQL.MaxConns / 2)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	pg := New(db)
	if err := pg.CreateTables(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	slog.Info("Connected to Postgres database", slog.String("dbname", cfg.PGSQL.DBName))

	return pg, nil
}

// New wraps an already opened database handle.
func New(db *sql.DB) *Postgres {
	return &Postgres{Db: db, q: db}
}

func (p *Postgres) CreateTables(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS videos (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			slug VARCHAR(255) UNIQUE NOT NULL,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			thumbnail_url TEXT,
			video_url TEXT,
			category VARCHAR(50) NOT NULL CHECK (category IN ('Commercial', 'Music Video', 'Wedding', 'Short Film', 'Personal')),
			client VARCHAR(255),
			date DATE,
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			display_order INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		`,
		`CREATE INDEX IF NOT EXISTS idx_videos_display_order ON videos (display_order, created_at DESC);`,
		`
		CREATE TABLE IF NOT EXISTS tags (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(100) UNIQUE NOT NULL,
			color VARCHAR(20) NOT NULL DEFAULT '#6B7280',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS video_tags (
			video_id UUID NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
			tag_id UUID NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
			PRIMARY KEY (video_id, tag_id)
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS gallery_items (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			video_id UUID NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
			file_url TEXT NOT NULL,
			file_type VARCHAR(10) NOT NULL CHECK (file_type IN ('image', 'video')),
			title VARCHAR(255),
			alt_text TEXT,
			display_order INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		`,
		`CREATE INDEX IF NOT EXISTS idx_gallery_items_video ON gallery_items (video_id, display_order);`,
		`
		CREATE TABLE IF NOT EXISTS site_settings (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			key VARCHAR(100) UNIQUE NOT NULL,
			value TEXT,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		`,
	}

	for _, q := range queries {
		if _, err := p.q.ExecContext(ctx, q); err != nil {
			return err
		}
	}

	return nil
}

// WithTransaction runs fn inside a database transaction. Calls made while already
// inside a transaction join it.
func (p *Postgres) WithTransaction(ctx context.Context, fn func(tx storage.Storage) error) error {
	if p.tx {
		return fn(p)
	}

	tx, err := p.Db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(&Postgres{Db: p.Db, q: tx, tx: true}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Error("failed to roll back transaction", slog.String("error", rbErr.Error()))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (p *Postgres) MediaReferences(ctx context.Context) ([]string, error) {
	query := `
	SELECT thumbnail_url FROM videos WHERE thumbnail_url IS NOT NULL AND thumbnail_url <> ''
	UNION
	SELECT video_url FROM videos WHERE video_url IS NOT NULL AND video_url <> ''
	UNION
	SELECT file_url FROM gallery_items
	UNION
	SELECT value FROM site_settings WHERE value IS NOT NULL AND value <> ''
	`

	rows, err := p.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list media references: %w", err)
	}
	defer rows.Close()

	refs := []string{}
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("scan media reference: %w", err)
		}
		refs = append(refs, ref)
	}

	return refs, rows.Err()
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.Db.PingContext(ctx)
}

func (p *Postgres) Close() error {
	return p.Db.Close()
}

// mapError translates driver errors into storage sentinels.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w (%s)", op, storage.ErrDuplicate, pqErr.Constraint)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s: referenced row missing: %w", op, storage.ErrNotFound)
		case "22P02": // invalid_text_representation, e.g. a malformed uuid
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

// nullable maps nil and empty strings to SQL NULL.
func nullable(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
