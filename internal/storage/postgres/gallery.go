package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
)

const galleryColumns = `id, video_id, file_url, file_type, title, alt_text, display_order, created_at`

func scanGalleryItem(row rowScanner) (types.GalleryItem, error) {
	var (
		item           types.GalleryItem
		fileType       string
		title, altText sql.NullString
	)

	err := row.Scan(&item.ID, &item.VideoID, &item.FileURL, &fileType, &title, &altText, &item.DisplayOrder, &item.CreatedAt)
	if err != nil {
		return types.GalleryItem{}, err
	}

	item.FileType = types.FileType(fileType)
	item.Title = fromNull(title)
	item.AltText = fromNull(altText)

	return item, nil
}

func (p *Postgres) ListGalleryItems(ctx context.Context, videoID string) ([]types.GalleryItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM gallery_items WHERE video_id = $1 ORDER BY display_order ASC, created_at ASC`, galleryColumns)

	rows, err := p.q.QueryContext(ctx, query, videoID)
	if err != nil {
		return nil, mapError("list gallery items", err)
	}
	defer rows.Close()

	items := []types.GalleryItem{}
	for rows.Next() {
		item, err := scanGalleryItem(rows)
		if err != nil {
			return nil, mapError("list gallery items", err)
		}
		items = append(items, item)
	}

	return items, mapError("list gallery items", rows.Err())
}

func (p *Postgres) ListGalleryURLs(ctx context.Context, videoID string) ([]string, error) {
	rows, err := p.q.QueryContext(ctx,
		`SELECT file_url FROM gallery_items WHERE video_id = $1 ORDER BY display_order ASC, created_at ASC`, videoID)
	if err != nil {
		return nil, mapError("list gallery urls", err)
	}
	defer rows.Close()

	urls := []string{}
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, mapError("list gallery urls", err)
		}
		urls = append(urls, u)
	}

	return urls, mapError("list gallery urls", rows.Err())
}

func (p *Postgres) GetGalleryItem(ctx context.Context, id string) (types.GalleryItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM gallery_items WHERE id = $1`, galleryColumns)

	item, err := scanGalleryItem(p.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return types.GalleryItem{}, mapError("get gallery item", err)
	}

	return item, nil
}

func (p *Postgres) CreateGalleryItem(ctx context.Context, item types.GalleryItem) (types.GalleryItem, error) {
	query := fmt.Sprintf(`
	INSERT INTO gallery_items (video_id, file_url, file_type, title, alt_text, display_order)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING %s
	`, galleryColumns)

	created, err := scanGalleryItem(p.q.QueryRowContext(ctx, query,
		item.VideoID,
		item.FileURL,
		string(item.FileType),
		nullable(item.Title),
		nullable(item.AltText),
		item.DisplayOrder,
	))
	if err != nil {
		return types.GalleryItem{}, mapError("create gallery item", err)
	}

	return created, nil
}

func (p *Postgres) UpdateGalleryItem(ctx context.Context, id string, patch types.GalleryItemPatch) (types.GalleryItem, error) {
	var (
		sets []string
		args []any
	)

	if patch.Title != nil {
		args = append(args, nullable(patch.Title))
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if patch.AltText != nil {
		args = append(args, nullable(patch.AltText))
		sets = append(sets, fmt.Sprintf("alt_text = $%d", len(args)))
	}
	if patch.DisplayOrder != nil {
		args = append(args, *patch.DisplayOrder)
		sets = append(sets, fmt.Sprintf("display_order = $%d", len(args)))
	}

	if len(sets) == 0 {
		return p.GetGalleryItem(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE gallery_items SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), galleryColumns)

	updated, err := scanGalleryItem(p.q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return types.GalleryItem{}, mapError("update gallery item", err)
	}

	return updated, nil
}

func (p *Postgres) DeleteGalleryItem(ctx context.Context, id string) error {
	res, err := p.q.ExecContext(ctx, `DELETE FROM gallery_items WHERE id = $1`, id)
	if err != nil {
		return mapError("delete gallery item", err)
	}

	return expectRows("delete gallery item", res)
}
