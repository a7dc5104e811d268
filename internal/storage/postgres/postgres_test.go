package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/storage"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore connects to TEST_PG_DSN and truncates every table.
func newTestStore(t *testing.T) *Postgres {
	t.Helper()

	dsn := os.Getenv("TEST_PG_DSN")
	if dsn == "" {
		t.Skip("TEST_PG_DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	pg := New(db)
	require.NoError(t, pg.CreateTables(ctx))

	_, err = db.ExecContext(ctx, `TRUNCATE users, videos, tags, video_tags, gallery_items, site_settings CASCADE`)
	require.NoError(t, err)

	return pg
}

func strPtr(s string) *string { return &s }

func TestMapError(t *testing.T) {
	assert.Nil(t, mapError("op", nil))
	assert.ErrorIs(t, mapError("op", sql.ErrNoRows), storage.ErrNotFound)
	assert.ErrorIs(t, mapError("op", &pq.Error{Code: "23505", Constraint: "videos_slug_key"}), storage.ErrDuplicate)
	assert.ErrorIs(t, mapError("op", &pq.Error{Code: "23503"}), storage.ErrNotFound)
	assert.ErrorIs(t, mapError("op", &pq.Error{Code: "22P02"}), storage.ErrNotFound)

	other := mapError("op", &pq.Error{Code: "42P01"})
	assert.NotErrorIs(t, other, storage.ErrNotFound)
	assert.NotErrorIs(t, other, storage.ErrDuplicate)
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(nil))
	assert.Nil(t, nullable(strPtr("")))
	assert.Equal(t, "x", nullable(strPtr("x")))
}

func TestVideoLifecycle(t *testing.T) {
	pg := newTestStore(t)
	ctx := context.Background()

	created, err := pg.CreateVideo(ctx, types.Video{
		Slug:     "brand-film",
		Title:    "Brand Film",
		Category: types.CategoryCommercial,
		Date:     strPtr("2024-05-01"),
		Client:   strPtr(""),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "2024-05-01", *created.Date)
	assert.Nil(t, created.Client)

	_, err = pg.CreateVideo(ctx, types.Video{Slug: "brand-film", Title: "Other", Category: types.CategoryWedding})
	assert.ErrorIs(t, err, storage.ErrDuplicate)

	exists, err := pg.SlugExists(ctx, "brand-film")
	require.NoError(t, err)
	assert.True(t, exists)

	featured := true
	title := "Brand Film (Cut)"
	updated, err := pg.UpdateVideo(ctx, created.ID, types.VideoPatch{Title: &title, Featured: &featured, Date: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.True(t, updated.Featured)
	assert.Nil(t, updated.Date)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	found, err := pg.FindVideos(ctx, types.VideoFilter{Featured: &featured})
	require.NoError(t, err)
	require.Len(t, found, 1)

	_, err = pg.GetVideo(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, pg.DeleteVideo(ctx, created.ID))
	assert.ErrorIs(t, pg.DeleteVideo(ctx, created.ID), storage.ErrNotFound)
}

func TestVideoTagsCascade(t *testing.T) {
	pg := newTestStore(t)
	ctx := context.Background()

	v, err := pg.CreateVideo(ctx, types.Video{Slug: "wedding", Title: "Wedding", Category: types.CategoryWedding})
	require.NoError(t, err)
	tag, err := pg.CreateTag(ctx, "4K", types.DefaultTagColor)
	require.NoError(t, err)

	require.NoError(t, pg.InsertVideoTag(ctx, v.ID, tag.ID))
	assert.ErrorIs(t, pg.InsertVideoTag(ctx, v.ID, tag.ID), storage.ErrDuplicate)

	tags, err := pg.GetTagsForVideo(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)

	require.NoError(t, pg.DeleteTag(ctx, tag.ID))
	tags, err = pg.GetTagsForVideo(ctx, v.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestWithTransactionRollsBack(t *testing.T) {
	pg := newTestStore(t)
	ctx := context.Background()

	err := pg.WithTransaction(ctx, func(tx storage.Storage) error {
		if _, err := tx.CreateTag(ctx, "Drone", "#000000"); err != nil {
			return err
		}
		_, err := tx.CreateTag(ctx, "Drone", "#111111")
		return err
	})
	assert.ErrorIs(t, err, storage.ErrDuplicate)

	tags, err := pg.ListTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestSettingsAndReferences(t *testing.T) {
	pg := newTestStore(t)
	ctx := context.Background()

	value, err := pg.GetSetting(ctx, types.PortraitSettingKey)
	require.NoError(t, err)
	assert.Nil(t, value)

	require.NoError(t, pg.UpsertSetting(ctx, types.PortraitSettingKey, strPtr("https://cdn.example.com/media/site/a.jpg")))
	require.NoError(t, pg.UpsertSetting(ctx, types.PortraitSettingKey, strPtr("https://cdn.example.com/media/site/b.jpg")))

	value, err = pg.GetSetting(ctx, types.PortraitSettingKey)
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, "https://cdn.example.com/media/site/b.jpg", *value)

	settings, err := pg.ListSettings(ctx)
	require.NoError(t, err)
	assert.Len(t, settings, 1)

	refs, err := pg.MediaReferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/media/site/b.jpg"}, refs)
}
