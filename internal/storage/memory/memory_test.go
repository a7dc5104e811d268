package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/storage"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestVideoOrdering(t *testing.T) {
	s := New()
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first, err := s.CreateVideo(ctx, types.Video{Slug: "a", Title: "A", Category: types.CategoryWedding})
	require.NoError(t, err)
	second, err := s.CreateVideo(ctx, types.Video{Slug: "b", Title: "B", Category: types.CategoryWedding})
	require.NoError(t, err)
	pinned, err := s.CreateVideo(ctx, types.Video{Slug: "c", Title: "C", Category: types.CategoryPersonal, DisplayOrder: -1})
	require.NoError(t, err)

	videos, err := s.ListVideos(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 3)
	assert.Equal(t, []string{pinned.ID, second.ID, first.ID}, []string{videos[0].ID, videos[1].ID, videos[2].ID})

	wedding := types.CategoryWedding
	found, err := s.FindVideos(ctx, types.VideoFilter{Category: &wedding})
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestSlugUniqueness(t *testing.T) {
	s := New()
	ctx := context.Background()

	a, err := s.CreateVideo(ctx, types.Video{Slug: "reel", Title: "Reel", Category: types.CategoryCommercial})
	require.NoError(t, err)
	b, err := s.CreateVideo(ctx, types.Video{Slug: "reel-2", Title: "Reel", Category: types.CategoryCommercial})
	require.NoError(t, err)

	_, err = s.CreateVideo(ctx, types.Video{Slug: "reel", Title: "Again", Category: types.CategoryCommercial})
	assert.ErrorIs(t, err, storage.ErrDuplicate)

	_, err = s.UpdateVideo(ctx, b.ID, types.VideoPatch{Slug: strPtr("reel")})
	assert.ErrorIs(t, err, storage.ErrDuplicate)

	// Renaming to its own slug is not a conflict.
	_, err = s.UpdateVideo(ctx, a.ID, types.VideoPatch{Slug: strPtr("reel")})
	assert.NoError(t, err)
}

func TestDeleteVideoCascades(t *testing.T) {
	s := New()
	ctx := context.Background()

	v, err := s.CreateVideo(ctx, types.Video{Slug: "x", Title: "X", Category: types.CategoryShortFilm})
	require.NoError(t, err)
	tag, err := s.CreateTag(ctx, "Drone", types.DefaultTagColor)
	require.NoError(t, err)
	require.NoError(t, s.InsertVideoTag(ctx, v.ID, tag.ID))
	_, err = s.CreateGalleryItem(ctx, types.GalleryItem{VideoID: v.ID, FileURL: "https://cdn/x.jpg", FileType: types.FileTypeImage})
	require.NoError(t, err)

	require.NoError(t, s.DeleteVideo(ctx, v.ID))

	tags, err := s.GetTagsForVideo(ctx, v.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)

	urls, err := s.ListGalleryURLs(ctx, v.ID)
	require.NoError(t, err)
	assert.Empty(t, urls)

	assert.ErrorIs(t, s.DeleteVideo(ctx, v.ID), storage.ErrNotFound)
}

func TestVideoTagAssociation(t *testing.T) {
	s := New()
	ctx := context.Background()

	v, err := s.CreateVideo(ctx, types.Video{Slug: "x", Title: "X", Category: types.CategoryShortFilm})
	require.NoError(t, err)
	tag, err := s.CreateTag(ctx, "4K", types.DefaultTagColor)
	require.NoError(t, err)

	require.NoError(t, s.InsertVideoTag(ctx, v.ID, tag.ID))
	assert.ErrorIs(t, s.InsertVideoTag(ctx, v.ID, tag.ID), storage.ErrDuplicate)
	assert.ErrorIs(t, s.InsertVideoTag(ctx, v.ID, "missing"), storage.ErrNotFound)

	require.NoError(t, s.DeleteTag(ctx, tag.ID))
	tags, err := s.GetTagsForVideo(ctx, v.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestWithTransaction(t *testing.T) {
	s := New()
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.WithTransaction(ctx, func(tx storage.Storage) error {
		if _, err := tx.CreateTag(ctx, "Drone", "#000000"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	tags, err := s.ListTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)

	err = s.WithTransaction(ctx, func(tx storage.Storage) error {
		_, err := tx.CreateTag(ctx, "Drone", "#000000")
		return err
	})
	require.NoError(t, err)

	tags, err = s.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestFailInjection(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("db down")

	s.Fail("ListTags", boom)
	_, err := s.ListTags(ctx)
	assert.ErrorIs(t, err, boom)

	s.Fail("ListTags", nil)
	_, err = s.ListTags(ctx)
	assert.NoError(t, err)
}

func TestSettingsAndReferences(t *testing.T) {
	s := New()
	ctx := context.Background()

	value, err := s.GetSetting(ctx, types.PortraitSettingKey)
	require.NoError(t, err)
	assert.Nil(t, value)

	require.NoError(t, s.UpsertSetting(ctx, types.PortraitSettingKey, strPtr("https://cdn/p.jpg")))
	v, err := s.CreateVideo(ctx, types.Video{
		Slug: "x", Title: "X", Category: types.CategoryShortFilm,
		ThumbnailURL: strPtr("https://cdn/t.jpg"), VideoURL: strPtr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, v.VideoURL)

	refs, err := s.MediaReferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/p.jpg", "https://cdn/t.jpg"}, refs)
}
