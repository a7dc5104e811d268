package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, client
}

type countingSource struct {
	videoCalls    int
	tagCalls      int
	detailCalls   int
	portraitCalls int
	err           error
	portraitErr   error
}

func (s *countingSource) FindVideos(ctx context.Context, filter types.VideoFilter) ([]types.Video, error) {
	s.videoCalls++
	if s.err != nil {
		return nil, s.err
	}
	return []types.Video{{ID: "v1", Slug: "reel", Title: "Reel", Category: types.CategoryCommercial}}, nil
}

func (s *countingSource) GetVideoDetail(ctx context.Context, slug string) (types.VideoDetail, error) {
	s.detailCalls++
	if s.err != nil {
		return types.VideoDetail{}, s.err
	}
	return types.VideoDetail{Video: types.Video{ID: "v1", Slug: slug}, Tags: []types.Tag{}, Gallery: []string{"https://cdn/a.jpg"}}, nil
}

func (s *countingSource) ListTags(ctx context.Context) ([]types.Tag, error) {
	s.tagCalls++
	return []types.Tag{{ID: "t1", Name: "Drone", Color: types.DefaultTagColor}}, nil
}

func (s *countingSource) PortraitURL(ctx context.Context) (string, error) {
	s.portraitCalls++
	if s.portraitErr != nil {
		return "/images/fallback.jpg", s.portraitErr
	}
	return "/images/portrait.jpg", nil
}

func TestPublicReaderCachesReads(t *testing.T) {
	_, client := setupTestRedis(t)
	source := &countingSource{}
	reader := NewPublicReader(source, New(client, time.Minute))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		videos, err := reader.FindVideos(ctx, types.VideoFilter{})
		require.NoError(t, err)
		require.Len(t, videos, 1)
		assert.Equal(t, "reel", videos[0].Slug)

		tags, err := reader.ListTags(ctx)
		require.NoError(t, err)
		assert.Len(t, tags, 1)

		detail, err := reader.GetVideoDetail(ctx, "reel")
		require.NoError(t, err)
		assert.Equal(t, []string{"https://cdn/a.jpg"}, detail.Gallery)

		portrait, err := reader.PortraitURL(ctx)
		require.NoError(t, err)
		assert.Equal(t, "/images/portrait.jpg", portrait)
	}

	assert.Equal(t, 1, source.videoCalls)
	assert.Equal(t, 1, source.tagCalls)
	assert.Equal(t, 1, source.detailCalls)
	assert.Equal(t, 1, source.portraitCalls)
}

func TestFiltersUseSeparateKeys(t *testing.T) {
	mr, client := setupTestRedis(t)
	source := &countingSource{}
	reader := NewPublicReader(source, New(client, time.Minute))
	ctx := context.Background()

	featured := true
	wedding := types.CategoryWedding

	_, err := reader.FindVideos(ctx, types.VideoFilter{})
	require.NoError(t, err)
	_, err = reader.FindVideos(ctx, types.VideoFilter{Featured: &featured})
	require.NoError(t, err)
	_, err = reader.FindVideos(ctx, types.VideoFilter{Category: &wedding, Featured: &featured})
	require.NoError(t, err)

	assert.Equal(t, 3, source.videoCalls)
	assert.True(t, mr.Exists("public:videos:*:*"))
	assert.True(t, mr.Exists("public:videos:*:true"))
	assert.True(t, mr.Exists("public:videos:Wedding:true"))
}

func TestErrorsAreNotCached(t *testing.T) {
	mr, client := setupTestRedis(t)
	source := &countingSource{err: errors.New("db down")}
	reader := NewPublicReader(source, New(client, time.Minute))
	ctx := context.Background()

	_, err := reader.GetVideoDetail(ctx, "missing")
	assert.Error(t, err)
	_, err = reader.GetVideoDetail(ctx, "missing")
	assert.Error(t, err)

	assert.Equal(t, 2, source.detailCalls)
	assert.False(t, mr.Exists("public:video:missing"))
}

func TestRedisOutageFallsThrough(t *testing.T) {
	mr, client := setupTestRedis(t)
	source := &countingSource{}
	reader := NewPublicReader(source, New(client, time.Minute))

	mr.Close()

	tags, err := reader.ListTags(context.Background())
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestInvalidatePublicKeepsOtherKeys(t *testing.T) {
	mr, client := setupTestRedis(t)
	cache := New(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, mr.Set("public:tags", "[]"))
	require.NoError(t, mr.Set("public:video:reel", "{}"))
	require.NoError(t, mr.Set("rate_limit:1.2.3.4:login", "x"))

	require.NoError(t, cache.InvalidatePublic(ctx))

	assert.False(t, mr.Exists("public:tags"))
	assert.False(t, mr.Exists("public:video:reel"))
	assert.True(t, mr.Exists("rate_limit:1.2.3.4:login"))
}

func TestStatsAndClear(t *testing.T) {
	mr, client := setupTestRedis(t)
	cache := New(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, mr.Set("public:tags", "[]"))
	require.NoError(t, mr.Set("rate_limit:1.2.3.4:login", "x"))

	stats := cache.Stats(ctx)
	assert.True(t, stats.RedisConnected)
	assert.Equal(t, int64(2), stats.KeyCount)
	assert.Equal(t, 1, stats.PublicKeys)
	assert.Equal(t, []string{"public:tags"}, stats.PublicSample)

	n, err := cache.Clear(ctx, "ratelimit")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.True(t, mr.Exists("public:tags"))

	_, err = cache.Clear(ctx, "bogus")
	assert.Error(t, err)

	n, err = cache.Clear(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestFallbackPortraitIsNotCached(t *testing.T) {
	mr, client := setupTestRedis(t)
	source := &countingSource{portraitErr: errors.New("db down")}
	reader := NewPublicReader(source, New(client, time.Minute))
	ctx := context.Background()

	portrait, err := reader.PortraitURL(ctx)
	assert.Error(t, err)
	assert.Equal(t, "/images/fallback.jpg", portrait)
	assert.False(t, mr.Exists(PublicPortraitKey))

	source.portraitErr = nil
	portrait, err = reader.PortraitURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/images/portrait.jpg", portrait)
	assert.True(t, mr.Exists(PublicPortraitKey))
	assert.Equal(t, 2, source.portraitCalls)
}
