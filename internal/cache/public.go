package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
)

// Source serves the public reads that PublicReader caches.
type Source interface {
	FindVideos(ctx context.Context, filter types.VideoFilter) ([]types.Video, error)
	GetVideoDetail(ctx context.Context, slug string) (types.VideoDetail, error)
	ListTags(ctx context.Context) ([]types.Tag, error)
	PortraitURL(ctx context.Context) (string, error)
}

// PublicReader is a read-through cache in front of Source.
type PublicReader struct {
	source Source
	cache  *Cache
}

var _ Source = (*PublicReader)(nil)

func NewPublicReader(source Source, cache *Cache) *PublicReader {
	return &PublicReader{
		source: source,
		cache:  cache,
	}
}

func (p *PublicReader) FindVideos(ctx context.Context, filter types.VideoFilter) ([]types.Video, error) {
	category, featured := "*", "*"
	if filter.Category != nil {
		category = string(*filter.Category)
	}
	if filter.Featured != nil {
		featured = strconv.FormatBool(*filter.Featured)
	}

	key := fmt.Sprintf(PublicVideosKey, category, featured)
	return remember(ctx, p.cache, key, func() ([]types.Video, error) {
		return p.source.FindVideos(ctx, filter)
	})
}

func (p *PublicReader) GetVideoDetail(ctx context.Context, slug string) (types.VideoDetail, error) {
	key := fmt.Sprintf(PublicVideoKey, slug)
	return remember(ctx, p.cache, key, func() (types.VideoDetail, error) {
		return p.source.GetVideoDetail(ctx, slug)
	})
}

func (p *PublicReader) ListTags(ctx context.Context) ([]types.Tag, error) {
	return remember(ctx, p.cache, PublicTagsKey, func() ([]types.Tag, error) {
		return p.source.ListTags(ctx)
	})
}

// PortraitURL caches only successful lookups; a fallback served because of a
// store error is returned with that error and not cached.
func (p *PublicReader) PortraitURL(ctx context.Context) (string, error) {
	return remember(ctx, p.cache, PublicPortraitKey, func() (string, error) {
		return p.source.PortraitURL(ctx)
	})
}
