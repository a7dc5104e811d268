package content

import (
	"context"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
)

func (s *Service) ListGalleryItems(ctx context.Context, videoID string) ([]types.GalleryItem, error) {
	return s.store.ListGalleryItems(ctx, videoID)
}

func (s *Service) ListGalleryURLs(ctx context.Context, videoID string) ([]string, error) {
	return s.store.ListGalleryURLs(ctx, videoID)
}

func (s *Service) CreateGalleryItem(ctx context.Context, videoID string, req types.CreateGalleryItemRequest) (types.GalleryItem, error) {
	req.Normalize()

	if req.FileURL == "" {
		return types.GalleryItem{}, invalid("file_url", "is required")
	}
	if req.FileType != types.FileTypeImage && req.FileType != types.FileTypeVideo {
		return types.GalleryItem{}, invalid("file_type", "must be one of image video")
	}

	if _, err := s.store.GetVideo(ctx, videoID); err != nil {
		return types.GalleryItem{}, err
	}

	item, err := s.store.CreateGalleryItem(ctx, types.GalleryItem{
		VideoID:      videoID,
		FileURL:      req.FileURL,
		FileType:     req.FileType,
		Title:        req.Title,
		AltText:      req.AltText,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		return types.GalleryItem{}, err
	}

	s.changed(ctx, types.EventGalleryChanged, types.EntityRef{ID: videoID})

	return item, nil
}

func (s *Service) UpdateGalleryItem(ctx context.Context, id string, req types.UpdateGalleryItemRequest) (types.GalleryItem, error) {
	req.Normalize()

	item, err := s.store.UpdateGalleryItem(ctx, id, req.Patch())
	if err != nil {
		return types.GalleryItem{}, err
	}

	s.changed(ctx, types.EventGalleryChanged, types.EntityRef{ID: item.VideoID})

	return item, nil
}

// DeleteGalleryItem removes the row and, when managed, the file behind it.
func (s *Service) DeleteGalleryItem(ctx context.Context, id string) error {
	item, err := s.store.GetGalleryItem(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteGalleryItem(ctx, id); err != nil {
		return err
	}

	s.deleteBlob(ctx, "gallery", &item.FileURL)
	s.changed(ctx, types.EventGalleryChanged, types.EntityRef{ID: item.VideoID})

	return nil
}
