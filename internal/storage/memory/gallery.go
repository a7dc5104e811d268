package memory

import (
	"context"
	"sort"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
)

func (s *Store) galleryFor(videoID string) []types.GalleryItem {
	items := []types.GalleryItem{}
	for _, g := range s.d.gallery {
		if g.VideoID == videoID {
			items = append(items, g)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].DisplayOrder != items[j].DisplayOrder {
			return items[i].DisplayOrder < items[j].DisplayOrder
		}
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})

	return items
}

func (s *Store) ListGalleryItems(ctx context.Context, videoID string) ([]types.GalleryItem, error) {
	if err := s.faults.get("ListGalleryItems"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.galleryFor(videoID), nil
}

func (s *Store) ListGalleryURLs(ctx context.Context, videoID string) ([]string, error) {
	if err := s.faults.get("ListGalleryURLs"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.galleryFor(videoID)
	urls := make([]string, 0, len(items))
	for _, g := range items {
		urls = append(urls, g.FileURL)
	}

	return urls, nil
}

func (s *Store) GetGalleryItem(ctx context.Context, id string) (types.GalleryItem, error) {
	if err := s.faults.get("GetGalleryItem"); err != nil {
		return types.GalleryItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.d.gallery[id]
	if !ok {
		return types.GalleryItem{}, notFound("get gallery item")
	}
	return g, nil
}

func (s *Store) CreateGalleryItem(ctx context.Context, item types.GalleryItem) (types.GalleryItem, error) {
	if err := s.faults.get("CreateGalleryItem"); err != nil {
		return types.GalleryItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.d.videos[item.VideoID]; !ok {
		return types.GalleryItem{}, notFound("create gallery item")
	}

	item.ID = newID()
	item.Title = normalize(item.Title)
	item.AltText = normalize(item.AltText)
	item.CreatedAt = s.now()
	s.d.gallery[item.ID] = item

	return item, nil
}

func (s *Store) UpdateGalleryItem(ctx context.Context, id string, patch types.GalleryItemPatch) (types.GalleryItem, error) {
	if err := s.faults.get("UpdateGalleryItem"); err != nil {
		return types.GalleryItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.d.gallery[id]
	if !ok {
		return types.GalleryItem{}, notFound("update gallery item")
	}

	if patch.Title != nil {
		g.Title = normalize(patch.Title)
	}
	if patch.AltText != nil {
		g.AltText = normalize(patch.AltText)
	}
	if patch.DisplayOrder != nil {
		g.DisplayOrder = *patch.DisplayOrder
	}
	s.d.gallery[id] = g

	return g, nil
}

func (s *Store) DeleteGalleryItem(ctx context.Context, id string) error {
	if err := s.faults.get("DeleteGalleryItem"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.d.gallery[id]; !ok {
		return notFound("delete gallery item")
	}
	delete(s.d.gallery, id)

	return nil
}
