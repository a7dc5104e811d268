package memory

import (
	"context"
	"sort"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
)

// sortedVideos orders by display_order ascending, newest first on ties.
func (s *Store) sortedVideos(keep func(types.Video) bool) []types.Video {
	videos := make([]types.Video, 0, len(s.d.videos))
	for _, v := range s.d.videos {
		if keep == nil || keep(v) {
			videos = append(videos, v)
		}
	}

	sort.Slice(videos, func(i, j int) bool {
		a, b := videos[i], videos[j]
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return s.d.videoSeq[a.ID] > s.d.videoSeq[b.ID]
	})

	return videos
}

func (s *Store) ListVideos(ctx context.Context) ([]types.Video, error) {
	if err := s.faults.get("ListVideos"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sortedVideos(nil), nil
}

func (s *Store) FindVideos(ctx context.Context, filter types.VideoFilter) ([]types.Video, error) {
	if err := s.faults.get("FindVideos"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sortedVideos(func(v types.Video) bool {
		if filter.Category != nil && v.Category != *filter.Category {
			return false
		}
		if filter.Featured != nil && v.Featured != *filter.Featured {
			return false
		}
		return true
	}), nil
}

func (s *Store) GetVideo(ctx context.Context, id string) (types.Video, error) {
	if err := s.faults.get("GetVideo"); err != nil {
		return types.Video{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.d.videos[id]
	if !ok {
		return types.Video{}, notFound("get video")
	}
	return v, nil
}

func (s *Store) GetVideoBySlug(ctx context.Context, slug string) (types.Video, error) {
	if err := s.faults.get("GetVideoBySlug"); err != nil {
		return types.Video{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.d.videos {
		if v.Slug == slug {
			return v, nil
		}
	}
	return types.Video{}, notFound("get video by slug")
}

func (s *Store) SlugExists(ctx context.Context, slug string) (bool, error) {
	if err := s.faults.get("SlugExists"); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.slugTaken(slug, ""), nil
}

func (s *Store) slugTaken(slug, exceptID string) bool {
	for id, v := range s.d.videos {
		if v.Slug == slug && id != exceptID {
			return true
		}
	}
	return false
}

func (s *Store) CreateVideo(ctx context.Context, video types.Video) (types.Video, error) {
	if err := s.faults.get("CreateVideo"); err != nil {
		return types.Video{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slugTaken(video.Slug, "") {
		return types.Video{}, duplicate("create video")
	}

	now := s.now()
	video.ID = newID()
	video.Description = normalize(video.Description)
	video.ThumbnailURL = normalize(video.ThumbnailURL)
	video.VideoURL = normalize(video.VideoURL)
	video.Client = normalize(video.Client)
	video.Date = normalize(video.Date)
	video.CreatedAt = now
	video.UpdatedAt = now
	video.Tags = nil

	s.d.seq++
	s.d.videos[video.ID] = video
	s.d.videoSeq[video.ID] = s.d.seq

	return video, nil
}

func (s *Store) UpdateVideo(ctx context.Context, id string, patch types.VideoPatch) (types.Video, error) {
	if err := s.faults.get("UpdateVideo"); err != nil {
		return types.Video{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.d.videos[id]
	if !ok {
		return types.Video{}, notFound("update video")
	}

	if patch.Slug != nil {
		if s.slugTaken(*patch.Slug, id) {
			return types.Video{}, duplicate("update video")
		}
		v.Slug = *patch.Slug
	}
	if patch.Title != nil {
		v.Title = *patch.Title
	}
	if patch.Description != nil {
		v.Description = normalize(patch.Description)
	}
	if patch.ThumbnailURL != nil {
		v.ThumbnailURL = normalize(patch.ThumbnailURL)
	}
	if patch.VideoURL != nil {
		v.VideoURL = normalize(patch.VideoURL)
	}
	if patch.Category != nil {
		v.Category = *patch.Category
	}
	if patch.Client != nil {
		v.Client = normalize(patch.Client)
	}
	if patch.Date != nil {
		v.Date = normalize(patch.Date)
	}
	if patch.Featured != nil {
		v.Featured = *patch.Featured
	}
	if patch.DisplayOrder != nil {
		v.DisplayOrder = *patch.DisplayOrder
	}

	if now := s.now(); now.After(v.UpdatedAt) {
		v.UpdatedAt = now
	}
	s.d.videos[id] = v

	return v, nil
}

func (s *Store) DeleteVideo(ctx context.Context, id string) error {
	if err := s.faults.get("DeleteVideo"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.d.videos[id]; !ok {
		return notFound("delete video")
	}

	delete(s.d.videos, id)
	delete(s.d.videoSeq, id)
	delete(s.d.videoTags, id)
	for gid, g := range s.d.gallery {
		if g.VideoID == id {
			delete(s.d.gallery, gid)
		}
	}

	return nil
}
