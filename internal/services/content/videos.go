package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/storage"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
)

// ListVideos returns every video for the admin listing.
func (s *Service) ListVideos(ctx context.Context) ([]types.Video, error) {
	return s.store.ListVideos(ctx)
}

// FindVideos returns the public listing, optionally narrowed by category or featured flag.
func (s *Service) FindVideos(ctx context.Context, filter types.VideoFilter) ([]types.Video, error) {
	if filter.Category != nil && !filter.Category.Valid() {
		return nil, invalid("category", "is not a known category")
	}
	return s.store.FindVideos(ctx, filter)
}

// GetVideo returns the video with its tags attached.
func (s *Service) GetVideo(ctx context.Context, id string) (types.Video, error) {
	v, err := s.store.GetVideo(ctx, id)
	if err != nil {
		return types.Video{}, err
	}
	return s.withTags(ctx, s.store, v)
}

// GetVideoDetail is the public view of one video: the row, its tags and gallery URLs.
func (s *Service) GetVideoDetail(ctx context.Context, slug string) (types.VideoDetail, error) {
	v, err := s.store.GetVideoBySlug(ctx, slug)
	if err != nil {
		return types.VideoDetail{}, err
	}

	tags, err := s.store.GetTagsForVideo(ctx, v.ID)
	if err != nil {
		return types.VideoDetail{}, err
	}

	gallery, err := s.store.ListGalleryURLs(ctx, v.ID)
	if err != nil {
		return types.VideoDetail{}, err
	}

	return types.VideoDetail{Video: v, Tags: tags, Gallery: gallery}, nil
}

func (s *Service) CreateVideo(ctx context.Context, req types.CreateVideoRequest) (types.Video, error) {
	req.Normalize()

	if req.Title == "" {
		return types.Video{}, invalid("title", "is required")
	}
	if req.Category == "" {
		return types.Video{}, invalid("category", "is required")
	}
	if !req.Category.Valid() {
		return types.Video{}, invalid("category", "is not a known category")
	}

	explicit := req.Slug != nil && *req.Slug != ""
	base := Slugify(req.Title)
	if explicit {
		base = Slugify(*req.Slug)
		if base == "" {
			return types.Video{}, invalid("slug", "must contain letters or digits")
		}
	}
	if base == "" {
		base = fallbackSlug
	}

	if err := s.checkTagIDs(ctx, req.TagIDs); err != nil {
		return types.Video{}, err
	}

	video := types.Video{
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		VideoURL:     req.VideoURL,
		Category:     req.Category,
		Client:       req.Client,
		Date:         req.Date,
		Featured:     req.Featured,
		DisplayOrder: req.DisplayOrder,
	}

	write := func(st storage.Storage) (types.Video, error) {
		created, err := insertWithSlug(ctx, st, video, base, explicit)
		if err != nil {
			return types.Video{}, err
		}
		if req.TagIDs != nil {
			if err := replaceVideoTags(ctx, st, created.ID, req.TagIDs); err != nil {
				return created, fmt.Errorf("video %s saved but tags were not: %w", created.ID, err)
			}
		}
		return created, nil
	}

	created, err := s.writeVideo(ctx, write)
	if created.ID != "" {
		s.changed(ctx, types.EventVideoCreated, types.EntityRef{ID: created.ID, Slug: created.Slug})
	}
	if err != nil {
		return types.Video{}, err
	}

	return s.withTags(ctx, s.store, created)
}

func (s *Service) UpdateVideo(ctx context.Context, id string, req types.UpdateVideoRequest) (types.Video, error) {
	req.Normalize()

	if req.Title != nil && *req.Title == "" {
		return types.Video{}, invalid("title", "cannot be empty")
	}
	if req.Category != nil && !req.Category.Valid() {
		return types.Video{}, invalid("category", "is not a known category")
	}

	patch := req.Patch()
	if req.Slug != nil {
		slug := Slugify(*req.Slug)
		if slug == "" {
			return types.Video{}, invalid("slug", "must contain letters or digits")
		}
		patch.Slug = &slug

		existing, err := s.store.GetVideoBySlug(ctx, slug)
		switch {
		case err == nil && existing.ID != id:
			return types.Video{}, fmt.Errorf("slug %q is taken: %w", slug, ErrConflict)
		case err != nil && !errors.Is(err, storage.ErrNotFound):
			return types.Video{}, err
		}
	}

	var tagIDs []string
	if req.TagIDs != nil {
		tagIDs = *req.TagIDs
		if tagIDs == nil {
			tagIDs = []string{}
		}
		if err := s.checkTagIDs(ctx, tagIDs); err != nil {
			return types.Video{}, err
		}
	}

	write := func(st storage.Storage) (types.Video, error) {
		updated, err := st.UpdateVideo(ctx, id, patch)
		if errors.Is(err, storage.ErrDuplicate) {
			return types.Video{}, fmt.Errorf("slug is taken: %w", ErrConflict)
		}
		if err != nil {
			return types.Video{}, err
		}
		if tagIDs != nil {
			if err := replaceVideoTags(ctx, st, id, tagIDs); err != nil {
				return updated, fmt.Errorf("video %s saved but tags were not: %w", id, err)
			}
		}
		return updated, nil
	}

	updated, err := s.writeVideo(ctx, write)
	if updated.ID != "" {
		s.changed(ctx, types.EventVideoUpdated, types.EntityRef{ID: updated.ID, Slug: updated.Slug})
	}
	if err != nil {
		return types.Video{}, err
	}

	return s.withTags(ctx, s.store, updated)
}

// DeleteVideo removes the managed media behind the video and its gallery, then
// the row itself. Media failures never block the row delete.
func (s *Service) DeleteVideo(ctx context.Context, id string) error {
	v, err := s.store.GetVideo(ctx, id)
	if err != nil {
		return err
	}

	gallery, err := s.store.ListGalleryURLs(ctx, id)
	if err != nil {
		return err
	}

	s.deleteBlob(ctx, "video", v.ThumbnailURL)
	s.deleteBlob(ctx, "video", v.VideoURL)
	for i := range gallery {
		s.deleteBlob(ctx, "gallery", &gallery[i])
	}

	if err := s.store.DeleteVideo(ctx, id); err != nil {
		return err
	}

	s.changed(ctx, types.EventVideoDeleted, types.EntityRef{ID: v.ID, Slug: v.Slug})

	return nil
}

// writeVideo runs a video write plus its tag replacement. By default the two are
// separate commits; a tag failure leaves the video written.
func (s *Service) writeVideo(ctx context.Context, write func(st storage.Storage) (types.Video, error)) (types.Video, error) {
	if !s.atomicVideoWrites {
		return write(s.store)
	}

	var out types.Video
	err := s.store.WithTransaction(ctx, func(tx storage.Storage) error {
		v, err := write(tx)
		out = v
		return err
	})
	if err != nil {
		return types.Video{}, err
	}

	return out, nil
}

// insertWithSlug inserts video under base. Derived slugs walk base, base-2, base-3
// and so on until one is free; an explicit slug is never suffixed.
func insertWithSlug(ctx context.Context, st storage.Storage, video types.Video, base string, explicit bool) (types.Video, error) {
	if explicit {
		video.Slug = base
		exists, err := st.SlugExists(ctx, base)
		if err != nil {
			return types.Video{}, err
		}
		if exists {
			return types.Video{}, fmt.Errorf("slug %q is taken: %w", base, ErrConflict)
		}

		created, err := st.CreateVideo(ctx, video)
		if errors.Is(err, storage.ErrDuplicate) {
			return types.Video{}, fmt.Errorf("slug %q is taken: %w", base, ErrConflict)
		}
		return created, err
	}

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		candidate := slugCandidate(base, attempt)

		exists, err := st.SlugExists(ctx, candidate)
		if err != nil {
			return types.Video{}, err
		}
		if exists {
			continue
		}

		video.Slug = candidate
		created, err := st.CreateVideo(ctx, video)
		if errors.Is(err, storage.ErrDuplicate) {
			// Lost a race for this candidate.
			continue
		}
		return created, err
	}

	return types.Video{}, fmt.Errorf("no free slug for %q after %d attempts: %w", base, maxSlugAttempts, ErrConflict)
}

func (s *Service) withTags(ctx context.Context, st storage.Storage, v types.Video) (types.Video, error) {
	tags, err := st.GetTagsForVideo(ctx, v.ID)
	if err != nil {
		return types.Video{}, err
	}
	if tags == nil {
		tags = []types.Tag{}
	}
	v.Tags = tags
	return v, nil
}

// checkTagIDs rejects unknown tag ids before anything is written.
func (s *Service) checkTagIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return err
	}

	known := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		known[t.ID] = struct{}{}
	}

	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return invalid("tagIds", fmt.Sprintf("references unknown tag %q", id))
		}
	}

	return nil
}
