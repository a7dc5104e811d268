package content

import (
	"context"
	"errors"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/storage"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
)

// GetTagsForVideo returns the video's tags sorted by name, or an empty slice.
func (s *Service) GetTagsForVideo(ctx context.Context, videoID string) ([]types.Tag, error) {
	tags, err := s.store.GetTagsForVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []types.Tag{}
	}
	return tags, nil
}

// SetVideoTags replaces every association of the video with tagIDs.
func (s *Service) SetVideoTags(ctx context.Context, videoID string, tagIDs []string) error {
	if _, err := s.store.GetVideo(ctx, videoID); err != nil {
		return err
	}
	if err := s.checkTagIDs(ctx, tagIDs); err != nil {
		return err
	}

	if err := replaceVideoTags(ctx, s.store, videoID, tagIDs); err != nil {
		return err
	}

	s.changed(ctx, types.EventVideoUpdated, types.EntityRef{ID: videoID})

	return nil
}

// AddTagToVideo links one tag. Re-adding an existing link succeeds.
func (s *Service) AddTagToVideo(ctx context.Context, videoID, tagID string) error {
	err := s.store.InsertVideoTag(ctx, videoID, tagID)
	if errors.Is(err, storage.ErrDuplicate) {
		return nil
	}
	if err != nil {
		return err
	}

	s.changed(ctx, types.EventVideoUpdated, types.EntityRef{ID: videoID})

	return nil
}

// RemoveTagFromVideo unlinks one tag. Removing a missing link is a no-op.
func (s *Service) RemoveTagFromVideo(ctx context.Context, videoID, tagID string) error {
	if err := s.store.DeleteVideoTag(ctx, videoID, tagID); err != nil {
		return err
	}

	s.changed(ctx, types.EventVideoUpdated, types.EntityRef{ID: videoID})

	return nil
}

// replaceVideoTags deletes then inserts inside one transaction. Duplicate ids
// are collapsed.
func replaceVideoTags(ctx context.Context, st storage.Storage, videoID string, tagIDs []string) error {
	return st.WithTransaction(ctx, func(tx storage.Storage) error {
		if err := tx.DeleteVideoTags(ctx, videoID); err != nil {
			return err
		}

		seen := make(map[string]struct{}, len(tagIDs))
		for _, tagID := range tagIDs {
			if _, dup := seen[tagID]; dup {
				continue
			}
			seen[tagID] = struct{}{}

			if err := tx.InsertVideoTag(ctx, videoID, tagID); err != nil && !errors.Is(err, storage.ErrDuplicate) {
				return err
			}
		}

		return nil
	})
}
