package content

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/storage"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ListTags returns every tag sorted by name.
func (s *Service) ListTags(ctx context.Context) ([]types.Tag, error) {
	return s.store.ListTags(ctx)
}

// CreateTag trims the name and applies the neutral default colour when none is given.
func (s *Service) CreateTag(ctx context.Context, req types.CreateTagRequest) (types.Tag, error) {
	req.Normalize()

	if req.Name == "" {
		return types.Tag{}, invalid("name", "is required")
	}

	color := types.DefaultTagColor
	if req.Color != nil && *req.Color != "" {
		if !hexColor.MatchString(*req.Color) {
			return types.Tag{}, invalid("color", "must be a hex colour")
		}
		color = *req.Color
	}

	tag, err := s.store.CreateTag(ctx, req.Name, color)
	if errors.Is(err, storage.ErrDuplicate) {
		return types.Tag{}, fmt.Errorf("tag %q already exists: %w", req.Name, ErrConflict)
	}
	if err != nil {
		return types.Tag{}, err
	}

	s.changed(ctx, types.EventTagCreated, types.EntityRef{ID: tag.ID, Name: tag.Name})

	return tag, nil
}

func (s *Service) DeleteTag(ctx context.Context, id string) error {
	if err := s.store.DeleteTag(ctx, id); err != nil {
		return err
	}

	s.changed(ctx, types.EventTagDeleted, types.EntityRef{ID: id})

	return nil
}
