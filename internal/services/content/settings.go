package content

import (
	"context"
	"fmt"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
)

// DefaultPortraitURL is served when no portrait has been configured.
const DefaultPortraitURL = "/images/portrait.jpg"

func (s *Service) GetSetting(ctx context.Context, key string) (*string, error) {
	return s.store.GetSetting(ctx, key)
}

func (s *Service) ListSettings(ctx context.Context) ([]types.SiteSetting, error) {
	return s.store.ListSettings(ctx)
}

// UpdateSetting upserts key. A nil value clears it.
func (s *Service) UpdateSetting(ctx context.Context, req types.UpdateSettingRequest) error {
	req.Normalize()

	if req.Key == "" {
		return invalid("key", "is required")
	}

	if err := s.store.UpsertSetting(ctx, req.Key, req.Value); err != nil {
		return err
	}

	s.changed(ctx, types.EventSettingUpdated, types.EntityRef{Key: req.Key})

	return nil
}

// PortraitURL always returns a usable URL: a missing row or empty value yield
// the configured fallback. A store error also yields the fallback, together
// with the error so callers can log it and skip caching.
func (s *Service) PortraitURL(ctx context.Context) (string, error) {
	value, err := s.store.GetSetting(ctx, types.PortraitSettingKey)
	if err != nil {
		return s.portraitFallback, fmt.Errorf("read portrait setting: %w", err)
	}
	if value == nil || *value == "" {
		return s.portraitFallback, nil
	}
	return *value, nil
}
