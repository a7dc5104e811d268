// Package content holds the portfolio's business rules: videos, tags and their
// associations, gallery items and site settings.
package content

import (
	"context"
	"errors"
	"log/slog"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/events"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/observability"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/storage"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
)

// ErrConflict is returned when a write collides with a unique value, such as a
// slug or tag name.
var ErrConflict = errors.New("conflict")

// ValidationError rejects input before any store call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// BlobStore removes media objects by their public URL. Implementations must
// treat empty and unmanaged URLs as a no-op.
type BlobStore interface {
	DeleteByURL(ctx context.Context, rawURL string) (bool, error)
}

// Invalidator drops cached public reads after a content change.
type Invalidator interface {
	InvalidatePublic(ctx context.Context) error
}

type Options struct {
	Blobs     BlobStore
	Publisher events.Publisher
	Cache     Invalidator
	// AtomicVideoWrites commits a video and its tag set in one transaction.
	AtomicVideoWrites bool
	PortraitFallback  string
}

type Service struct {
	store             storage.Storage
	blobs             BlobStore
	publisher         events.Publisher
	cache             Invalidator
	atomicVideoWrites bool
	portraitFallback  string
}

func NewService(store storage.Storage, opts Options) *Service {
	s := &Service{
		store:             store,
		blobs:             opts.Blobs,
		publisher:         opts.Publisher,
		cache:             opts.Cache,
		atomicVideoWrites: opts.AtomicVideoWrites,
		portraitFallback:  opts.PortraitFallback,
	}

	if s.publisher == nil {
		s.publisher = events.NopPublisher{}
	}
	if s.portraitFallback == "" {
		s.portraitFallback = DefaultPortraitURL
	}

	return s
}

// changed invalidates the public cache and notifies admin dashboards.
func (s *Service) changed(ctx context.Context, eventType types.EventType, ref types.EntityRef) {
	if s.cache != nil {
		if err := s.cache.InvalidatePublic(ctx); err != nil {
			slog.Error("Failed to invalidate public cache",
				slog.String("event", string(eventType)),
				slog.String("error", err.Error()))
		}
	}

	s.publisher.Publish(eventType, ref)
}

// deleteBlob removes a managed object. Failures are logged and counted, never returned.
func (s *Service) deleteBlob(ctx context.Context, source string, rawURL *string) {
	if s.blobs == nil || rawURL == nil || *rawURL == "" {
		return
	}

	deleted, err := s.blobs.DeleteByURL(ctx, *rawURL)
	if err != nil {
		observability.BlobDeleteFailures.WithLabelValues(source).Inc()
		slog.Error("Failed to delete media object",
			slog.String("source", source),
			slog.String("url", *rawURL),
			slog.String("error", err.Error()))
		return
	}

	if deleted {
		slog.Debug("Deleted media object", slog.String("source", source), slog.String("url", *rawURL))
	}
}
