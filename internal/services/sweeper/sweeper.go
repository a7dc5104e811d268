package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/config"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/observability"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/services/media"
)

// Objects is the part of the media service the sweeper needs.
type Objects interface {
	ListObjects(ctx context.Context, prefix string) ([]media.ObjectInfo, error)
	DeleteObject(ctx context.Context, objectKey string) error
	ObjectKeyFromURL(rawURL string) (string, bool)
}

// References lists every media URL the site still points at.
type References interface {
	MediaReferences(ctx context.Context) ([]string, error)
}

// Result summarises one sweep.
type Result struct {
	Scanned  int
	Orphaned int
	Deleted  int
	Failed   int
}

// Sweeper removes bucket objects under the managed folders that nothing references
// and that are older than the grace period.
type Sweeper struct {
	objects  Objects
	refs     References
	interval time.Duration
	grace    time.Duration
	dryRun   bool
	now      func() time.Time
}

func New(objects Objects, refs References, cfg config.Sweeper) *Sweeper {
	return &Sweeper{
		objects:  objects,
		refs:     refs,
		interval: cfg.Interval,
		grace:    cfg.GracePeriod,
		dryRun:   cfg.DryRun,
		now:      time.Now,
	}
}

// Start sweeps once immediately and then on every tick until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("Media sweeper started",
		slog.String("interval", s.interval.String()),
		slog.String("grace_period", s.grace.String()),
		slog.Bool("dry_run", s.dryRun))

	s.runLogged(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Media sweeper shutting down")
			return
		case <-ticker.C:
			s.runLogged(ctx)
		}
	}
}

func (s *Sweeper) runLogged(ctx context.Context) {
	startTime := time.Now()

	result, err := s.RunOnce(ctx)
	if err != nil {
		slog.Error("Media sweep failed",
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(startTime).Milliseconds()))
		return
	}

	slog.Info("Completed media sweep",
		slog.Int("scanned", result.Scanned),
		slog.Int("orphaned", result.Orphaned),
		slog.Int("deleted", result.Deleted),
		slog.Int("failed", result.Failed),
		slog.Int64("duration_ms", time.Since(startTime).Milliseconds()))
}

// RunOnce performs a single sweep.
func (s *Sweeper) RunOnce(ctx context.Context) (Result, error) {
	var result Result

	urls, err := s.refs.MediaReferences(ctx)
	if err != nil {
		return result, fmt.Errorf("list media references: %w", err)
	}

	referenced := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if key, ok := s.objects.ObjectKeyFromURL(u); ok {
			referenced[key] = struct{}{}
		}
	}

	cutoff := s.now().Add(-s.grace)

	for _, folder := range media.Folders {
		objects, err := s.objects.ListObjects(ctx, folder+"/")
		if err != nil {
			return result, fmt.Errorf("list objects in %s: %w", folder, err)
		}

		for _, object := range objects {
			result.Scanned++

			if _, ok := referenced[object.Key]; ok {
				continue
			}
			// Fresh objects may belong to an upload whose row is not saved yet.
			if object.LastModified.After(cutoff) {
				continue
			}
			result.Orphaned++

			if s.dryRun {
				slog.Info("Would remove orphaned object", slog.String("key", object.Key))
				continue
			}

			if err := s.objects.DeleteObject(ctx, object.Key); err != nil {
				result.Failed++
				observability.BlobDeleteFailures.WithLabelValues("sweeper").Inc()
				slog.Warn("Failed to remove orphaned object",
					slog.String("key", object.Key),
					slog.String("error", err.Error()))
				continue
			}

			result.Deleted++
			observability.SweptObjects.Inc()
		}
	}

	return result, nil
}
