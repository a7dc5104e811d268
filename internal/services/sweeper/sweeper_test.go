package sweeper

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/config"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/services/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://cdn.umerfilms.com/media/"

var now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

type fakeObjects struct {
	objects   map[string][]media.ObjectInfo
	deleted   []string
	deleteErr map[string]error
}

func (f *fakeObjects) ListObjects(ctx context.Context, prefix string) ([]media.ObjectInfo, error) {
	return f.objects[prefix], nil
}

func (f *fakeObjects) DeleteObject(ctx context.Context, key string) error {
	if err := f.deleteErr[key]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeObjects) ObjectKeyFromURL(rawURL string) (string, bool) {
	if !strings.HasPrefix(rawURL, base) {
		return "", false
	}
	return strings.TrimPrefix(rawURL, base), true
}

type fakeRefs struct {
	urls []string
	err  error
}

func (f fakeRefs) MediaReferences(ctx context.Context) ([]string, error) {
	return f.urls, f.err
}

func newSweeper(objects Objects, refs References, dryRun bool) *Sweeper {
	s := New(objects, refs, config.Sweeper{Interval: time.Hour, GracePeriod: 24 * time.Hour, DryRun: dryRun})
	s.now = func() time.Time { return now }
	return s
}

func bucket() *fakeObjects {
	old := now.Add(-48 * time.Hour)
	return &fakeObjects{
		objects: map[string][]media.ObjectInfo{
			"thumbnails/": {
				{Key: "thumbnails/2024/04/kept.jpg", LastModified: old},
				{Key: "thumbnails/2024/04/orphan.jpg", LastModified: old},
			},
			"gallery/": {
				{Key: "gallery/2024/05/fresh.jpg", LastModified: now.Add(-time.Hour)},
				{Key: "gallery/2024/04/orphan.png", LastModified: old},
			},
		},
		deleteErr: map[string]error{},
	}
}

func TestRunOnceRemovesOldUnreferencedObjects(t *testing.T) {
	objects := bucket()
	refs := fakeRefs{urls: []string{base + "thumbnails/2024/04/kept.jpg", "https://vimeo.com/123"}}

	result, err := newSweeper(objects, refs, false).RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Result{Scanned: 4, Orphaned: 2, Deleted: 2}, result)
	assert.ElementsMatch(t, []string{"thumbnails/2024/04/orphan.jpg", "gallery/2024/04/orphan.png"}, objects.deleted)
}

func TestRunOnceDryRunDeletesNothing(t *testing.T) {
	objects := bucket()

	result, err := newSweeper(objects, fakeRefs{}, true).RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Orphaned)
	assert.Zero(t, result.Deleted)
	assert.Empty(t, objects.deleted)
}

func TestRunOnceCountsDeleteFailures(t *testing.T) {
	objects := bucket()
	objects.deleteErr["gallery/2024/04/orphan.png"] = errors.New("access denied")

	result, err := newSweeper(objects, fakeRefs{urls: []string{base + "thumbnails/2024/04/kept.jpg"}}, false).RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Deleted)
	assert.Equal(t, 1, result.Failed)
}

func TestRunOnceStopsWhenReferencesFail(t *testing.T) {
	objects := bucket()

	_, err := newSweeper(objects, fakeRefs{err: errors.New("db down")}, false).RunOnce(context.Background())
	assert.Error(t, err)
	assert.Empty(t, objects.deleted)
}
