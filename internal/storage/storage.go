package storage

import (
	"context"
	"errors"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/types/users"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert or update violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate")
)

type Videos interface {
	ListVideos(ctx context.Context) ([]types.Video, error)
	FindVideos(ctx context.Context, filter types.VideoFilter) ([]types.Video, error)
	GetVideo(ctx context.Context, id string) (types.Video, error)
	GetVideoBySlug(ctx context.Context, slug string) (types.Video, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	CreateVideo(ctx context.Context, video types.Video) (types.Video, error)
	UpdateVideo(ctx context.Context, id string, patch types.VideoPatch) (types.Video, error)
	DeleteVideo(ctx context.Context, id string) error
}

type Tags interface {
	ListTags(ctx context.Context) ([]types.Tag, error)
	CreateTag(ctx context.Context, name, color string) (types.Tag, error)
	DeleteTag(ctx context.Context, id string) error
}

// VideoTags manages the video_tags join table.
type VideoTags interface {
	GetTagsForVideo(ctx context.Context, videoID string) ([]types.Tag, error)
	DeleteVideoTags(ctx context.Context, videoID string) error
	// InsertVideoTag returns ErrDuplicate when the association already exists.
	InsertVideoTag(ctx context.Context, videoID, tagID string) error
	DeleteVideoTag(ctx context.Context, videoID, tagID string) error
}

type Gallery interface {
	ListGalleryItems(ctx context.Context, videoID string) ([]types.GalleryItem, error)
	ListGalleryURLs(ctx context.Context, videoID string) ([]string, error)
	GetGalleryItem(ctx context.Context, id string) (types.GalleryItem, error)
	CreateGalleryItem(ctx context.Context, item types.GalleryItem) (types.GalleryItem, error)
	UpdateGalleryItem(ctx context.Context, id string, patch types.GalleryItemPatch) (types.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, id string) error
}

type Settings interface {
	GetSetting(ctx context.Context, key string) (*string, error)
	ListSettings(ctx context.Context) ([]types.SiteSetting, error)
	UpsertSetting(ctx context.Context, key string, value *string) error
}

type Users interface {
	CreateUser(ctx context.Context, email, passwordHash string) (string, error)
	GetUserByEmail(ctx context.Context, email string) (users.User, error)
}

// Storage is the relational store behind the site.
type Storage interface {
	Videos
	Tags
	VideoTags
	Gallery
	Settings
	Users

	// MediaReferences returns every blob URL referenced by a video, gallery item or setting.
	MediaReferences(ctx context.Context) ([]string, error)

	// WithTransaction runs fn against a transactional view of the store.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithTransaction(ctx context.Context, fn func(tx Storage) error) error

	Ping(ctx context.Context) error
	Close() error
}
