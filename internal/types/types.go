package types

import "time"

type Category string

const (
	CategoryCommercial Category = "Commercial"
	CategoryMusicVideo Category = "Music Video"
	CategoryWedding    Category = "Wedding"
	CategoryShortFilm  Category = "Short Film"
	CategoryPersonal   Category = "Personal"
)

// Categories lists every accepted video category in display order.
var Categories = []Category{
	CategoryCommercial,
	CategoryMusicVideo,
	CategoryWedding,
	CategoryShortFilm,
	CategoryPersonal,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypeVideo FileType = "video"
)

// DefaultTagColor is applied to tags created without a colour.
const DefaultTagColor = "#6B7280"

// PortraitSettingKey names the setting holding the portrait image URL.
const PortraitSettingKey = "portrait_url"

type Video struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	VideoURL     *string   `json:"video_url"`
	Category     Category  `json:"category"`
	Client       *string   `json:"client"`
	Date         *string   `json:"date"`
	Featured     bool      `json:"featured"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	// Tags is loaded on single-video reads and writes; list views leave it nil.
	Tags         []Tag     `json:"tags"`
}

// VideoPatch carries a partial update. Nil fields are left unchanged.
type VideoPatch struct {
	Slug         *string
	Title        *string
	Description  *string
	ThumbnailURL *string
	VideoURL     *string
	Category     *Category
	Client       *string
	Date         *string
	Featured     *bool
	DisplayOrder *int
}

// Empty reports whether the patch changes nothing.
func (p VideoPatch) Empty() bool {
	return p.Slug == nil && p.Title == nil && p.Description == nil && p.ThumbnailURL == nil &&
		p.VideoURL == nil && p.Category == nil && p.Client == nil && p.Date == nil &&
		p.Featured == nil && p.DisplayOrder == nil
}

// VideoFilter narrows the public listing.
type VideoFilter struct {
	Category *Category
	Featured *bool
}

type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

type VideoTag struct {
	VideoID string `json:"video_id"`
	TagID   string `json:"tag_id"`
}

type GalleryItem struct {
	ID           string    `json:"id"`
	VideoID      string    `json:"video_id"`
	FileURL      string    `json:"file_url"`
	FileType     FileType  `json:"file_type"`
	Title        *string   `json:"title"`
	AltText      *string   `json:"alt_text"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type GalleryItemPatch struct {
	Title        *string
	AltText      *string
	DisplayOrder *int
}

type SiteSetting struct {
	ID          string    `json:"id"`
	Key         string    `json:"key"`
	Value       *string   `json:"value"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VideoDetail is the public view of a single video.
type VideoDetail struct {
	Video   Video    `json:"video"`
	Tags    []Tag    `json:"tags"`
	Gallery []string `json:"gallery"`
}
