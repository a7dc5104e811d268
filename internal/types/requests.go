package types

import "strings"

type CreateVideoRequest struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Slug         *string  `json:"slug" validate:"omitempty,max=200"`
	Description  *string  `json:"description" validate:"omitempty,max=5000"`
	ThumbnailURL *string  `json:"thumbnail_url" validate:"omitempty,max=2048"`
	VideoURL     *string  `json:"video_url" validate:"omitempty,max=2048"`
	Category     Category `json:"category" validate:"required,category"`
	Client       *string  `json:"client" validate:"omitempty,max=200"`
	Date         *string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Featured     bool     `json:"featured"`
	DisplayOrder int      `json:"display_order"`
	TagIDs       []string `json:"tagIds" validate:"omitempty,dive,required"`
}

// Normalize trims free-text fields before validation.
func (r *CreateVideoRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Category = Category(strings.TrimSpace(string(r.Category)))
	trimPtr(r.Slug)
	trimPtr(r.Client)
}

type UpdateVideoRequest struct {
	Title        *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Slug         *string   `json:"slug" validate:"omitempty,min=1,max=200"`
	Description  *string   `json:"description" validate:"omitempty,max=5000"`
	ThumbnailURL *string   `json:"thumbnail_url" validate:"omitempty,max=2048"`
	VideoURL     *string   `json:"video_url" validate:"omitempty,max=2048"`
	Category     *Category `json:"category" validate:"omitempty,category"`
	Client       *string   `json:"client" validate:"omitempty,max=200"`
	Date         *string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Featured     *bool     `json:"featured"`
	DisplayOrder *int      `json:"display_order"`
	TagIDs       *[]string `json:"tagIds" validate:"omitempty,dive,required"`
}

func (r *UpdateVideoRequest) Normalize() {
	trimPtr(r.Title)
	trimPtr(r.Slug)
	trimPtr(r.Client)
}

// Patch converts the request into a store-level partial update.
func (r UpdateVideoRequest) Patch() VideoPatch {
	return VideoPatch{
		Slug:         r.Slug,
		Title:        r.Title,
		Description:  r.Description,
		ThumbnailURL: r.ThumbnailURL,
		VideoURL:     r.VideoURL,
		Category:     r.Category,
		Client:       r.Client,
		Date:         r.Date,
		Featured:     r.Featured,
		DisplayOrder: r.DisplayOrder,
	}
}

type CreateTagRequest struct {
	Name  string  `json:"name" validate:"required,max=100"`
	Color *string `json:"color" validate:"omitempty,hexcolor"`
}

func (r *CreateTagRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	trimPtr(r.Color)
}

type UpdateSettingRequest struct {
	Key   string  `json:"key" validate:"required,max=100"`
	Value *string `json:"value" validate:"omitempty,max=5000"`
}

func (r *UpdateSettingRequest) Normalize() {
	r.Key = strings.TrimSpace(r.Key)
}

type CreateGalleryItemRequest struct {
	FileURL      string   `json:"file_url" validate:"required,max=2048"`
	FileType     FileType `json:"file_type" validate:"required,oneof=image video"`
	Title        *string  `json:"title" validate:"omitempty,max=200"`
	AltText      *string  `json:"alt_text" validate:"omitempty,max=500"`
	DisplayOrder int      `json:"display_order"`
}

func (r *CreateGalleryItemRequest) Normalize() {
	r.FileURL = strings.TrimSpace(r.FileURL)
	trimPtr(r.Title)
	trimPtr(r.AltText)
}

type UpdateGalleryItemRequest struct {
	Title        *string `json:"title" validate:"omitempty,max=200"`
	AltText      *string `json:"alt_text" validate:"omitempty,max=500"`
	DisplayOrder *int    `json:"display_order"`
}

func (r *UpdateGalleryItemRequest) Normalize() {
	trimPtr(r.Title)
	trimPtr(r.AltText)
}

func (r UpdateGalleryItemRequest) Patch() GalleryItemPatch {
	return GalleryItemPatch{
		Title:        r.Title,
		AltText:      r.AltText,
		DisplayOrder: r.DisplayOrder,
	}
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (r *ContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
