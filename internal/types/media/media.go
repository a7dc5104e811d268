package media

// UploadURLRequest asks for a presigned upload into one of the managed folders.
type UploadURLRequest struct {
	ContentType string `json:"content_type" validate:"required"`
	Folder      string `json:"folder" validate:"omitempty,oneof=thumbnails videos gallery site"`
}

// UploadInfo describes a presigned upload slot in the media bucket.
type UploadInfo struct {
	ObjectKey   string `json:"object_key"`
	UploadURL   string `json:"upload_url"`
	PublicURL   string `json:"public_url"`
	ExpiresAt   int64  `json:"expires_at"`
	MaxFileSize int64  `json:"max_file_size"`
	ContentType string `json:"content_type"`
}
