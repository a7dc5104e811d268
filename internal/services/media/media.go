package media

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/config"
	mediaTypes "github.com/imhamzamoeen/umerfilms-sub001/internal/types/media"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Folders are the managed prefixes uploads are written under.
var Folders = []string{"thumbnails", "videos", "gallery", "site"}

const defaultFolder = "gallery"

// ErrContentTypeNotAllowed rejects uploads outside media.allowed_mime_types.
var ErrContentTypeNotAllowed = errors.New("content type is not allowed")

var knownExtensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"video/mp4":       ".mp4",
	"video/quicktime": ".mov",
	"video/webm":      ".webm",
}

// ObjectInfo is the part of a stored object the sweeper looks at.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

type Service struct {
	client     *minio.Client
	bucketName string
	publicBase string
	config     *config.Media
	now        func() time.Time
}

// NewService creates the MinIO client and makes sure the bucket exists.
func NewService(cfg *config.Config) (*Service, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKeyID, cfg.MinIO.SecretAccessKey, ""),
		Secure: cfg.MinIO.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	service := newService(client, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := service.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return service, nil
}

func newService(client *minio.Client, cfg *config.Config) *Service {
	base := strings.TrimRight(cfg.MinIO.PublicBaseURL, "/")
	if base == "" {
		scheme := "http"
		if cfg.MinIO.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, cfg.MinIO.Endpoint, cfg.MinIO.BucketName)
	}

	return &Service{
		client:     client,
		bucketName: cfg.MinIO.BucketName,
		publicBase: base,
		config:     &cfg.Media,
		now:        time.Now,
	}
}

func (s *Service) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Ping checks that the bucket is reachable.
func (s *Service) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucketName)
	return err
}

func (s *Service) ValidateContentType(contentType string) bool {
	for _, allowed := range s.config.AllowedMimeTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}

// GenerateObjectKey returns folder/yyyy/mm/<uuid><ext>.
func (s *Service) GenerateObjectKey(folder, contentType string) string {
	if folder == "" {
		folder = defaultFolder
	}

	ext, ok := knownExtensions[contentType]
	if !ok {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}

	now := s.now().UTC()
	return fmt.Sprintf("%s/%04d/%02d/%s%s", folder, now.Year(), int(now.Month()), uuid.New().String(), ext)
}

// GeneratePresignedUploadURL creates a presigned PUT for a new object in folder.
func (s *Service) GeneratePresignedUploadURL(ctx context.Context, folder, contentType string) (*mediaTypes.UploadInfo, error) {
	if !s.ValidateContentType(contentType) {
		return nil, fmt.Errorf("%w: %s", ErrContentTypeNotAllowed, contentType)
	}

	objectKey := s.GenerateObjectKey(folder, contentType)
	expiry := time.Duration(s.config.PresignedURLTTL) * time.Second

	presignedURL, err := s.client.PresignedPutObject(ctx, s.bucketName, objectKey, expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return &mediaTypes.UploadInfo{
		ObjectKey:   objectKey,
		UploadURL:   presignedURL.String(),
		PublicURL:   s.PublicURL(objectKey),
		ExpiresAt:   s.now().Add(expiry).Unix(),
		MaxFileSize: s.config.MaxFileSize,
		ContentType: contentType,
	}, nil
}

// PublicURL is the address an object is served from.
func (s *Service) PublicURL(objectKey string) string {
	return s.publicBase + "/" + objectKey
}

// ObjectKeyFromURL reports the object key behind rawURL when it points into the
// managed bucket.
func (s *Service) ObjectKeyFromURL(rawURL string) (string, bool) {
	prefix := s.publicBase + "/"
	if rawURL == "" || !strings.HasPrefix(rawURL, prefix) {
		return "", false
	}

	key := strings.TrimPrefix(rawURL, prefix)
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}

	unescaped, err := url.PathUnescape(key)
	if err != nil {
		return "", false
	}

	key = path.Clean(unescaped)
	if key == "." || key == "/" || strings.HasPrefix(key, "../") || key == ".." {
		return "", false
	}

	return key, true
}

func (s *Service) IsManagedURL(rawURL string) bool {
	_, ok := s.ObjectKeyFromURL(rawURL)
	return ok
}

// DeleteByURL removes the object behind rawURL. Empty and foreign URLs are
// skipped and reported as not deleted.
func (s *Service) DeleteByURL(ctx context.Context, rawURL string) (bool, error) {
	key, ok := s.ObjectKeyFromURL(rawURL)
	if !ok {
		return false, nil
	}

	if err := s.DeleteObject(ctx, key); err != nil {
		return false, err
	}

	return true, nil
}

func (s *Service) DeleteObject(ctx context.Context, objectKey string) error {
	return s.client.RemoveObject(ctx, s.bucketName, objectKey, minio.RemoveObjectOptions{})
}

// ListObjects lists every object under prefix.
func (s *Service) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var objects []ObjectInfo

	objectsCh := s.client.ListObjects(ctx, s.bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	for object := range objectsCh {
		if object.Err != nil {
			return nil, object.Err
		}
		objects = append(objects, ObjectInfo{
			Key:          object.Key,
			Size:         object.Size,
			LastModified: object.LastModified,
		})
	}

	return objects, nil
}
