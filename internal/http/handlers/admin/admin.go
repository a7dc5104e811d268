// Package admin serves the admin panel API. Every handler checks the gate
// before touching a store.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/cache"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/http/middleware"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/services/auth"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/services/content"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/storage"
	mediaTypes "github.com/imhamzamoeen/umerfilms-sub001/internal/types/media"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/utils/request"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/utils/response"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/websocket"
)

// Uploader hands out presigned upload slots.
type Uploader interface {
	GeneratePresignedUploadURL(ctx context.Context, folder, contentType string) (*mediaTypes.UploadInfo, error)
}

// CacheAdmin reports on and clears the Redis cache.
type CacheAdmin interface {
	Stats(ctx context.Context) cache.Stats
	Clear(ctx context.Context, kind string) (int64, error)
}

// Authenticator checks admin credentials.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, time.Time, error)
}

type Handlers struct {
	gate     *auth.Gate
	content  *content.Service
	uploads  Uploader
	cache    CacheAdmin
	sessions Authenticator
	cookies  middleware.Cookies
	hub      *websocket.Hub
}

type Deps struct {
	Gate     *auth.Gate
	Content  *content.Service
	Uploads  Uploader
	Cache    CacheAdmin // nil when Redis is disabled
	Sessions Authenticator
	Cookies  middleware.Cookies
	Hub      *websocket.Hub
}

func NewHandlers(deps Deps) *Handlers {
	return &Handlers{
		gate:     deps.Gate,
		content:  deps.Content,
		uploads:  deps.Uploads,
		cache:    deps.Cache,
		sessions: deps.Sessions,
		cookies:  deps.Cookies,
		hub:      deps.Hub,
	}
}

// authorize writes 401 and returns false unless the caller is the admin.
func (h *Handlers) authorize(w http.ResponseWriter, r *http.Request) bool {
	if h.gate.IsAdmin(r.Context()) {
		return true
	}
	response.Unauthorized(w)
	return false
}

type normalizer interface {
	Normalize()
}

// bind decodes, normalizes and validates the request body into dst.
func bind(w http.ResponseWriter, r *http.Request, dst normalizer) bool {
	if err := request.Decode(w, r, dst); err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return false
	}

	dst.Normalize()

	if err := request.Validate(dst); err != nil {
		writeValidation(w, err)
		return false
	}

	return true
}

func writeValidation(w http.ResponseWriter, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(ve))
		return
	}
	response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
}

var errInternal = errors.New("internal server error")

// writeError maps service and store errors onto status codes. Anything
// unexpected is logged and answered with a generic 500.
func writeError(w http.ResponseWriter, op string, err error, attrs ...any) {
	var ve *content.ValidationError

	switch {
	case errors.As(err, &ve):
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(ve))
	case errors.Is(err, storage.ErrNotFound):
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(storage.ErrNotFound))
	case errors.Is(err, content.ErrConflict):
		response.WriteJSON(w, http.StatusConflict, response.GeneralError(err))
	default:
		slog.Error("Admin operation failed",
			append([]any{slog.String("op", op), slog.String("error", err.Error())}, attrs...)...)
		response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errInternal))
	}
}
