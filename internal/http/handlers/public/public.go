// Package public serves the read API behind the portfolio site and its contact form.
package public

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/cache"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/observability"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/services/content"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/storage"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/utils/request"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/utils/response"
)

// Mailer delivers contact form submissions.
type Mailer interface {
	Deliver(ctx context.Context, req types.ContactRequest) error
}

type Handlers struct {
	reader cache.Source
	mailer Mailer
}

func NewHandlers(reader cache.Source, mailer Mailer) *Handlers {
	return &Handlers{
		reader: reader,
		mailer: mailer,
	}
}

// Register mounts the public API on mux. wrap is applied to every route
// (CORS); throttleContact additionally wraps the contact form.
func (h *Handlers) Register(mux *http.ServeMux, wrap, throttleContact func(http.Handler) http.Handler) {
	handle := func(pattern string, handler http.Handler) {
		mux.Handle(pattern, observability.Instrument(pattern, wrap(handler)))
	}

	handle("GET /api/videos", h.ListVideos())
	handle("GET /api/videos/{slug}", h.GetVideo())
	handle("GET /api/tags", h.ListTags())
	handle("GET /api/settings/portrait", h.Portrait())
	handle("POST /api/contact", throttleContact(h.Contact()))
	// CORS preflight requests are answered by wrap.
	handle("OPTIONS /api/", http.NotFoundHandler())
}

var errInternal = errors.New("internal server error")

// ListVideos returns the published portfolio
// @Summary List videos
// @Tags public
// @Produce json
// @Param category query string false "Commercial, Music Video, Wedding, Short Film or Personal"
// @Param featured query bool false "Only featured videos when true"
// @Success 200 {array} types.Video
// @Failure 400 {object} response.Response "Bad request"
// @Failure 500 {object} response.Response "Internal server error"
// @Router /videos [get]
func (h *Handlers) ListVideos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		videos, err := h.reader.FindVideos(r.Context(), filter)
		if err != nil {
			var ve *content.ValidationError
			if errors.As(err, &ve) {
				response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(ve))
				return
			}
			slog.Error("Failed to list videos", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errInternal))
			return
		}
		if videos == nil {
			videos = []types.Video{}
		}

		response.WriteJSON(w, http.StatusOK, videos)
	}
}

func parseFilter(r *http.Request) (types.VideoFilter, error) {
	var filter types.VideoFilter
	query := r.URL.Query()

	if raw := query.Get("category"); raw != "" {
		category := types.Category(raw)
		if !category.Valid() {
			return filter, errors.New("category is not a known category")
		}
		filter.Category = &category
	}

	if raw := query.Get("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, errors.New("featured must be true or false")
		}
		filter.Featured = &featured
	}

	return filter, nil
}

// GetVideo returns one video with its tags and gallery
// @Summary Get a video by slug
// @Tags public
// @Produce json
// @Param slug path string true "Video slug"
// @Success 200 {object} types.VideoDetail
// @Failure 404 {object} response.Response "Video not found"
// @Failure 500 {object} response.Response "Internal server error"
// @Router /videos/{slug} [get]
func (h *Handlers) GetVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := r.PathValue("slug")

		detail, err := h.reader.GetVideoDetail(r.Context(), slug)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.GeneralError(errors.New("video not found")))
			return
		}
		if err != nil {
			slog.Error("Failed to get video", slog.String("slug", slug), slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errInternal))
			return
		}
		if detail.Tags == nil {
			detail.Tags = []types.Tag{}
		}
		if detail.Gallery == nil {
			detail.Gallery = []string{}
		}

		response.WriteJSON(w, http.StatusOK, detail)
	}
}

// ListTags returns every tag
// @Summary List tags
// @Tags public
// @Produce json
// @Success 200 {array} types.Tag
// @Failure 500 {object} response.Response "Internal server error"
// @Router /tags [get]
func (h *Handlers) ListTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.reader.ListTags(r.Context())
		if err != nil {
			slog.Error("Failed to list tags", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errInternal))
			return
		}
		if tags == nil {
			tags = []types.Tag{}
		}

		response.WriteJSON(w, http.StatusOK, tags)
	}
}

// Portrait returns the about-page portrait URL, never failing
// @Summary Portrait image URL
// @Tags public
// @Produce json
// @Success 200 {object} map[string]string
// @Router /settings/portrait [get]
func (h *Handlers) Portrait() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, err := h.reader.PortraitURL(r.Context())
		if err != nil {
			slog.Error("Failed to read portrait, using fallback", slog.String("error", err.Error()))
		}

		response.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
	}
}

// Contact forwards a visitor's message to the site owner
// @Summary Send a contact message
// @Tags public
// @Accept json
// @Produce json
// @Param message body types.ContactRequest true "Message"
// @Success 202 {object} map[string]bool
// @Failure 400 {object} response.Response "Bad request"
// @Failure 429 {object} response.Response "Too many messages"
// @Failure 500 {object} response.Response "Internal server error"
// @Router /contact [post]
func (h *Handlers) Contact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ContactRequest
		if err := request.Decode(w, r, &req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		req.Normalize()

		if err := request.Validate(req); err != nil {
			var ve validator.ValidationErrors
			if errors.As(err, &ve) {
				response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(ve))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := h.mailer.Deliver(r.Context(), req); err != nil {
			slog.Error("Failed to deliver contact message", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errors.New("message could not be sent")))
			return
		}

		response.WriteJSON(w, http.StatusAccepted, response.Success())
	}
}
