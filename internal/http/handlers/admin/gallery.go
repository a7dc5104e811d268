package admin

import (
	"net/http"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/utils/response"
)

// ListGallery returns a video's gallery items
// @Summary List gallery items
// @Tags admin-gallery
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {array} types.GalleryItem
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 500 {object} response.Response "Internal server error"
// @Security SessionCookie
// @Router /admin/videos/{id}/gallery [get]
func (h *Handlers) ListGallery() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		videoID := r.PathValue("id")
		items, err := h.content.ListGalleryItems(r.Context(), videoID)
		if err != nil {
			writeError(w, "list gallery", err, "video_id", videoID)
			return
		}

		response.WriteJSON(w, http.StatusOK, items)
	}
}

// CreateGalleryItem adds an image or clip to a video's gallery
// @Summary Create a gallery item
// @Tags admin-gallery
// @Accept json
// @Produce json
// @Param id path string true "Video ID"
// @Param item body types.CreateGalleryItemRequest true "Gallery item"
// @Success 201 {object} types.GalleryItem
// @Failure 400 {object} response.Response "Bad request"
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 404 {object} response.Response "Video not found"
// @Failure 500 {object} response.Response "Internal server error"
// @Security SessionCookie
// @Router /admin/videos/{id}/gallery [post]
func (h *Handlers) CreateGalleryItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		var req types.CreateGalleryItemRequest
		if !bind(w, r, &req) {
			return
		}

		videoID := r.PathValue("id")
		item, err := h.content.CreateGalleryItem(r.Context(), videoID, req)
		if err != nil {
			writeError(w, "create gallery item", err, "video_id", videoID)
			return
		}

		response.WriteJSON(w, http.StatusCreated, item)
	}
}

// UpdateGalleryItem changes a gallery item's caption or position
// @Summary Update a gallery item
// @Tags admin-gallery
// @Accept json
// @Produce json
// @Param id path string true "Gallery item ID"
// @Param item body types.UpdateGalleryItemRequest true "Fields to change"
// @Success 200 {object} types.GalleryItem
// @Failure 400 {object} response.Response "Bad request"
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 404 {object} response.Response "Gallery item not found"
// @Failure 500 {object} response.Response "Internal server error"
// @Security SessionCookie
// @Router /admin/gallery/{id} [patch]
func (h *Handlers) UpdateGalleryItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		var req types.UpdateGalleryItemRequest
		if !bind(w, r, &req) {
			return
		}

		id := r.PathValue("id")
		item, err := h.content.UpdateGalleryItem(r.Context(), id, req)
		if err != nil {
			writeError(w, "update gallery item", err, "item_id", id)
			return
		}

		response.WriteJSON(w, http.StatusOK, item)
	}
}

// DeleteGalleryItem removes a gallery item and its managed file
// @Summary Delete a gallery item
// @Tags admin-gallery
// @Param id path string true "Gallery item ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 404 {object} response.Response "Gallery item not found"
// @Failure 500 {object} response.Response "Internal server error"
// @Security SessionCookie
// @Router /admin/gallery/{id} [delete]
func (h *Handlers) DeleteGalleryItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		id := r.PathValue("id")
		if err := h.content.DeleteGalleryItem(r.Context(), id); err != nil {
			writeError(w, "delete gallery item", err, "item_id", id)
			return
		}

		response.WriteJSON(w, http.StatusOK, response.Success())
	}
}
