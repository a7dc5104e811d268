package admin

import (
	"net/http"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/utils/response"
)

// ListTags returns every tag sorted by name
// @Summary List tags
// @Tags admin-tags
// @Produce json
// @Success 200 {array} types.Tag
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 500 {object} response.Response "Internal server error"
// @Security SessionCookie
// @Router /admin/tags [get]
func (h *Handlers) ListTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		tags, err := h.content.ListTags(r.Context())
		if err != nil {
			writeError(w, "list tags", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, tags)
	}
}

// CreateTag adds a tag
// @Summary Create a tag
// @Description Colour defaults to a neutral grey when omitted
// @Tags admin-tags
// @Accept json
// @Produce json
// @Param tag body types.CreateTagRequest true "Tag"
// @Success 201 {object} types.Tag
// @Failure 400 {object} response.Response "Bad request"
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 409 {object} response.Response "Tag name already exists"
// @Failure 500 {object} response.Response "Internal server error"
// @Security SessionCookie
// @Router /admin/tags [post]
func (h *Handlers) CreateTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		var req types.CreateTagRequest
		if !bind(w, r, &req) {
			return
		}

		tag, err := h.content.CreateTag(r.Context(), req)
		if err != nil {
			writeError(w, "create tag", err, "name", req.Name)
			return
		}

		response.WriteJSON(w, http.StatusCreated, tag)
	}
}

// DeleteTag removes a tag and its video associations
// @Summary Delete a tag
// @Tags admin-tags
// @Param id path string true "Tag ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 404 {object} response.Response "Tag not found"
// @Failure 500 {object} response.Response "Internal server error"
// @Security SessionCookie
// @Router /admin/tags/{id} [delete]
func (h *Handlers) DeleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		id := r.PathValue("id")
		if err := h.content.DeleteTag(r.Context(), id); err != nil {
			writeError(w, "delete tag", err, "tag_id", id)
			return
		}

		response.WriteJSON(w, http.StatusOK, response.Success())
	}
}
