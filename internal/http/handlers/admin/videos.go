package admin

import (
	"net/http"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/utils/response"
)

// ListVideos returns every video in display order
// @Summary List videos
// @Tags admin-videos
// @Produce json
// @Success 200 {array} types.Video
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 500 {object} response.Response "Internal server error"
// @Security SessionCookie
// @Router /admin/videos [get]
func (h *Handlers) ListVideos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		videos, err := h.content.ListVideos(r.Context())
		if err != nil {
			writeError(w, "list videos", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, videos)
	}
}

// GetVideo returns one video with its tags
// @Summary Get a video
// @Tags admin-videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} types.Video
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 404 {object} response.Response "Video not found"
// @Failure 500 {object} response.Response "Internal server error"
// @Security SessionCookie
// @Router /admin/videos/{id} [get]
func (h *Handlers) GetVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		id := r.PathValue("id")
		video, err := h.content.GetVideo(r.Context(), id)
		if err != nil {
			writeError(w, "get video", err, "video_id", id)
			return
		}

		response.WriteJSON(w, http.StatusOK, video)
	}
}

// CreateVideo adds a video and optionally sets its tags
// @Summary Create a video
// @Description The slug is derived from the title when omitted and suffixed until unique
// @Tags admin-videos
// @Accept json
// @Produce json
// @Param video body types.CreateVideoRequest true "Video"
// @Success 201 {object} types.Video
// @Failure 400 {object} response.Response "Bad request"
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 409 {object} response.Response "Slug already in use"
// @Failure 500 {object} response.Response "Internal server error"
// @Security SessionCookie
// @Router /admin/videos [post]
func (h *Handlers) CreateVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		var req types.CreateVideoRequest
		if !bind(w, r, &req) {
			return
		}

		video, err := h.content.CreateVideo(r.Context(), req)
		if err != nil {
			writeError(w, "create video", err, "title", req.Title)
			return
		}

		response.WriteJSON(w, http.StatusCreated, video)
	}
}

// UpdateVideo applies a partial update
// @Summary Update a video
// @Description Omitted fields are left unchanged. tagIds, when present, replaces the tag set
// @Tags admin-videos
// @Accept json
// @Produce json
// @Param id path string true "Video ID"
// @Param video body types.UpdateVideoRequest true "Fields to change"
// @Success 200 {object} types.Video
// @Failure 400 {object} response.Response "Bad request"
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 404 {object} response.Response "Video not found"
// @Failure 409 {object} response.Response "Slug already in use"
// @Failure 500 {object} response.Response "Internal server error"
// @Security SessionCookie
// @Router /admin/videos/{id} [patch]
func (h *Handlers) UpdateVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		var req types.UpdateVideoRequest
		if !bind(w, r, &req) {
			return
		}

		id := r.PathValue("id")
		video, err := h.content.UpdateVideo(r.Context(), id, req)
		if err != nil {
			writeError(w, "update video", err, "video_id", id)
			return
		}

		response.WriteJSON(w, http.StatusOK, video)
	}
}

// DeleteVideo removes a video, its gallery and its managed media files
// @Summary Delete a video
// @Tags admin-videos
// @Param id path string true "Video ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 404 {object} response.Response "Video not found"
// @Failure 500 {object} response.Response "Internal server error"
// @Security SessionCookie
// @Router /admin/videos/{id} [delete]
func (h *Handlers) DeleteVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		id := r.PathValue("id")
		if err := h.content.DeleteVideo(r.Context(), id); err != nil {
			writeError(w, "delete video", err, "video_id", id)
			return
		}

		response.WriteJSON(w, http.StatusOK, response.Success())
	}
}

// GetVideoTags lists the tags attached to a video
// @Summary List a video's tags
// @Tags admin-videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {array} types.Tag
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 500 {object} response.Response "Internal server error"
// @Security SessionCookie
// @Router /admin/videos/{id}/tags [get]
func (h *Handlers) GetVideoTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		id := r.PathValue("id")
		tags, err := h.content.GetTagsForVideo(r.Context(), id)
		if err != nil {
			writeError(w, "get video tags", err, "video_id", id)
			return
		}

		response.WriteJSON(w, http.StatusOK, tags)
	}
}

// AddVideoTag attaches a tag to a video. Attaching twice is not an error.
// @Summary Attach a tag
// @Tags admin-videos
// @Param id path string true "Video ID"
// @Param tagId path string true "Tag ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 404 {object} response.Response "Video or tag not found"
// @Failure 500 {object} response.Response "Internal server error"
// @Security SessionCookie
// @Router /admin/videos/{id}/tags/{tagId} [put]
func (h *Handlers) AddVideoTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		videoID, tagID := r.PathValue("id"), r.PathValue("tagId")
		if err := h.content.AddTagToVideo(r.Context(), videoID, tagID); err != nil {
			writeError(w, "add video tag", err, "video_id", videoID, "tag_id", tagID)
			return
		}

		response.WriteJSON(w, http.StatusOK, response.Success())
	}
}

// RemoveVideoTag detaches a tag from a video
// @Summary Detach a tag
// @Tags admin-videos
// @Param id path string true "Video ID"
// @Param tagId path string true "Tag ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 500 {object} response.Response "Internal server error"
// @Security SessionCookie
// @Router /admin/videos/{id}/tags/{tagId} [delete]
func (h *Handlers) RemoveVideoTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		videoID, tagID := r.PathValue("id"), r.PathValue("tagId")
		if err := h.content.RemoveTagFromVideo(r.Context(), videoID, tagID); err != nil {
			writeError(w, "remove video tag", err, "video_id", videoID, "tag_id", tagID)
			return
		}

		response.WriteJSON(w, http.StatusOK, response.Success())
	}
}
