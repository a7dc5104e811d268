package admin

import (
	"errors"
	"net/http"

	mediaService "github.com/imhamzamoeen/umerfilms-sub001/internal/services/media"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/types/media"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/utils/request"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/utils/response"
)

// CreateUpload issues a presigned URL the admin panel uploads a file to directly
// @Summary Generate presigned upload URL
// @Description The returned public_url is what should be saved on the video, gallery item or setting
// @Tags admin-media
// @Accept json
// @Produce json
// @Param request body media.UploadURLRequest true "Upload URL request"
// @Success 200 {object} media.UploadInfo
// @Failure 400 {object} response.Response "Bad request"
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 500 {object} response.Response "Internal server error"
// @Security SessionCookie
// @Router /admin/uploads [post]
func (h *Handlers) CreateUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		var req media.UploadURLRequest
		if err := request.Decode(w, r, &req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		if err := request.Validate(req); err != nil {
			writeValidation(w, err)
			return
		}

		info, err := h.uploads.GeneratePresignedUploadURL(r.Context(), req.Folder, req.ContentType)
		if errors.Is(err, mediaService.ErrContentTypeNotAllowed) {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		if err != nil {
			writeError(w, "create upload", err, "folder", req.Folder)
			return
		}

		response.WriteJSON(w, http.StatusOK, info)
	}
}
