package admin

import (
	"net/http"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/types"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/utils/response"
)

// ListSettings returns every site setting
// @Summary List site settings
// @Tags admin-settings
// @Produce json
// @Success 200 {array} types.SiteSetting
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 500 {object} response.Response "Internal server error"
// @Security SessionCookie
// @Router /admin/settings [get]
func (h *Handlers) ListSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		settings, err := h.content.ListSettings(r.Context())
		if err != nil {
			writeError(w, "list settings", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, settings)
	}
}

// UpdateSetting upserts one site setting
// @Summary Update a site setting
// @Tags admin-settings
// @Accept json
// @Produce json
// @Param setting body types.UpdateSettingRequest true "Key and value"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} response.Response "Bad request"
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 500 {object} response.Response "Internal server error"
// @Security SessionCookie
// @Router /admin/settings [put]
func (h *Handlers) UpdateSetting() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		var req types.UpdateSettingRequest
		if !bind(w, r, &req) {
			return
		}

		if err := h.content.UpdateSetting(r.Context(), req); err != nil {
			writeError(w, "update setting", err, "key", req.Key)
			return
		}

		response.WriteJSON(w, http.StatusOK, response.Success())
	}
}
