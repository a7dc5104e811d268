package admin

import (
	"net/http"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/cache"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/utils/response"
)

// CacheStats reports on the public read cache
// @Summary Cache statistics
// @Tags admin-cache
// @Produce json
// @Success 200 {object} cache.Stats
// @Failure 401 {object} response.Response "Unauthorized"
// @Security SessionCookie
// @Router /admin/cache [get]
func (h *Handlers) CacheStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		if h.cache == nil {
			response.WriteJSON(w, http.StatusOK, cache.Stats{PublicSample: []string{}})
			return
		}

		response.WriteJSON(w, http.StatusOK, h.cache.Stats(r.Context()))
	}
}

// ClearCache drops cached keys
// @Summary Clear the cache
// @Tags admin-cache
// @Produce json
// @Param type query string false "public (default), ratelimit or all"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Unknown cache type"
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 500 {object} response.Response "Internal server error"
// @Security SessionCookie
// @Router /admin/cache [delete]
func (h *Handlers) ClearCache() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		if h.cache == nil {
			response.WriteJSON(w, http.StatusOK, response.RequestOK("Cache disabled", map[string]int64{"deleted": 0}))
			return
		}

		kind := r.URL.Query().Get("type")
		if !cache.KnownKind(kind) {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(cache.ErrUnknownKind))
			return
		}

		deleted, err := h.cache.Clear(r.Context(), kind)
		if err != nil {
			writeError(w, "clear cache", err, "type", kind)
			return
		}

		response.WriteJSON(w, http.StatusOK, response.RequestOK("Cache cleared", map[string]int64{"deleted": deleted}))
	}
}
