package admin

import (
	"net/http"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/observability"
)

// Register mounts the admin API on mux. throttleLogin wraps the login handler.
func (h *Handlers) Register(mux *http.ServeMux, throttleLogin func(http.Handler) http.Handler) {
	handle := func(pattern string, handler http.Handler) {
		mux.Handle(pattern, observability.Instrument(pattern, handler))
	}

	handle("POST /api/admin/login", throttleLogin(h.Login()))
	handle("POST /api/admin/logout", h.Logout())
	handle("GET /api/admin/session", h.Session())

	handle("GET /api/admin/settings", h.ListSettings())
	handle("PUT /api/admin/settings", h.UpdateSetting())

	handle("GET /api/admin/tags", h.ListTags())
	handle("POST /api/admin/tags", h.CreateTag())
	handle("DELETE /api/admin/tags/{id}", h.DeleteTag())

	handle("GET /api/admin/videos", h.ListVideos())
	handle("POST /api/admin/videos", h.CreateVideo())
	handle("GET /api/admin/videos/{id}", h.GetVideo())
	handle("PATCH /api/admin/videos/{id}", h.UpdateVideo())
	handle("DELETE /api/admin/videos/{id}", h.DeleteVideo())

	handle("GET /api/admin/videos/{id}/tags", h.GetVideoTags())
	handle("PUT /api/admin/videos/{id}/tags/{tagId}", h.AddVideoTag())
	handle("DELETE /api/admin/videos/{id}/tags/{tagId}", h.RemoveVideoTag())

	handle("GET /api/admin/videos/{id}/gallery", h.ListGallery())
	handle("POST /api/admin/videos/{id}/gallery", h.CreateGalleryItem())
	handle("PATCH /api/admin/gallery/{id}", h.UpdateGalleryItem())
	handle("DELETE /api/admin/gallery/{id}", h.DeleteGalleryItem())

	handle("POST /api/admin/uploads", h.CreateUpload())

	handle("GET /api/admin/cache", h.CacheStats())
	handle("DELETE /api/admin/cache", h.ClearCache())

	handle("GET /api/admin/events", h.Events())
}
