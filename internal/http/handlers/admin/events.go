package admin

import (
	"log/slog"
	"net/http"

	gws "github.com/gorilla/websocket"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/services/auth"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/websocket"
)

// The default origin check only admits same-host pages, which is where the admin panel is served from.
var upgrader = gws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Events streams content change events to the admin panel
// @Summary Live content events
// @Description Upgrades to a WebSocket that receives a message for every content change
// @Tags admin-events
// @Success 101 "Switching Protocols"
// @Failure 401 {object} response.Response "Unauthorized"
// @Security SessionCookie
// @Router /admin/events [get]
func (h *Handlers) Events() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(w, r) {
			return
		}

		id, _ := auth.IdentityFromContext(r.Context())

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("Failed to upgrade WebSocket connection", slog.String("error", err.Error()))
			return
		}

		websocket.NewClient(conn, id.Email, h.hub).Start()

		slog.Info("WebSocket connection established", slog.String("email", id.Email))
	}
}
