package admin

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/services/auth"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/types/users"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/utils/request"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/utils/response"
)

// Login handles admin authentication
// @Summary Sign in
// @Description Checks the credentials, sets the session cookie and returns the token
// @Tags admin-session
// @Accept json
// @Produce json
// @Param credentials body users.LoginRequest true "Email and password"
// @Success 200 {object} users.LoginResponse
// @Failure 400 {object} response.Response "Bad request"
// @Failure 401 {object} response.Response "Invalid email or password"
// @Failure 429 {object} response.Response "Too many attempts"
// @Failure 500 {object} response.Response "Internal server error"
// @Router /admin/login [post]
func (h *Handlers) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req users.LoginRequest
		if err := request.Decode(w, r, &req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		if err := request.Validate(req); err != nil {
			writeValidation(w, err)
			return
		}

		token, expiresAt, err := h.sessions.Login(r.Context(), req.Email, req.Password)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Warn("Failed admin login", slog.String("email", req.Email))
			response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(auth.ErrInvalidCredentials))
			return
		}
		if err != nil {
			writeError(w, "login", err)
			return
		}

		h.cookies.Set(w, token, expiresAt)

		response.WriteJSON(w, http.StatusOK, users.LoginResponse{
			Token:     token,
			ExpiresAt: expiresAt.Unix(),
		})
	}
}

// Logout clears the session cookie
// @Summary Sign out
// @Tags admin-session
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /admin/logout [post]
func (h *Handlers) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.cookies.Clear(w)
		response.WriteJSON(w, http.StatusOK, response.Success())
	}
}

// Session describes the current caller
// @Summary Current session
// @Tags admin-session
// @Produce json
// @Success 200 {object} users.SessionInfo
// @Failure 401 {object} response.Response "Unauthorized"
// @Router /admin/session [get]
func (h *Handlers) Session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			response.Unauthorized(w)
			return
		}

		response.WriteJSON(w, http.StatusOK, users.SessionInfo{
			Email:   id.Email,
			IsAdmin: h.gate.IsAdmin(r.Context()),
		})
	}
}
