package middleware

import (
	"net/http"
	"strings"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/services/auth"
)

const (
	AdminHome  = "/admin"
	AdminLogin = "/admin/login"
)

// AdminPages guards the admin panel pages. Anyone but the admin is sent to the
// login page and the admin is sent past it. The API handlers repeat the check.
func AdminPages(gate *auth.Gate, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		isAdmin := gate.IsAdmin(r.Context())
		onLogin := r.URL.Path == AdminLogin || strings.HasPrefix(r.URL.Path, AdminLogin+"/")

		switch {
		case onLogin && isAdmin:
			http.Redirect(w, r, AdminHome, http.StatusFound)
		case !onLogin && !isAdmin:
			http.Redirect(w, r, AdminLogin, http.StatusFound)
		default:
			next.ServeHTTP(w, r)
		}
	})
}
