// Package router assembles the service's HTTP handler.
package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/http/handlers/admin"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/http/handlers/public"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/http/middleware"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/observability"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/services/auth"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/utils/response"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/imhamzamoeen/umerfilms-sub001/docs"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	Admin    *admin.Handlers
	Public   *public.Handlers
	Gate     *auth.Gate
	Sessions middleware.SessionResolver
	Cookies  middleware.Cookies

	RateLimit      *middleware.RateLimit
	LoginLimiter   middleware.Limiter // nil disables throttling
	ContactLimiter middleware.Limiter

	AllowedOrigins []string
	AdminDir       string

	// A Storage failure fails /health; Extras only degrade it.
	Storage Pinger
	Extras  map[string]Pinger
}

func New(cfg Config) http.Handler {
	mux := http.NewServeMux()

	publicCORS := cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         300,
	})

	throttleLogin := func(next http.Handler) http.Handler {
		return cfg.RateLimit.Limit(cfg.LoginLimiter, "login", next)
	}
	throttleContact := func(next http.Handler) http.Handler {
		return cfg.RateLimit.Limit(cfg.ContactLimiter, "contact", next)
	}

	cfg.Public.Register(mux, publicCORS, throttleContact)
	cfg.Admin.Register(mux, throttleLogin)

	pages := middleware.AdminPages(cfg.Gate, http.StripPrefix("/admin", http.FileServer(http.Dir(cfg.AdminDir))))
	mux.Handle("GET /admin", observability.Instrument("GET /admin", pages))
	mux.Handle("GET /admin/", observability.Instrument("GET /admin/", pages))

	mux.Handle("GET /health", health(cfg.Storage, cfg.Extras))
	mux.Handle("GET /metrics", observability.Handler())
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return middleware.Session(cfg.Sessions, cfg.Cookies)(mux)
}

// health answers 503 when the store is unreachable. Other dependencies are
// listed but only degrade the status.
func health(storage Pinger, extras map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"database": "ok"}
		status := http.StatusOK
		overall := "ok"

		if err := storage.Ping(ctx); err != nil {
			slog.Error("Health check failed", slog.String("dependency", "database"), slog.String("error", err.Error()))
			checks["database"] = "unavailable"
			status = http.StatusServiceUnavailable
			overall = "unavailable"
		}

		for name, pinger := range extras {
			checks[name] = "ok"
			if err := pinger.Ping(ctx); err != nil {
				slog.Warn("Health check degraded", slog.String("dependency", name), slog.String("error", err.Error()))
				checks[name] = "unavailable"
				if overall == "ok" {
					overall = "degraded"
				}
			}
		}

		response.WriteJSON(w, status, map[string]any{
			"status": overall,
			"checks": checks,
		})
	}
}
