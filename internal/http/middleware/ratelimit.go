package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/imhamzamoeen/umerfilms-sub001/internal/ratelimit"
	"github.com/imhamzamoeen/umerfilms-sub001/internal/utils/response"
)

// Limiter decides whether subject may perform action now.
type Limiter interface {
	Allow(ctx context.Context, subject, action string) (ratelimit.Decision, error)
}

// RateLimit throttles requests per client IP. A nil limiter disables it.
type RateLimit struct {
	trustProxy bool
}

func NewRateLimit(trustProxyHeaders bool) *RateLimit {
	return &RateLimit{trustProxy: trustProxyHeaders}
}

// Limit wraps handler with limiter under action. Limiter errors let the request
// through so a Redis outage does not take down login or the contact form.
func (rl *RateLimit) Limit(limiter Limiter, action string, handler http.Handler) http.Handler {
	if limiter == nil {
		return handler
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision, err := limiter.Allow(r.Context(), rl.ClientIP(r), action)
		if err != nil {
			slog.Error("Rate limit check failed",
				slog.String("action", action),
				slog.String("error", err.Error()))
			handler.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(decision.Limit, 10))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))
		w.Header().Set("X-RateLimit-Reset", strconv.Itoa(int(decision.Reset.Seconds())))

		if !decision.Allowed {
			response.WriteJSON(w, http.StatusTooManyRequests, response.GeneralError(
				errors.New("rate limit exceeded")))
			return
		}

		handler.ServeHTTP(w, r)
	})
}

// ClientIP is the address requests are throttled by.
func (rl *RateLimit) ClientIP(r *http.Request) string {
	if rl.trustProxy {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
