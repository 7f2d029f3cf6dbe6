package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/kozaktomas/face-attendance/internal/constants"
	"golang.org/x/time/rate"
)

// RateLimit returns middleware that shares one token bucket across all
// callers. A non-positive rps disables limiting.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	limiter := rate.NewLimiter(rate.Limit(rps), max(burst, 1))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"message": constants.MsgTooManyRequests,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
