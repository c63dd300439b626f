package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"hirebase/internal/httputil"
)

// ServiceKeyMiddleware guards internal service-to-service routes with a
// shared secret carried in the X-Service-Key header. Requests outside the
// /internal/ prefix pass through untouched. An empty configured key locks
// the internal surface entirely rather than leaving it open.
func ServiceKeyMiddleware(serviceKey string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/internal/") {
				next.ServeHTTP(w, r)
				return
			}

			if serviceKey == "" {
				logger.Warn("internal route rejected: no service key configured",
					"path", r.URL.Path,
				)
				httputil.RespondError(w, http.StatusForbidden, "internal routes are disabled")
				return
			}

			provided := r.Header.Get("X-Service-Key")
			if subtle.ConstantTimeCompare([]byte(provided), []byte(serviceKey)) != 1 {
				logger.Warn("internal route rejected: bad service key",
					"path", r.URL.Path,
				)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid service key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
