package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"hirebase/internal/auth"
	"hirebase/internal/httputil"
)

// AuthMiddleware validates the Bearer token on every request and attaches
// the caller's user ID to the request context. Health checks and internal
// service-to-service routes are exempt; the latter are guarded by
// ServiceKeyMiddleware instead.
func AuthMiddleware(verifier auth.TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" || strings.HasPrefix(r.URL.Path, "/internal/") {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || tokenString == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			claims, err := verifier.VerifyToken(tokenString)
			if err != nil {
				logger.Debug("token verification failed",
					"error", err,
					"path", r.URL.Path,
				)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}
