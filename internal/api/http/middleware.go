package http

import (
	"net/http"
	"strings"
	"time"

	"casahub-backend/internal/logger"
	"casahub-backend/internal/security"
)

// AuthMiddleware validates the bearer token and injects its claims into
// the request context. Routes behind it always see a valid access token.
type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

func (m *AuthMiddleware) RequireAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := extractToken(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "authorization token is not provided"})
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "invalid token"})
			return
		}
		if claims.Type != security.TokenTypeAccess {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "access token required"})
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func extractToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	// Remove Bearer prefix if present
	if len(authHeader) > 7 && strings.EqualFold(authHeader[0:7], "Bearer ") {
		return authHeader[7:], true
	}
	return authHeader, true
}

// RequestLogging logs every request with its status and duration.
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
