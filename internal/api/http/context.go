package http

import (
	"context"
	"net"
	"net/http"

	"casahub-backend/internal/security"
	"casahub-backend/internal/service"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// ClaimsFromContext extracts the validated token claims injected by the
// auth middleware.
func ClaimsFromContext(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*security.UserClaims)
	return claims, ok
}

func withClaims(ctx context.Context, claims *security.UserClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// actorFromRequest builds the service-layer caller identity from the
// request's claims and transport attributes.
func actorFromRequest(r *http.Request) (service.Actor, bool) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{
		UserID:     claims.UserID,
		Email:      claims.Email,
		OrgID:      claims.OrgID,
		Role:       claims.Role,
		SuperAdmin: claims.SuperAdmin,
		IPAddress:  clientIP(r),
		UserAgent:  r.UserAgent(),
		RequestURI: r.URL.RequestURI(),
	}, true
}

func requestMeta(r *http.Request) service.RequestMeta {
	return service.RequestMeta{
		IPAddress:  clientIP(r),
		UserAgent:  r.UserAgent(),
		RequestURI: r.URL.RequestURI(),
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
