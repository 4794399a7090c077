package middleware

import (
	"context"
	"net/http"

	"github.com/kingarthur/content-api/internal/auth"
	"github.com/kingarthur/content-api/internal/response"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

// roleKey is the context key under which the verified role is stored.
const roleKey contextKey = "role"

// RequireAuth returns middleware that rejects requests without a valid
// Bearer token. Used on every mutating route.
func RequireAuth(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.BearerToken(r)
			if token == "" {
				response.Unauthorized(w, "Authentication required")
				return
			}
			role, err := svc.Verify(token)
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(withRole(r.Context(), role)))
		})
	}
}

// OptionalAuth returns middleware that records the role when a valid Bearer
// token is present but lets every request through. An absent or invalid token
// degrades to the unauthenticated view instead of rejecting the request.
func OptionalAuth(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := auth.BearerToken(r); token != "" {
				if role, err := svc.Verify(token); err == nil {
					r = r.WithContext(withRole(r.Context(), role))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func withRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey, role)
}

// IsAuthenticated reports whether the request context carries a verified role.
func IsAuthenticated(ctx context.Context) bool {
	role, _ := ctx.Value(roleKey).(string)
	return role != ""
}
