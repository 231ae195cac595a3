package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mbms-project/mbms-gateway/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// TokenKey is the context key for the upstream bearer token
	TokenKey ContextKey = "token"
	// PrincipalKey is the context key for the authenticated principal
	PrincipalKey ContextKey = "principal"
)

// Principal identifies the authenticated caller of a request.
type Principal struct {
	Name    string
	IsAdmin bool
}

// Resolver resolves a bearer token to the principal that logged in with it.
type Resolver interface {
	Resolve(token string) (Principal, bool)
}

// Auth validates the Authorization header against the session registry and
// places the token and principal on the request context.
func Auth(sessions Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				response.Unauthorized(w, "Authorization header required")
				return
			}

			principal, ok := sessions.Resolve(token)
			if !ok {
				response.Unauthorized(w, "Invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), TokenKey, token)
			ctx = context.WithValue(ctx, PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the token and principal when present but lets
// anonymous requests through. Used for the historically unauthenticated
// payment reads.
func OptionalAuth(sessions Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), TokenKey, token)
			if principal, ok := sessions.Resolve(token); ok {
				ctx = context.WithValue(ctx, PrincipalKey, principal)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose principal is not an admin. Must run
// after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := GetPrincipal(r.Context())
		if !ok || !principal.IsAdmin {
			response.Forbidden(w, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetToken extracts the upstream bearer token from the request context
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}

// GetPrincipal extracts the authenticated principal from the request context
func GetPrincipal(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(PrincipalKey).(Principal)
	return principal, ok
}
