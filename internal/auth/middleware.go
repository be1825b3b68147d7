package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/smarthomeinventory/backend/internal/models"
)

type contextKey string

const userKey contextKey = "user"

// UserLoader resolves a token subject to a live user record.
// A token is only accepted while its subject still exists in the store.
type UserLoader interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Middleware validates the bearer token, loads the referenced user and
// attaches it to the request context. Requests without a valid token for an
// existing user never reach the handler.
func Middleware(tokens *TokenService, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Expected format: "Authorization: Bearer <token>"
			var token string
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					token = parts[1]
				}
			}

			if token == "" {
				respondUnauthorized(w, "authentication required")
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				respondUnauthorized(w, "invalid or expired token")
				return
			}

			// A token naming a deleted user is as good as no token
			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				respondUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose authenticated identity does not carry
// the required role. Must be composed after Middleware.
func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				respondUnauthorized(w, "authentication required")
				return
			}

			if user.Role != role {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"insufficient permissions"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext retrieves the authenticated user from context
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// ContextWithUser attaches a user to the context; used by tests
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
