package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mkoren/drivetrack/internal/auth"
)

// ctxKey is a private type so context values set here cannot collide with
// other packages.
type ctxKey int

const userIDKey ctxKey = iota

// NewAuthHandler returns a middleware that requires a valid bearer token
// signed with secret. The authenticated user's ID is placed on the request
// context; handlers read it back with UserIDFromContext.
func NewAuthHandler(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			claims, err := auth.Parse(secret, token)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user's ID set by NewAuthHandler.
// The second return is false when the request did not pass through the
// middleware (e.g. an unauthenticated route).
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// WithUserID returns a context carrying the given user ID.
// Exported for handler tests, which have no middleware in front of them.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":{"code":"unauthorized","message":"` + message + `"}}`))
}
