package middleware

import (
	"context"
	"fmt"
	"net/http"

	"retroboard/internal/common"
	"retroboard/internal/models"
)

type contextKey string

// UserIDCtxKey is the context key under which the authenticated user's id
// is stored.
const UserIDCtxKey contextKey = "userID"

// TokenStore looks up a user by access token. A nil user with a nil error
// means no user holds that token.
type TokenStore interface {
	GetUserByToken(ctx context.Context, token string) (*models.User, error)
}

// RequireToken gates a route behind token authentication. The Authorization
// header is compared verbatim against stored tokens (no "Bearer " prefix).
// On match the user id is injected into the request context.
func RequireToken(users TokenStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("Authorization")
			if token == "" {
				common.RespondWithError(w, fmt.Errorf("authorization token required: %w", common.ErrUnauthorized))
				return
			}

			user, err := users.GetUserByToken(r.Context(), token)
			if err != nil {
				common.RespondWithError(w, err)
				return
			}
			if user == nil {
				common.RespondWithError(w, fmt.Errorf("invalid token: %w", common.ErrUnauthorized))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, user.ID.Hex())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user id set by RequireToken.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDCtxKey).(string)
	return id, ok
}
