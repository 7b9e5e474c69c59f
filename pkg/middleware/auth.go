package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lumicea/lumicea/pkg/auth"
	"github.com/lumicea/lumicea/pkg/response"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	roleKey
)

// Auth validates the Bearer token and stores the caller's identity in the
// request context for UserIDFromCtx and RoleFromCtx.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		if token == "" || token == r.Header.Get("Authorization") {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, roleKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromCtx returns the authenticated user's ID, or 0 when the request
// did not pass through Auth.
func UserIDFromCtx(ctx context.Context) uint {
	id, _ := ctx.Value(userIDKey).(uint)
	return id
}

// RoleFromCtx returns the authenticated user's role, or "" when the request
// did not pass through Auth.
func RoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}
