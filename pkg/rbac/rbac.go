// Package rbac provides role-based access control for the admin surface.
package rbac

import (
	"net/http"

	"github.com/lumicea/lumicea/app/models"
	"github.com/lumicea/lumicea/pkg/middleware"
	"github.com/lumicea/lumicea/pkg/response"
)

// IsAdmin reports whether the role grants access to the admin surface.
// Every admin capability in the API reduces to this single check.
func IsAdmin(role string) bool {
	return role == models.RoleAdmin
}

// RequireAdmin allows access only to administrators.
// Requires middleware.Auth to have already run (role must be in context).
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(middleware.RoleFromCtx(r.Context())) {
			response.Forbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Guest blocks authenticated users (useful for login/register).
func Guest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if middleware.UserIDFromCtx(r.Context()) != 0 {
			response.Error(w, http.StatusConflict, "Already authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}
