// Package rbac provides the role gate run after the authentication gate.
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/vitrine/pkg/middleware"
	"github.com/shashiranjanraj/vitrine/pkg/response"
)

// HasRole allows only callers whose resolved role is in roles. It must be
// chained after middleware.RequireAuth; with no principal in context the
// request is rejected the same as a wrong role.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r.Context())
			if !ok || !allowed[role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
