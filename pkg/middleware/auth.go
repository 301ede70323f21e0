package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/vitrine/pkg/auth"
	"github.com/shashiranjanraj/vitrine/pkg/response"
)

// Principal is the authenticated caller attached to the request context by
// RequireAuth. It carries exactly what downstream authorization and order
// placement need; the full user record stays in the credential store.
type Principal struct {
	ID       uint
	Username string
	Email    string
	Role     string
}

// PrincipalResolver loads the principal for a verified token's user id.
// Returning (nil, nil) means the account no longer exists.
type PrincipalResolver func(ctx context.Context, id uint) (*Principal, error)

type principalKey struct{}

// RequireAuth is the authentication gate. It rejects the request before the
// wrapped handler runs unless a well-formed bearer token verifies and
// resolves to a live account. The three failure modes stay distinct:
//
//   - no Authorization header        → 401 "Authentication required"
//   - malformed/expired/bad signature → 401 "Invalid token"
//   - token fine, account gone        → 401 "Invalid token"
func RequireAuth(mgr *auth.Manager, resolve PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				response.Unauthorized(w, "Authentication required")
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if token == "" {
				response.Unauthorized(w, "Authentication required")
				return
			}

			claims, err := mgr.Verify(token)
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			principal, err := resolve(r.Context(), claims.UserID)
			if err != nil {
				response.Internal(w)
				return
			}
			if principal == nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromCtx returns the authenticated caller, if any.
func PrincipalFromCtx(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}

// RoleFromCtx returns the caller's role. Used by the role gate.
func RoleFromCtx(ctx context.Context) (string, bool) {
	if p, ok := PrincipalFromCtx(ctx); ok {
		return p.Role, true
	}
	return "", false
}
