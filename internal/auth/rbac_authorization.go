package auth

import (
	"net/http"

	"github.com/frahmantamala/organization-management/internal"
	"github.com/frahmantamala/organization-management/internal/transport"
)

type RBACAuthorization struct {
	*transport.BaseHandler
}

func NewRBACAuthorization(base *transport.BaseHandler) *RBACAuthorization {
	return &RBACAuthorization{BaseHandler: base}
}

// RequireRoles lets the request through only when the principal holds at
// least one of roles. It must run after AuthMiddleware.
func (ra *RBACAuthorization) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok {
				ra.WriteError(w, r, internal.NewUnauthorizedError("missing authenticated user"))
				return
			}

			if !user.HasAnyRole(roles...) {
				ra.Logger.WarnContext(r.Context(), "access denied: insufficient roles",
					"user_id", user.ID,
					"required_roles", roles,
					"user_roles", user.Roles)
				ra.WriteError(w, r, internal.NewForbiddenError("insufficient role"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
