package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/organization-management/internal"
	"github.com/frahmantamala/organization-management/internal/transport"
	"github.com/frahmantamala/organization-management/internal/usecase"
	"github.com/frahmantamala/organization-management/pkg/logger"
)

// TokenVerifier is the part of TokenService the middleware needs.
type TokenVerifier interface {
	Verify(tokenString string) (*Claims, error)
}

type Handler struct {
	*transport.BaseHandler
	Tokens TokenVerifier
	SignIn http.HandlerFunc
}

func NewHandler(base *transport.BaseHandler, state *usecase.State, tokens TokenVerifier, cfg internal.SecurityConfig) *Handler {
	if base == nil {
		base = transport.NewBaseHandler(slog.Default())
	}
	return &Handler{
		BaseHandler: base,
		Tokens:      tokens,
		SignIn:      transport.Public(base, state, transport.NoInput, NewSignInCase(cfg.SignInSubject, cfg.SignInRoles)),
	}
}

// AuthMiddleware verifies the bearer token and attaches the principal to the
// request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, r, internal.NewUnauthorizedError("missing authorization token"))
			return
		}

		claims, err := h.Tokens.Verify(token)
		if err != nil {
			h.Logger.Debug("token validation failed", "error", err)
			h.WriteError(w, r, internal.NewUnauthorizedError("invalid token"))
			return
		}

		user := internal.UserInfo{ID: claims.Subject, Roles: claims.Roles}
		ctx := internal.ContextWithUser(r.Context(), user)
		ctx = logger.With(ctx, "user_id", user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
