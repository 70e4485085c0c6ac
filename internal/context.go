package internal

import (
	"context"
	"slices"
	"time"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

// UserInfo is the principal attached to a request after token verification.
type UserInfo struct {
	ID    string
	Roles []string
}

// HasAnyRole reports whether the principal holds at least one of roles.
func (u UserInfo) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if slices.Contains(u.Roles, role) {
			return true
		}
	}
	return false
}

func UserFromContext(ctx context.Context) (UserInfo, bool) {
	if ctx == nil {
		return UserInfo{}, false
	}
	user, ok := ctx.Value(ContextUserKey).(UserInfo)
	return user, ok
}

func ContextWithUser(ctx context.Context, user UserInfo) context.Context {
	return context.WithValue(ctx, ContextUserKey, user)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
