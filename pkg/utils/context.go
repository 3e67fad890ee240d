package utils

import (
	"context"

	"event-booking/internal/data/entity"
)

type contextKey string

const userKey contextKey = "user"

// SetUserContext attaches the resolved user record to the request context.
func SetUserContext(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext returns the authenticated user, or false when the
// request carries no resolved identity.
func GetUserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(userKey).(*entity.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
