package utils

import (
	"context"

	"foodmarket-be/internal/auth"
)

type contextKey string

const identityKey contextKey = "identity"

// SetIdentity stores the authenticated token payload (called by middleware).
func SetIdentity(ctx context.Context, p auth.Payload) context.Context {
	return context.WithValue(ctx, identityKey, p)
}

// GetIdentity returns the authenticated payload, if any.
func GetIdentity(ctx context.Context) (auth.Payload, bool) {
	p, ok := ctx.Value(identityKey).(auth.Payload)
	return p, ok
}

// GetUserIDFromContext retrieves the authenticated account id safely.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	p, ok := GetIdentity(ctx)
	if !ok || p.ID == "" {
		return "", false
	}
	return p.ID, true
}

func GetUserRoleFromContext(ctx context.Context) auth.Role {
	p, _ := GetIdentity(ctx)
	return p.Role
}
