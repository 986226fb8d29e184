// Package utils provides general-purpose helpers shared across the
// application: typed context keys, JSON response writing, JWT generation
// and validation, uuid generation, and storage-key parsing.
package utils

import (
	"context"
)

// contextKey is a private type for context keys. A dedicated type prevents
// collisions with string-based keys set by other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key under which the auth middleware stores the
// authenticated user's id. It is the only ambient request state the
// handlers read; everything else arrives as explicit arguments.
var UserIDCtxKey = contextKey("userID")

// SessionIDCtxKey is the key under which the auth middleware stores the id
// of the session that issued the presented access token.
var SessionIDCtxKey = contextKey("sessionID")

// GetUserIDFromContext retrieves the authenticated user's id from ctx.
// ok is false when the value is missing or has an unexpected type.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

// GetSessionIDFromContext retrieves the current session id from ctx.
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDCtxKey).(string)
	return sessionID, ok
}
