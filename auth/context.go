package auth

import "context"

// contextKey is a private type for context keys, preventing collisions with
// keys set by other packages.
type contextKey string

const currentUserKey contextKey = "current_user"

// NewContextWithUser returns a child context carrying the resolved user.
// It is set by the authentication middleware once per request.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// UserFromContext retrieves the current user placed in the context by the
// authentication middleware. The boolean is false when the request did not
// pass through the middleware.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(currentUserKey).(*User)
	return user, ok
}
