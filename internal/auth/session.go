// Package auth issues and verifies the HS256 bearer tokens of the REST API
// and carries the caller's session through context.Context.
package auth

import "context"

// Session is the authenticated caller. The server builds it from a verified
// token; the API client carries the token it should send.
type Session struct {
	Token string
	User  string
	Role  string
}

type contextKey string

const sessionKey contextKey = "session"

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFrom returns the session stored in ctx, if any.
func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok
}
