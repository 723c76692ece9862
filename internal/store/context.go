package store

import "context"

type sessionKey struct{}

// WithSession provisions s for everything running under ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// Lookup returns the session provisioned in ctx, if any.
func Lookup(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}

// FromContext returns the session provisioned in ctx. Reaching the store
// without one is a programming error and panics.
func FromContext(ctx context.Context) *Session {
	s, ok := Lookup(ctx)
	if !ok {
		panic("store: session used outside a provisioned context")
	}
	return s
}
