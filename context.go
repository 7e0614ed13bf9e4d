package goSession

import (
	"context"

	"github.com/MrEthical07/goSession/session"
)

type sessionContextKey struct{}
type identityContextKey struct{}

// ContextWithSession attaches the resolved session to ctx. Only the session
// resolution middleware should call this.
func ContextWithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext returns the session resolved for this request, if any.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*session.Session)
	return sess, ok
}

// ContextWithIdentity attaches a rehydrated identity to ctx. Only the
// rehydration middleware (and login, after a fresh verification) should call
// this.
func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext returns the identity rehydrated for this request. The
// authorization gate admits a request exactly when ok is true.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(Identity)
	return identity, ok
}
