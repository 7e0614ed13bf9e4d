package goSession

import "context"

// Identity is the durable user record the pipeline authenticates and
// rehydrates. It is owned by the caller's persistence layer; goSession reads
// it through [IdentityProvider] and never mutates it.
type Identity struct {
	ID         string
	Username   string
	SecretHash string
}

// Credentials is the transient username/secret pair submitted with a login
// attempt. It is constructed per attempt, passed to
// [Engine.VerifyCredentials], and must not be retained or logged afterwards.
type Credentials struct {
	Username string
	Secret   string
}

// IdentityProvider is the interface callers must implement to integrate
// goSession with their user database. Both lookups return
// [ErrIdentityNotFound] when no record matches; any other error is treated
// as a backend failure and surfaced as [ErrProviderUnavailable].
//
//	Docs: docs/engine.md
type IdentityProvider interface {
	FindByUsername(ctx context.Context, username string) (Identity, error)
	FindByID(ctx context.Context, id string) (Identity, error)
}
