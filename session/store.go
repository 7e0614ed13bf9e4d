package session

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no live session matches the token. The
	// middleware layer treats it as "create a new session", never as a
	// caller-visible failure.
	ErrNotFound = errors.New("session not found")
	// ErrNoValue is returned by GetValue when the session exists but the key
	// does not.
	ErrNoValue = errors.New("session value not found")
	// ErrUnavailable wraps backend failures (Redis down, closed store).
	ErrUnavailable = errors.New("session backend unavailable")
)

// Store is the pluggable session backend. Implementations must make every
// operation atomic with respect to the others for a given token, and must not
// serialize operations on unrelated tokens behind a single global lock.
//
// Reads slide the idle-expiry window; an idle session past the store's
// timeout behaves exactly like a missing one.
//
//	Docs: docs/session.md
type Store interface {
	// Create mints a fresh unguessable token, inserts an empty session and
	// returns it. Token entropy (256 bits) rules out collisions with live
	// sessions; there is no retry loop.
	Create(ctx context.Context) (*Session, error)
	// Get returns a copy of the session for token, or ErrNotFound.
	Get(ctx context.Context, token string) (*Session, error)
	// SetValue atomically sets one payload entry on a live session.
	SetValue(ctx context.Context, token, key string, value []byte) error
	// GetValue reads one payload entry. ErrNotFound if the session is gone,
	// ErrNoValue if only the key is absent.
	GetValue(ctx context.Context, token, key string) ([]byte, error)
	// Destroy removes the session. Destroying an unknown token is a no-op.
	Destroy(ctx context.Context, token string) error
}
