package goSession

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrEthical07/goSession/password"
	"github.com/MrEthical07/goSession/session"
)

// identityValueKey is the reserved session payload key holding the
// authenticated identity's ID. A session carries at most one such reference;
// re-authentication overwrites it.
const identityValueKey = "goSession:identity_id"

// Engine ties the credential verifier, the session store, and the identity
// provider together. Build one through [Builder.Build]; all methods are safe
// for concurrent use afterwards.
//
//	Docs: docs/engine.md
type Engine struct {
	config   Config
	sessions session.Store
	provider IdentityProvider
	hasher   *password.Argon2
	audit    *auditDispatcher
	metrics  *Metrics

	// dummyHash is verified against when the username is unknown, so the
	// not-found path costs the same argon2 work as a real mismatch.
	dummyHash string

	// ownedStore is set when Build constructed the default memory store;
	// Close stops its sweeper.
	ownedStore *session.MemoryStore
}

// Close flushes the audit dispatcher and stops the engine-owned session
// sweeper, if any. The engine must not be used afterwards.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
	if e.ownedStore != nil {
		e.ownedStore.Close()
	}
}

// CookieConfig returns the configured session cookie attributes. The
// middleware package reads these; they are fixed after Build.
func (e *Engine) CookieConfig() CookieConfig {
	return e.config.Cookie
}

// MetricsSnapshot returns a point-in-time copy of the engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

// AuditDropped returns how many audit events were discarded under
// back-pressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.audit.Dropped()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil {
		return
	}
	e.metrics.Inc(id)
}

// VerifyCredentials looks up the identity by username and verifies the secret
// against its argon2id hash in constant time. Unknown usernames and wrong
// secrets both return [ErrInvalidCredentials] with identical content, and
// both cost one argon2 computation, so the two cases cannot be told apart by
// message or by timing. A backend failure returns [ErrProviderUnavailable]
// wrapped, never masked as a bad login.
//
// The credentials value is not retained after the call returns.
func (e *Engine) VerifyCredentials(ctx context.Context, creds Credentials) (Identity, error) {
	if e == nil {
		return Identity{}, ErrEngineNotReady
	}

	identity, err := e.provider.FindByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			_, _ = e.hasher.Verify(creds.Secret, e.dummyHash)
			e.metricInc(MetricLoginFailure)
			e.auditLogin(ctx, creds.Username, "", ErrInvalidCredentials)
			return Identity{}, ErrInvalidCredentials
		}
		e.metricInc(MetricProviderError)
		e.auditFailure(ctx, auditEventProviderError, "", err)
		return Identity{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	ok, err := e.hasher.Verify(creds.Secret, identity.SecretHash)
	if err != nil || !ok {
		e.metricInc(MetricLoginFailure)
		e.auditLogin(ctx, creds.Username, "", ErrInvalidCredentials)
		return Identity{}, ErrInvalidCredentials
	}

	e.metricInc(MetricLoginSuccess)
	e.auditLogin(ctx, creds.Username, identity.ID, nil)
	return identity, nil
}

// ResolveSession returns the live session for token, or mints a fresh one
// when token is empty or no longer maps to a session. created reports whether
// a new session (and therefore a new cookie) is needed. Resolution only fails
// on backend unavailability.
func (e *Engine) ResolveSession(ctx context.Context, token string) (sess *session.Session, created bool, err error) {
	if e == nil {
		return nil, false, ErrEngineNotReady
	}

	if token != "" {
		sess, err = e.sessions.Get(ctx, token)
		if err == nil {
			return sess, false, nil
		}
		if !errors.Is(err, session.ErrNotFound) {
			e.metricInc(MetricStoreError)
			e.auditFailure(ctx, auditEventStoreError, token, err)
			return nil, false, err
		}
	}

	sess, err = e.sessions.Create(ctx)
	if err != nil {
		e.metricInc(MetricStoreError)
		e.auditFailure(ctx, auditEventStoreError, "", err)
		return nil, false, err
	}

	e.metricInc(MetricSessionCreated)
	e.auditSession(ctx, auditEventSessionCreated, sess.Token)
	return sess, true, nil
}

// Persist writes the identity's ID into the session payload under the
// reserved key. The write is synchronous: once Persist returns, any Rehydrate
// carrying the same token observes it, which is what makes a login response
// safe to send. Re-authentication overwrites the previous reference.
func (e *Engine) Persist(ctx context.Context, token string, identity Identity) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if token == "" {
		return ErrNoSession
	}

	if err := e.sessions.SetValue(ctx, token, identityValueKey, []byte(identity.ID)); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return ErrNoSession
		}
		e.metricInc(MetricStoreError)
		e.auditFailure(ctx, auditEventStoreError, token, err)
		return err
	}

	return nil
}

// Rehydrate reconstructs the identity referenced by the session payload.
// ok is false, with a nil error, for every anonymous case: no session for the
// token, no identity reference in the payload, or a reference that no longer
// resolves (deleted account; stale cookies go anonymous instead of bricking
// their holders). Backend failures are returned as errors.
func (e *Engine) Rehydrate(ctx context.Context, token string) (identity Identity, ok bool, err error) {
	if e == nil {
		return Identity{}, false, ErrEngineNotReady
	}

	ref, err := e.sessions.GetValue(ctx, token, identityValueKey)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) || errors.Is(err, session.ErrNoValue) {
			return Identity{}, false, nil
		}
		e.metricInc(MetricStoreError)
		e.auditFailure(ctx, auditEventStoreError, token, err)
		return Identity{}, false, err
	}

	identity, err = e.provider.FindByID(ctx, string(ref))
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			e.metricInc(MetricRehydrateStale)
			e.auditFailure(ctx, auditEventRehydrateStale, token, nil)
			return Identity{}, false, nil
		}
		e.metricInc(MetricProviderError)
		e.auditFailure(ctx, auditEventProviderError, token, err)
		return Identity{}, false, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	return identity, true, nil
}

// Logout destroys the session. Unknown tokens are a no-op, so logout is
// idempotent.
func (e *Engine) Logout(ctx context.Context, token string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if token == "" {
		return nil
	}

	if err := e.sessions.Destroy(ctx, token); err != nil {
		e.metricInc(MetricStoreError)
		e.auditFailure(ctx, auditEventStoreError, token, err)
		return err
	}

	e.metricInc(MetricSessionDestroyed)
	e.auditSession(ctx, auditEventSessionDestroyed, token)
	return nil
}

// Reject records an authorization-gate rejection for observability. It is
// called by the middleware guard and performs no blocking work: a counter
// increment and a non-blocking audit emit.
func (e *Engine) Reject(ctx context.Context, token string) {
	if e == nil {
		return
	}
	e.metricInc(MetricUnauthorized)
	e.auditFailure(ctx, auditEventUnauthorized, token, ErrUnauthorized)
}

// HashSecret hashes a plaintext secret for storage. Registration is outside
// the pipeline (goSession never writes identities), but account-creation glue
// needs the exact hashing parameters the verifier expects.
func (e *Engine) HashSecret(secret string) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}
	return e.hasher.Hash(secret)
}
