// Package goSession provides classic server-side cookie sessions: credential
// verification against a pluggable identity store, opaque unguessable session
// tokens, and a three-stage HTTP middleware pipeline (session resolution,
// identity rehydration, authorization enforcement).
//
// goSession is the stateful counterpart to a JWT stack: the cookie carries
// nothing but a random token, and everything else lives server-side in a
// [session.Store]. After login, token unguessability is the sole security
// boundary, which is why tokens are 256 bits of crypto/rand output and why
// secrets at rest are argon2id hashes compared in constant time.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goSession is the public surface. It exposes [Engine], [Builder], [Config],
// the [Identity] and [Credentials] value types, and the [IdentityProvider]
// integration point. Session persistence lives in the session sub-package,
// HTTP plumbing in middleware, hashing in password. Identity storage belongs
// to the caller: goSession only ever reads identity records.
//
// # What this package must NOT do
//
//   - Write to the identity store (lookup by username and by ID only).
//   - Expose session backends or payload encoding details in its public API.
//   - Import any sub-package that re-imports goSession (no import cycles).
//
// # Performance contract
//
// Rehydrate is the hot path: one session-store read plus one identity lookup
// per request. VerifyCredentials is deliberately slow (argon2id) and must only
// run on login attempts, never per-request.
package goSession
