// Package session provides server-side session state keyed by opaque random
// tokens, with in-memory and Redis-backed stores and a compact binary payload
// encoding.
//
// # Stores
//
//   - [MemoryStore]: sharded in-process map with a background idle-timeout
//     sweep. The default for single-process deployments and tests.
//   - [RedisStore]: go-redis backed store; idle expiry rides on key TTL and
//     payload writes use optimistic WATCH transactions so read-modify-write
//     on one token never interleaves.
//
// Both stores guarantee per-token atomicity for Create/Get/SetValue/GetValue/
// Destroy. Operations on distinct tokens do not serialize against each other
// (beyond shard granularity in MemoryStore).
//
// # Binary encoding
//
// Sessions are persisted as a compact length-prefixed binary format with a
// leading schema version byte. The decoder rejects malformed input instead of
// panicking; see the fuzz test.
//
// # Architecture boundaries
//
// This package owns session persistence and the [Session] model. It does NOT
// know what the payload bytes mean: the reserved identity key, credential
// checks, and authorization decisions all belong to the Engine and the
// middleware package.
//
// # What this package must NOT do
//
//   - Import goSession (no upward imports).
//   - Interpret payload values or make authentication decisions.
//   - Accept caller-chosen tokens; tokens are always minted internally.
package session
