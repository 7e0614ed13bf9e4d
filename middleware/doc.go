// Package middleware exposes the HTTP pipeline around a goSession.Engine:
// session resolution, identity rehydration, and authorization enforcement,
// plus login/logout handlers.
//
// # Pipeline
//
// Stages are first-class objects implementing [Middleware] and are composed
// through [NewChain], which rejects misordered pipelines at construction
// time: a guard can never run without rehydration, and rehydration can
// never run without resolution. Call sites cannot get the order wrong.
//
// Two canonical chains exist:
//
//	unprotected: SessionResolver → Rehydrator            (login, public pages)
//	protected:   SessionResolver → Rehydrator → Guard    (everything gated)
//
// # Architecture boundaries
//
// This package translates HTTP semantics (cookies, status codes, request
// bodies) into Engine calls. It makes no authentication decisions of its
// own: verification, persistence, and rehydration are delegated to the
// Engine.
//
// # What this package must NOT do
//
//   - Touch the session store or identity provider directly.
//   - Set the session cookie anywhere but in [SessionResolver].
//   - Leak why a request was rejected (rejection bodies stay generic).
package middleware
