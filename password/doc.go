// Package password provides argon2id hashing and verification for secrets at
// rest, serialized in PHC string format.
//
// # Architecture boundaries
//
// This package owns hashing policy only. It does not know about identities,
// sessions, or HTTP. The Engine calls [Argon2.Verify] once per login attempt.
//
// # What this package must NOT do
//
//   - Store or log plaintext secrets.
//   - Compare digests with anything other than constant-time equality.
//   - Import goSession or any of its sub-packages.
package password
