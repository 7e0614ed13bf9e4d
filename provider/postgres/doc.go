// Package postgres provides a durable goSession.IdentityProvider backed by
// PostgreSQL (pgx stdlib driver) with embedded goose migrations.
//
// # Architecture boundaries
//
// The auth pipeline only ever reads through FindByUsername/FindByID.
// [Provider.Create] exists for operator-side account provisioning (seeding,
// registration endpoints owned by the application) and is never called by
// the Engine.
//
// # What this package must NOT do
//
//   - Store plaintext secrets; callers pass argon2id PHC hashes.
//   - Be imported by goSession itself (integration packages depend inward).
package postgres
