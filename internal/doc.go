// Package internal contains helper utilities that are intentionally private
// to goSession, currently secure session token generation and parsing.
//
// # What this package must NOT do
//
//   - Export types that appear in the public goSession API.
//   - Be imported by any package outside the goSession module.
package internal
