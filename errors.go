package goSession

import "errors"

var (
	// ErrInvalidCredentials is returned by [Engine.VerifyCredentials] for both
	// unknown usernames and wrong secrets. The two cases are deliberately
	// indistinguishable to prevent username enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrIdentityNotFound is returned by [IdentityProvider] implementations
	// when no record matches the lookup.
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrProviderUnavailable wraps identity-store backend failures.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
	// ErrUnauthorized is the authorization-gate rejection.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNoSession is returned by [Engine.Persist] when the request carries no
	// resolved session to write into.
	ErrNoSession = errors.New("no resolved session")
	// ErrEngineNotReady is returned when a nil or unbuilt Engine is used.
	ErrEngineNotReady = errors.New("engine not initialized")
)
