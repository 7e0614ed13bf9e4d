package goSession

import (
	"errors"
	"net/http"
	"time"
)

// Config carries every tunable of the engine and the middleware pipeline.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable.
type Config struct {
	Cookie   CookieConfig
	Session  SessionConfig
	Password PasswordConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

/*
====================================
COOKIE CONFIG
====================================
*/

// CookieConfig describes the cookie that carries the session token. The
// defaults are the safest values; loosen them only for local development
// (Secure=false on plain HTTP).
type CookieConfig struct {
	Name     string
	Path     string
	Domain   string
	MaxAge   time.Duration // 0 = session cookie (dropped when the browser closes)
	HTTPOnly bool
	Secure   bool
	SameSite http.SameSite
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig controls server-side session lifetime and the Redis key
// namespace when the Redis backend is used.
type SessionConfig struct {
	IdleTimeout   time.Duration
	SweepInterval time.Duration // memory backend only; Redis evicts via TTL
	RedisPrefix   string
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig holds the argon2id parameters used to hash secrets at rest.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls the in-process atomic counters.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the recommended production configuration: HttpOnly
// Secure Lax cookie, 30 minute idle timeout, and argon2id parameters sized
// for interactive logins.
func DefaultConfig() Config {
	return Config{
		Cookie: CookieConfig{
			Name:     "gosession",
			Path:     "/",
			HTTPOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		},
		Session: SessionConfig{
			IdleTimeout:   30 * time.Minute,
			SweepInterval: time.Minute,
			RedisPrefix:   "gs",
		},
		Password: PasswordConfig{
			Memory:      64 * 1024,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate reports configuration errors. It is called by [Builder.Build];
// callers constructing a Config by hand can invoke it directly.
func (c Config) Validate() error {
	if c.Cookie.Name == "" {
		return errors.New("cookie name required")
	}
	if c.Cookie.SameSite == http.SameSiteNoneMode && !c.Cookie.Secure {
		return errors.New("SameSite=None requires Secure")
	}
	if c.Session.IdleTimeout <= 0 {
		return errors.New("session idle timeout must be positive")
	}
	if c.Session.SweepInterval < 0 {
		return errors.New("session sweep interval must not be negative")
	}
	if c.Password.Memory < 8*1024 {
		return errors.New("argon2 memory below 8 MB")
	}
	if c.Password.Time < 1 {
		return errors.New("argon2 time cost below 1")
	}
	if c.Password.Parallelism < 1 {
		return errors.New("argon2 parallelism below 1")
	}
	if c.Password.SaltLength < 16 {
		return errors.New("argon2 salt below 16 bytes")
	}
	if c.Password.KeyLength < 16 {
		return errors.New("argon2 key below 16 bytes")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("audit buffer size must not be negative")
	}
	return nil
}

func cloneConfig(c Config) Config {
	// All fields are value types; a shallow copy is a deep copy.
	return c
}
