package goSession

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goSession/password"
	"github.com/MrEthical07/goSession/session"
)

// Builder assembles an [Engine]. Construction is allocation-only until Build,
// which validates the configuration and wires the store, hasher, audit
// dispatcher, and metrics. A Builder is single-use.
type Builder struct {
	config Config

	provider  IdentityProvider
	store     session.Store
	redis     redis.UniversalClient
	auditSink AuditSink

	built bool
}

// New returns a Builder seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the full configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithIdentityProvider sets the identity store integration. Required.
func (b *Builder) WithIdentityProvider(p IdentityProvider) *Builder {
	b.provider = p
	return b
}

// WithSessionStore sets an explicit session backend, taking precedence over
// WithRedis and the default memory store. The caller owns its lifecycle.
func (b *Builder) WithSessionStore(s session.Store) *Builder {
	b.store = s
	return b
}

// WithRedis backs sessions with Redis using the configured prefix and idle
// timeout.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithAuditSink sets the audit destination. Without one, enabled audit
// events are discarded.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates and assembles the Engine. Without WithSessionStore or
// WithRedis it owns a [session.MemoryStore] configured from
// [SessionConfig], including the idle sweeper, and stops it on
// [Engine.Close].
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.provider == nil {
		return nil, errors.New("identity provider required")
	}

	hasher, err := password.NewArgon2(password.Config{
		Memory:      cfg.Password.Memory,
		Time:        cfg.Password.Time,
		Parallelism: cfg.Password.Parallelism,
		SaltLength:  cfg.Password.SaltLength,
		KeyLength:   cfg.Password.KeyLength,
	})
	if err != nil {
		return nil, err
	}

	metrics := NewMetrics(cfg.Metrics)
	dispatcher := newAuditDispatcher(cfg.Audit, b.auditSink)

	engine := &Engine{
		config:   cfg,
		provider: b.provider,
		hasher:   hasher,
		audit:    dispatcher,
		metrics:  metrics,
	}

	switch {
	case b.store != nil:
		engine.sessions = b.store
	case b.redis != nil:
		store, err := session.NewRedisStore(b.redis, cfg.Session.RedisPrefix, cfg.Session.IdleTimeout)
		if err != nil {
			dispatcher.Close()
			return nil, err
		}
		engine.sessions = store
	default:
		store := session.NewMemoryStore(session.MemoryConfig{
			IdleTimeout:   cfg.Session.IdleTimeout,
			SweepInterval: cfg.Session.SweepInterval,
			OnEvict: func(token string) {
				metrics.Inc(MetricSessionExpired)
				dispatcher.Emit(context.Background(), AuditEvent{
					Timestamp:  time.Now().UTC(),
					EventType:  auditEventSessionExpired,
					SessionRef: auditSessionRef(token),
					Success:    true,
				})
			},
		})
		engine.sessions = store
		engine.ownedStore = store
	}

	// Baked once so unknown-username verification performs real argon2 work.
	dummy, err := hasher.Hash("goSession.dummy-timing-pad")
	if err != nil {
		engine.Close()
		return nil, err
	}
	engine.dummyHash = dummy

	b.built = true
	return engine, nil
}
