package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goSession/internal"
)

// setValueMaxRetries bounds the optimistic WATCH loop in SetValue. Contention
// on a single token is a single client misbehaving, not a throughput path.
const setValueMaxRetries = 8

// RedisStore is a Redis-backed [Store]. Idle expiry rides on the key TTL:
// every Get refreshes it, so a key that outlives the idle window simply
// disappears. Payload writes go through a WATCH transaction, which gives the
// per-token read-modify-write atomicity the Store contract requires while
// leaving unrelated tokens untouched.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
	idle   time.Duration
}

// NewRedisStore creates a RedisStore. prefix namespaces the keys; idle is the
// idle timeout applied as key TTL and must be positive.
func NewRedisStore(client redis.UniversalClient, prefix string, idle time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	if idle <= 0 {
		return nil, errors.New("idle timeout must be positive")
	}
	if prefix == "" {
		prefix = "gs"
	}

	return &RedisStore{
		redis:  client,
		prefix: prefix,
		idle:   idle,
	}, nil
}

func (s *RedisStore) key(token string) string {
	return s.prefix + ":" + token
}

func (s *RedisStore) Create(ctx context.Context) (*Session, error) {
	token, err := internal.NewToken()
	if err != nil {
		return nil, err
	}

	sess := newSession(token.String())
	data, err := Encode(sess)
	if err != nil {
		return nil, err
	}

	if err := s.redis.Set(ctx, s.key(sess.Token), data, s.idle).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	key := s.key(token)

	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	sess, err := Decode(data)
	if err != nil {
		return nil, err
	}
	sess.Token = token

	// Slide the idle window. The blob's LastAccessed is advisory here; the
	// key TTL is the authority for idleness.
	if err := s.redis.Expire(ctx, key, s.idle).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	sess.LastAccessed = time.Now().Unix()

	return sess, nil
}

func (s *RedisStore) SetValue(ctx context.Context, token, key string, value []byte) error {
	redisKey := s.key(token)

	write := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, redisKey).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrNotFound
			}
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		sess, err := Decode(data)
		if err != nil {
			return err
		}

		cp := make([]byte, len(value))
		copy(cp, value)
		sess.Values[key] = cp
		sess.LastAccessed = time.Now().Unix()

		updated, err := Encode(sess)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, redisKey, updated, s.idle)
			return nil
		})
		if err != nil {
			return err
		}
		return nil
	}

	for i := 0; i < setValueMaxRetries; i++ {
		err := s.redis.Watch(ctx, write, redisKey)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return fmt.Errorf("%w: session write contention", ErrUnavailable)
}

func (s *RedisStore) GetValue(ctx context.Context, token, key string) ([]byte, error) {
	data, err := s.redis.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	sess, err := Decode(data)
	if err != nil {
		return nil, err
	}

	value, ok := sess.Values[key]
	if !ok {
		return nil, ErrNoValue
	}

	return value, nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	if err := s.redis.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *RedisStore) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return time.Since(start), nil
}

var _ Store = (*RedisStore)(nil)
