package session

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/MrEthical07/goSession/internal"
)

const memoryShardCount = 32

// MemoryConfig controls a [MemoryStore].
type MemoryConfig struct {
	// IdleTimeout evicts sessions whose last access is older than this.
	// Zero disables idle eviction (unbounded lifetime; not recommended
	// outside tests).
	IdleTimeout time.Duration
	// SweepInterval is how often the background sweep scans for idle
	// sessions. Zero disables the sweeper; idle sessions are then only
	// reaped lazily on access.
	SweepInterval time.Duration
	// OnEvict, when set, is called with the token of every session removed
	// by the sweeper or by lazy expiry on access. It must not call back
	// into the store.
	OnEvict func(token string)
}

type memoryShard struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// MemoryStore is an in-process [Store]. Tokens are spread over fixed shards
// so unrelated sessions contend only on shard granularity; all operations on
// one token serialize behind its shard lock.
type MemoryStore struct {
	cfg    MemoryConfig
	shards [memoryShardCount]*memoryShard

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewMemoryStore creates a MemoryStore and, when both IdleTimeout and
// SweepInterval are positive, starts the idle sweeper. Call [MemoryStore.Close]
// to stop it.
func NewMemoryStore(cfg MemoryConfig) *MemoryStore {
	s := &MemoryStore{
		cfg:  cfg,
		done: make(chan struct{}),
	}
	for i := range s.shards {
		s.shards[i] = &memoryShard{sessions: map[string]*Session{}}
	}

	if cfg.IdleTimeout > 0 && cfg.SweepInterval > 0 {
		s.wg.Add(1)
		go s.sweep()
	}

	return s
}

// Close stops the background sweeper. The store remains usable afterwards;
// idle sessions are then reaped lazily on access only.
func (s *MemoryStore) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}

func (s *MemoryStore) shard(token string) *memoryShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(token))
	return s.shards[h.Sum32()%memoryShardCount]
}

func (s *MemoryStore) Create(ctx context.Context) (*Session, error) {
	token, err := internal.NewToken()
	if err != nil {
		return nil, err
	}

	sess := newSession(token.String())
	shard := s.shard(sess.Token)

	shard.mu.Lock()
	shard.sessions[sess.Token] = sess
	shard.mu.Unlock()

	return sess.clone(), nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	shard := s.shard(token)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	sess, err := s.liveLocked(shard, token)
	if err != nil {
		return nil, err
	}

	sess.LastAccessed = time.Now().Unix()
	return sess.clone(), nil
}

func (s *MemoryStore) SetValue(ctx context.Context, token, key string, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)

	shard := s.shard(token)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	sess, err := s.liveLocked(shard, token)
	if err != nil {
		return err
	}

	sess.Values[key] = cp
	sess.LastAccessed = time.Now().Unix()
	return nil
}

func (s *MemoryStore) GetValue(ctx context.Context, token, key string) ([]byte, error) {
	shard := s.shard(token)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	sess, err := s.liveLocked(shard, token)
	if err != nil {
		return nil, err
	}

	value, ok := sess.Values[key]
	if !ok {
		return nil, ErrNoValue
	}

	sess.LastAccessed = time.Now().Unix()
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

func (s *MemoryStore) Destroy(ctx context.Context, token string) error {
	shard := s.shard(token)

	shard.mu.Lock()
	delete(shard.sessions, token)
	shard.mu.Unlock()

	return nil
}

// liveLocked returns the stored session for token, lazily evicting it when
// idle-expired. Caller holds the shard lock.
func (s *MemoryStore) liveLocked(shard *memoryShard, token string) (*Session, error) {
	sess, ok := shard.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}

	if s.expired(sess, time.Now()) {
		delete(shard.sessions, token)
		if s.cfg.OnEvict != nil {
			s.cfg.OnEvict(token)
		}
		return nil, ErrNotFound
	}

	return sess, nil
}

func (s *MemoryStore) expired(sess *Session, now time.Time) bool {
	if s.cfg.IdleTimeout <= 0 {
		return false
	}
	idle := int64(s.cfg.IdleTimeout / time.Second)
	if idle < 1 {
		idle = 1
	}
	return now.Unix()-sess.LastAccessed >= idle
}

func (s *MemoryStore) sweep() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweepOnce(time.Now())
		case <-s.done:
			return
		}
	}
}

func (s *MemoryStore) sweepOnce(now time.Time) {
	for _, shard := range s.shards {
		var evicted []string

		shard.mu.Lock()
		for token, sess := range shard.sessions {
			if s.expired(sess, now) {
				delete(shard.sessions, token)
				evicted = append(evicted, token)
			}
		}
		shard.mu.Unlock()

		// Callbacks run outside the shard lock.
		if s.cfg.OnEvict != nil {
			for _, token := range evicted {
				s.cfg.OnEvict(token)
			}
		}
	}
}

var _ Store = (*MemoryStore)(nil)
