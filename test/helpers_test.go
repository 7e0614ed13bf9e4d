package test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	goSession "github.com/MrEthical07/goSession"
	"github.com/MrEthical07/goSession/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type memoryProvider struct {
	mu         sync.RWMutex
	byUsername map[string]goSession.Identity
	byID       map[string]goSession.Identity
}

func newMemoryProvider() *memoryProvider {
	return &memoryProvider{
		byUsername: map[string]goSession.Identity{},
		byID:       map[string]goSession.Identity{},
	}
}

func (p *memoryProvider) put(identity goSession.Identity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byUsername[identity.Username] = identity
	p.byID[identity.ID] = identity
}

func (p *memoryProvider) remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if identity, ok := p.byID[id]; ok {
		delete(p.byID, id)
		delete(p.byUsername, identity.Username)
	}
}

func (p *memoryProvider) FindByUsername(ctx context.Context, username string) (goSession.Identity, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	identity, ok := p.byUsername[username]
	if !ok {
		return goSession.Identity{}, goSession.ErrIdentityNotFound
	}
	return identity, nil
}

func (p *memoryProvider) FindByID(ctx context.Context, id string) (goSession.Identity, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	identity, ok := p.byID[id]
	if !ok {
		return goSession.Identity{}, goSession.ErrIdentityNotFound
	}
	return identity, nil
}

type app struct {
	server   *httptest.Server
	client   *http.Client
	engine   *goSession.Engine
	provider *memoryProvider
}

// newApp wires a complete application: redis-backed sessions (miniredis),
// the full middleware pipeline, login/logout, and one protected route.
func newApp(t *testing.T) *app {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := goSession.DefaultConfig()
	cfg.Cookie.Secure = false // httptest serves plain HTTP
	cfg.Password = goSession.PasswordConfig{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	}

	provider := newMemoryProvider()
	engine, err := goSession.New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithIdentityProvider(provider).
		Build()
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}
	t.Cleanup(engine.Close)

	unprotected := middleware.MustChain(
		middleware.NewSessionResolver(engine),
		middleware.NewRehydrator(engine),
	)
	protected := middleware.MustChain(
		middleware.NewSessionResolver(engine),
		middleware.NewRehydrator(engine),
		middleware.NewGuard(engine),
	)

	mux := http.NewServeMux()
	mux.Handle("GET /", unprotected.ThenFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("public"))
	}))
	mux.Handle("POST /login", unprotected.Then(middleware.LoginHandler(engine)))
	mux.Handle("POST /logout", unprotected.Then(middleware.LogoutHandler(engine)))
	mux.Handle("GET /me", protected.ThenFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, _ := goSession.IdentityFromContext(r.Context())
		_, _ = w.Write([]byte(identity.Username))
	}))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}

	return &app{
		server:   server,
		client:   &http.Client{Jar: jar},
		engine:   engine,
		provider: provider,
	}
}

func (a *app) seed(t *testing.T, username, secret string) goSession.Identity {
	t.Helper()

	hash, err := a.engine.HashSecret(secret)
	if err != nil {
		t.Fatalf("hash secret: %v", err)
	}
	identity := goSession.Identity{ID: "id-" + username, Username: username, SecretHash: hash}
	a.provider.put(identity)
	return identity
}

func (a *app) get(t *testing.T, path string) *http.Response {
	t.Helper()

	resp, err := a.client.Get(a.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (a *app) postJSON(t *testing.T, path, body string) *http.Response {
	t.Helper()

	resp, err := a.client.Post(a.server.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (a *app) login(t *testing.T, username, secret string) *http.Response {
	t.Helper()
	return a.postJSON(t, "/login", `{"username":"`+username+`","password":"`+secret+`"}`)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(data)
}
