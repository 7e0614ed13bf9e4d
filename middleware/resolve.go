package middleware

import (
	"net/http"
	"time"

	goSession "github.com/MrEthical07/goSession"
)

// SessionResolver reads the session cookie, creates a store entry on first
// contact, and attaches the resolved session to the request context. It is
// the only stage permitted to set the session cookie.
//
// Resolution never fails a request: with the backend down the request simply
// proceeds without a session, which downstream stages read as anonymous.
type SessionResolver struct {
	engine *goSession.Engine
}

func NewSessionResolver(engine *goSession.Engine) *SessionResolver {
	return &SessionResolver{engine: engine}
}

func (*SessionResolver) Stage() Stage { return StageResolve }

func (m *SessionResolver) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookieCfg := m.engine.CookieConfig()

		var token string
		if cookie, err := r.Cookie(cookieCfg.Name); err == nil {
			token = cookie.Value
		}

		sess, created, err := m.engine.ResolveSession(r.Context(), token)
		if err != nil {
			// Backend down: anonymous pass-through. Protected routes still
			// 401 at the guard; login surfaces the failure itself.
			next.ServeHTTP(w, r)
			return
		}

		if created {
			http.SetCookie(w, sessionCookie(cookieCfg, sess.Token))
		}

		next.ServeHTTP(w, r.WithContext(goSession.ContextWithSession(r.Context(), sess)))
	})
}

func sessionCookie(cfg goSession.CookieConfig, token string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     cfg.Name,
		Value:    token,
		Path:     cfg.Path,
		Domain:   cfg.Domain,
		HttpOnly: cfg.HTTPOnly,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSite,
	}
	if cfg.MaxAge > 0 {
		cookie.MaxAge = int(cfg.MaxAge / time.Second)
	}
	return cookie
}

// expiredCookie clears the session cookie on logout.
func expiredCookie(cfg goSession.CookieConfig) *http.Cookie {
	cookie := sessionCookie(cfg, "")
	cookie.MaxAge = -1
	return cookie
}
