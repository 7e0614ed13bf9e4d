package middleware

import (
	"net/http"

	goSession "github.com/MrEthical07/goSession"
)

// Guard short-circuits requests whose context carries no rehydrated
// identity. It performs no I/O and is deterministic: the same request
// context always yields the same decision. The rejection body never says
// why.
type Guard struct {
	engine *goSession.Engine
}

func NewGuard(engine *goSession.Engine) *Guard {
	return &Guard{engine: engine}
}

func (*Guard) Stage() Stage { return StageGuard }

func (m *Guard) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := goSession.IdentityFromContext(r.Context()); !ok {
			var token string
			if sess, ok := goSession.SessionFromContext(r.Context()); ok {
				token = sess.Token
			}
			m.engine.Reject(r.Context(), token)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
