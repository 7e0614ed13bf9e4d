package middleware

import (
	"net/http"

	goSession "github.com/MrEthical07/goSession"
)

// Rehydrator runs on every request before the handler: it reads the reserved
// identity reference from the resolved session and, when it resolves,
// attaches the full identity to the request context. Requests without a
// session, without a reference, or with a stale reference proceed as
// anonymous.
//
// Only backend unavailability fails the request, as a 500 with a generic
// body.
type Rehydrator struct {
	engine *goSession.Engine
}

func NewRehydrator(engine *goSession.Engine) *Rehydrator {
	return &Rehydrator{engine: engine}
}

func (*Rehydrator) Stage() Stage { return StageRehydrate }

func (m *Rehydrator) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := goSession.SessionFromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		identity, ok, err := m.engine.Rehydrate(r.Context(), sess.Token)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(goSession.ContextWithIdentity(r.Context(), identity)))
	})
}
