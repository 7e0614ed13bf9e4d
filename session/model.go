package session

import "time"

// Session is the server-side state for one client. Token is the opaque
// identifier carried by the client's cookie; Values is the arbitrary
// per-client payload.
//
// Stores hand out copies: mutating a returned Session does not affect stored
// state. All mutation goes through Store.SetValue.
type Session struct {
	Token  string
	Values map[string][]byte

	CreatedAt    int64
	LastAccessed int64
}

func newSession(token string) *Session {
	now := time.Now().Unix()
	return &Session{
		Token:        token,
		Values:       map[string][]byte{},
		CreatedAt:    now,
		LastAccessed: now,
	}
}

// clone returns a deep copy safe to hand outside a store's lock.
func (s *Session) clone() *Session {
	values := make(map[string][]byte, len(s.Values))
	for k, v := range s.Values {
		cp := make([]byte, len(v))
		copy(cp, v)
		values[k] = cp
	}
	return &Session{
		Token:        s.Token,
		Values:       values,
		CreatedAt:    s.CreatedAt,
		LastAccessed: s.LastAccessed,
	}
}
