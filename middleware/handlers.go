package middleware

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	goSession "github.com/MrEthical07/goSession"
)

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Secret   string `json:"secret"`
}

func (req loginRequest) credentials() (goSession.Credentials, bool) {
	username := req.Username
	if username == "" {
		username = req.Email
	}
	secret := req.Password
	if secret == "" {
		secret = req.Secret
	}
	if username == "" || secret == "" {
		return goSession.Credentials{}, false
	}
	return goSession.Credentials{Username: username, Secret: secret}, true
}

// LoginHandler performs the one stateful transition: parse credentials,
// verify, persist the identity reference into the session this request
// resolved, respond. The cookie set by [SessionResolver] is what carries the
// token forward. On verification failure nothing is written and the body does
// not distinguish unknown users from wrong secrets.
//
// Mount it behind the unprotected chain (resolve + rehydrate); [NewChain]
// guarantees the session exists before this handler runs.
func LoginHandler(engine *goSession.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := goSession.SessionFromContext(r.Context())
		if !ok {
			// Resolution could not produce a session (backend down).
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		creds, ok := parseCredentials(r)
		if !ok {
			http.Error(w, "bad credentials", http.StatusBadRequest)
			return
		}

		identity, err := engine.VerifyCredentials(r.Context(), creds)
		if err != nil {
			if errors.Is(err, goSession.ErrInvalidCredentials) {
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// Synchronous: the reference is visible to any later request with
		// this token before the success response is written.
		if err := engine.Persist(r.Context(), sess.Token, identity); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// LogoutHandler destroys the current session and expires the cookie. Safe to
// call without a session; logout is idempotent.
func LogoutHandler(engine *goSession.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess, ok := goSession.SessionFromContext(r.Context()); ok {
			if err := engine.Logout(r.Context(), sess.Token); err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
		}

		http.SetCookie(w, expiredCookie(engine.CookieConfig()))
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

func parseCredentials(r *http.Request) (goSession.Credentials, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "application/json" {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return goSession.Credentials{}, false
		}
		return req.credentials()
	}

	if err := r.ParseForm(); err != nil {
		return goSession.Credentials{}, false
	}
	req := loginRequest{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Secret:   r.PostFormValue("secret"),
	}
	return req.credentials()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
