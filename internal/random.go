package internal

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// Token is an opaque session token: 32 bytes of crypto/rand output, giving
// 256 bits of entropy. Collisions among live tokens are ruled out by entropy
// width, not by retry.
type Token [32]byte

func NewToken() (Token, error) {
	var t Token
	_, err := rand.Read(t[:])
	return t, err
}

func (t Token) String() string {
	// base64url, no padding, compact
	return base64.RawURLEncoding.EncodeToString(t[:])
}

func ParseToken(token string) (Token, error) {
	var t Token

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return t, err
	}
	if len(raw) != len(t) {
		return t, errors.New("invalid token size")
	}

	copy(t[:], raw)
	return t, nil
}
