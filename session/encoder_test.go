package session

import (
	"bytes"
	"testing"
	"time"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	now := time.Now().Unix()
	sess := &Session{
		Token: "tok-1",
		Values: map[string][]byte{
			"identity_id": []byte("user-42"),
			"theme":       []byte("dark"),
			"empty":       {},
		},
		CreatedAt:    now - 100,
		LastAccessed: now,
	}

	data, err := Encode(sess)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if decoded.CreatedAt != sess.CreatedAt || decoded.LastAccessed != sess.LastAccessed {
		t.Fatalf("timestamps mismatch: got (%d, %d)", decoded.CreatedAt, decoded.LastAccessed)
	}
	if len(decoded.Values) != len(sess.Values) {
		t.Fatalf("expected %d values, got %d", len(sess.Values), len(decoded.Values))
	}
	for k, v := range sess.Values {
		if !bytes.Equal(decoded.Values[k], v) {
			t.Fatalf("value %q mismatch: %q", k, decoded.Values[k])
		}
	}
}

func TestEncodeRejectsOversizedKey(t *testing.T) {
	key := make([]byte, maxKeyLength+1)
	for i := range key {
		key[i] = 'k'
	}
	sess := newSession("tok")
	sess.Values[string(key)] = []byte("v")

	if _, err := Encode(sess); err == nil {
		t.Fatal("expected error for oversized key")
	}
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	cases := map[string][]byte{
		"empty":           {},
		"short":           {1, 0, 0},
		"bad version":     append([]byte{99}, make([]byte, 18)...),
		"truncated count": append([]byte{1}, make([]byte, 16)...),
	}

	for name, data := range cases {
		if _, err := Decode(data); err == nil {
			t.Fatalf("%s: expected decode error", name)
		}
	}
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	data, err := Encode(newSession("tok"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if _, err := Decode(append(data, 0xFF)); err == nil {
		t.Fatal("expected error for trailing bytes")
	}
}
