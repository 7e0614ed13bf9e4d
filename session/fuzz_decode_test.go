package session

import "testing"

// FuzzDecode exercises the binary payload decoder with arbitrary inputs.
// Goal: no panics, no unexpected nil dereferences, graceful error handling.
func FuzzDecode(f *testing.F) {
	// Seed with a valid encoded session.
	sess := newSession("tok-fuzz")
	sess.Values["identity_id"] = []byte("user-1")
	sess.Values["k"] = []byte{0, 1, 2}
	encoded, err := Encode(sess)
	if err == nil {
		f.Add(encoded)
	}

	// Empty and short inputs.
	f.Add([]byte{})
	f.Add([]byte{0})
	f.Add([]byte{1})
	f.Add([]byte{255, 255, 255})

	// Truncated at various offsets.
	if len(encoded) > 10 {
		f.Add(encoded[:10])
	}
	if len(encoded) > 20 {
		f.Add(encoded[:20])
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		// Must not panic. Errors are expected for malformed input.
		s, err := Decode(data)
		if err != nil {
			return
		}

		// If decode succeeded, re-encode should not fail either.
		if _, err := Encode(s); err != nil {
			t.Fatalf("re-encode of decoded session failed: %v", err)
		}
	})
}
