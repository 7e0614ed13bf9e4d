package session

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	payloadFormatVersionCurrent = 1

	maxPayloadEntries = 1 << 12
	maxKeyLength      = 255
	maxValueLength    = 1 << 20
)

// Encode serializes a session payload to the compact binary wire format:
//
//	[version u8][createdAt i64][lastAccessed i64][count u16]
//	count × ([keyLen u8][key][valueLen u32][value])
//
// The token is not part of the blob; it is the storage key.
func Encode(s *Session) ([]byte, error) {
	if len(s.Values) > maxPayloadEntries {
		return nil, errors.New("too many payload entries")
	}

	var buf bytes.Buffer
	buf.WriteByte(payloadFormatVersionCurrent)

	if err := binary.Write(&buf, binary.BigEndian, s.CreatedAt); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, s.LastAccessed); err != nil {
		return nil, err
	}

	if err := binary.Write(&buf, binary.BigEndian, uint16(len(s.Values))); err != nil {
		return nil, err
	}

	for key, value := range s.Values {
		if len(key) == 0 || len(key) > maxKeyLength {
			return nil, errors.New("invalid payload key length")
		}
		if len(value) > maxValueLength {
			return nil, errors.New("payload value too large")
		}

		buf.WriteByte(byte(len(key)))
		buf.WriteString(key)
		if err := binary.Write(&buf, binary.BigEndian, uint32(len(value))); err != nil {
			return nil, err
		}
		buf.Write(value)
	}

	return buf.Bytes(), nil
}

// Decode parses a blob produced by [Encode]. Malformed or truncated input
// returns an error; Decode never panics on arbitrary bytes.
func Decode(data []byte) (*Session, error) {
	if len(data) < 1+8+8+2 {
		return nil, errors.New("session blob too short")
	}

	if data[0] != payloadFormatVersionCurrent {
		return nil, errors.New("unknown session format version")
	}
	idx := 1

	createdAt := int64(binary.BigEndian.Uint64(data[idx:]))
	idx += 8
	lastAccessed := int64(binary.BigEndian.Uint64(data[idx:]))
	idx += 8

	count := int(binary.BigEndian.Uint16(data[idx:]))
	idx += 2
	if count > maxPayloadEntries {
		return nil, errors.New("too many payload entries")
	}

	values := make(map[string][]byte, count)
	for i := 0; i < count; i++ {
		if idx >= len(data) {
			return nil, errors.New("truncated payload key length")
		}
		keyLen := int(data[idx])
		idx++
		if keyLen == 0 || idx+keyLen > len(data) {
			return nil, errors.New("truncated payload key")
		}
		key := string(data[idx : idx+keyLen])
		idx += keyLen

		if idx+4 > len(data) {
			return nil, errors.New("truncated payload value length")
		}
		valueLen := int(binary.BigEndian.Uint32(data[idx:]))
		idx += 4
		if valueLen > maxValueLength || idx+valueLen > len(data) {
			return nil, errors.New("truncated payload value")
		}
		value := make([]byte, valueLen)
		copy(value, data[idx:idx+valueLen])
		idx += valueLen

		if _, dup := values[key]; dup {
			return nil, errors.New("duplicate payload key")
		}
		values[key] = value
	}

	if idx != len(data) {
		return nil, errors.New("trailing bytes after payload")
	}

	return &Session{
		Values:       values,
		CreatedAt:    createdAt,
		LastAccessed: lastAccessed,
	}, nil
}
