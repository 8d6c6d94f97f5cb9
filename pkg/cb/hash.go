package cb

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"lukechampine.com/blake3"
)

// HashSize is the width of Hash, Attachment and BinaryAttachment payloads.
const HashSize = 20

// Hash is a BLAKE3 digest truncated to 20 bytes.
type Hash [HashSize]byte

// ZeroHash is the hash value of a missing or null attachment.
var ZeroHash Hash

// HashOf hashes data.
func HashOf(data []byte) Hash {
	var h Hash
	sum := blake3.Sum256(data)
	copy(h[:], sum[:HashSize])
	return h
}

// hashParts hashes the concatenation of parts without joining them.
func hashParts(parts ...[]byte) Hash {
	hasher := blake3.New(32, nil)
	for _, p := range parts {
		_, _ = hasher.Write(p)
	}
	var h Hash
	copy(h[:], hasher.Sum(nil)[:HashSize])
	return h
}

// ParseHash decodes a 40 character hex string.
func ParseHash(s string) (Hash, error) {
	var h Hash
	if len(s) != 2*HashSize {
		return h, fmt.Errorf("cb: hash %q: want %d hex characters", s, 2*HashSize)
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return h, fmt.Errorf("cb: hash %q: %w", s, err)
	}
	return h, nil
}

func (h Hash) IsZero() bool { return h == ZeroHash }

func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// Compare orders hashes by their bytes.
func (h Hash) Compare(o Hash) int { return bytes.Compare(h[:], o[:]) }

func (h Hash) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

func (h *Hash) UnmarshalText(b []byte) error {
	v, err := ParseHash(string(b))
	if err != nil {
		return err
	}
	*h = v
	return nil
}
