package tx

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// HashSize is the length of a transaction hash.
const HashSize = 32

// Hash is a 32-byte transaction hash, secret or lock hash.
type Hash [HashSize]byte

// String returns the uppercase hex form used by the REST API.
func (h Hash) String() string { return strings.ToUpper(hex.EncodeToString(h[:])) }

// IsZero reports whether h is unset.
func (h Hash) IsZero() bool { return h == Hash{} }

// ParseHash decodes a 64-character hex hash.
func ParseHash(s string) (Hash, error) {
	var h Hash
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != HashSize {
		return h, fmt.Errorf("%w: hash %q", ErrInvalidParams, s)
	}
	copy(h[:], b)
	return h, nil
}

// MarshalJSON encodes h as uppercase hex.
func (h Hash) MarshalJSON() ([]byte, error) { return json.Marshal(h.String()) }

// UnmarshalJSON decodes a hex string.
func (h *Hash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseHash(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
