// Package ids holds the ledger's 64-bit value type and the identifiers
// derived from it: mosaic ids (nonce + owner) and namespace ids (dotted names).
package ids

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// UInt64 is an unsigned 64-bit ledger value. The REST API exchanges it as a
// [lower, higher] pair of 32-bit words, which Lower/Higher/FromUints expose.
type UInt64 uint64

// FromUints builds a value from its low and high 32-bit words.
func FromUints(lower, higher uint32) UInt64 {
	return UInt64(uint64(higher)<<32 | uint64(lower))
}

// Lower returns the low 32-bit word.
func (v UInt64) Lower() uint32 { return uint32(v) }

// Higher returns the high 32-bit word.
func (v UInt64) Higher() uint32 { return uint32(v >> 32) }

// Uint64 returns the native value.
func (v UInt64) Uint64() uint64 { return uint64(v) }

// Int64 converts to a signed host integer, reporting false when it does not fit.
func (v UInt64) Int64() (int64, bool) {
	if v > math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}

// Add returns v + o, failing rather than wrapping on overflow.
func (v UInt64) Add(o UInt64) (UInt64, error) {
	sum := v + o
	if sum < v {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, v, o)
	}
	return sum, nil
}

// Compare returns -1, 0 or 1.
func (v UInt64) Compare(o UInt64) int {
	switch {
	case v < o:
		return -1
	case v > o:
		return 1
	}
	return 0
}

// IsZero reports whether the value is zero.
func (v UInt64) IsZero() bool { return v == 0 }

// Bytes returns the 8-byte little-endian wire form.
func (v UInt64) Bytes() []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(v))
	return b
}

// UInt64FromBytes parses an 8-byte little-endian buffer.
func UInt64FromBytes(b []byte) (UInt64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("%w: want 8 bytes, got %d", ErrInvalidLength, len(b))
	}
	return UInt64(binary.LittleEndian.Uint64(b)), nil
}

// Hex returns the 16-character uppercase hex form (most significant first).
func (v UInt64) Hex() string {
	return fmt.Sprintf("%016X", uint64(v))
}

// String returns the decimal form.
func (v UInt64) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

// UInt64FromHex parses a 16-character hex string.
func UInt64FromHex(s string) (UInt64, error) {
	if len(s) != 16 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return UInt64(binary.BigEndian.Uint64(b)), nil
}

// MarshalJSON encodes as the REST [lower, higher] word pair.
func (v UInt64) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]uint32{v.Lower(), v.Higher()})
}

// UnmarshalJSON accepts a [lower, higher] pair, a decimal string or a bare number.
func (v *UInt64) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(trimmed, "["):
		var words [2]uint32
		if err := json.Unmarshal(data, &words); err != nil {
			return fmt.Errorf("ids: decode uint64 words: %w", err)
		}
		*v = FromUints(words[0], words[1])
	case strings.HasPrefix(trimmed, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("ids: decode uint64 string: %w", err)
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("ids: decode uint64 string: %w", err)
		}
		*v = UInt64(n)
	default:
		n, err := strconv.ParseUint(trimmed, 10, 64)
		if err != nil {
			return fmt.Errorf("ids: decode uint64: %w", err)
		}
		*v = UInt64(n)
	}
	return nil
}
