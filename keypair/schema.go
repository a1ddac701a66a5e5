package keypair

import (
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/sha3"
)

// SignSchema selects the hash primitive used for key derivation, signing and
// address derivation. The two schemas are incompatible with each other.
type SignSchema uint8

const (
	// SHA3 is the Catapult schema: SHA3-256 / SHA3-512.
	SHA3 SignSchema = 1

	// KeccakReversedKey is the earlier network generation: legacy
	// Keccak-256 / Keccak-512 and a byte-reversed private key.
	KeccakReversedKey SignSchema = 2
)

// String returns the schema name as used in configuration files.
func (s SignSchema) String() string {
	switch s {
	case SHA3:
		return "sha3"
	case KeccakReversedKey:
		return "keccak"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// ParseSignSchema parses "sha3" or "keccak".
func ParseSignSchema(name string) (SignSchema, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sha3":
		return SHA3, nil
	case "keccak", "keccak_reversed_key":
		return KeccakReversedKey, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSignSchema, name)
}

// Valid reports whether s is one of the supported schemas.
func (s SignSchema) Valid() bool {
	return s == SHA3 || s == KeccakReversedKey
}

// New256 returns the schema's 256-bit hash.
func (s SignSchema) New256() hash.Hash {
	if s == KeccakReversedKey {
		return sha3.NewLegacyKeccak256()
	}
	return sha3.New256()
}

// New512 returns the schema's 512-bit hash.
func (s SignSchema) New512() hash.Hash {
	if s == KeccakReversedKey {
		return sha3.NewLegacyKeccak512()
	}
	return sha3.New512()
}

// Sum256 hashes the concatenation of parts with the schema's 256-bit hash.
func (s SignSchema) Sum256(parts ...[]byte) []byte {
	h := s.New256()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// Sum512 hashes the concatenation of parts with the schema's 512-bit hash.
func (s SignSchema) Sum512(parts ...[]byte) []byte {
	h := s.New512()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}
