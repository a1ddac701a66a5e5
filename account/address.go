// Package account implements addresses, public accounts and signing accounts.
//
// A raw address is 25 bytes:
//
//	network(1) || RIPEMD-160(H256(publicKey))(20) || H256(first 21 bytes)[:4]
//
// where H256 is the 256-bit hash of the account's sign schema. The plain text
// form is the 40-character RFC 4648 base32 encoding of the raw bytes.
package account

import (
	"bytes"
	"encoding/base32"
	"encoding/json"
	"fmt"
	"strings"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"

	"github.com/bitfsorg/catapult-go/keypair"
)

const (
	// AddressSize is the length of a raw address.
	AddressSize = 25
	// PlainAddressLength is the length of the base32 text form.
	PlainAddressLength = 40

	checksumSize = 4
	ripemdSize   = 20
)

const base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

var addressEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Address is a 25-byte account address.
type Address struct {
	raw [AddressSize]byte
}

// NewAddress derives the address of publicKey on network using the hashes of schema.
func NewAddress(publicKey keypair.PublicKey, network NetworkType, schema keypair.SignSchema) Address {
	var a Address
	a.raw[0] = byte(network)
	copy(a.raw[1:1+ripemdSize], bsvhash.Ripemd160(schema.Sum256(publicKey[:])))
	copy(a.raw[1+ripemdSize:], schema.Sum256(a.raw[:1+ripemdSize])[:checksumSize])
	return a
}

// AddressFromRawAddress decodes the plain or hyphenated text form. The
// checksum is not verified; use IsValid for that.
func AddressFromRawAddress(text string) (Address, error) {
	plain := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(text), "-", ""))
	if len(plain) != PlainAddressLength {
		return Address{}, fmt.Errorf("%w: %q has %d characters, want %d",
			ErrInvalidAddress, text, len(plain), PlainAddressLength)
	}
	if _, ok := networkFromPrefix(plain[0]); !ok {
		return Address{}, fmt.Errorf("%w: %q does not start with a known network prefix",
			ErrInvalidAddress, text)
	}

	decoded, err := addressEncoding.DecodeString(plain)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, text, err)
	}
	return AddressFromBytes(decoded)
}

// AddressFromBytes wraps a 25-byte raw address.
func AddressFromBytes(b []byte) (Address, error) {
	if len(b) != AddressSize {
		return Address{}, fmt.Errorf("%w: raw address must be %d bytes, got %d",
			ErrInvalidAddress, AddressSize, len(b))
	}
	var a Address
	copy(a.raw[:], b)
	if !a.Network().Valid() {
		return Address{}, fmt.Errorf("%w: 0x%02x", ErrUnknownNetwork, b[0])
	}
	return a, nil
}

// Network returns the network byte of the address.
func (a Address) Network() NetworkType { return NetworkType(a.raw[0]) }

// Bytes returns a copy of the raw 25 bytes.
func (a Address) Bytes() []byte {
	out := make([]byte, AddressSize)
	copy(out, a.raw[:])
	return out
}

// Plain returns the 40-character base32 form.
func (a Address) Plain() string { return addressEncoding.EncodeToString(a.raw[:]) }

// Pretty returns the plain form split into hyphen-separated groups of six.
func (a Address) Pretty() string {
	plain := a.Plain()
	var b strings.Builder
	for i := 0; i < len(plain); i += 6 {
		if i > 0 {
			b.WriteByte('-')
		}
		end := min(i+6, len(plain))
		b.WriteString(plain[i:end])
	}
	return b.String()
}

// String returns the plain form.
func (a Address) String() string { return a.Plain() }

// IsZero reports whether a is the zero Address.
func (a Address) IsZero() bool { return a == Address{} }

// Equals reports whether both addresses have the same raw bytes.
func (a Address) Equals(o Address) bool { return a == o }

// IsValid recomputes the checksum under schema.
func (a Address) IsValid(schema keypair.SignSchema) bool {
	if !a.Network().Valid() || !schema.Valid() {
		return false
	}
	sum := schema.Sum256(a.raw[:1+ripemdSize])
	return bytes.Equal(sum[:checksumSize], a.raw[1+ripemdSize:])
}

// MarshalJSON encodes the address as its plain string.
func (a Address) MarshalJSON() ([]byte, error) { return json.Marshal(a.Plain()) }

// UnmarshalJSON accepts the plain or pretty string form.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("account: decode address: %w", err)
	}
	parsed, err := AddressFromRawAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
