package ids

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"
)

// namespaceFlag is bit 63: set for namespace ids, clear for mosaic ids.
const namespaceFlag = UInt64(1) << 63

// MosaicNonce is the 4-byte nonce mixed into a mosaic id.
type MosaicNonce [4]byte

// NonceFromUint32 encodes n little-endian, matching the wire form.
func NonceFromUint32(n uint32) MosaicNonce {
	var nonce MosaicNonce
	binary.LittleEndian.PutUint32(nonce[:], n)
	return nonce
}

// NonceFromHex parses an 8-character hex nonce.
func NonceFromHex(s string) (MosaicNonce, error) {
	var nonce MosaicNonce
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != len(nonce) {
		return nonce, fmt.Errorf("%w: %q", ErrInvalidNonce, s)
	}
	copy(nonce[:], b)
	return nonce, nil
}

// RandomNonce draws a nonce from r (crypto/rand when nil).
func RandomNonce(r io.Reader) (MosaicNonce, error) {
	var nonce MosaicNonce
	if r == nil {
		r = rand.Reader
	}
	if _, err := io.ReadFull(r, nonce[:]); err != nil {
		return nonce, fmt.Errorf("ids: read nonce: %w", err)
	}
	return nonce, nil
}

// Uint32 returns the little-endian value of the nonce.
func (n MosaicNonce) Uint32() uint32 { return binary.LittleEndian.Uint32(n[:]) }

// Hex returns the uppercase hex form.
func (n MosaicNonce) Hex() string { return fmt.Sprintf("%X", n[:]) }

// MosaicId identifies a mosaic definition.
type MosaicId struct {
	id UInt64
}

// NewMosaicId wraps a raw value. Bit 63 is not checked: ledger-read ids are
// taken as given.
func NewMosaicId(v UInt64) MosaicId { return MosaicId{id: v} }

// MosaicIdFromHex parses a 16-character hex id.
func MosaicIdFromHex(s string) (MosaicId, error) {
	v, err := UInt64FromHex(s)
	if err != nil {
		return MosaicId{}, err
	}
	return MosaicId{id: v}, nil
}

// DeriveMosaicId computes SHA3-256(nonce || ownerPublicKey), takes the first
// 8 bytes little-endian and clears bit 63.
func DeriveMosaicId(nonce MosaicNonce, ownerPublicKey []byte) MosaicId {
	h := sha3.New256()
	h.Write(nonce[:])
	h.Write(ownerPublicKey)
	sum := h.Sum(nil)
	v := UInt64(binary.LittleEndian.Uint64(sum[:8])) &^ namespaceFlag
	return MosaicId{id: v}
}

// Id returns the 64-bit value.
func (m MosaicId) Id() UInt64 { return m.id }

// Hex returns the 16-character uppercase hex form.
func (m MosaicId) Hex() string { return m.id.Hex() }

// String implements fmt.Stringer.
func (m MosaicId) String() string { return m.id.Hex() }

// Equals compares by value.
func (m MosaicId) Equals(o Unresolved) bool { return o != nil && m.id == o.Id() }

// MarshalJSON encodes the id as a word pair.
func (m MosaicId) MarshalJSON() ([]byte, error) { return m.id.MarshalJSON() }
