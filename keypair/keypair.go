// Package keypair implements Ed25519 key pairs whose internal hash is chosen
// by a SignSchema (SHA3-512 or legacy Keccak-512) rather than fixed to SHA-512.
package keypair

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"filippo.io/edwards25519"
)

const (
	// PrivateKeySize is the size of a raw private key seed.
	PrivateKeySize = 32

	// PublicKeySize is the size of an encoded public key.
	PublicKeySize = 32

	// SignatureSize is the size of an Ed25519 signature (R || S).
	SignatureSize = 64
)

// PublicKey is an encoded Ed25519 curve point.
type PublicKey [PublicKeySize]byte

// Signature is R || S.
type Signature [SignatureSize]byte

// String returns the uppercase hex form used by the REST API.
func (p PublicKey) String() string { return fmt.Sprintf("%X", p[:]) }

// String returns the uppercase hex form used by the REST API.
func (s Signature) String() string { return fmt.Sprintf("%X", s[:]) }

// IsZero reports whether the key is the all-zero placeholder.
func (p PublicKey) IsZero() bool { return p == PublicKey{} }

// PublicKeyFromHex parses a 64-character hex public key.
func PublicKeyFromHex(s string) (PublicKey, error) {
	var pk PublicKey
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != PublicKeySize {
		return pk, fmt.Errorf("%w: %q", ErrInvalidPublicKey, s)
	}
	copy(pk[:], b)
	return pk, nil
}

// SignatureFromHex parses a 128-character hex signature.
func SignatureFromHex(s string) (Signature, error) {
	var sig Signature
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != SignatureSize {
		return sig, fmt.Errorf("%w: %q", ErrInvalidSignature, s)
	}
	copy(sig[:], b)
	return sig, nil
}

// KeyPair holds an expanded private key and its public key.
// It is immutable and safe for concurrent use.
type KeyPair struct {
	schema  SignSchema
	private [PrivateKeySize]byte
	scalar  *edwards25519.Scalar
	prefix  []byte
	public  PublicKey
}

// New derives a key pair from a 32-byte private key under the given schema.
func New(privateKey []byte, schema SignSchema) (*KeyPair, error) {
	if len(privateKey) != PrivateKeySize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidPrivateKey, len(privateKey))
	}
	if !schema.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSignSchema, schema)
	}

	seed := make([]byte, PrivateKeySize)
	copy(seed, privateKey)
	if schema == KeccakReversedKey {
		reverse(seed)
	}

	h := schema.Sum512(seed)
	s, err := edwards25519.NewScalar().SetBytesWithClamping(h[:32])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
	}

	kp := &KeyPair{
		schema: schema,
		scalar: s,
		prefix: h[32:],
	}
	copy(kp.private[:], privateKey)
	copy(kp.public[:], new(edwards25519.Point).ScalarBaseMult(s).Bytes())
	return kp, nil
}

// FromHex derives a key pair from a 64-character hex private key.
func FromHex(privateKeyHex string, schema SignSchema) (*KeyPair, error) {
	b, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
	}
	return New(b, schema)
}

// Generate creates a key pair from rand (crypto/rand when nil).
func Generate(r io.Reader, schema SignSchema) (*KeyPair, error) {
	if r == nil {
		r = rand.Reader
	}
	seed := make([]byte, PrivateKeySize)
	if _, err := io.ReadFull(r, seed); err != nil {
		return nil, fmt.Errorf("keypair: read entropy: %w", err)
	}
	return New(seed, schema)
}

// Schema returns the sign schema the pair was derived under.
func (kp *KeyPair) Schema() SignSchema { return kp.schema }

// PublicKey returns the encoded public key.
func (kp *KeyPair) PublicKey() PublicKey { return kp.public }

// PrivateKey returns a copy of the raw private key as supplied to New.
func (kp *KeyPair) PrivateKey() []byte {
	out := make([]byte, PrivateKeySize)
	copy(out, kp.private[:])
	return out
}

// Sign produces a deterministic signature over message.
//
//	r = H(prefix || M), R = rB, k = H(R || A || M), S = r + k*a
func (kp *KeyPair) Sign(message []byte) Signature {
	r, err := edwards25519.NewScalar().SetUniformBytes(kp.schema.Sum512(kp.prefix, message))
	if err != nil {
		panic("keypair: hash output is not 64 bytes")
	}
	R := new(edwards25519.Point).ScalarBaseMult(r).Bytes()

	k, err := edwards25519.NewScalar().SetUniformBytes(kp.schema.Sum512(R, kp.public[:], message))
	if err != nil {
		panic("keypair: hash output is not 64 bytes")
	}
	S := edwards25519.NewScalar().MultiplyAdd(k, kp.scalar, r)

	var sig Signature
	copy(sig[:32], R)
	copy(sig[32:], S.Bytes())
	return sig
}

// Verify checks sig over message for the public key under schema.
func Verify(publicKey PublicKey, message []byte, sig Signature, schema SignSchema) error {
	if !schema.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownSignSchema, schema)
	}
	A, err := new(edwards25519.Point).SetBytes(publicKey[:])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	S, err := edwards25519.NewScalar().SetCanonicalBytes(sig[32:])
	if err != nil {
		return ErrInvalidSignature
	}
	k, err := edwards25519.NewScalar().SetUniformBytes(schema.Sum512(sig[:32], publicKey[:], message))
	if err != nil {
		return ErrInvalidSignature
	}

	minusA := new(edwards25519.Point).Negate(A)
	R := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(k, minusA, S)
	if !bytes.Equal(sig[:32], R.Bytes()) {
		return ErrInvalidSignature
	}
	return nil
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
