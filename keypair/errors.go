package keypair

import "errors"

var (
	// ErrInvalidPrivateKey indicates the private key is not 32 bytes.
	ErrInvalidPrivateKey = errors.New("keypair: private key must be 32 bytes")

	// ErrInvalidPublicKey indicates the public key is not 32 bytes or not a curve point.
	ErrInvalidPublicKey = errors.New("keypair: invalid public key")

	// ErrInvalidSignature indicates a signature failed verification or has the wrong size.
	ErrInvalidSignature = errors.New("keypair: invalid signature")

	// ErrUnknownSignSchema indicates the sign schema is not SHA3 or KeccakReversedKey.
	ErrUnknownSignSchema = errors.New("keypair: unknown sign schema")
)
