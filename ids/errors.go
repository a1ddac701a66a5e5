package ids

import "errors"

var (
	// ErrInvalidHex indicates a hex identifier is malformed or not 16 characters.
	ErrInvalidHex = errors.New("ids: invalid hex identifier")

	// ErrInvalidLength indicates a byte buffer has the wrong length.
	ErrInvalidLength = errors.New("ids: invalid byte length")

	// ErrOverflow indicates an addition exceeded 2^64-1.
	ErrOverflow = errors.New("ids: uint64 overflow")

	// ErrInvalidNamespaceName indicates a namespace part is empty, too long or has illegal characters.
	ErrInvalidNamespaceName = errors.New("ids: invalid namespace name")

	// ErrNamespaceTooDeep indicates the dotted name has more levels than the network allows.
	ErrNamespaceTooDeep = errors.New("ids: namespace depth exceeds maximum")

	// ErrInvalidNonce indicates a mosaic nonce is not 4 bytes.
	ErrInvalidNonce = errors.New("ids: mosaic nonce must be 4 bytes")
)
