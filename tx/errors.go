package tx

import "errors"

var (
	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("tx: required parameter is nil")

	// ErrInvalidDeadline indicates a deadline outside (now, now+24h].
	ErrInvalidDeadline = errors.New("tx: invalid deadline")

	// ErrInvalidParams indicates invalid transaction fields.
	ErrInvalidParams = errors.New("tx: invalid parameters")

	// ErrMissingSigner indicates an inner aggregate transaction without a signer.
	ErrMissingSigner = errors.New("tx: inner transaction has no signer")

	// ErrNetworkMismatch indicates a transaction built for a different network than the signing params.
	ErrNetworkMismatch = errors.New("tx: network type mismatch")

	// ErrNotBondedAggregate indicates a hash lock built for a transaction that is not an aggregate bonded.
	ErrNotBondedAggregate = errors.New("tx: signed transaction must be an aggregate bonded")

	// ErrNotAggregate indicates a cosignature operation on a non-aggregate transaction.
	ErrNotAggregate = errors.New("tx: transaction is not an aggregate")

	// ErrHashMismatch indicates a cosignature for a different aggregate hash.
	ErrHashMismatch = errors.New("tx: cosignature parent hash mismatch")

	// ErrInvalidCosignature indicates a cosignature that does not verify.
	ErrInvalidCosignature = errors.New("tx: invalid cosignature")

	// ErrMessageTooLarge indicates a message payload over the transfer limit.
	ErrMessageTooLarge = errors.New("tx: message too large")
)
