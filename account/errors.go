package account

import "errors"

var (
	// ErrInvalidAddress indicates an address string or buffer that cannot be decoded.
	ErrInvalidAddress = errors.New("account: invalid address")

	// ErrUnknownNetwork indicates a network byte or name outside the known set.
	ErrUnknownNetwork = errors.New("account: unknown network type")

	// ErrNetworkMismatch indicates an address whose network differs from the expected one.
	ErrNetworkMismatch = errors.New("account: address network mismatch")
)
