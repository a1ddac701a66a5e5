package listener

import (
	"errors"
	"fmt"

	"github.com/bitfsorg/catapult-go/ids"
	"github.com/bitfsorg/catapult-go/tx"
)

var (
	// ErrNotOpen indicates use of a listener before Open completed.
	ErrNotOpen = errors.New("listener: not open")

	// ErrAlreadyOpen indicates a second call to Open.
	ErrAlreadyOpen = errors.New("listener: already open")

	// ErrClosed indicates use of a closed listener, or a wait cancelled by Close.
	ErrClosed = errors.New("listener: closed")

	// ErrCancelled indicates a wait cancelled by its owner.
	ErrCancelled = errors.New("listener: wait cancelled")

	// ErrConnectionLost indicates the push channel dropped while waits were pending.
	ErrConnectionLost = errors.New("listener: connection lost")

	// ErrHandshake indicates the node did not send a channel identifier.
	ErrHandshake = errors.New("listener: handshake failed")

	// ErrInvalidNodeURL indicates a node URL that cannot be turned into a websocket endpoint.
	ErrInvalidNodeURL = errors.New("listener: invalid node URL")
)

// StatusError is a rejection reported by the node on the status channel.
type StatusError struct {
	Hash     tx.Hash
	Status   string
	Deadline ids.UInt64
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("listener: transaction %s rejected: %s", e.Hash, e.Status)
}
