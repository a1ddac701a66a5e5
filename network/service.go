package network

import (
	"context"

	"github.com/bitfsorg/catapult-go/chain"
	"github.com/bitfsorg/catapult-go/ids"
	"github.com/bitfsorg/catapult-go/tx"
)

// TransactionService submits transactions to a node and queries their state.
// Announcing only hands the payload over; the validation outcome arrives on
// the push channel.
type TransactionService interface {
	// Announce submits a signed transaction.
	Announce(ctx context.Context, signed *tx.SignedTransaction) error

	// AnnounceAggregateBonded submits a signed aggregate bonded to the partial pool.
	AnnounceAggregateBonded(ctx context.Context, signed *tx.SignedTransaction) error

	// AnnounceCosignature submits a detached cosignature.
	AnnounceCosignature(ctx context.Context, cosig *tx.CosignatureSignedTransaction) error

	// GetTransactionStatus returns the node's view of a transaction.
	GetTransactionStatus(ctx context.Context, hash tx.Hash) (*TransactionStatus, error)

	// GetGenerationHash returns the generation hash of the node's chain.
	GetGenerationHash(ctx context.Context) (chain.GenerationHash, error)
}

// Status groups reported by the node.
const (
	GroupUnconfirmed = "unconfirmed"
	GroupConfirmed   = "confirmed"
	GroupFailed      = "failed"
)

// TransactionStatus is the node's view of a transaction.
type TransactionStatus struct {
	Group    string     `json:"group"`
	Status   string     `json:"status"`
	Hash     tx.Hash    `json:"hash"`
	Deadline ids.UInt64 `json:"deadline"`
	Height   ids.UInt64 `json:"height"`
}

// IsSuccess reports whether the node accepted the transaction.
func (s *TransactionStatus) IsSuccess() bool { return s.Status == "Success" }
