package network

import (
	"context"

	"github.com/bitfsorg/catapult-go/chain"
	"github.com/bitfsorg/catapult-go/tx"
)

// MockTransactionService is a test double for TransactionService.
// All function fields must be set before the corresponding method is called.
type MockTransactionService struct {
	AnnounceFn                func(ctx context.Context, signed *tx.SignedTransaction) error
	AnnounceAggregateBondedFn func(ctx context.Context, signed *tx.SignedTransaction) error
	AnnounceCosignatureFn     func(ctx context.Context, cosig *tx.CosignatureSignedTransaction) error
	GetTransactionStatusFn    func(ctx context.Context, hash tx.Hash) (*TransactionStatus, error)
	GetGenerationHashFn       func(ctx context.Context) (chain.GenerationHash, error)
}

func (m *MockTransactionService) Announce(ctx context.Context, signed *tx.SignedTransaction) error {
	return m.AnnounceFn(ctx, signed)
}
func (m *MockTransactionService) AnnounceAggregateBonded(ctx context.Context, signed *tx.SignedTransaction) error {
	return m.AnnounceAggregateBondedFn(ctx, signed)
}
func (m *MockTransactionService) AnnounceCosignature(ctx context.Context, cosig *tx.CosignatureSignedTransaction) error {
	return m.AnnounceCosignatureFn(ctx, cosig)
}
func (m *MockTransactionService) GetTransactionStatus(ctx context.Context, hash tx.Hash) (*TransactionStatus, error) {
	return m.GetTransactionStatusFn(ctx, hash)
}
func (m *MockTransactionService) GetGenerationHash(ctx context.Context) (chain.GenerationHash, error) {
	return m.GetGenerationHashFn(ctx)
}
