// Package tx builds, encodes and signs ledger transactions.
//
// A Transaction is a shared envelope plus one Body from a closed set of
// variants. Every consumer (size formula, encoder, JSON export) switches on
// the concrete Body type.
package tx

import (
	"fmt"
	"strings"

	"github.com/bitfsorg/catapult-go/account"
	"github.com/bitfsorg/catapult-go/ids"
	"github.com/bitfsorg/catapult-go/keypair"
)

// Header holds the envelope fields chosen by the caller.
type Header struct {
	Network  account.NetworkType
	Deadline Deadline
	MaxFee   ids.UInt64
}

// Transaction is an envelope plus a variant body.
type Transaction struct {
	Header

	// Version overrides the type's default schema version when non-zero.
	Version uint8

	// Signer is required for inner transactions of an aggregate and is
	// populated for transactions read from the ledger.
	Signer    *account.PublicAccount
	Signature *keypair.Signature

	Body Body

	// Info is present only for transactions read from the ledger.
	Info *TransactionInfo
}

// TransactionInfo locates a transaction on the ledger.
type TransactionInfo struct {
	Height              ids.UInt64 `json:"height"`
	Index               uint32     `json:"index"`
	Id                  string     `json:"id"`
	Hash                Hash       `json:"hash"`
	MerkleComponentHash Hash       `json:"merkleComponentHash"`
	AggregateHash       *Hash      `json:"aggregateHash,omitempty"`
	AggregateId         string     `json:"aggregateId,omitempty"`
}

// New validates body and wraps it in an envelope.
func New(h Header, body Body) (*Transaction, error) {
	if body == nil {
		return nil, fmt.Errorf("%w: body", ErrNilParam)
	}
	t := &Transaction{Header: h, Body: body}
	if err := validateBody(t.Body); err != nil {
		return nil, err
	}
	return t, nil
}

// Type returns the type code of the body.
func (t *Transaction) Type() Type { return bodyType(t.Body) }

// EffectiveVersion returns Version, or the type's default when unset.
func (t *Transaction) EffectiveVersion() uint8 {
	if t.Version != 0 {
		return t.Version
	}
	return t.Type().DefaultVersion()
}

// IsSigned reports whether the transaction carries a signature.
func (t *Transaction) IsSigned() bool { return t.Signature != nil }

// IsFromLedger reports whether the transaction was read from the ledger.
func (t *Transaction) IsFromLedger() bool { return t.Info != nil }

// ToAggregate returns a copy of t for embedding in an aggregate, signed by signer.
func (t *Transaction) ToAggregate(signer *account.PublicAccount) *Transaction {
	inner := *t
	inner.Signer = signer
	inner.Signature = nil
	inner.Info = nil
	return &inner
}

// NewHashLock builds a lock that deposits mosaic for duration blocks against
// the hash of signed, which must be an aggregate bonded transaction.
func NewHashLock(h Header, mosaic Mosaic, duration ids.UInt64, signed *SignedTransaction) (*Transaction, error) {
	if signed == nil {
		return nil, fmt.Errorf("%w: signed transaction", ErrNilParam)
	}
	if signed.Type != TypeAggregateBonded {
		return nil, fmt.Errorf("%w: got %s", ErrNotBondedAggregate, signed.Type)
	}
	return New(h, &HashLock{Mosaic: mosaic, Duration: duration, Hash: signed.Hash})
}

// NewAggregateComplete wraps inner transactions whose signers all sign up front.
func NewAggregateComplete(h Header, inner ...*Transaction) (*Transaction, error) {
	return New(h, &Aggregate{InnerTransactions: inner})
}

// NewAggregateBonded wraps inner transactions whose cosignatures arrive later.
func NewAggregateBonded(h Header, inner ...*Transaction) (*Transaction, error) {
	return New(h, &Aggregate{Bonded: true, InnerTransactions: inner})
}

// NewRootNamespace registers a root namespace for duration blocks.
func NewRootNamespace(h Header, name string, duration ids.UInt64) (*Transaction, error) {
	if strings.Contains(name, ".") {
		return nil, fmt.Errorf("%w: root namespace %q must have one level", ids.ErrInvalidNamespaceName, name)
	}
	id, err := ids.NamespaceIdFromName(name)
	if err != nil {
		return nil, err
	}
	return New(h, &RegisterNamespace{Kind: RootNamespace, Name: name, Id: id, Duration: duration})
}

// NewChildNamespace registers part under the namespace named parent.
func NewChildNamespace(h Header, parent, part string) (*Transaction, error) {
	parentId, err := ids.NamespaceIdFromName(parent)
	if err != nil {
		return nil, err
	}
	if len(strings.Split(parent, ".")) >= ids.MaxNamespaceDepth {
		return nil, fmt.Errorf("%w: %q.%q", ids.ErrNamespaceTooDeep, parent, part)
	}
	id, err := ids.ChildNamespaceId(parentId, part)
	if err != nil {
		return nil, err
	}
	return New(h, &RegisterNamespace{Kind: ChildNamespace, Name: part, Id: id, ParentId: parentId})
}

// NewMosaicDefinition defines the mosaic derived from nonce and owner.
func NewMosaicDefinition(h Header, nonce ids.MosaicNonce, owner keypair.PublicKey, props MosaicProperties) (*Transaction, error) {
	return New(h, &MosaicDefinition{
		Nonce:      nonce,
		MosaicId:   ids.DeriveMosaicId(nonce, owner[:]),
		Properties: props,
	})
}
