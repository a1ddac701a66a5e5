package tx

import "github.com/bitfsorg/catapult-go/ids"

const (
	// HeaderSize is the length of the signed envelope.
	HeaderSize = 4 + 64 + 32 + 1 + 1 + 2 + 8 + 8
	// EmbeddedHeaderSize is the length of an inner transaction header.
	EmbeddedHeaderSize = 4 + 32 + 1 + 1 + 2

	// CosignatureSize is the encoded length of one cosignature.
	CosignatureSize = 32 + 64

	recipientSize    = 25
	mosaicSize       = 8 + 8
	multisigModSize  = 1 + 32
	mosaicPropSize   = 1 + 8
	addressModSize   = 1 + 25
	mosaicModSize    = 1 + 8
	entityModSize    = 1 + 2
	signatureOffset  = 4
	signerOffset     = 4 + 64
	signedDataOffset = 4 + 64 + 32
)

// Size returns the encoded length of t, computed from field cardinalities only.
func Size(t *Transaction) int { return HeaderSize + bodySize(t.Body) }

// EmbeddedSize returns the encoded length of t as an inner transaction.
func EmbeddedSize(t *Transaction) int { return EmbeddedHeaderSize + bodySize(t.Body) }

// CalculateMaxFee returns the fee for t at multiplier units per byte.
func CalculateMaxFee(t *Transaction, multiplier uint32) ids.UInt64 {
	return ids.UInt64(Size(t)) * ids.UInt64(multiplier)
}

func bodySize(b Body) int {
	switch v := b.(type) {
	case *Transfer:
		return recipientSize + 2 + 1 + v.Message.Size() + mosaicSize*len(v.Mosaics)
	case *RegisterNamespace:
		return 1 + 8 + 8 + 1 + len(v.Name)
	case *MosaicDefinition:
		return 4 + 8 + 1 + 1 + 1 + mosaicPropSize*len(v.Properties.optional())
	case *MosaicSupplyChange:
		return 8 + 1 + 8
	case *ModifyMultisigAccount:
		return 1 + 1 + 1 + multisigModSize*len(v.Modifications)
	case *Aggregate:
		n := 4 + CosignatureSize*len(v.Cosignatures)
		for _, inner := range v.InnerTransactions {
			n += EmbeddedSize(inner)
		}
		return n
	case *HashLock:
		return 8 + 8 + 8 + HashSize
	case *SecretLock:
		return 8 + 8 + 8 + 1 + HashSize + recipientSize
	case *SecretProof:
		return 1 + HashSize + recipientSize + 2 + len(v.Proof)
	case *AddressAlias:
		return 1 + 8 + recipientSize
	case *MosaicAlias:
		return 1 + 8 + 8
	case *AccountLink:
		return 32 + 1
	case *AccountAddressProperty:
		return 1 + 1 + addressModSize*len(v.Modifications)
	case *AccountMosaicProperty:
		return 1 + 1 + mosaicModSize*len(v.Modifications)
	case *AccountEntityTypeProperty:
		return 1 + 1 + entityModSize*len(v.Modifications)
	}
	panic("tx: size of unknown body")
}
