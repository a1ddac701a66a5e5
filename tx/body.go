package tx

import (
	"fmt"

	"github.com/bitfsorg/catapult-go/account"
	"github.com/bitfsorg/catapult-go/ids"
	"github.com/bitfsorg/catapult-go/keypair"
)

// Body is the variant-specific part of a transaction. The set of
// implementations is closed to this package.
type Body interface {
	body()
}

// Transfer moves mosaics and an optional message to a recipient.
type Transfer struct {
	Recipient Recipient
	Mosaics   []Mosaic
	Message   Message
}

// NamespaceKind distinguishes root and child namespace registrations.
type NamespaceKind uint8

const (
	RootNamespace  NamespaceKind = 0
	ChildNamespace NamespaceKind = 1
)

// RegisterNamespace creates a root namespace (rented for Duration blocks) or
// a child of ParentId.
type RegisterNamespace struct {
	Kind     NamespaceKind
	Name     string
	Id       ids.NamespaceId
	ParentId ids.NamespaceId
	Duration ids.UInt64
}

// MosaicFlags are the boolean mosaic properties.
type MosaicFlags uint8

const (
	SupplyMutable MosaicFlags = 0x01
	Transferable  MosaicFlags = 0x02
	Restrictable  MosaicFlags = 0x04
)

// MosaicProperties describes a mosaic. A zero Duration means eternal and is
// not encoded.
type MosaicProperties struct {
	Flags        MosaicFlags
	Divisibility uint8
	Duration     ids.UInt64
}

const mosaicDurationPropertyId = 2

func (p MosaicProperties) optional() []optionalProperty {
	if p.Duration == 0 {
		return nil
	}
	return []optionalProperty{{id: mosaicDurationPropertyId, value: p.Duration}}
}

type optionalProperty struct {
	id    uint8
	value ids.UInt64
}

// MosaicDefinition creates a mosaic.
type MosaicDefinition struct {
	Nonce      ids.MosaicNonce
	MosaicId   ids.MosaicId
	Properties MosaicProperties
}

// SupplyDirection selects whether a supply change adds or removes units.
type SupplyDirection uint8

const (
	SupplyDecrease SupplyDirection = 0
	SupplyIncrease SupplyDirection = 1
)

// MosaicSupplyChange alters the supply of a mutable mosaic.
type MosaicSupplyChange struct {
	MosaicId  ids.Unresolved
	Direction SupplyDirection
	Delta     ids.UInt64
}

// ModificationType adds or removes an entry.
type ModificationType uint8

const (
	ModificationAdd    ModificationType = 0
	ModificationRemove ModificationType = 1
)

// CosignatoryModification adds or removes a multisig cosignatory.
type CosignatoryModification struct {
	Type      ModificationType
	PublicKey keypair.PublicKey
}

// ModifyMultisigAccount changes the cosignatories and thresholds of a multisig account.
type ModifyMultisigAccount struct {
	MinApprovalDelta int8
	MinRemovalDelta  int8
	Modifications    []CosignatoryModification
}

// Cosignature is a signature over an aggregate hash by an additional signer.
type Cosignature struct {
	Signer    keypair.PublicKey
	Signature keypair.Signature
}

// Aggregate embeds inner transactions under one envelope.
type Aggregate struct {
	Bonded            bool
	InnerTransactions []*Transaction
	Cosignatures      []Cosignature
}

// HashLock deposits funds against the hash of a pending aggregate bonded.
type HashLock struct {
	Mosaic   Mosaic
	Duration ids.UInt64
	Hash     Hash
}

// HashAlgorithm selects the secret lock hash function.
type HashAlgorithm uint8

const (
	HashSHA3_256   HashAlgorithm = 0
	HashKeccak_256 HashAlgorithm = 1
	HashHash_160   HashAlgorithm = 2
	HashHash_256   HashAlgorithm = 3
)

// SecretLock locks funds until the proof of Secret is revealed.
type SecretLock struct {
	Mosaic    Mosaic
	Duration  ids.UInt64
	Algorithm HashAlgorithm
	Secret    Hash
	Recipient Recipient
}

// SecretProof reveals the proof that unlocks a SecretLock.
type SecretProof struct {
	Algorithm HashAlgorithm
	Secret    Hash
	Recipient Recipient
	Proof     []byte
}

// AliasAction links or unlinks an alias.
type AliasAction uint8

const (
	AliasUnlink AliasAction = 0
	AliasLink   AliasAction = 1
)

// AddressAlias points a namespace at an address.
type AddressAlias struct {
	Action      AliasAction
	NamespaceId ids.NamespaceId
	Address     account.Address
}

// MosaicAlias points a namespace at a mosaic.
type MosaicAlias struct {
	Action      AliasAction
	NamespaceId ids.NamespaceId
	MosaicId    ids.MosaicId
}

// LinkAction links or unlinks a remote account.
type LinkAction uint8

const (
	LinkAccount   LinkAction = 0
	UnlinkAccount LinkAction = 1
)

// AccountLink delegates harvesting to a remote public key.
type AccountLink struct {
	RemotePublicKey keypair.PublicKey
	Action          LinkAction
}

// PropertyType is an allow or block rule on one property kind.
type PropertyType uint8

const (
	AllowAddress     PropertyType = 0x01
	AllowMosaic      PropertyType = 0x02
	AllowTransaction PropertyType = 0x04
	BlockAddress     PropertyType = 0x81
	BlockMosaic      PropertyType = 0x82
	BlockTransaction PropertyType = 0x84
)

// AddressModification adds or removes an address from a property.
type AddressModification struct {
	Type    ModificationType
	Address account.Address
}

// MosaicModification adds or removes a mosaic from a property.
type MosaicModification struct {
	Type     ModificationType
	MosaicId ids.Unresolved
}

// EntityTypeModification adds or removes a transaction type from a property.
type EntityTypeModification struct {
	Type       ModificationType
	EntityType Type
}

// AccountAddressProperty restricts the addresses an account interacts with.
type AccountAddressProperty struct {
	PropertyType  PropertyType
	Modifications []AddressModification
}

// AccountMosaicProperty restricts the mosaics an account receives.
type AccountMosaicProperty struct {
	PropertyType  PropertyType
	Modifications []MosaicModification
}

// AccountEntityTypeProperty restricts the transaction types an account sends.
type AccountEntityTypeProperty struct {
	PropertyType  PropertyType
	Modifications []EntityTypeModification
}

func (*Transfer) body()                  {}
func (*RegisterNamespace) body()         {}
func (*MosaicDefinition) body()          {}
func (*MosaicSupplyChange) body()        {}
func (*ModifyMultisigAccount) body()     {}
func (*Aggregate) body()                 {}
func (*HashLock) body()                  {}
func (*SecretLock) body()                {}
func (*SecretProof) body()               {}
func (*AddressAlias) body()              {}
func (*MosaicAlias) body()               {}
func (*AccountLink) body()               {}
func (*AccountAddressProperty) body()    {}
func (*AccountMosaicProperty) body()     {}
func (*AccountEntityTypeProperty) body() {}

func bodyType(b Body) Type {
	switch v := b.(type) {
	case *Transfer:
		return TypeTransfer
	case *RegisterNamespace:
		return TypeRegisterNamespace
	case *MosaicDefinition:
		return TypeMosaicDefinition
	case *MosaicSupplyChange:
		return TypeMosaicSupplyChange
	case *ModifyMultisigAccount:
		return TypeModifyMultisigAccount
	case *Aggregate:
		if v.Bonded {
			return TypeAggregateBonded
		}
		return TypeAggregateComplete
	case *HashLock:
		return TypeHashLock
	case *SecretLock:
		return TypeSecretLock
	case *SecretProof:
		return TypeSecretProof
	case *AddressAlias:
		return TypeAddressAlias
	case *MosaicAlias:
		return TypeMosaicAlias
	case *AccountLink:
		return TypeAccountLink
	case *AccountAddressProperty:
		return TypeAccountAddressProperty
	case *AccountMosaicProperty:
		return TypeAccountMosaicProperty
	case *AccountEntityTypeProperty:
		return TypeAccountEntityTypeProperty
	}
	panic(fmt.Sprintf("tx: unknown body %T", b))
}

const (
	maxMosaics       = 255
	maxModifications = 255
	maxNameLength    = 255
	maxProofSize     = 1024
)

func validateBody(b Body) error {
	switch v := b.(type) {
	case *Transfer:
		if v.Recipient == nil {
			return fmt.Errorf("%w: transfer recipient", ErrNilParam)
		}
		if len(v.Mosaics) > maxMosaics {
			return fmt.Errorf("%w: %d mosaics (max %d)", ErrInvalidParams, len(v.Mosaics), maxMosaics)
		}
		for i, m := range v.Mosaics {
			if m.Id == nil {
				return fmt.Errorf("%w: mosaic %d has no id", ErrNilParam, i)
			}
		}
		return v.Message.validate()
	case *RegisterNamespace:
		if v.Name == "" || len(v.Name) > maxNameLength {
			return fmt.Errorf("%w: namespace name %q", ids.ErrInvalidNamespaceName, v.Name)
		}
		if v.Kind != RootNamespace && v.Kind != ChildNamespace {
			return fmt.Errorf("%w: namespace kind %d", ErrInvalidParams, v.Kind)
		}
	case *MosaicDefinition:
		if v.Properties.Divisibility > 6 {
			return fmt.Errorf("%w: divisibility %d (max 6)", ErrInvalidParams, v.Properties.Divisibility)
		}
	case *MosaicSupplyChange:
		if v.MosaicId == nil {
			return fmt.Errorf("%w: supply change mosaic", ErrNilParam)
		}
	case *ModifyMultisigAccount:
		if len(v.Modifications) > maxModifications {
			return fmt.Errorf("%w: %d modifications", ErrInvalidParams, len(v.Modifications))
		}
	case *Aggregate:
		for i, inner := range v.InnerTransactions {
			if inner == nil {
				return fmt.Errorf("%w: inner transaction %d", ErrNilParam, i)
			}
			if inner.Type().IsAggregate() {
				return fmt.Errorf("%w: inner transaction %d is an aggregate", ErrInvalidParams, i)
			}
		}
	case *HashLock:
		if v.Mosaic.Id == nil {
			return fmt.Errorf("%w: hash lock mosaic", ErrNilParam)
		}
	case *SecretLock:
		if v.Mosaic.Id == nil || v.Recipient == nil {
			return fmt.Errorf("%w: secret lock mosaic and recipient", ErrNilParam)
		}
	case *SecretProof:
		if v.Recipient == nil {
			return fmt.Errorf("%w: secret proof recipient", ErrNilParam)
		}
		if len(v.Proof) > maxProofSize {
			return fmt.Errorf("%w: proof of %d bytes", ErrInvalidParams, len(v.Proof))
		}
	case *AccountAddressProperty:
		return validateModifications(len(v.Modifications))
	case *AccountMosaicProperty:
		for i, m := range v.Modifications {
			if m.MosaicId == nil {
				return fmt.Errorf("%w: mosaic modification %d", ErrNilParam, i)
			}
		}
		return validateModifications(len(v.Modifications))
	case *AccountEntityTypeProperty:
		return validateModifications(len(v.Modifications))
	case *AddressAlias, *MosaicAlias, *AccountLink:
	default:
		return fmt.Errorf("%w: unknown body %T", ErrInvalidParams, b)
	}
	return nil
}

func validateModifications(n int) error {
	if n > maxModifications {
		return fmt.Errorf("%w: %d modifications", ErrInvalidParams, n)
	}
	return nil
}
