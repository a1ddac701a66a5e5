package tx

import "fmt"

// Type is the 16-bit transaction type code.
type Type uint16

const (
	TypeTransfer                  Type = 0x4154
	TypeRegisterNamespace         Type = 0x414E
	TypeMosaicDefinition          Type = 0x414D
	TypeMosaicSupplyChange        Type = 0x424D
	TypeModifyMultisigAccount     Type = 0x4155
	TypeAggregateComplete         Type = 0x4141
	TypeAggregateBonded           Type = 0x4241
	TypeHashLock                  Type = 0x4148
	TypeSecretLock                Type = 0x4152
	TypeSecretProof               Type = 0x4252
	TypeAddressAlias              Type = 0x424E
	TypeMosaicAlias               Type = 0x434E
	TypeAccountLink               Type = 0x414C
	TypeAccountAddressProperty    Type = 0x4150
	TypeAccountMosaicProperty     Type = 0x4250
	TypeAccountEntityTypeProperty Type = 0x4350
)

var typeInfo = map[Type]struct {
	name    string
	version uint8
}{
	TypeTransfer:                  {"transfer", 3},
	TypeRegisterNamespace:         {"registerNamespace", 2},
	TypeMosaicDefinition:          {"mosaicDefinition", 3},
	TypeMosaicSupplyChange:        {"mosaicSupplyChange", 2},
	TypeModifyMultisigAccount:     {"modifyMultisigAccount", 3},
	TypeAggregateComplete:         {"aggregateComplete", 2},
	TypeAggregateBonded:           {"aggregateBonded", 2},
	TypeHashLock:                  {"hashLock", 1},
	TypeSecretLock:                {"secretLock", 1},
	TypeSecretProof:               {"secretProof", 1},
	TypeAddressAlias:              {"addressAlias", 1},
	TypeMosaicAlias:               {"mosaicAlias", 1},
	TypeAccountLink:               {"accountLink", 2},
	TypeAccountAddressProperty:    {"accountAddressProperty", 1},
	TypeAccountMosaicProperty:     {"accountMosaicProperty", 1},
	TypeAccountEntityTypeProperty: {"accountEntityTypeProperty", 1},
}

// String returns the lowerCamel type name.
func (t Type) String() string {
	if info, ok := typeInfo[t]; ok {
		return info.name
	}
	return fmt.Sprintf("type(0x%04X)", uint16(t))
}

// Valid reports whether t is a known transaction type.
func (t Type) Valid() bool {
	_, ok := typeInfo[t]
	return ok
}

// DefaultVersion returns the current schema version of t.
func (t Type) DefaultVersion() uint8 { return typeInfo[t].version }

// IsAggregate reports whether t is one of the aggregate types.
func (t Type) IsAggregate() bool {
	return t == TypeAggregateComplete || t == TypeAggregateBonded
}
