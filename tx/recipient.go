package tx

import (
	"github.com/bitfsorg/catapult-go/account"
	"github.com/bitfsorg/catapult-go/ids"
)

// Recipient is either an account.Address or an ids.NamespaceId alias.
type Recipient interface {
	isRecipient()
}

// AddressRecipient targets an address directly.
type AddressRecipient struct{ account.Address }

// NamespaceRecipient targets the address a namespace is aliased to.
type NamespaceRecipient struct{ ids.NamespaceId }

func (AddressRecipient) isRecipient()   {}
func (NamespaceRecipient) isRecipient() {}

// ToAddress wraps a as a Recipient.
func ToAddress(a account.Address) Recipient { return AddressRecipient{a} }

// ToNamespace wraps n as a Recipient.
func ToNamespace(n ids.NamespaceId) Recipient { return NamespaceRecipient{n} }

// encodeRecipient returns the 25-byte unresolved address. A namespace alias
// is the network byte with bit 0 set, the little-endian id and zero padding.
func encodeRecipient(r Recipient, network account.NetworkType) []byte {
	switch v := r.(type) {
	case AddressRecipient:
		return v.Address.Bytes()
	case NamespaceRecipient:
		out := make([]byte, account.AddressSize)
		out[0] = byte(network) | 0x01
		copy(out[1:9], v.NamespaceId.Id().Bytes())
		return out
	}
	return make([]byte, account.AddressSize)
}
