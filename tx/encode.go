package tx

import (
	"fmt"

	"github.com/bitfsorg/catapult-go/account"
	"github.com/bitfsorg/catapult-go/keypair"
	"github.com/bitfsorg/catapult-go/schema"
)

var headerFields = []schema.Field{
	schema.Uint32("size"),
	schema.Bytes("signature", keypair.SignatureSize),
	schema.Bytes("signer", keypair.PublicKeySize),
	schema.Uint8("version"),
	schema.Uint8("network"),
	schema.Uint16("type"),
	schema.Uint64("maxFee"),
	schema.Uint64("deadline"),
}

var embeddedHeaderFields = []schema.Field{
	schema.Uint32("size"),
	schema.Bytes("signer", keypair.PublicKeySize),
	schema.Uint8("version"),
	schema.Uint8("network"),
	schema.Uint16("type"),
}

var (
	mosaicSchema = schema.New(
		schema.Uint64("id"),
		schema.Uint64("amount"),
	)
	cosignatureSchema = schema.New(
		schema.Bytes("signer", keypair.PublicKeySize),
		schema.Bytes("signature", keypair.SignatureSize),
	)
)

func modificationSchema(value schema.Field) *schema.Schema {
	return schema.New(schema.Uint8("modificationType"), value)
}

func propertyFields(value schema.Field) []schema.Field {
	return []schema.Field{
		schema.Uint8("propertyType"),
		schema.Uint8("modificationsCount"),
		schema.Table("modifications", "modificationsCount", modificationSchema(value)),
	}
}

var bodyFields = map[Type][]schema.Field{
	TypeTransfer: {
		schema.Bytes("recipient", recipientSize),
		schema.Uint16("messageSize"),
		schema.Uint8("mosaicsCount"),
		schema.Vector("message", "messageSize", 1),
		schema.Table("mosaics", "mosaicsCount", mosaicSchema),
	},
	TypeRegisterNamespace: {
		schema.Uint8("namespaceType"),
		schema.Uint64("durationOrParentId"),
		schema.Uint64("namespaceId"),
		schema.Uint8("nameSize"),
		schema.Vector("name", "nameSize", 1),
	},
	TypeMosaicDefinition: {
		schema.Bytes("nonce", 4),
		schema.Uint64("mosaicId"),
		schema.Uint8("propertiesCount"),
		schema.Uint8("flags"),
		schema.Uint8("divisibility"),
		schema.Table("properties", "propertiesCount", schema.New(
			schema.Uint8("id"),
			schema.Uint64("value"),
		)),
	},
	TypeMosaicSupplyChange: {
		schema.Uint64("mosaicId"),
		schema.Uint8("direction"),
		schema.Uint64("delta"),
	},
	TypeModifyMultisigAccount: {
		schema.Uint8("minRemovalDelta"),
		schema.Uint8("minApprovalDelta"),
		schema.Uint8("modificationsCount"),
		schema.Table("modifications", "modificationsCount", modificationSchema(
			schema.Bytes("cosignatoryPublicKey", keypair.PublicKeySize),
		)),
	},
	TypeAggregateComplete: aggregateFields(),
	TypeAggregateBonded:   aggregateFields(),
	TypeHashLock: {
		schema.Uint64("mosaicId"),
		schema.Uint64("amount"),
		schema.Uint64("duration"),
		schema.Bytes("hash", HashSize),
	},
	TypeSecretLock: {
		schema.Uint64("mosaicId"),
		schema.Uint64("amount"),
		schema.Uint64("duration"),
		schema.Uint8("hashAlgorithm"),
		schema.Bytes("secret", HashSize),
		schema.Bytes("recipient", recipientSize),
	},
	TypeSecretProof: {
		schema.Uint8("hashAlgorithm"),
		schema.Bytes("secret", HashSize),
		schema.Bytes("recipient", recipientSize),
		schema.Uint16("proofSize"),
		schema.Vector("proof", "proofSize", 1),
	},
	TypeAddressAlias: {
		schema.Uint8("aliasAction"),
		schema.Uint64("namespaceId"),
		schema.Bytes("address", recipientSize),
	},
	TypeMosaicAlias: {
		schema.Uint8("aliasAction"),
		schema.Uint64("namespaceId"),
		schema.Uint64("mosaicId"),
	},
	TypeAccountLink: {
		schema.Bytes("remoteAccountKey", keypair.PublicKeySize),
		schema.Uint8("linkAction"),
	},
	TypeAccountAddressProperty:    propertyFields(schema.Bytes("value", recipientSize)),
	TypeAccountMosaicProperty:     propertyFields(schema.Uint64("value")),
	TypeAccountEntityTypeProperty: propertyFields(schema.Uint16("value")),
}

func aggregateFields() []schema.Field {
	return []schema.Field{
		schema.Uint32("payloadSize"),
		schema.Vector("transactions", "payloadSize", 1),
		schema.Trailing("cosignatures", cosignatureSchema),
	}
}

var fullSchemas, embeddedSchemas = buildSchemas()

func buildSchemas() (map[Type]*schema.Schema, map[Type]*schema.Schema) {
	full := make(map[Type]*schema.Schema, len(bodyFields))
	embedded := make(map[Type]*schema.Schema, len(bodyFields))
	for t, fields := range bodyFields {
		full[t] = schema.New(concat(headerFields, fields)...)
		if !t.IsAggregate() {
			embedded[t] = schema.New(concat(embeddedHeaderFields, fields)...)
		}
	}
	return full, embedded
}

func concat(a, b []schema.Field) []schema.Field {
	out := make([]schema.Field, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// encode serializes t with the given signer and signature. The result length
// always equals Size(t).
func encode(t *Transaction, signer keypair.PublicKey, sig keypair.Signature) []byte {
	typ := t.Type()
	v := bodyValues(t.Body, t.Network)
	size := Size(t)
	v["size"] = uint32(size)
	v["signature"] = sig[:]
	v["signer"] = signer[:]
	v["version"] = t.EffectiveVersion()
	v["network"] = uint8(t.Network)
	v["type"] = uint16(typ)
	v["maxFee"] = uint64(t.MaxFee)
	v["deadline"] = uint64(t.Deadline)

	out := fullSchemas[typ].Encode(v)
	if len(out) != size {
		panic(fmt.Sprintf("tx: %s encoded to %d bytes, size formula says %d", typ, len(out), size))
	}
	return out
}

// encodeEmbedded serializes t as an inner transaction of an aggregate on network.
func encodeEmbedded(t *Transaction, network account.NetworkType) []byte {
	typ := t.Type()
	if t.Network != 0 {
		network = t.Network
	}
	var signer keypair.PublicKey
	if t.Signer != nil {
		signer = t.Signer.PublicKey
	}

	v := bodyValues(t.Body, network)
	size := EmbeddedSize(t)
	v["size"] = uint32(size)
	v["signer"] = signer[:]
	v["version"] = t.EffectiveVersion()
	v["network"] = uint8(network)
	v["type"] = uint16(typ)

	out := embeddedSchemas[typ].Encode(v)
	if len(out) != size {
		panic(fmt.Sprintf("tx: embedded %s encoded to %d bytes, size formula says %d", typ, len(out), size))
	}
	return out
}

func bodyValues(b Body, network account.NetworkType) schema.Values {
	switch v := b.(type) {
	case *Transfer:
		mosaics := make([]schema.Values, len(v.Mosaics))
		for i, m := range v.Mosaics {
			mosaics[i] = schema.Values{"id": uint64(m.id()), "amount": uint64(m.Amount)}
		}
		return schema.Values{
			"recipient":    encodeRecipient(v.Recipient, network),
			"messageSize":  v.Message.Size(),
			"mosaicsCount": len(v.Mosaics),
			"message":      v.Message.bytes(),
			"mosaics":      mosaics,
		}
	case *RegisterNamespace:
		durationOrParent := uint64(v.Duration)
		if v.Kind == ChildNamespace {
			durationOrParent = uint64(v.ParentId.Id())
		}
		return schema.Values{
			"namespaceType":      uint8(v.Kind),
			"durationOrParentId": durationOrParent,
			"namespaceId":        uint64(v.Id.Id()),
			"nameSize":           len(v.Name),
			"name":               []byte(v.Name),
		}
	case *MosaicDefinition:
		optional := v.Properties.optional()
		props := make([]schema.Values, len(optional))
		for i, p := range optional {
			props[i] = schema.Values{"id": p.id, "value": uint64(p.value)}
		}
		return schema.Values{
			"nonce":           v.Nonce[:],
			"mosaicId":        uint64(v.MosaicId.Id()),
			"propertiesCount": len(props),
			"flags":           uint8(v.Properties.Flags),
			"divisibility":    v.Properties.Divisibility,
			"properties":      props,
		}
	case *MosaicSupplyChange:
		return schema.Values{
			"mosaicId":  uint64(v.MosaicId.Id()),
			"direction": uint8(v.Direction),
			"delta":     uint64(v.Delta),
		}
	case *ModifyMultisigAccount:
		mods := make([]schema.Values, len(v.Modifications))
		for i, m := range v.Modifications {
			mods[i] = schema.Values{
				"modificationType":     uint8(m.Type),
				"cosignatoryPublicKey": m.PublicKey[:],
			}
		}
		return schema.Values{
			"minRemovalDelta":    uint8(v.MinRemovalDelta),
			"minApprovalDelta":   uint8(v.MinApprovalDelta),
			"modificationsCount": len(mods),
			"modifications":      mods,
		}
	case *Aggregate:
		var payload []byte
		for _, inner := range v.InnerTransactions {
			payload = append(payload, encodeEmbedded(inner, network)...)
		}
		cosigs := make([]schema.Values, len(v.Cosignatures))
		for i, c := range v.Cosignatures {
			cosigs[i] = schema.Values{"signer": c.Signer[:], "signature": c.Signature[:]}
		}
		return schema.Values{
			"payloadSize":  len(payload),
			"transactions": payload,
			"cosignatures": cosigs,
		}
	case *HashLock:
		return schema.Values{
			"mosaicId": uint64(v.Mosaic.id()),
			"amount":   uint64(v.Mosaic.Amount),
			"duration": uint64(v.Duration),
			"hash":     v.Hash[:],
		}
	case *SecretLock:
		return schema.Values{
			"mosaicId":      uint64(v.Mosaic.id()),
			"amount":        uint64(v.Mosaic.Amount),
			"duration":      uint64(v.Duration),
			"hashAlgorithm": uint8(v.Algorithm),
			"secret":        v.Secret[:],
			"recipient":     encodeRecipient(v.Recipient, network),
		}
	case *SecretProof:
		return schema.Values{
			"hashAlgorithm": uint8(v.Algorithm),
			"secret":        v.Secret[:],
			"recipient":     encodeRecipient(v.Recipient, network),
			"proofSize":     len(v.Proof),
			"proof":         v.Proof,
		}
	case *AddressAlias:
		return schema.Values{
			"aliasAction": uint8(v.Action),
			"namespaceId": uint64(v.NamespaceId.Id()),
			"address":     v.Address.Bytes(),
		}
	case *MosaicAlias:
		return schema.Values{
			"aliasAction": uint8(v.Action),
			"namespaceId": uint64(v.NamespaceId.Id()),
			"mosaicId":    uint64(v.MosaicId.Id()),
		}
	case *AccountLink:
		return schema.Values{
			"remoteAccountKey": v.RemotePublicKey[:],
			"linkAction":       uint8(v.Action),
		}
	case *AccountAddressProperty:
		mods := make([]schema.Values, len(v.Modifications))
		for i, m := range v.Modifications {
			mods[i] = schema.Values{"modificationType": uint8(m.Type), "value": m.Address.Bytes()}
		}
		return propertyValues(v.PropertyType, mods)
	case *AccountMosaicProperty:
		mods := make([]schema.Values, len(v.Modifications))
		for i, m := range v.Modifications {
			mods[i] = schema.Values{"modificationType": uint8(m.Type), "value": uint64(m.MosaicId.Id())}
		}
		return propertyValues(v.PropertyType, mods)
	case *AccountEntityTypeProperty:
		mods := make([]schema.Values, len(v.Modifications))
		for i, m := range v.Modifications {
			mods[i] = schema.Values{"modificationType": uint8(m.Type), "value": uint16(m.EntityType)}
		}
		return propertyValues(v.PropertyType, mods)
	}
	panic(fmt.Sprintf("tx: encode unknown body %T", b))
}

func propertyValues(pt PropertyType, mods []schema.Values) schema.Values {
	return schema.Values{
		"propertyType":       uint8(pt),
		"modificationsCount": len(mods),
		"modifications":      mods,
	}
}
