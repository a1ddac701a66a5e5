package tx

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bitfsorg/catapult-go/ids"
)

// DTO is the REST representation of a transaction.
type DTO struct {
	Transaction map[string]any   `json:"transaction"`
	Meta        *TransactionInfo `json:"meta,omitempty"`
}

// ToDTO converts t to its REST shape.
func ToDTO(t *Transaction) *DTO { return toDTO(t, false) }

func toDTO(t *Transaction, embedded bool) *DTO {
	body := bodyJSON(t.Body, t)
	body["version"] = int(t.Network)<<8 | int(t.EffectiveVersion())
	body["type"] = int(t.Type())
	if t.Signer != nil {
		body["signer"] = t.Signer.PublicKey.String()
	}
	if t.Signature != nil {
		body["signature"] = t.Signature.String()
	}
	if !embedded {
		body["maxFee"] = t.MaxFee
		body["deadline"] = ids.UInt64(t.Deadline)
	}
	return &DTO{Transaction: body, Meta: t.Info}
}

// MarshalJSON encodes t in its REST shape.
func (t *Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToDTO(t))
}

func upperHex(b []byte) string { return strings.ToUpper(hex.EncodeToString(b)) }

func mosaicsJSON(ms []Mosaic) []map[string]any {
	out := make([]map[string]any, len(ms))
	for i, m := range ms {
		out[i] = map[string]any{"id": m.id(), "amount": m.Amount}
	}
	return out
}

func bodyJSON(b Body, t *Transaction) map[string]any {
	switch v := b.(type) {
	case *Transfer:
		return map[string]any{
			"recipient": upperHex(encodeRecipient(v.Recipient, t.Network)),
			"message": map[string]any{
				"type":    int(v.Message.Type),
				"payload": upperHex(v.Message.Payload),
			},
			"mosaics": mosaicsJSON(v.Mosaics),
		}
	case *RegisterNamespace:
		out := map[string]any{
			"namespaceType": int(v.Kind),
			"namespaceId":   v.Id.Id(),
			"name":          v.Name,
		}
		if v.Kind == RootNamespace {
			out["duration"] = v.Duration
		} else {
			out["parentId"] = v.ParentId.Id()
		}
		return out
	case *MosaicDefinition:
		props := []map[string]any{
			{"id": 0, "value": ids.UInt64(v.Properties.Flags)},
			{"id": 1, "value": ids.UInt64(v.Properties.Divisibility)},
		}
		for _, p := range v.Properties.optional() {
			props = append(props, map[string]any{"id": int(p.id), "value": p.value})
		}
		return map[string]any{
			"nonce":      v.Nonce.Uint32(),
			"mosaicId":   v.MosaicId.Id(),
			"properties": props,
		}
	case *MosaicSupplyChange:
		return map[string]any{
			"mosaicId":  v.MosaicId.Id(),
			"direction": int(v.Direction),
			"delta":     v.Delta,
		}
	case *ModifyMultisigAccount:
		mods := make([]map[string]any, len(v.Modifications))
		for i, m := range v.Modifications {
			mods[i] = map[string]any{"type": int(m.Type), "cosignatoryPublicKey": m.PublicKey.String()}
		}
		return map[string]any{
			"minApprovalDelta": int(v.MinApprovalDelta),
			"minRemovalDelta":  int(v.MinRemovalDelta),
			"modifications":    mods,
		}
	case *Aggregate:
		inner := make([]*DTO, len(v.InnerTransactions))
		for i, it := range v.InnerTransactions {
			embedded := *it
			if embedded.Network == 0 {
				embedded.Network = t.Network
			}
			inner[i] = toDTO(&embedded, true)
		}
		cosigs := make([]map[string]any, len(v.Cosignatures))
		for i, c := range v.Cosignatures {
			cosigs[i] = map[string]any{"signer": c.Signer.String(), "signature": c.Signature.String()}
		}
		return map[string]any{"transactions": inner, "cosignatures": cosigs}
	case *HashLock:
		return map[string]any{
			"mosaicId": v.Mosaic.id(),
			"amount":   v.Mosaic.Amount,
			"duration": v.Duration,
			"hash":     v.Hash.String(),
		}
	case *SecretLock:
		return map[string]any{
			"mosaicId":      v.Mosaic.id(),
			"amount":        v.Mosaic.Amount,
			"duration":      v.Duration,
			"hashAlgorithm": int(v.Algorithm),
			"secret":        v.Secret.String(),
			"recipient":     upperHex(encodeRecipient(v.Recipient, t.Network)),
		}
	case *SecretProof:
		return map[string]any{
			"hashAlgorithm": int(v.Algorithm),
			"secret":        v.Secret.String(),
			"recipient":     upperHex(encodeRecipient(v.Recipient, t.Network)),
			"proof":         upperHex(v.Proof),
		}
	case *AddressAlias:
		return map[string]any{
			"aliasAction": int(v.Action),
			"namespaceId": v.NamespaceId.Id(),
			"address":     upperHex(v.Address.Bytes()),
		}
	case *MosaicAlias:
		return map[string]any{
			"aliasAction": int(v.Action),
			"namespaceId": v.NamespaceId.Id(),
			"mosaicId":    v.MosaicId.Id(),
		}
	case *AccountLink:
		return map[string]any{
			"remoteAccountKey": v.RemotePublicKey.String(),
			"linkAction":       int(v.Action),
		}
	case *AccountAddressProperty:
		mods := make([]map[string]any, len(v.Modifications))
		for i, m := range v.Modifications {
			mods[i] = map[string]any{"type": int(m.Type), "value": upperHex(m.Address.Bytes())}
		}
		return map[string]any{"propertyType": int(v.PropertyType), "modifications": mods}
	case *AccountMosaicProperty:
		mods := make([]map[string]any, len(v.Modifications))
		for i, m := range v.Modifications {
			mods[i] = map[string]any{"type": int(m.Type), "value": m.MosaicId.Id()}
		}
		return map[string]any{"propertyType": int(v.PropertyType), "modifications": mods}
	case *AccountEntityTypeProperty:
		mods := make([]map[string]any, len(v.Modifications))
		for i, m := range v.Modifications {
			mods[i] = map[string]any{"type": int(m.Type), "value": int(m.EntityType)}
		}
		return map[string]any{"propertyType": int(v.PropertyType), "modifications": mods}
	}
	panic(fmt.Sprintf("tx: json of unknown body %T", b))
}
