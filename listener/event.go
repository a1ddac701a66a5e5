package listener

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/bitfsorg/catapult-go/account"
	"github.com/bitfsorg/catapult-go/ids"
	"github.com/bitfsorg/catapult-go/keypair"
	"github.com/bitfsorg/catapult-go/tx"
)

// Channel is a push channel topic.
type Channel string

const (
	ChannelBlock              Channel = "block"
	ChannelConfirmedAdded     Channel = "confirmedAdded"
	ChannelUnconfirmedAdded   Channel = "unconfirmedAdded"
	ChannelUnconfirmedRemoved Channel = "unconfirmedRemoved"
	ChannelPartialAdded       Channel = "partialAdded"
	ChannelPartialRemoved     Channel = "partialRemoved"
	ChannelCosignature        Channel = "cosignature"
	ChannelStatus             Channel = "status"
)

// perAddress reports whether subscriptions to c are scoped to an address.
func (c Channel) perAddress() bool { return c != ChannelBlock }

// Event is one decoded push message.
type Event struct {
	Channel Channel

	// Hash is the transaction hash for transaction and status events, the
	// parent hash for cosignature events and the block hash for block events.
	Hash tx.Hash

	// Address is set when the message names the account it concerns.
	Address *account.Address

	Status   string
	Deadline ids.UInt64
	Height   ids.UInt64

	Cosignature *tx.CosignatureSignedTransaction

	// Transaction is the raw transaction object of transaction events.
	Transaction json.RawMessage
	Raw         json.RawMessage
}

type wireMeta struct {
	ChannelName string      `json:"channelName"`
	Hash        string      `json:"hash"`
	Height      *ids.UInt64 `json:"height"`
	Address     string      `json:"address"`
}

type wireMessage struct {
	UID         string          `json:"uid"`
	Block       json.RawMessage `json:"block"`
	Transaction json.RawMessage `json:"transaction"`
	Meta        *wireMeta       `json:"meta"`
	Hash        string          `json:"hash"`
	Status      string          `json:"status"`
	Deadline    *ids.UInt64     `json:"deadline"`
	Address     string          `json:"address"`
	ParentHash  string          `json:"parentHash"`
	Signature   string          `json:"signature"`
	Signer      string          `json:"signer"`
}

type nestedInfo struct {
	TransactionInfo struct {
		Hash string `json:"hash"`
	} `json:"transactionInfo"`
}

// parseEvent decodes a push message. ok is false for messages that carry no
// routable event.
func parseEvent(data []byte) (ev Event, ok bool, err error) {
	var m wireMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return Event{}, false, fmt.Errorf("listener: decode message: %w", err)
	}
	ev.Raw = json.RawMessage(data)

	switch {
	case len(m.Block) > 0:
		ev.Channel = ChannelBlock
		if m.Meta != nil {
			ev.Hash, _ = tx.ParseHash(m.Meta.Hash)
		}
		var block struct {
			Height ids.UInt64 `json:"height"`
		}
		_ = json.Unmarshal(m.Block, &block)
		ev.Height = block.Height
		return ev, true, nil

	case m.ParentHash != "":
		ev.Channel = ChannelCosignature
		c, err := parseCosignature(m)
		if err != nil {
			return Event{}, false, err
		}
		ev.Cosignature = c
		ev.Hash = c.ParentHash
		ev.Address = parseAddress(m.Address)
		return ev, true, nil

	case m.Status != "":
		ev.Channel = ChannelStatus
		if ev.Hash, err = tx.ParseHash(m.Hash); err != nil {
			return Event{}, false, err
		}
		ev.Status = m.Status
		if m.Deadline != nil {
			ev.Deadline = *m.Deadline
		}
		ev.Address = parseAddress(m.Address)
		return ev, true, nil

	case m.Meta != nil && m.Meta.ChannelName != "":
		ev.Channel = Channel(m.Meta.ChannelName)
		ev.Transaction = m.Transaction
		hash := m.Meta.Hash
		if hash == "" && len(m.Transaction) > 0 {
			var nested nestedInfo
			if json.Unmarshal(m.Transaction, &nested) == nil {
				hash = nested.TransactionInfo.Hash
			}
		}
		if ev.Hash, err = tx.ParseHash(hash); err != nil {
			return Event{}, false, err
		}
		if m.Meta.Height != nil {
			ev.Height = *m.Meta.Height
		}
		ev.Address = parseAddress(m.Meta.Address)
		return ev, true, nil
	}
	return Event{}, false, nil
}

func parseCosignature(m wireMessage) (*tx.CosignatureSignedTransaction, error) {
	parent, err := tx.ParseHash(m.ParentHash)
	if err != nil {
		return nil, err
	}
	sig, err := keypair.SignatureFromHex(m.Signature)
	if err != nil {
		return nil, err
	}
	signer, err := keypair.PublicKeyFromHex(m.Signer)
	if err != nil {
		return nil, err
	}
	return &tx.CosignatureSignedTransaction{ParentHash: parent, Signature: sig, Signer: signer}, nil
}

// parseAddress accepts the base32 or hex form; anything else yields nil.
func parseAddress(s string) *account.Address {
	if s == "" {
		return nil
	}
	if a, err := account.AddressFromRawAddress(s); err == nil {
		return &a
	}
	if raw, err := hex.DecodeString(s); err == nil {
		if a, err := account.AddressFromBytes(raw); err == nil {
			return &a
		}
	}
	return nil
}
