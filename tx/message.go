package tx

import "fmt"

// MessageType tags the payload of a transfer message.
type MessageType uint8

const (
	PlainMessageType     MessageType = 0x00
	EncryptedMessageType MessageType = 0x01
)

// MaxMessageSize bounds the payload so the type byte plus payload fit the u16 size field.
const MaxMessageSize = 1023

// Message is the optional note carried by a transfer.
type Message struct {
	Type    MessageType
	Payload []byte
}

// PlainMessage wraps s as a plain text message.
func PlainMessage(s string) Message {
	return Message{Type: PlainMessageType, Payload: []byte(s)}
}

// EmptyMessage is a plain message with no payload.
var EmptyMessage = Message{Type: PlainMessageType}

// Size returns the encoded length: the type byte plus the payload.
func (m Message) Size() int { return 1 + len(m.Payload) }

func (m Message) validate() error {
	if len(m.Payload) > MaxMessageSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrMessageTooLarge, len(m.Payload), MaxMessageSize)
	}
	return nil
}

func (m Message) bytes() []byte {
	out := make([]byte, 0, m.Size())
	out = append(out, byte(m.Type))
	return append(out, m.Payload...)
}
