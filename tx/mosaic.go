package tx

import "github.com/bitfsorg/catapult-go/ids"

// Mosaic is an amount of a mosaic, referenced directly or through a namespace alias.
type Mosaic struct {
	Id     ids.Unresolved
	Amount ids.UInt64
}

// NewMosaic returns a Mosaic of amount units of id.
func NewMosaic(id ids.Unresolved, amount ids.UInt64) Mosaic {
	return Mosaic{Id: id, Amount: amount}
}

func (m Mosaic) id() ids.UInt64 {
	if m.Id == nil {
		return 0
	}
	return m.Id.Id()
}
