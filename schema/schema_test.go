package schema

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mosaicRecord = New(
	Uint64("id"),
	Uint64("amount"),
)

var record = New(
	Uint32("size"),
	Uint8("flag"),
	Uint16("kind"),
	Bytes("key", 4),
	Uint8("payloadSize"),
	Uint8("mosaicsCount"),
	Vector("payload", "payloadSize", 1),
	Table("mosaics", "mosaicsCount", mosaicRecord),
	Trailing("tail", New(Bytes("sig", 2))),
)

func sampleValues(mosaics int) Values {
	rows := make([]Values, mosaics)
	for i := range rows {
		rows[i] = Values{"id": uint64(i + 1), "amount": uint64(10)}
	}
	return Values{
		"size":         uint32(0xA0B0C0D0),
		"flag":         uint8(1),
		"kind":         uint16(0x4154),
		"key":          []byte{0xDE, 0xAD, 0xBE, 0xEF},
		"payloadSize":  3,
		"mosaicsCount": mosaics,
		"payload":      []byte("abc"),
		"mosaics":      rows,
	}
}

// --- Encode tests ---

func TestEncode_LayoutAndOrder(t *testing.T) {
	got := record.Encode(sampleValues(1))

	want := "D0C0B0A0" + "01" + "5441" + "DEADBEEF" + "03" + "01" + "616263" +
		"0100000000000000" + "0A00000000000000"
	assert.Equal(t, want, hexUpper(got))
}

func TestEncode_SizeMatchesLength(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		v := sampleValues(n)
		out := record.Encode(v)
		assert.Equal(t, record.Size(v), len(out), "mosaics=%d", n)
		assert.Equal(t, 4+1+2+4+1+1+3+16*n, len(out))
		assert.Equal(t, len(out), cap(out))
	}
}

func TestEncode_Trailing(t *testing.T) {
	v := sampleValues(0)
	v["tail"] = []Values{{"sig": []byte{1, 2}}, {"sig": []byte{3, 4}}}

	out := record.Encode(v)
	require.Len(t, out, record.Size(sampleValues(0))+4)
	assert.Equal(t, []byte{1, 2, 3, 4}, out[len(out)-4:])
}

func TestEncode_ScalarVector(t *testing.T) {
	s := New(Uint8("n"), Vector("ids", "n", 8))
	out := s.Encode(Values{"n": 2, "ids": []uint64{1, 0x0102030405060708}})
	assert.Equal(t, "02"+"0100000000000000"+"0807060504030201", hexUpper(out))
}

func TestEncode_NamedIntegerTypes(t *testing.T) {
	type word uint16
	s := New(Uint16("w"), Uint8("n"), Vector("ws", "n", 2))
	out := s.Encode(Values{"w": word(0x0102), "n": uint8(1), "ws": []word{0x0304}})
	assert.Equal(t, []byte{0x02, 0x01, 0x01, 0x04, 0x03}, out)
}

// --- programmer error tests ---

func TestEncode_Panics(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(Values)
	}{
		{"overflow", func(v Values) { v["flag"] = 256 }},
		{"negative", func(v Values) { v["kind"] = -1 }},
		{"wrong fixed length", func(v Values) { v["key"] = []byte{1, 2, 3} }},
		{"count mismatch vector", func(v Values) { v["payloadSize"] = 2 }},
		{"count mismatch table", func(v Values) { v["mosaicsCount"] = 5 }},
		{"missing field", func(v Values) { delete(v, "size") }},
		{"not an integer", func(v Values) { v["size"] = "x" }},
		{"table wrong type", func(v Values) { v["mosaics"] = []int{1} }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := sampleValues(1)
			tc.mutate(v)
			assert.Panics(t, func() { record.Encode(v) })
		})
	}
}

func TestNew_Panics(t *testing.T) {
	assert.Panics(t, func() { New(Uint8("a"), Uint8("a")) })
	assert.Panics(t, func() { New(Vector("v", "n", 1)) })
	assert.Panics(t, func() { New(Bytes("n", 1), Vector("v", "n", 1)) })
	assert.Panics(t, func() { New(Trailing("t", mosaicRecord), Uint8("a")) })
}

func TestFields(t *testing.T) {
	names := make([]string, 0)
	for _, f := range mosaicRecord.Fields() {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"id", "amount"}, names)
}

func hexUpper(b []byte) string { return strings.ToUpper(hex.EncodeToString(b)) }
