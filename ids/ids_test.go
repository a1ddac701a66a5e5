package ids

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ownerPublicKey = "BD8D3F8B7E1B3839C650F458234AB1FF87CDB1EDA36338D9E446E27D454717F2"

// --- UInt64 ---

func TestUInt64_BytesRoundTrip(t *testing.T) {
	for _, v := range []UInt64{0, math.MaxUint32, math.MaxUint64, 1 << 32, 0x0102030405060708} {
		got, err := UInt64FromBytes(v.Bytes())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestUInt64_BytesLittleEndian(t *testing.T) {
	assert.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, UInt64(0x0102030405060708).Bytes())
}

func TestUInt64_FromBytesWrongLength(t *testing.T) {
	_, err := UInt64FromBytes([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestUInt64_Words(t *testing.T) {
	v := FromUints(0xFFFFFFFF, 0x00000001)
	assert.Equal(t, uint32(0xFFFFFFFF), v.Lower())
	assert.Equal(t, uint32(1), v.Higher())
	assert.Equal(t, uint64(0x1FFFFFFFF), v.Uint64())
}

func TestUInt64_HexRoundTrip(t *testing.T) {
	tests := []struct {
		v    UInt64
		want string
	}{
		{0, "0000000000000000"},
		{math.MaxUint32, "00000000FFFFFFFF"},
		{math.MaxUint64, "FFFFFFFFFFFFFFFF"},
		{0x84B3552D375FFA4B, "84B3552D375FFA4B"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.v.Hex())
			got, err := UInt64FromHex(strings.ToLower(tc.want))
			require.NoError(t, err)
			assert.Equal(t, tc.v, got)
		})
	}
}

func TestUInt64_FromHexInvalid(t *testing.T) {
	for _, s := range []string{"", "123", "ZZZZZZZZZZZZZZZZ", "00000000000000000"} {
		_, err := UInt64FromHex(s)
		assert.ErrorIs(t, err, ErrInvalidHex, s)
	}
}

func TestUInt64_Add(t *testing.T) {
	sum, err := UInt64(math.MaxUint32).Add(1)
	require.NoError(t, err)
	assert.Equal(t, FromUints(0, 1), sum)

	_, err = UInt64(math.MaxUint64).Add(1)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestUInt64_Compare(t *testing.T) {
	assert.Equal(t, -1, UInt64(1).Compare(2))
	assert.Equal(t, 0, UInt64(2).Compare(2))
	assert.Equal(t, 1, FromUints(0, 1).Compare(math.MaxUint32))
}

func TestUInt64_Int64(t *testing.T) {
	n, ok := UInt64(42).Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	_, ok = UInt64(math.MaxUint64).Int64()
	assert.False(t, ok)
}

func TestUInt64_JSON(t *testing.T) {
	data, err := json.Marshal(FromUints(10, 2))
	require.NoError(t, err)
	assert.JSONEq(t, `[10,2]`, string(data))

	var v UInt64
	require.NoError(t, json.Unmarshal([]byte(`[10,2]`), &v))
	assert.Equal(t, FromUints(10, 2), v)

	require.NoError(t, json.Unmarshal([]byte(`"18446744073709551615"`), &v))
	assert.Equal(t, UInt64(math.MaxUint64), v)

	require.NoError(t, json.Unmarshal([]byte(`77`), &v))
	assert.Equal(t, UInt64(77), v)

	assert.Error(t, json.Unmarshal([]byte(`"x"`), &v))
}

// --- MosaicId ---

func TestDeriveMosaicId_Vectors(t *testing.T) {
	owner, err := hex.DecodeString(ownerPublicKey)
	require.NoError(t, err)

	assert.Equal(t, "2550C93E0C97E8B1", DeriveMosaicId(NonceFromUint32(0), owner).Hex())
	assert.Equal(t, "349D1F9886138550", DeriveMosaicId(NonceFromUint32(1), owner).Hex())
}

func TestDeriveMosaicId_ClearsNamespaceBit(t *testing.T) {
	owner := bytes.Repeat([]byte{0xAB}, 32)
	for i := uint32(0); i < 64; i++ {
		id := DeriveMosaicId(NonceFromUint32(i), owner)
		assert.False(t, IsNamespace(id.Id()))
	}
}

func TestNonce(t *testing.T) {
	n := NonceFromUint32(1)
	assert.Equal(t, MosaicNonce{1, 0, 0, 0}, n)
	assert.Equal(t, uint32(1), n.Uint32())
	assert.Equal(t, "01000000", n.Hex())

	parsed, err := NonceFromHex("01000000")
	require.NoError(t, err)
	assert.Equal(t, n, parsed)

	_, err = NonceFromHex("0100")
	assert.ErrorIs(t, err, ErrInvalidNonce)

	r, err := RandomNonce(bytes.NewReader([]byte{9, 9, 9, 9}))
	require.NoError(t, err)
	assert.Equal(t, MosaicNonce{9, 9, 9, 9}, r)
}

// --- NamespaceId ---

func TestNamespaceIdFromName_Vectors(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"nem", "84B3552D375FFA4B"},
		{"nem.xem", "D525AD41D95FCF29"},
		{"a", "A535DA36BC8C7FA4"},
		{"a.b", "A4B144731D78FBDE"},
		{"a.b.c", "A2F4875D7DBA6D0F"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, err := NamespaceIdFromName(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.want, id.Hex())
			assert.Equal(t, tc.name, id.FullName())
			assert.True(t, IsNamespace(id.Id()))
		})
	}
}

func TestNamespacePath_RetainsAncestors(t *testing.T) {
	path, err := NamespacePath("a.b.c")
	require.NoError(t, err)
	require.Len(t, path, 3)
	assert.Equal(t, "A535DA36BC8C7FA4", path[0].Hex())
	assert.Equal(t, "A4B144731D78FBDE", path[1].Hex())
	assert.Equal(t, "A2F4875D7DBA6D0F", path[2].Hex())
	assert.Equal(t, "a.b", path[1].FullName())
}

func TestChildNamespaceId_IndependentOfParentRepresentation(t *testing.T) {
	byName, err := NamespaceIdFromName("a")
	require.NoError(t, err)
	byValue, err := NamespaceIdFromHex(byName.Hex())
	require.NoError(t, err)

	fromName, err := ChildNamespaceId(byName, "b")
	require.NoError(t, err)
	fromValue, err := ChildNamespaceId(byValue, "b")
	require.NoError(t, err)
	direct, err := NamespaceIdFromName("a.b")
	require.NoError(t, err)

	assert.True(t, fromName.Equals(fromValue))
	assert.True(t, fromName.Equals(direct))
	assert.Equal(t, "", fromValue.FullName())
}

func TestNamespaceId_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		wantErr error
	}{
		{"", ErrInvalidNamespaceName},
		{"a..b", ErrInvalidNamespaceName},
		{"Upper", ErrInvalidNamespaceName},
		{"-leading", ErrInvalidNamespaceName},
		{"has space", ErrInvalidNamespaceName},
		{"a.b.c.d", ErrNamespaceTooDeep},
		{strings.Repeat("x", 65), ErrInvalidNamespaceName},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NamespaceIdFromName(tc.name)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestNamespaceId_AllowedCharacters(t *testing.T) {
	for _, name := range []string{"0abc", "a_b-c", strings.Repeat("x", 64), "root.sub_1.leaf-2"} {
		_, err := NamespaceIdFromName(name)
		assert.NoError(t, err, name)
	}
}

// --- unresolved ---

func TestDecode(t *testing.T) {
	ns, err := NamespaceIdFromName("nem.xem")
	require.NoError(t, err)

	decoded := Decode(ns.Id())
	_, isNamespace := decoded.(NamespaceId)
	assert.True(t, isNamespace)
	assert.True(t, ns.Equals(decoded))

	m := NewMosaicId(0x2550C93E0C97E8B1)
	decoded = Decode(m.Id())
	_, isMosaic := decoded.(MosaicId)
	assert.True(t, isMosaic)
	assert.True(t, m.Equals(decoded))
}

func TestEquals_AcrossConstruction(t *testing.T) {
	byName, err := NamespaceIdFromName("nem")
	require.NoError(t, err)
	assert.True(t, byName.Equals(NewNamespaceId(0x84B3552D375FFA4B)))
	assert.False(t, byName.Equals(nil))
}
