package wallet

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/catapult-go/account"
	"github.com/bitfsorg/catapult-go/chain"
	"github.com/bitfsorg/catapult-go/keypair"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// --- Mnemonic tests ---

func TestNewMnemonic(t *testing.T) {
	for _, words := range []int{12, 24} {
		m, err := NewMnemonic(words)
		require.NoError(t, err)
		assert.Equal(t, words, m.Words())
		parsed, err := ParseMnemonic(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := NewMnemonic(18)
	assert.ErrorIs(t, err, ErrInvalidWordCount)
}

func TestNewMnemonic_Unique(t *testing.T) {
	a, err := NewMnemonic(12)
	require.NoError(t, err)
	b, err := NewMnemonic(12)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestParseMnemonic(t *testing.T) {
	m, err := ParseMnemonic("  abandon abandon abandon abandon abandon abandon\n abandon abandon abandon abandon abandon\tabout ")
	require.NoError(t, err)
	assert.Equal(t, Mnemonic(testMnemonic), m)

	for _, bad := range []string{
		"",
		"abandon abandon abandon",
		strings.Replace(testMnemonic, "about", "abandon", 1),
	} {
		_, err := ParseMnemonic(bad)
		assert.ErrorIs(t, err, ErrInvalidMnemonic, "phrase %q", bad)
	}
}

func TestMnemonic_Seed(t *testing.T) {
	seed, err := Mnemonic(testMnemonic).Seed("")
	require.NoError(t, err)
	assert.Equal(t,
		"5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc1"+
			"9a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4",
		hex.EncodeToString(seed))

	withPass, err := Mnemonic(testMnemonic).Seed("secret")
	require.NoError(t, err)
	assert.NotEqual(t, seed, withPass)

	_, err = Mnemonic("not a mnemonic").Seed("")
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestNewWalletFromMnemonic(t *testing.T) {
	w, err := NewWalletFromMnemonic(" "+testMnemonic+"\n", "")
	require.NoError(t, err)
	want := newTestWallet(t)
	for _, i := range []uint32{0, 7} {
		got, err := w.PrivateKey(i)
		require.NoError(t, err)
		exp, err := want.PrivateKey(i)
		require.NoError(t, err)
		assert.Equal(t, exp, got)
	}

	_, err = NewWalletFromMnemonic("abandon abandon abandon", "")
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}

// --- Seed encryption tests ---

func TestEncryptDecryptSeed_RoundTrip(t *testing.T) {
	seed := make([]byte, 64)
	for i := range seed {
		seed[i] = byte(i)
	}

	encrypted, err := EncryptSeed(seed, "test-password-123")
	require.NoError(t, err)
	assert.Len(t, encrypted, SaltLen+NonceLen+len(seed)+ChecksumLen+16)

	decrypted, err := DecryptSeed(encrypted, "test-password-123")
	require.NoError(t, err)
	assert.Equal(t, seed, decrypted)
}

func TestDecryptSeed_Failures(t *testing.T) {
	encrypted, err := EncryptSeed(make([]byte, 64), "correct")
	require.NoError(t, err)

	_, err = DecryptSeed(encrypted, "wrong")
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	tampered := append([]byte(nil), encrypted...)
	tampered[len(tampered)-1] ^= 0x01
	_, err = DecryptSeed(tampered, "correct")
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	_, err = DecryptSeed([]byte{1, 2, 3}, "correct")
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	_, err = EncryptSeed(nil, "correct")
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestEncryptSeed_RandomizedOutput(t *testing.T) {
	seed := make([]byte, 32)
	a, err := EncryptSeed(seed, "pw")
	require.NoError(t, err)
	b, err := EncryptSeed(seed, "pw")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

// --- SLIP-10 tests ---

func TestSLIP10_Ed25519Vector1(t *testing.T) {
	seed, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	master, err := NewMasterNode(seed)
	require.NoError(t, err)
	assert.Equal(t, "2b4be7f19ee27bbf30c667b642d5f4aa69fd169872f8fc3059c08ebae2eb19e7", hex.EncodeToString(master.Key[:]))
	assert.Equal(t, "90046a93de5380a72b5e45010748567d5ea02bbf6522f979e05c0d8d8ca9fffb", hex.EncodeToString(master.ChainCode[:]))

	path, err := ParsePath("m/0'")
	require.NoError(t, err)
	child, err := master.Derive(path)
	require.NoError(t, err)
	assert.Equal(t, "68e0fe46dfb67e368c75379acec591dad19df3cde26e63b93a8e704f1dade7a3", hex.EncodeToString(child.Key[:]))
	assert.Equal(t, "8b59aa11380b624e81507a27fedda59fea6d0b779a778918a2fd3590e16e9c69", hex.EncodeToString(child.ChainCode[:]))
}

func TestSLIP10_RejectsNonHardened(t *testing.T) {
	seed, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	master, err := NewMasterNode(seed)
	require.NoError(t, err)
	_, err = master.Child(1)
	assert.ErrorIs(t, err, ErrNonHardened)

	_, err = NewMasterNode(make([]byte, 8))
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestParsePath(t *testing.T) {
	got, err := ParsePath(AccountPath(7))
	require.NoError(t, err)
	assert.Equal(t, []uint32{44 + Hardened, 43 + Hardened, 7 + Hardened, Hardened, Hardened}, got)

	got, err = ParsePath("m/1H/2H")
	require.NoError(t, err)
	assert.Equal(t, []uint32{1 + Hardened, 2 + Hardened}, got)

	_, err = ParsePath("m/44'/43'/0")
	assert.ErrorIs(t, err, ErrNonHardened)
	_, err = ParsePath("44'/43'")
	assert.ErrorIs(t, err, ErrInvalidPath)
	_, err = ParsePath("m/x'")
	assert.ErrorIs(t, err, ErrInvalidPath)
	_, err = ParsePath("m/2147483648'")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

// --- Wallet tests ---

func newTestWallet(t *testing.T) *Wallet {
	t.Helper()
	seed, err := Mnemonic(testMnemonic).Seed("")
	require.NoError(t, err)
	w, err := NewWallet(seed)
	require.NoError(t, err)
	return w
}

func TestWallet_PrivateKeyMatchesPath(t *testing.T) {
	w := newTestWallet(t)
	seed, err := Mnemonic(testMnemonic).Seed("")
	require.NoError(t, err)
	master, err := NewMasterNode(seed)
	require.NoError(t, err)
	path, err := ParsePath(AccountPath(3))
	require.NoError(t, err)
	node, err := master.Derive(path)
	require.NoError(t, err)

	priv, err := w.PrivateKey(3)
	require.NoError(t, err)
	assert.Equal(t, node.Key[:], priv)

	_, err = w.PrivateKey(Hardened)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestWallet_Account(t *testing.T) {
	w := newTestWallet(t)

	a0, err := w.Account(0, chain.MijinTest)
	require.NoError(t, err)
	again, err := w.Account(0, chain.MijinTest)
	require.NoError(t, err)
	a1, err := w.Account(1, chain.MijinTest)
	require.NoError(t, err)

	assert.Equal(t, a0.PublicKey, again.PublicKey)
	assert.NotEqual(t, a0.PublicKey, a1.PublicKey)
	assert.Equal(t, account.MijinTest, a0.Network())
	assert.Equal(t, keypair.SHA3, a0.Schema())
	assert.True(t, a0.Address.IsValid(keypair.SHA3))

	mainnet, err := w.Account(0, chain.MainNet)
	require.NoError(t, err)
	assert.Equal(t, account.MainNet, mainnet.Network())
	assert.Equal(t, keypair.KeccakReversedKey, mainnet.Schema())
}

func TestNewWallet_EmptySeed(t *testing.T) {
	_, err := NewWallet(nil)
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

// --- Account label tests ---

func TestState_CreateGetList(t *testing.T) {
	s := NewState()
	a, err := s.Create("savings")
	require.NoError(t, err)
	assert.Equal(t, uint32(0), a.Index)
	b, err := s.Create("trading")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), b.Index)

	_, err = s.Create("savings")
	assert.ErrorIs(t, err, ErrAccountExists)

	got, err := s.Get("trading")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), got.Index)
	assert.Len(t, s.List(), 2)
	assert.NoError(t, s.Validate())
}

func TestState_RenameDelete(t *testing.T) {
	s := NewState()
	_, err := s.Create("a")
	require.NoError(t, err)
	_, err = s.Create("b")
	require.NoError(t, err)

	assert.ErrorIs(t, s.Rename("a", "b"), ErrAccountExists)
	assert.ErrorIs(t, s.Rename("zz", "c"), ErrAccountNotFound)
	require.NoError(t, s.Rename("a", "c"))
	_, err = s.Get("a")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	require.NoError(t, s.Delete("c"))
	assert.ErrorIs(t, s.Delete("c"), ErrAccountNotFound)
	assert.Len(t, s.List(), 1)

	// Deleted labels can be reused but indices are not.
	again, err := s.Create("c")
	require.NoError(t, err)
	assert.Equal(t, uint32(2), again.Index)
	assert.NoError(t, s.Validate())
}

func TestState_Validate(t *testing.T) {
	s := &State{Accounts: []AccountEntry{{Label: "a", Index: 0}, {Label: "b", Index: 0}}, NextIndex: 1}
	assert.Error(t, s.Validate())

	s = &State{Accounts: []AccountEntry{{Label: "a", Index: 4}}, NextIndex: 2}
	assert.Error(t, s.Validate())

	s = &State{Accounts: []AccountEntry{{Label: "a", Index: Hardened}}, NextIndex: 0}
	assert.ErrorIs(t, s.Validate(), ErrIndexOutOfRange)
}
