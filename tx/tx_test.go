package tx

import (
	"encoding/binary"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/catapult-go/account"
	"github.com/bitfsorg/catapult-go/chain"
	"github.com/bitfsorg/catapult-go/ids"
	"github.com/bitfsorg/catapult-go/keypair"
)

const (
	testPrivateKey     = "575DBB3062267EFF57C970A336EBBC8FBCFE12C5BD3ED7BC11EB0481D7704CED"
	cosignerPrivateKey = "2A91E1D5C110A8D0105AAD4683F962C2A56663A3CAD46666B16D243174673D90"
	thirdPrivateKey    = "B8AFAE6F4AD13A1B8AAD047B488E0738A437C7389D4FF30C359AC068910C1D59"
	testGenHash        = "57F7DA205008026C776CB6AED843393F04CD458E0AA2D9F1D5F31A402072B2D6"
	recipientText      = "SBILTA367K2LX2FEXG5TFWAS7GEFYAGY7QLFBYKC"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testParams(t *testing.T) chain.Params {
	t.Helper()
	g, err := chain.ParseGenerationHash(testGenHash)
	require.NoError(t, err)
	return chain.MijinTest.WithGenerationHash(g).WithClock(func() time.Time { return fixedNow })
}

func testKeyPair(t *testing.T, hexKey string) *keypair.KeyPair {
	t.Helper()
	kp, err := keypair.FromHex(hexKey, keypair.SHA3)
	require.NoError(t, err)
	return kp
}

func testPublicAccount(t *testing.T, kp *keypair.KeyPair) *account.PublicAccount {
	t.Helper()
	pub, err := account.NewPublicAccount(kp.PublicKey(), account.MijinTest, keypair.SHA3)
	require.NoError(t, err)
	return pub
}

func testHeader(t *testing.T) Header {
	t.Helper()
	d, err := CreateDeadline(fixedNow, 2*time.Hour)
	require.NoError(t, err)
	return Header{Network: account.MijinTest, Deadline: d}
}

func testRecipient(t *testing.T) account.Address {
	t.Helper()
	a, err := account.AddressFromRawAddress(recipientText)
	require.NoError(t, err)
	return a
}

func xem(t *testing.T) ids.NamespaceId {
	t.Helper()
	id, err := ids.NamespaceIdFromName("nem.xem")
	require.NoError(t, err)
	return id
}

func newTransfer(t *testing.T, mosaics int) *Transaction {
	t.Helper()
	ms := make([]Mosaic, mosaics)
	for i := range ms {
		ms[i] = NewMosaic(xem(t), ids.UInt64(10*(i+1)))
	}
	tr, err := New(testHeader(t), &Transfer{
		Recipient: ToAddress(testRecipient(t)),
		Mosaics:   ms,
		Message:   EmptyMessage,
	})
	require.NoError(t, err)
	return tr
}

// --- Deadline tests ---

func TestCreateDeadline(t *testing.T) {
	d, err := CreateDeadline(fixedNow, 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(2*time.Hour), d.Time())
	assert.Equal(t, ids.UInt64(fixedNow.Add(2*time.Hour).Sub(Epoch).Milliseconds()), d.UInt64())

	_, err = CreateDeadline(fixedNow, MaxDeadline)
	assert.NoError(t, err)

	for _, bad := range []time.Duration{0, -time.Second, MaxDeadline + time.Millisecond} {
		_, err := CreateDeadline(fixedNow, bad)
		assert.ErrorIs(t, err, ErrInvalidDeadline, bad.String())
	}
}

func TestDeadlineFromTime_BeforeEpoch(t *testing.T) {
	assert.Equal(t, Deadline(0), DeadlineFromTime(Epoch.Add(-time.Hour)))
	assert.Equal(t, Deadline(1000), DeadlineFromTime(Epoch.Add(time.Second)))
}

// --- Size tests ---

func TestSize_MatchesEncodedLength(t *testing.T) {
	signer := testPublicAccount(t, testKeyPair(t, testPrivateKey))
	addr := testRecipient(t)
	mosaicId := ids.NewMosaicId(0x2550C93E0C97E8B1)
	h := testHeader(t)

	for _, n := range []int{0, 1, 3} {
		mosaics := make([]Mosaic, n)
		addrMods := make([]AddressModification, n)
		mosaicMods := make([]MosaicModification, n)
		typeMods := make([]EntityTypeModification, n)
		cosigMods := make([]CosignatoryModification, n)
		inner := make([]*Transaction, n)
		cosigs := make([]Cosignature, n)
		for i := 0; i < n; i++ {
			mosaics[i] = NewMosaic(mosaicId, 1)
			addrMods[i] = AddressModification{Type: ModificationAdd, Address: addr}
			mosaicMods[i] = MosaicModification{Type: ModificationAdd, MosaicId: mosaicId}
			typeMods[i] = EntityTypeModification{Type: ModificationRemove, EntityType: TypeTransfer}
			cosigMods[i] = CosignatoryModification{Type: ModificationAdd, PublicKey: signer.PublicKey}
			inner[i] = newTransfer(t, i).ToAggregate(signer)
		}
		proof := make([]byte, 20*n)

		bodies := []Body{
			&Transfer{Recipient: ToAddress(addr), Mosaics: mosaics, Message: PlainMessage(strings.Repeat("x", n))},
			&RegisterNamespace{Kind: RootNamespace, Name: strings.Repeat("a", n+1), Duration: 100},
			&MosaicDefinition{Properties: MosaicProperties{Flags: Transferable, Duration: ids.UInt64(n)}},
			&MosaicSupplyChange{MosaicId: mosaicId, Direction: SupplyIncrease, Delta: ids.UInt64(n)},
			&ModifyMultisigAccount{MinApprovalDelta: 1, MinRemovalDelta: -1, Modifications: cosigMods},
			&Aggregate{InnerTransactions: inner, Cosignatures: cosigs},
			&Aggregate{Bonded: true, InnerTransactions: inner},
			&HashLock{Mosaic: NewMosaic(mosaicId, 10), Duration: 480},
			&SecretLock{Mosaic: NewMosaic(mosaicId, 10), Recipient: ToNamespace(xem(t))},
			&SecretProof{Recipient: ToAddress(addr), Proof: proof},
			&AddressAlias{Action: AliasLink, NamespaceId: xem(t), Address: addr},
			&MosaicAlias{Action: AliasLink, NamespaceId: xem(t), MosaicId: mosaicId},
			&AccountLink{RemotePublicKey: signer.PublicKey},
			&AccountAddressProperty{PropertyType: AllowAddress, Modifications: addrMods},
			&AccountMosaicProperty{PropertyType: BlockMosaic, Modifications: mosaicMods},
			&AccountEntityTypeProperty{PropertyType: BlockTransaction, Modifications: typeMods},
		}
		for _, b := range bodies {
			tr, err := New(h, b)
			require.NoError(t, err)
			out := encode(tr, signer.PublicKey, keypair.Signature{})
			assert.Equal(t, Size(tr), len(out), "%s with cardinality %d", tr.Type(), n)
			assert.Equal(t, uint32(len(out)), binary.LittleEndian.Uint32(out[:4]))
			assert.Equal(t, uint16(tr.Type()), binary.LittleEndian.Uint16(out[102:104]))

			if !tr.Type().IsAggregate() {
				emb := encodeEmbedded(tr.ToAggregate(signer), account.MijinTest)
				assert.Equal(t, EmbeddedSize(tr), len(emb), "embedded %s", tr.Type())
			}
		}
	}
}

func TestSize_FixedVariants(t *testing.T) {
	mosaicId := ids.NewMosaicId(1)
	tests := []struct {
		body Body
		want int
	}{
		{&HashLock{Mosaic: NewMosaic(mosaicId, 1)}, 176},
		{&MosaicSupplyChange{MosaicId: mosaicId}, 137},
		{&AddressAlias{}, 154},
		{&MosaicAlias{}, 137},
		{&SecretLock{Mosaic: NewMosaic(mosaicId, 1), Recipient: ToNamespace(xem(t))}, 202},
		{&AccountLink{}, 153},
		{&MosaicDefinition{}, 135},
	}
	for _, tc := range tests {
		tr, err := New(testHeader(t), tc.body)
		require.NoError(t, err)
		assert.Equal(t, tc.want, Size(tr), tr.Type().String())
	}
}

func TestCalculateMaxFee(t *testing.T) {
	tr := newTransfer(t, 1)
	assert.Equal(t, ids.UInt64(165), CalculateMaxFee(tr, 1))
	assert.Equal(t, ids.UInt64(165*25), CalculateMaxFee(tr, 25))
	assert.Equal(t, ids.UInt64(0), CalculateMaxFee(tr, 0))
}

// --- Encoding layout tests ---

func TestTransfer_GoldenTail(t *testing.T) {
	tr := newTransfer(t, 1)
	signed, err := Sign(tr, testKeyPair(t, testPrivateKey), testParams(t))
	require.NoError(t, err)

	payload := signed.PayloadHex()
	assert.Equal(t, 2*Size(tr), len(payload))
	assert.Equal(t, uint32(Size(tr)), binary.LittleEndian.Uint32(signed.Payload[:4]))

	wantTail := "9050B9837EFAB4BBE8A4B9BB32D812F9885C00D8FC1650E142" + // recipient
		"0100" + // message size
		"01" + // mosaics count
		"00" + // plain message, no payload
		"29CF5FD941AD25D5" + // nem.xem
		"0A00000000000000" // amount 10
	assert.Equal(t, wantTail, payload[2*HeaderSize:])
}

func TestEnvelope_Layout(t *testing.T) {
	tr := newTransfer(t, 0)
	tr.MaxFee = 0x0102
	kp := testKeyPair(t, testPrivateKey)
	signed, err := Sign(tr, kp, testParams(t))
	require.NoError(t, err)

	p := signed.Payload
	pub := kp.PublicKey()
	assert.Equal(t, pub[:], p[signerOffset:signedDataOffset])
	assert.Equal(t, byte(3), p[100], "version")
	assert.Equal(t, byte(account.MijinTest), p[101], "network")
	assert.Equal(t, []byte{0x54, 0x41}, p[102:104])
	assert.Equal(t, uint64(0x0102), binary.LittleEndian.Uint64(p[104:112]))
	assert.Equal(t, uint64(tr.Deadline), binary.LittleEndian.Uint64(p[112:120]))
}

func TestNamespaceRecipient_Encoding(t *testing.T) {
	out := encodeRecipient(ToNamespace(xem(t)), account.MijinTest)
	require.Len(t, out, 25)
	assert.Equal(t, byte(0x91), out[0])
	assert.Equal(t, "29CF5FD941AD25D5", upperHex(out[1:9]))
	assert.Equal(t, make([]byte, 16), out[9:])
}

func TestMultisig_NegativeDelta(t *testing.T) {
	tr, err := New(testHeader(t), &ModifyMultisigAccount{MinApprovalDelta: 2, MinRemovalDelta: -1})
	require.NoError(t, err)
	out := encode(tr, keypair.PublicKey{}, keypair.Signature{})
	assert.Equal(t, []byte{0xFF, 0x02, 0x00}, out[HeaderSize:])
}

func TestRegisterNamespace_Child(t *testing.T) {
	tr, err := NewChildNamespace(testHeader(t), "nem", "xem")
	require.NoError(t, err)
	rn := tr.Body.(*RegisterNamespace)
	assert.Equal(t, xem(t).Id(), rn.Id.Id())

	out := encode(tr, keypair.PublicKey{}, keypair.Signature{})
	body := out[HeaderSize:]
	assert.Equal(t, byte(ChildNamespace), body[0])
	assert.Equal(t, "4BFA5F372D55B384", upperHex(body[1:9]), "parent nem")
	assert.Equal(t, "29CF5FD941AD25D5", upperHex(body[9:17]))
	assert.Equal(t, byte(3), body[17])
	assert.Equal(t, "xem", string(body[18:]))

	_, err = NewChildNamespace(testHeader(t), "a.b.c", "d")
	assert.ErrorIs(t, err, ids.ErrNamespaceTooDeep)

	_, err = NewRootNamespace(testHeader(t), "a.b", 10)
	assert.ErrorIs(t, err, ids.ErrInvalidNamespaceName)

	_, err = NewRootNamespace(testHeader(t), "Bad", 10)
	assert.ErrorIs(t, err, ids.ErrInvalidNamespaceName)
}

func TestMosaicDefinition_DerivesId(t *testing.T) {
	kp := testKeyPair(t, testPrivateKey)
	tr, err := NewMosaicDefinition(testHeader(t), ids.NonceFromUint32(0), kp.PublicKey(),
		MosaicProperties{Flags: SupplyMutable | Transferable, Divisibility: 6, Duration: 1000})
	require.NoError(t, err)
	md := tr.Body.(*MosaicDefinition)
	assert.Equal(t, "2550C93E0C97E8B1", md.MosaicId.Hex())
	assert.Equal(t, 144, Size(tr))

	_, err = NewMosaicDefinition(testHeader(t), ids.NonceFromUint32(0), kp.PublicKey(),
		MosaicProperties{Divisibility: 7})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

// --- Signing tests ---

func TestSign_SignatureVerifiesOverDigest(t *testing.T) {
	params := testParams(t)
	kp := testKeyPair(t, testPrivateKey)
	signed, err := Sign(newTransfer(t, 1), kp, params)
	require.NoError(t, err)

	var sig keypair.Signature
	copy(sig[:], signed.Payload[signatureOffset:signerOffset])
	digest := append(params.GenerationHash[:], signed.Payload[signedDataOffset:]...)
	assert.NoError(t, keypair.Verify(kp.PublicKey(), digest, sig, keypair.SHA3))

	wantHash := keypair.SHA3.Sum256(signed.Payload[4:])
	assert.Equal(t, wantHash, signed.Hash[:])
	assert.Equal(t, TypeTransfer, signed.Type)
	assert.Equal(t, account.MijinTest, signed.Network)
	assert.Equal(t, kp.PublicKey(), signed.Signer)
}

func TestSign_Deterministic(t *testing.T) {
	kp := testKeyPair(t, testPrivateKey)
	a, err := Sign(newTransfer(t, 1), kp, testParams(t))
	require.NoError(t, err)
	b, err := Sign(newTransfer(t, 1), kp, testParams(t))
	require.NoError(t, err)
	assert.Equal(t, a.Payload, b.Payload)
	assert.Equal(t, a.Hash, b.Hash)
}

func TestSign_GenerationHashChangesSignature(t *testing.T) {
	kp := testKeyPair(t, testPrivateKey)
	a, err := Sign(newTransfer(t, 1), kp, testParams(t))
	require.NoError(t, err)

	other := testParams(t)
	other.GenerationHash[0] ^= 0xFF
	b, err := Sign(newTransfer(t, 1), kp, other)
	require.NoError(t, err)
	assert.NotEqual(t, a.Hash, b.Hash)
}

func TestSign_Errors(t *testing.T) {
	kp := testKeyPair(t, testPrivateKey)
	params := testParams(t)

	tr := newTransfer(t, 0)
	tr.Deadline = 0
	_, err := Sign(tr, kp, params)
	assert.ErrorIs(t, err, ErrInvalidDeadline)

	tr = newTransfer(t, 0)
	tr.Deadline = DeadlineFromTime(fixedNow.Add(MaxDeadline + time.Minute))
	_, err = Sign(tr, kp, params)
	assert.ErrorIs(t, err, ErrInvalidDeadline)

	// Expired and exactly-now deadlines are outside the window.
	tr = newTransfer(t, 0)
	tr.Deadline = DeadlineFromTime(fixedNow.Add(-time.Hour))
	_, err = Sign(tr, kp, params)
	assert.ErrorIs(t, err, ErrInvalidDeadline)

	tr = newTransfer(t, 0)
	tr.Deadline = DeadlineFromTime(fixedNow)
	_, err = Sign(tr, kp, params)
	assert.ErrorIs(t, err, ErrInvalidDeadline)

	tr = newTransfer(t, 0)
	tr.Deadline = DeadlineFromTime(fixedNow.Add(time.Millisecond))
	_, err = Sign(tr, kp, params)
	assert.NoError(t, err)

	tr = newTransfer(t, 0)
	tr.Network = account.MainNet
	_, err = Sign(tr, kp, params)
	assert.ErrorIs(t, err, ErrNetworkMismatch)

	_, err = Sign(newTransfer(t, 0), kp, chain.MijinTest)
	assert.ErrorIs(t, err, chain.ErrMissingGenerationHash)

	keccak, err := keypair.FromHex(testPrivateKey, keypair.KeccakReversedKey)
	require.NoError(t, err)
	_, err = Sign(newTransfer(t, 0), keccak, params)
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = Sign(nil, kp, params)
	assert.ErrorIs(t, err, ErrNilParam)
}

func TestSign_FillsNetworkFromParams(t *testing.T) {
	tr := newTransfer(t, 0)
	tr.Network = 0
	signed, err := Sign(tr, testKeyPair(t, testPrivateKey), testParams(t))
	require.NoError(t, err)
	assert.Equal(t, account.MijinTest, signed.Network)
	assert.Equal(t, account.NetworkType(0), tr.Network, "caller's transaction is not mutated")
}

func TestSign_InnerWithoutSigner(t *testing.T) {
	agg, err := NewAggregateComplete(testHeader(t), newTransfer(t, 1))
	require.NoError(t, err)
	_, err = Sign(agg, testKeyPair(t, testPrivateKey), testParams(t))
	assert.ErrorIs(t, err, ErrMissingSigner)
}

func TestNew_RejectsNestedAggregate(t *testing.T) {
	signer := testPublicAccount(t, testKeyPair(t, testPrivateKey))
	inner, err := NewAggregateComplete(testHeader(t))
	require.NoError(t, err)
	_, err = NewAggregateComplete(testHeader(t), inner.ToAggregate(signer))
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = New(testHeader(t), nil)
	assert.ErrorIs(t, err, ErrNilParam)

	_, err = New(testHeader(t), &Transfer{})
	assert.ErrorIs(t, err, ErrNilParam)

	_, err = New(testHeader(t), &Transfer{
		Recipient: ToAddress(testRecipient(t)),
		Message:   Message{Payload: make([]byte, MaxMessageSize+1)},
	})
	assert.ErrorIs(t, err, ErrMessageTooLarge)
}

// --- Aggregate tests ---

func newAggregate(t *testing.T, bonded bool, signers ...*keypair.KeyPair) *Transaction {
	t.Helper()
	inner := make([]*Transaction, len(signers))
	for i, kp := range signers {
		inner[i] = newTransfer(t, 1).ToAggregate(testPublicAccount(t, kp))
	}
	var (
		agg *Transaction
		err error
	)
	if bonded {
		agg, err = NewAggregateBonded(testHeader(t), inner...)
	} else {
		agg, err = NewAggregateComplete(testHeader(t), inner...)
	}
	require.NoError(t, err)
	return agg
}

func TestAggregate_EmbeddedLayout(t *testing.T) {
	initiator := testKeyPair(t, testPrivateKey)
	agg := newAggregate(t, false, initiator)
	signed, err := Sign(agg, initiator, testParams(t))
	require.NoError(t, err)

	p := signed.Payload
	payloadSize := binary.LittleEndian.Uint32(p[HeaderSize : HeaderSize+4])
	assert.Equal(t, uint32(EmbeddedHeaderSize+45), payloadSize)

	inner := p[HeaderSize+4:]
	pub := initiator.PublicKey()
	assert.Equal(t, payloadSize, binary.LittleEndian.Uint32(inner[:4]))
	assert.Equal(t, pub[:], inner[4:36])
	assert.Equal(t, []byte{3, byte(account.MijinTest), 0x54, 0x41}, inner[36:40])
	assert.Equal(t, len(p), HeaderSize+4+int(payloadSize))
}

func TestAggregate_CosigningPathsAreIdentical(t *testing.T) {
	params := testParams(t)
	initiator := testKeyPair(t, testPrivateKey)
	cosigner := testKeyPair(t, cosignerPrivateKey)
	third := testKeyPair(t, thirdPrivateKey)

	allAtOnce, err := SignWithCosignatories(newAggregate(t, false, initiator, cosigner, third),
		initiator, []*keypair.KeyPair{cosigner, third}, params)
	require.NoError(t, err)

	alone, err := Sign(newAggregate(t, false, initiator, cosigner, third), initiator, params)
	require.NoError(t, err)
	c1, err := CosignAggregate(alone, cosigner)
	require.NoError(t, err)
	c2 := SignCosignature(alone.Hash, third)
	attached, err := AttachCosignatures(alone, c1, c2)
	require.NoError(t, err)

	assert.Equal(t, allAtOnce.Payload, attached.Payload)
	assert.Equal(t, allAtOnce.Hash, attached.Hash)
	assert.Equal(t, alone.Hash, attached.Hash, "cosignatures do not change the hash")
	assert.Equal(t, len(alone.Payload)+2*CosignatureSize, len(attached.Payload))
	assert.Equal(t, uint32(len(attached.Payload)), binary.LittleEndian.Uint32(attached.Payload[:4]))

	assert.NoError(t, VerifyCosignature(c1, keypair.SHA3))
	assert.NoError(t, VerifyCosignature(c2, keypair.SHA3))
}

func TestAggregate_CosignatureOrderMatters(t *testing.T) {
	params := testParams(t)
	initiator := testKeyPair(t, testPrivateKey)
	a := testKeyPair(t, cosignerPrivateKey)
	b := testKeyPair(t, thirdPrivateKey)

	ab, err := SignWithCosignatories(newAggregate(t, false, initiator, a, b), initiator, []*keypair.KeyPair{a, b}, params)
	require.NoError(t, err)
	ba, err := SignWithCosignatories(newAggregate(t, false, initiator, a, b), initiator, []*keypair.KeyPair{b, a}, params)
	require.NoError(t, err)
	assert.NotEqual(t, ab.Payload, ba.Payload)
	assert.Equal(t, ab.Hash, ba.Hash)
}

func TestAggregate_PresetCosignaturesKeepHash(t *testing.T) {
	params := testParams(t)
	initiator := testKeyPair(t, testPrivateKey)
	cosigner := testKeyPair(t, cosignerPrivateKey)

	alone, err := Sign(newAggregate(t, false, initiator, cosigner), initiator, params)
	require.NoError(t, err)
	c := SignCosignature(alone.Hash, cosigner)

	agg := newAggregate(t, false, initiator, cosigner)
	agg.Body.(*Aggregate).Cosignatures = []Cosignature{c.Cosignature()}
	withPreset, err := Sign(agg, initiator, params)
	require.NoError(t, err)

	attached, err := AttachCosignatures(alone, c)
	require.NoError(t, err)
	assert.Equal(t, attached.Payload, withPreset.Payload)
}

func TestAttachCosignatures_Errors(t *testing.T) {
	params := testParams(t)
	initiator := testKeyPair(t, testPrivateKey)
	signed, err := Sign(newAggregate(t, true, initiator), initiator, params)
	require.NoError(t, err)

	wrong := SignCosignature(Hash{1}, initiator)
	_, err = AttachCosignatures(signed, wrong)
	assert.ErrorIs(t, err, ErrHashMismatch)

	transfer, err := Sign(newTransfer(t, 0), initiator, params)
	require.NoError(t, err)
	_, err = AttachCosignatures(transfer)
	assert.ErrorIs(t, err, ErrNotAggregate)
	_, err = CosignAggregate(transfer, initiator)
	assert.ErrorIs(t, err, ErrNotAggregate)

	_, err = SignWithCosignatories(newTransfer(t, 0), initiator, nil, params)
	assert.ErrorIs(t, err, ErrNotAggregate)

	_, err = AttachCosignatures(signed, nil)
	assert.ErrorIs(t, err, ErrNilParam)
}

func TestVerifyCosignature_Tampered(t *testing.T) {
	c := SignCosignature(Hash{7}, testKeyPair(t, cosignerPrivateKey))
	c.ParentHash[0] ^= 0x01
	assert.ErrorIs(t, VerifyCosignature(c, keypair.SHA3), ErrInvalidCosignature)
}

// --- Hash lock tests ---

func TestNewHashLock(t *testing.T) {
	params := testParams(t)
	initiator := testKeyPair(t, testPrivateKey)
	bonded, err := Sign(newAggregate(t, true, initiator), initiator, params)
	require.NoError(t, err)
	assert.Equal(t, TypeAggregateBonded, bonded.Type)

	lock, err := NewHashLock(testHeader(t), NewMosaic(xem(t), 10_000_000), 480, bonded)
	require.NoError(t, err)
	assert.Equal(t, bonded.Hash, lock.Body.(*HashLock).Hash)
	assert.Equal(t, 176, Size(lock))

	lockSigned, err := Sign(lock, initiator, params)
	require.NoError(t, err)
	assert.Equal(t, bonded.Hash[:], lockSigned.Payload[HeaderSize+24:])
}

func TestNewHashLock_RejectsOtherTypes(t *testing.T) {
	params := testParams(t)
	initiator := testKeyPair(t, testPrivateKey)

	complete, err := Sign(newAggregate(t, false, initiator), initiator, params)
	require.NoError(t, err)
	_, err = NewHashLock(testHeader(t), NewMosaic(xem(t), 1), 480, complete)
	assert.ErrorIs(t, err, ErrNotBondedAggregate)

	transfer, err := Sign(newTransfer(t, 0), initiator, params)
	require.NoError(t, err)
	_, err = NewHashLock(testHeader(t), NewMosaic(xem(t), 1), 480, transfer)
	assert.ErrorIs(t, err, ErrNotBondedAggregate)

	_, err = NewHashLock(testHeader(t), NewMosaic(xem(t), 1), 480, nil)
	assert.ErrorIs(t, err, ErrNilParam)
}

// --- JSON tests ---

func TestTransaction_JSON(t *testing.T) {
	tr := newTransfer(t, 1)
	tr.MaxFee = 5
	data, err := json.Marshal(tr)
	require.NoError(t, err)

	var got struct {
		Transaction struct {
			Version   int       `json:"version"`
			Type      int       `json:"type"`
			MaxFee    [2]uint32 `json:"maxFee"`
			Recipient string    `json:"recipient"`
			Mosaics   []struct {
				Id     ids.UInt64 `json:"id"`
				Amount ids.UInt64 `json:"amount"`
			} `json:"mosaics"`
		} `json:"transaction"`
		Meta json.RawMessage `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 0x9003, got.Transaction.Version)
	assert.Equal(t, int(TypeTransfer), got.Transaction.Type)
	assert.Equal(t, [2]uint32{5, 0}, got.Transaction.MaxFee)
	assert.Equal(t, "9050B9837EFAB4BBE8A4B9BB32D812F9885C00D8FC1650E142", got.Transaction.Recipient)
	require.Len(t, got.Transaction.Mosaics, 1)
	assert.Equal(t, xem(t).Id(), got.Transaction.Mosaics[0].Id)
	assert.Equal(t, ids.UInt64(10), got.Transaction.Mosaics[0].Amount)
	assert.Nil(t, got.Meta)
}

func TestTransaction_JSONAggregateOmitsInnerEnvelope(t *testing.T) {
	agg := newAggregate(t, true, testKeyPair(t, testPrivateKey))
	dto := ToDTO(agg)
	inner := dto.Transaction["transactions"].([]*DTO)
	require.Len(t, inner, 1)
	assert.NotContains(t, inner[0].Transaction, "deadline")
	assert.Contains(t, inner[0].Transaction, "signer")
	assert.Contains(t, dto.Transaction, "deadline")
	assert.Equal(t, int(TypeAggregateBonded), dto.Transaction["type"])
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "transfer", TypeTransfer.String())
	assert.Equal(t, "type(0x0001)", Type(1).String())
	assert.True(t, TypeHashLock.Valid())
	assert.Equal(t, uint8(1), TypeHashLock.DefaultVersion())
}

func TestParseHash(t *testing.T) {
	h, err := ParseHash(strings.ToLower(testGenHash))
	require.NoError(t, err)
	assert.Equal(t, testGenHash, h.String())

	_, err = ParseHash("abc")
	assert.ErrorIs(t, err, ErrInvalidParams)
}
