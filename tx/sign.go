package tx

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bitfsorg/catapult-go/account"
	"github.com/bitfsorg/catapult-go/chain"
	"github.com/bitfsorg/catapult-go/keypair"
)

// SignedTransaction is the announceable result of signing.
type SignedTransaction struct {
	Payload []byte
	Hash    Hash
	Signer  keypair.PublicKey
	Type    Type
	Network account.NetworkType
}

// PayloadHex returns the payload as uppercase hex, the form the REST API accepts.
func (s *SignedTransaction) PayloadHex() string {
	return strings.ToUpper(hex.EncodeToString(s.Payload))
}

// CosignatureSignedTransaction is a detached cosignature of an aggregate.
type CosignatureSignedTransaction struct {
	ParentHash Hash              `json:"parentHash"`
	Signature  keypair.Signature `json:"-"`
	Signer     keypair.PublicKey `json:"-"`
}

// Cosignature returns the embedded form of c.
func (c *CosignatureSignedTransaction) Cosignature() Cosignature {
	return Cosignature{Signer: c.Signer, Signature: c.Signature}
}

// Sign signs t with kp for the network described by params.
//
// The signing digest is the generation hash followed by the encoded
// transaction without its size, signature and signer fields. The hash covers
// the signed payload without the size field and without any trailing
// aggregate cosignatures.
func Sign(t *Transaction, kp *keypair.KeyPair, params chain.Params) (*SignedTransaction, error) {
	if t == nil || kp == nil {
		return nil, fmt.Errorf("%w: transaction and key pair", ErrNilParam)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if kp.Schema() != params.Schema {
		return nil, fmt.Errorf("%w: key pair uses %s, network uses %s",
			ErrInvalidParams, kp.Schema(), params.Schema)
	}

	unsigned, cosigs, err := prepare(t, params)
	if err != nil {
		return nil, err
	}

	payload := encode(unsigned, kp.PublicKey(), keypair.Signature{})
	digest := make([]byte, 0, chain.GenerationHashSize+len(payload)-signedDataOffset)
	digest = append(digest, params.GenerationHash[:]...)
	digest = append(digest, payload[signedDataOffset:]...)
	sig := kp.Sign(digest)
	copy(payload[signatureOffset:signerOffset], sig[:])

	signed := &SignedTransaction{
		Payload: payload,
		Hash:    transactionHash(payload, params.Schema),
		Signer:  kp.PublicKey(),
		Type:    unsigned.Type(),
		Network: unsigned.Network,
	}
	if len(cosigs) == 0 {
		return signed, nil
	}
	return appendCosignatures(signed, cosigs), nil
}

// SignWithCosignatories signs an aggregate with initiator and appends one
// cosignature per cosigner, in the order given.
func SignWithCosignatories(t *Transaction, initiator *keypair.KeyPair, cosigners []*keypair.KeyPair, params chain.Params) (*SignedTransaction, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: transaction", ErrNilParam)
	}
	if !t.Type().IsAggregate() {
		return nil, fmt.Errorf("%w: got %s", ErrNotAggregate, t.Type())
	}
	signed, err := Sign(t, initiator, params)
	if err != nil {
		return nil, err
	}

	cosigs := make([]Cosignature, 0, len(cosigners))
	for i, kp := range cosigners {
		if kp == nil {
			return nil, fmt.Errorf("%w: cosigner %d", ErrNilParam, i)
		}
		c := SignCosignature(signed.Hash, kp)
		cosigs = append(cosigs, c.Cosignature())
	}
	return appendCosignatures(signed, cosigs), nil
}

// SignCosignature signs an aggregate hash with kp.
func SignCosignature(hash Hash, kp *keypair.KeyPair) *CosignatureSignedTransaction {
	return &CosignatureSignedTransaction{
		ParentHash: hash,
		Signature:  kp.Sign(hash[:]),
		Signer:     kp.PublicKey(),
	}
}

// CosignAggregate cosigns a signed aggregate, typically one observed as partial.
func CosignAggregate(signed *SignedTransaction, kp *keypair.KeyPair) (*CosignatureSignedTransaction, error) {
	if signed == nil || kp == nil {
		return nil, fmt.Errorf("%w: signed transaction and key pair", ErrNilParam)
	}
	if !signed.Type.IsAggregate() {
		return nil, fmt.Errorf("%w: got %s", ErrNotAggregate, signed.Type)
	}
	return SignCosignature(signed.Hash, kp), nil
}

// VerifyCosignature checks c against its parent hash under schema.
func VerifyCosignature(c *CosignatureSignedTransaction, schema keypair.SignSchema) error {
	if c == nil {
		return fmt.Errorf("%w: cosignature", ErrNilParam)
	}
	if err := keypair.Verify(c.Signer, c.ParentHash[:], c.Signature, schema); err != nil {
		return fmt.Errorf("%w: signer %s: %w", ErrInvalidCosignature, c.Signer, err)
	}
	return nil
}

// AttachCosignatures appends detached cosignatures to a signed aggregate.
// The result is byte-identical to signing with SignWithCosignatories using
// the same cosigners in the same order.
func AttachCosignatures(signed *SignedTransaction, cosigs ...*CosignatureSignedTransaction) (*SignedTransaction, error) {
	if signed == nil {
		return nil, fmt.Errorf("%w: signed transaction", ErrNilParam)
	}
	if !signed.Type.IsAggregate() {
		return nil, fmt.Errorf("%w: got %s", ErrNotAggregate, signed.Type)
	}
	out := make([]Cosignature, 0, len(cosigs))
	for i, c := range cosigs {
		if c == nil {
			return nil, fmt.Errorf("%w: cosignature %d", ErrNilParam, i)
		}
		if c.ParentHash != signed.Hash {
			return nil, fmt.Errorf("%w: cosignature %d is for %s, aggregate is %s",
				ErrHashMismatch, i, c.ParentHash, signed.Hash)
		}
		out = append(out, c.Cosignature())
	}
	return appendCosignatures(signed, out), nil
}

// prepare validates t against params and returns a copy ready for encoding,
// with aggregate cosignatures split off.
func prepare(t *Transaction, params chain.Params) (*Transaction, []Cosignature, error) {
	if err := validateBody(t.Body); err != nil {
		return nil, nil, err
	}
	if err := t.Deadline.validate(params.Now()); err != nil {
		return nil, nil, err
	}

	unsigned := *t
	switch {
	case unsigned.Network == 0:
		unsigned.Network = params.Network
	case unsigned.Network != params.Network:
		return nil, nil, fmt.Errorf("%w: transaction is for %s, params are for %s",
			ErrNetworkMismatch, unsigned.Network, params.Network)
	}

	agg, ok := t.Body.(*Aggregate)
	if !ok {
		return &unsigned, nil, nil
	}
	for i, inner := range agg.InnerTransactions {
		if inner.Signer == nil {
			return nil, nil, fmt.Errorf("%w: inner transaction %d (%s)", ErrMissingSigner, i, inner.Type())
		}
		if inner.Network != 0 && inner.Network != unsigned.Network {
			return nil, nil, fmt.Errorf("%w: inner transaction %d is for %s",
				ErrNetworkMismatch, i, inner.Network)
		}
	}
	bare := *agg
	bare.Cosignatures = nil
	unsigned.Body = &bare
	return &unsigned, agg.Cosignatures, nil
}

// transactionHash hashes payload without its size field and any trailing
// cosignatures. payload must not yet carry cosignatures.
func transactionHash(payload []byte, schema keypair.SignSchema) Hash {
	var h Hash
	copy(h[:], schema.Sum256(payload[signatureOffset:]))
	return h
}

func appendCosignatures(signed *SignedTransaction, cosigs []Cosignature) *SignedTransaction {
	payload := make([]byte, len(signed.Payload), len(signed.Payload)+CosignatureSize*len(cosigs))
	copy(payload, signed.Payload)
	for _, c := range cosigs {
		payload = append(payload, c.Signer[:]...)
		payload = append(payload, c.Signature[:]...)
	}
	binary.LittleEndian.PutUint32(payload[:4], uint32(len(payload)))

	out := *signed
	out.Payload = payload
	return &out
}
