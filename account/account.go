package account

import (
	"fmt"
	"io"

	"github.com/bitfsorg/catapult-go/keypair"
)

// PublicAccount pairs a public key with its address.
type PublicAccount struct {
	PublicKey keypair.PublicKey
	Address   Address
}

// NewPublicAccount derives the address of publicKey on network.
func NewPublicAccount(publicKey keypair.PublicKey, network NetworkType, schema keypair.SignSchema) (*PublicAccount, error) {
	if !network.Valid() {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownNetwork, uint8(network))
	}
	if !schema.Valid() {
		return nil, fmt.Errorf("%w: %d", keypair.ErrUnknownSignSchema, schema)
	}
	return &PublicAccount{
		PublicKey: publicKey,
		Address:   NewAddress(publicKey, network, schema),
	}, nil
}

// PublicAccountFromHex parses a hex public key and derives its address.
func PublicAccountFromHex(publicKeyHex string, network NetworkType, schema keypair.SignSchema) (*PublicAccount, error) {
	pub, err := keypair.PublicKeyFromHex(publicKeyHex)
	if err != nil {
		return nil, err
	}
	return NewPublicAccount(pub, network, schema)
}

// Network returns the network of the account's address.
func (p *PublicAccount) Network() NetworkType { return p.Address.Network() }

// Account is a PublicAccount that can sign.
type Account struct {
	*PublicAccount
	keyPair *keypair.KeyPair
}

// NewAccount wraps an existing key pair.
func NewAccount(kp *keypair.KeyPair, network NetworkType) (*Account, error) {
	pub, err := NewPublicAccount(kp.PublicKey(), network, kp.Schema())
	if err != nil {
		return nil, err
	}
	return &Account{PublicAccount: pub, keyPair: kp}, nil
}

// AccountFromPrivateKey builds an account from a hex private key.
func AccountFromPrivateKey(privateKeyHex string, network NetworkType, schema keypair.SignSchema) (*Account, error) {
	kp, err := keypair.FromHex(privateKeyHex, schema)
	if err != nil {
		return nil, err
	}
	return NewAccount(kp, network)
}

// GenerateAccount creates an account with a fresh private key read from r
// (crypto/rand when nil).
func GenerateAccount(r io.Reader, network NetworkType, schema keypair.SignSchema) (*Account, error) {
	kp, err := keypair.Generate(r, schema)
	if err != nil {
		return nil, err
	}
	return NewAccount(kp, network)
}

// KeyPair returns the signing key pair.
func (a *Account) KeyPair() *keypair.KeyPair { return a.keyPair }

// Schema returns the sign schema the account was created with.
func (a *Account) Schema() keypair.SignSchema { return a.keyPair.Schema() }

// SignData signs an arbitrary message with the account key.
func (a *Account) SignData(message []byte) keypair.Signature {
	return a.keyPair.Sign(message)
}
