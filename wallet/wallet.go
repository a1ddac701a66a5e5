package wallet

import (
	"fmt"

	"github.com/bitfsorg/catapult-go/account"
	"github.com/bitfsorg/catapult-go/chain"
	"github.com/bitfsorg/catapult-go/keypair"
)

// Wallet derives accounts from a seed.
type Wallet struct {
	master *Node
}

// NewWallet creates a wallet from a BIP39 seed.
func NewWallet(seed []byte) (*Wallet, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}
	master, err := NewMasterNode(seed)
	if err != nil {
		return nil, err
	}
	return &Wallet{master: master}, nil
}

// NewWalletFromMnemonic creates a wallet from phrase and the optional BIP39
// passphrase.
func NewWalletFromMnemonic(phrase, passphrase string) (*Wallet, error) {
	m, err := ParseMnemonic(phrase)
	if err != nil {
		return nil, err
	}
	seed, err := m.Seed(passphrase)
	if err != nil {
		return nil, err
	}
	return NewWallet(seed)
}

// PrivateKey returns the private key at m/44'/43'/index'/0'/0'.
func (w *Wallet) PrivateKey(index uint32) ([]byte, error) {
	if index >= Hardened {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	node, err := w.master.Derive([]uint32{
		PurposeBIP44 + Hardened,
		CoinTypeNEM + Hardened,
		index + Hardened,
		Hardened,
		Hardened,
	})
	if err != nil {
		return nil, err
	}
	return node.Key[:], nil
}

// Account derives the account at index for the network described by params.
func (w *Wallet) Account(index uint32, params chain.Params) (*account.Account, error) {
	priv, err := w.PrivateKey(index)
	if err != nil {
		return nil, err
	}
	kp, err := keypair.New(priv, params.Schema)
	if err != nil {
		return nil, fmt.Errorf("wallet: %s: %w", AccountPath(index), err)
	}
	return account.NewAccount(kp, params.Network)
}
