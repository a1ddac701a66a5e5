package wallet

import (
	"fmt"
	"strings"

	"github.com/bsv-blockchain/go-sdk/compat/bip39"
)

// Mnemonic is a checked BIP39 phrase with single-space separated words.
type Mnemonic string

// NewMnemonic draws fresh entropy for a phrase of 12 or 24 words.
func NewMnemonic(words int) (Mnemonic, error) {
	if words != 12 && words != 24 {
		return "", fmt.Errorf("%w: %d", ErrInvalidWordCount, words)
	}
	// Each word carries 11 bits, one in 33 of them checksum.
	entropy, err := bip39.NewEntropy(words * 32 / 3)
	if err != nil {
		return "", fmt.Errorf("wallet: entropy: %w", err)
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("wallet: mnemonic: %w", err)
	}
	return Mnemonic(phrase), nil
}

// ParseMnemonic normalises whitespace in phrase and checks its wordlist
// membership and checksum.
func ParseMnemonic(phrase string) (Mnemonic, error) {
	m := Mnemonic(strings.Join(strings.Fields(phrase), " "))
	if m == "" || !bip39.IsMnemonicValid(string(m)) {
		return "", ErrInvalidMnemonic
	}
	return m, nil
}

func (m Mnemonic) String() string { return string(m) }

// Words returns the number of words in the phrase.
func (m Mnemonic) Words() int { return len(strings.Fields(string(m))) }

// Seed stretches the phrase into the 64-byte BIP39 seed. The passphrase is
// mixed in even when empty.
func (m Mnemonic) Seed(passphrase string) ([]byte, error) {
	seed, err := bip39.NewSeedWithErrorChecking(string(m), passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	return seed, nil
}
