package wallet

import "errors"

var (
	// ErrInvalidMnemonic indicates the mnemonic fails BIP39 validation.
	ErrInvalidMnemonic = errors.New("wallet: invalid BIP39 mnemonic")

	// ErrInvalidWordCount indicates a mnemonic length other than 12 or 24 words.
	ErrInvalidWordCount = errors.New("wallet: mnemonic must have 12 or 24 words")

	// ErrInvalidSeed indicates the seed is empty or outside 16..64 bytes.
	ErrInvalidSeed = errors.New("wallet: invalid seed")

	// ErrInvalidPath indicates a malformed derivation path.
	ErrInvalidPath = errors.New("wallet: invalid derivation path")

	// ErrNonHardened indicates a non-hardened index, which Ed25519 derivation cannot follow.
	ErrNonHardened = errors.New("wallet: ed25519 derivation supports hardened indices only")

	// ErrIndexOutOfRange indicates an account index at or beyond the hardened offset.
	ErrIndexOutOfRange = errors.New("wallet: index exceeds maximum (2^31-1)")

	// ErrDecryptionFailed indicates wrong password or corrupted wallet data.
	ErrDecryptionFailed = errors.New("wallet: seed decryption failed (wrong password or corrupted data)")

	// ErrChecksumMismatch indicates seed checksum verification failed after decryption.
	ErrChecksumMismatch = errors.New("wallet: seed checksum mismatch")

	// ErrAccountNotFound indicates no active account has the given label.
	ErrAccountNotFound = errors.New("wallet: account not found")

	// ErrAccountExists indicates the label is already taken.
	ErrAccountExists = errors.New("wallet: account already exists")
)

var (
	// ErrWalletExists indicates a seed is already stored in the wallet directory.
	ErrWalletExists = errors.New("wallet: wallet already exists")

	// ErrNoWallet indicates the wallet directory holds no seed.
	ErrNoWallet = errors.New("wallet: no wallet found")
)
