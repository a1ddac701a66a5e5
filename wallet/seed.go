// Package wallet derives ledger accounts from a BIP39 mnemonic.
//
// Keys follow SLIP-10 for Ed25519 along m/44'/43'/{account}'/0'/0'. The seed
// is stored encrypted with Argon2id and AES-256-GCM.
package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	// Argon2id parameters for seed encryption.
	Argon2Time        = 3
	Argon2Memory      = 64 * 1024 // 64 MB
	Argon2Parallelism = 4
	Argon2KeyLen      = 32

	// Encrypted seed layout sizes.
	SaltLen     = 16
	NonceLen    = 12
	ChecksumLen = 4
)

func seedCipher(password string, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey([]byte(password), salt, Argon2Time, Argon2Memory, Argon2Parallelism, Argon2KeyLen)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func seedChecksum(seed []byte) []byte {
	sum := sha256.Sum256(seed)
	return sum[:ChecksumLen]
}

// EncryptSeed seals seed under password.
//
// Output: salt(16) || nonce(12) || AES-GCM(argon2id(password, salt), seed || SHA256(seed)[:4])
func EncryptSeed(seed []byte, password string) ([]byte, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}

	out := make([]byte, SaltLen+NonceLen, SaltLen+NonceLen+len(seed)+ChecksumLen+16)
	if _, err := rand.Read(out); err != nil {
		return nil, fmt.Errorf("wallet: failed to generate salt and nonce: %w", err)
	}
	salt, nonce := out[:SaltLen], out[SaltLen:]

	gcm, err := seedCipher(password, salt)
	if err != nil {
		return nil, fmt.Errorf("wallet: cipher setup failed: %w", err)
	}

	plaintext := append(append([]byte{}, seed...), seedChecksum(seed)...)
	return gcm.Seal(out, nonce, plaintext, nil), nil
}

// DecryptSeed opens the output of EncryptSeed. A wrong password yields
// ErrDecryptionFailed; a plaintext whose checksum does not match yields
// ErrChecksumMismatch.
func DecryptSeed(encrypted []byte, password string) ([]byte, error) {
	if len(encrypted) < SaltLen+NonceLen+ChecksumLen {
		return nil, ErrDecryptionFailed
	}
	salt := encrypted[:SaltLen]
	nonce := encrypted[SaltLen : SaltLen+NonceLen]

	gcm, err := seedCipher(password, salt)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	plaintext, err := gcm.Open(nil, nonce, encrypted[SaltLen+NonceLen:], nil)
	if err != nil || len(plaintext) < ChecksumLen {
		return nil, ErrDecryptionFailed
	}

	seed := plaintext[:len(plaintext)-ChecksumLen]
	if subtle.ConstantTimeCompare(plaintext[len(seed):], seedChecksum(seed)) != 1 {
		return nil, ErrChecksumMismatch
	}
	return seed, nil
}
