package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File names inside a wallet directory.
const (
	SeedFile     = "wallet.seed"
	AccountsFile = "accounts.json"
	lockFile     = "wallet.lock"
)

// Store persists an encrypted seed and its account State in a directory.
// Writers serialize on a lock file, so concurrent processes never lose an
// allocated account index.
type Store struct {
	Dir string
}

// NewStore returns a Store rooted at dir. Nothing is created until written.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// HasSeed reports whether a seed has been saved.
func (s *Store) HasSeed() bool {
	_, err := os.Stat(filepath.Join(s.Dir, SeedFile))
	return err == nil
}

// SaveSeed encrypts seed with password and writes it. An existing seed is
// never overwritten.
func (s *Store) SaveSeed(seed []byte, password string) error {
	return s.withLock(func() error {
		if s.HasSeed() {
			return fmt.Errorf("%w in %s", ErrWalletExists, s.Dir)
		}
		encrypted, err := EncryptSeed(seed, password)
		if err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(s.Dir, SeedFile), encrypted, 0600)
	})
}

// LoadSeed reads and decrypts the seed.
func (s *Store) LoadSeed(password string) ([]byte, error) {
	encrypted, err := os.ReadFile(filepath.Join(s.Dir, SeedFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w in %s", ErrNoWallet, s.Dir)
	}
	if err != nil {
		return nil, fmt.Errorf("wallet: read seed: %w", err)
	}
	return DecryptSeed(encrypted, password)
}

// Open decrypts the seed and returns the wallet with its account state.
func (s *Store) Open(password string) (*Wallet, *State, error) {
	seed, err := s.LoadSeed(password)
	if err != nil {
		return nil, nil, err
	}
	w, err := NewWallet(seed)
	if err != nil {
		return nil, nil, err
	}
	state, err := s.LoadState()
	if err != nil {
		return nil, nil, err
	}
	return w, state, nil
}

// LoadState reads the account state. A missing file yields an empty State.
func (s *Store) LoadState() (*State, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, AccountsFile))
	if errors.Is(err, fs.ErrNotExist) {
		return NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("wallet: read accounts: %w", err)
	}

	state := NewState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("wallet: parse accounts: %w", err)
	}
	if state.Accounts == nil {
		state.Accounts = []AccountEntry{}
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	return state, nil
}

// Update reloads the state under the lock, applies fn and saves the result
// when fn succeeds.
func (s *Store) Update(fn func(*State) error) error {
	return s.withLock(func() error {
		state, err := s.LoadState()
		if err != nil {
			return err
		}
		if err := fn(state); err != nil {
			return err
		}
		return s.saveState(state)
	})
}

func (s *Store) saveState(state *State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("wallet: marshal accounts: %w", err)
	}
	path := filepath.Join(s.Dir, AccountsFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("wallet: write accounts: %w", err)
	}
	return os.Rename(tmp, path)
}

func (s *Store) withLock(fn func() error) error {
	if err := os.MkdirAll(s.Dir, 0700); err != nil {
		return fmt.Errorf("wallet: create directory: %w", err)
	}
	fl, err := acquireLock(filepath.Join(s.Dir, lockFile))
	if err != nil {
		return fmt.Errorf("wallet lock: %w", err)
	}
	defer releaseLock(fl)
	return fn()
}
