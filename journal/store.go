// Package journal records announced transactions and what became of them.
package journal

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bitfsorg/catapult-go/account"
	"github.com/bitfsorg/catapult-go/keypair"
	"github.com/bitfsorg/catapult-go/tx"
)

// Status is the last known state of an announced transaction.
type Status string

const (
	StatusAnnounced Status = "announced"
	StatusPartial   Status = "partial"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusAnnounced, StatusPartial, StatusConfirmed, StatusFailed:
		return true
	}
	return false
}

// Entry is one journaled transaction.
type Entry struct {
	Hash    tx.Hash
	Type    tx.Type
	Network account.NetworkType
	Signer  keypair.PublicKey
	Payload []byte

	Status      Status
	FailureCode string
	Height      uint64

	AnnouncedAt time.Time
	UpdatedAt   time.Time
}

// NewEntry creates an announced entry for signed.
func NewEntry(signed *tx.SignedTransaction, now time.Time) *Entry {
	return &Entry{
		Hash:        signed.Hash,
		Type:        signed.Type,
		Network:     signed.Network,
		Signer:      signed.Signer,
		Payload:     append([]byte(nil), signed.Payload...),
		Status:      StatusAnnounced,
		AnnouncedAt: now,
		UpdatedAt:   now,
	}
}

// Store persists journal entries keyed by transaction hash.
type Store interface {
	// Put stores a new entry. Returns ErrDuplicate if the hash exists.
	Put(e *Entry) error

	// Get retrieves an entry by hash.
	Get(hash tx.Hash) (*Entry, error)

	// Update overwrites an existing entry. Returns ErrNotFound otherwise.
	Update(e *Entry) error

	// ListByStatus returns the entries with status, oldest announcement first.
	ListByStatus(status Status) ([]*Entry, error)

	// Delete removes an entry.
	Delete(hash tx.Hash) error
}

// Mark sets the status of hash. code is kept only for StatusFailed.
func Mark(s Store, hash tx.Hash, status Status, code string, height uint64, now time.Time) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	e, err := s.Get(hash)
	if err != nil {
		return err
	}
	e.Status = status
	e.FailureCode = ""
	if status == StatusFailed {
		e.FailureCode = code
	}
	if height != 0 {
		e.Height = height
	}
	e.UpdatedAt = now
	return s.Update(e)
}

func validate(e *Entry) error {
	if e == nil {
		return fmt.Errorf("%w: entry", ErrNilParam)
	}
	if !e.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, e.Status)
	}
	return nil
}

func sortByAnnouncement(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AnnouncedAt.Before(entries[j].AnnouncedAt)
	})
}

// MemStore is an in-memory implementation of Store.
type MemStore struct {
	mu      sync.RWMutex
	entries map[tx.Hash]*Entry
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[tx.Hash]*Entry)}
}

func clone(e *Entry) *Entry {
	c := *e
	c.Payload = append([]byte(nil), e.Payload...)
	return &c
}

// Put implements Store.
func (s *MemStore) Put(e *Entry) error {
	if err := validate(e); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[e.Hash]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, e.Hash)
	}
	s.entries[e.Hash] = clone(e)
	return nil
}

// Get implements Store.
func (s *MemStore) Get(hash tx.Hash) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[hash]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, hash)
	}
	return clone(e), nil
}

// Update implements Store.
func (s *MemStore) Update(e *Entry) error {
	if err := validate(e); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[e.Hash]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, e.Hash)
	}
	s.entries[e.Hash] = clone(e)
	return nil
}

// ListByStatus implements Store.
func (s *MemStore) ListByStatus(status Status) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Entry
	for _, e := range s.entries {
		if e.Status == status {
			out = append(out, clone(e))
		}
	}
	sortByAnnouncement(out)
	return out, nil
}

// Delete implements Store.
func (s *MemStore) Delete(hash tx.Hash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[hash]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, hash)
	}
	delete(s.entries, hash)
	return nil
}
