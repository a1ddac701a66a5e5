package wallet

import "fmt"

// AccountEntry labels one derived account.
type AccountEntry struct {
	Label   string `json:"label"`
	Index   uint32 `json:"index"`
	Deleted bool   `json:"deleted"` // soft delete; the index is never reused
}

// State holds persisted wallet metadata.
type State struct {
	Accounts  []AccountEntry `json:"accounts"`
	NextIndex uint32         `json:"next_index"`
}

// NewState creates an empty State.
func NewState() *State {
	return &State{Accounts: []AccountEntry{}}
}

// Validate checks the integrity of a deserialized State.
func (s *State) Validate() error {
	seen := make(map[uint32]string)
	var next uint32
	for _, a := range s.Accounts {
		if a.Index >= Hardened {
			return fmt.Errorf("%w: account %q has index %d", ErrIndexOutOfRange, a.Label, a.Index)
		}
		if a.Index+1 > next {
			next = a.Index + 1
		}
		if a.Deleted {
			continue
		}
		if prev, ok := seen[a.Index]; ok {
			return fmt.Errorf("wallet: duplicate account index %d: %q and %q", a.Index, prev, a.Label)
		}
		seen[a.Index] = a.Label
	}
	if s.NextIndex < next {
		return fmt.Errorf("wallet: next index %d is below highest used index + 1 (%d)", s.NextIndex, next)
	}
	return nil
}

func (s *State) find(label string) int {
	for i := range s.Accounts {
		if s.Accounts[i].Label == label && !s.Accounts[i].Deleted {
			return i
		}
	}
	return -1
}

// Create allocates the next account index under label.
func (s *State) Create(label string) (*AccountEntry, error) {
	if s.NextIndex >= Hardened {
		return nil, fmt.Errorf("%w: account limit reached", ErrIndexOutOfRange)
	}
	if s.find(label) >= 0 {
		return nil, fmt.Errorf("%w: %q", ErrAccountExists, label)
	}
	s.Accounts = append(s.Accounts, AccountEntry{Label: label, Index: s.NextIndex})
	s.NextIndex++
	return &s.Accounts[len(s.Accounts)-1], nil
}

// Get returns the active account labelled label.
func (s *State) Get(label string) (*AccountEntry, error) {
	i := s.find(label)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrAccountNotFound, label)
	}
	return &s.Accounts[i], nil
}

// List returns the active accounts.
func (s *State) List() []AccountEntry {
	var active []AccountEntry
	for _, a := range s.Accounts {
		if !a.Deleted {
			active = append(active, a)
		}
	}
	return active
}

// Rename relabels an active account.
func (s *State) Rename(oldLabel, newLabel string) error {
	if s.find(newLabel) >= 0 {
		return fmt.Errorf("%w: %q", ErrAccountExists, newLabel)
	}
	i := s.find(oldLabel)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrAccountNotFound, oldLabel)
	}
	s.Accounts[i].Label = newLabel
	return nil
}

// Delete soft-deletes an account.
func (s *State) Delete(label string) error {
	i := s.find(label)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrAccountNotFound, label)
	}
	s.Accounts[i].Deleted = true
	return nil
}
