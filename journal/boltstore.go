package journal

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/bitfsorg/catapult-go/tx"
)

var (
	bucketEntries  = []byte("entries")
	bucketByStatus = []byte("entries_status")
)

// BoltStore persists the journal in a bbolt database.
type BoltStore struct {
	db *bbolt.DB
}

var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("journal: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("journal: open bolt db: %w", err)
	}

	err = db.Update(func(btx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketEntries, bucketByStatus} {
			if _, err := btx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("journal: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// statusKey is status || 0x00 || hash, so a status prefix scan lists its hashes.
func statusKey(status Status, hash tx.Hash) []byte {
	k := make([]byte, 0, len(status)+1+tx.HashSize)
	k = append(k, status...)
	k = append(k, 0)
	return append(k, hash[:]...)
}

func encodeGob(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeGob(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// put writes e and its status index, replacing the index entry of prev.
func put(btx *bbolt.Tx, e *Entry, prev *Entry) error {
	data, err := encodeGob(e)
	if err != nil {
		return fmt.Errorf("journal: encode entry: %w", err)
	}
	if err := btx.Bucket(bucketEntries).Put(e.Hash[:], data); err != nil {
		return fmt.Errorf("journal: put entry: %w", err)
	}
	idx := btx.Bucket(bucketByStatus)
	if prev != nil {
		if err := idx.Delete(statusKey(prev.Status, prev.Hash)); err != nil {
			return fmt.Errorf("journal: delete status index: %w", err)
		}
	}
	if err := idx.Put(statusKey(e.Status, e.Hash), []byte{}); err != nil {
		return fmt.Errorf("journal: put status index: %w", err)
	}
	return nil
}

func get(btx *bbolt.Tx, hash tx.Hash) (*Entry, error) {
	data := btx.Bucket(bucketEntries).Get(hash[:])
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, hash)
	}
	var e Entry
	if err := decodeGob(data, &e); err != nil {
		return nil, fmt.Errorf("journal: decode entry: %w", err)
	}
	return &e, nil
}

// Put implements Store.
func (s *BoltStore) Put(e *Entry) error {
	if err := validate(e); err != nil {
		return err
	}
	return s.db.Update(func(btx *bbolt.Tx) error {
		if btx.Bucket(bucketEntries).Get(e.Hash[:]) != nil {
			return fmt.Errorf("%w: %s", ErrDuplicate, e.Hash)
		}
		return put(btx, e, nil)
	})
}

// Get implements Store.
func (s *BoltStore) Get(hash tx.Hash) (*Entry, error) {
	var e *Entry
	err := s.db.View(func(btx *bbolt.Tx) error {
		var err error
		e, err = get(btx, hash)
		return err
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Update implements Store.
func (s *BoltStore) Update(e *Entry) error {
	if err := validate(e); err != nil {
		return err
	}
	return s.db.Update(func(btx *bbolt.Tx) error {
		prev, err := get(btx, e.Hash)
		if err != nil {
			return err
		}
		return put(btx, e, prev)
	})
}

// ListByStatus implements Store.
func (s *BoltStore) ListByStatus(status Status) ([]*Entry, error) {
	prefix := append([]byte(status), 0)
	var out []*Entry
	err := s.db.View(func(btx *bbolt.Tx) error {
		c := btx.Bucket(bucketByStatus).Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			var hash tx.Hash
			copy(hash[:], k[len(prefix):])
			e, err := get(btx, hash)
			if err != nil {
				continue // stale index entry
			}
			out = append(out, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("journal: list by status: %w", err)
	}
	sortByAnnouncement(out)
	return out, nil
}

// Delete implements Store.
func (s *BoltStore) Delete(hash tx.Hash) error {
	return s.db.Update(func(btx *bbolt.Tx) error {
		prev, err := get(btx, hash)
		if err != nil {
			return err
		}
		if err := btx.Bucket(bucketEntries).Delete(hash[:]); err != nil {
			return fmt.Errorf("journal: delete entry: %w", err)
		}
		if err := btx.Bucket(bucketByStatus).Delete(statusKey(prev.Status, hash)); err != nil {
			return fmt.Errorf("journal: delete status index: %w", err)
		}
		return nil
	})
}
