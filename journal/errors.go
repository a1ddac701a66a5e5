package journal

import "errors"

var (
	// ErrNotFound indicates the hash has no journal entry.
	ErrNotFound = errors.New("journal: entry not found")

	// ErrDuplicate indicates an entry with this hash already exists.
	ErrDuplicate = errors.New("journal: duplicate entry")

	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("journal: required parameter is nil")

	// ErrInvalidStatus indicates a status outside the known set.
	ErrInvalidStatus = errors.New("journal: invalid status")
)
