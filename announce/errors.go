package announce

import "errors"

var (
	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("announce: required parameter is nil")

	// ErrWrongType indicates a signed transaction of the wrong type for the operation.
	ErrWrongType = errors.New("announce: wrong transaction type")
)
