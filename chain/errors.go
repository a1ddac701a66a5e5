package chain

import "errors"

var (
	// ErrInvalidNetwork indicates an unknown network name with no custom parameters.
	ErrInvalidNetwork = errors.New("chain: invalid network name")

	// ErrInvalidGenerationHash indicates a generation hash that is not 32 bytes of hex.
	ErrInvalidGenerationHash = errors.New("chain: generation hash must be 32 bytes")

	// ErrMissingGenerationHash indicates parameters used for signing without a generation hash.
	ErrMissingGenerationHash = errors.New("chain: generation hash not set")
)
