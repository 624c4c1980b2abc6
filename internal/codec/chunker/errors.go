package chunker

import "errors"

var (
	// ErrInvalidLevel is returned for an error-correction level outside L/M/Q/H.
	ErrInvalidLevel = errors.New("chunker: invalid error correction level")

	// ErrCapacityTable names a malformed embedded QR capacity table — an
	// invariant violation in the binary itself, not bad input. The
	// package's init panics on that condition, so no function returns it.
	ErrCapacityTable = errors.New("chunker: malformed capacity table")
)
