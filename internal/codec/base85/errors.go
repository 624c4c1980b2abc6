package base85

import "errors"

var (
	// ErrInvalidChar is returned when a decoded byte is not in the base85 alphabet.
	ErrInvalidChar = errors.New("base85: invalid character")

	// ErrOverflow is returned when a 5-character group decodes to a value
	// that does not fit in 32 bits.
	ErrOverflow = errors.New("base85: group overflows 32 bits")
)
