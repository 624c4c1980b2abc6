package charset

import "errors"

var (
	// ErrDetectionFailed is returned when no charset could be confidently
	// determined for the input bytes.
	ErrDetectionFailed = errors.New("charset: detection failed")

	// ErrUnsupportedEncoding is returned when a caller-specified encoding
	// name is not recognized or fails to decode the input.
	ErrUnsupportedEncoding = errors.New("charset: unsupported encoding")
)
