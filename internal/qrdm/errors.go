package qrdm

import "errors"

// Encode-side errors.
var (
	// ErrEncodingDetection is returned when input bytes have no
	// confidently-detected charset and no encoding hint was given.
	ErrEncodingDetection = errors.New("qrdm: could not detect input charset")

	// ErrUnsupportedEncoding is returned when a caller-specified encoding
	// fails to decode the input.
	ErrUnsupportedEncoding = errors.New("qrdm: unsupported or mismatched encoding")

	// ErrTooManyCodes is returned when total_qr_codes would reach 2^32.
	ErrTooManyCodes = errors.New("qrdm: too many qr codes required")

	// ErrECCFailed is returned when the Reed-Solomon encoder cannot
	// produce the requested parity layer (e.g. a parity count that leaves
	// no room for data shards in a 256-shard block).
	ErrECCFailed = errors.New("qrdm: erasure coding failed")

	// ErrLayoutImpossible is returned when a single QR symbol cannot fit
	// on a page.
	ErrLayoutImpossible = errors.New("qrdm: layout impossible")
)

// Decode-side errors.
var (
	// ErrBadFrame is returned when a single QR's base-85 or frame parse
	// fails. The recovery driver treats the source QR as missing and
	// only surfaces this when no frame at all could be parsed.
	ErrBadFrame = errors.New("qrdm: bad qr frame")

	// ErrUnknownDataType is returned when DocumentPayload.data_type is
	// not a recognized enum value.
	ErrUnknownDataType = errors.New("qrdm: unknown data type")

	// ErrInsufficientCodes is returned when, after the retry ladder,
	// fewer than total_qr_codes-num_ecc distinct frames were recovered.
	ErrInsufficientCodes = errors.New("qrdm: insufficient qr codes recovered")

	// ErrUnrecoverableLoss is returned when the Reed-Solomon decoder
	// rejects the erasure set as unrecoverable.
	ErrUnrecoverableLoss = errors.New("qrdm: unrecoverable chunk loss")

	// ErrChecksumMismatch is returned when the recovered document's
	// fingerprint does not match document_hash.
	ErrChecksumMismatch = errors.New("qrdm: fingerprint mismatch")

	// ErrCorrupt is returned when the final concatenated payload fails
	// to inflate.
	ErrCorrupt = errors.New("qrdm: corrupt compressed payload")
)
