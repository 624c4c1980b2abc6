package frame

import "errors"

var (
	// ErrTruncated is returned when a length-delimited field's declared
	// length runs past the end of the buffer.
	ErrTruncated = errors.New("frame: truncated message")

	// ErrMalformed is returned when a varint or tag fails to parse.
	ErrMalformed = errors.New("frame: malformed wire data")

	// ErrUnknownDataType is returned when DocumentPayload.data_type is not
	// one of the defined DataType values.
	ErrUnknownDataType = errors.New("frame: unknown data_type")
)
