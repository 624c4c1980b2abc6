package erasure

import "errors"

var (
	// ErrTooManyCodes is returned when the projected total chunk count
	// (data + parity) would reach or exceed 2^32.
	ErrTooManyCodes = errors.New("erasure: total qr codes would exceed 2^32")

	// ErrECCFailed wraps a Reed-Solomon encode failure, e.g. a parity
	// count e that leaves no room for data shards within one 256-shard
	// block. A k+E over 256 is split into blocks, not rejected.
	ErrECCFailed = errors.New("erasure: reed-solomon encode failed")

	// ErrUnrecoverableLoss is returned when the number of missing chunks
	// exceeds what the parity count can reconstruct.
	ErrUnrecoverableLoss = errors.New("erasure: unrecoverable chunk loss")
)
