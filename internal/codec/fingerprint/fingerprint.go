// Package fingerprint computes the per-document identifier duplicated in
// every QR's QRMeta.document_hash: an 8-byte SHAKE-256 digest of the
// compressed document, after trailing 0x00 bytes are stripped.
package fingerprint

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// Size is the digest length in bytes.
const Size = 8

// Compute strips trailing 0x00 bytes from compressed, then returns the
// SHAKE-256/8 digest interpreted as a big-endian uint64. Both encode and
// decode must call this on the same stripped form for the check to agree.
func Compute(compressed []byte) uint64 {
	trimmed := StripTrailingNulls(compressed)
	digest := make([]byte, Size)
	sha3.ShakeSum256(digest, trimmed)
	return binary.BigEndian.Uint64(digest)
}

// StripTrailingNulls removes any trailing 0x00 bytes, such as the tail
// padding a final chunk carries after erasure-coded reconstruction.
func StripTrailingNulls(b []byte) []byte {
	return bytes.TrimRight(b, "\x00")
}
