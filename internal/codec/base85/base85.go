// Package base85 implements the RFC-1924 ordered base85 alphabet used by
// standard b85 encoders (e.g. Python's base64.b85encode/b85decode): bytes
// are grouped by 4, each group is treated as a big-endian uint32 and
// rendered as 5 base85 digits, and a partial final group is handled by
// null-padding before encoding and truncating after, mirroring the
// inverse on decode. This is not the stdlib encoding/ascii85 alphabet
// (Adobe btoa) — no library in this module's dependency graph implements
// this exact wire format, so it is hand-rolled here.
package base85

import (
	"encoding/binary"
	"fmt"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz!#$%&()*+-;<=>?@^_`{|}~"

var decodeTable [256]int8

func init() {
	for i := range decodeTable {
		decodeTable[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		decodeTable[alphabet[i]] = int8(i)
	}
}

// Encode returns the base85 encoding of src.
func Encode(src []byte) []byte {
	padding := (4 - len(src)%4) % 4
	padded := make([]byte, len(src)+padding)
	copy(padded, src)

	out := make([]byte, 0, len(padded)/4*5)
	var chunk [5]byte
	for i := 0; i < len(padded); i += 4 {
		word := binary.BigEndian.Uint32(padded[i : i+4])
		for j := 4; j >= 0; j-- {
			chunk[j] = alphabet[word%85]
			word /= 85
		}
		out = append(out, chunk[:]...)
	}
	return out[:len(out)-padding]
}

// Decode returns the bytes represented by the base85 string src.
func Decode(src []byte) ([]byte, error) {
	padding := (5 - len(src)%5) % 5
	padded := make([]byte, len(src)+padding)
	copy(padded, src)
	for i := len(src); i < len(padded); i++ {
		padded[i] = alphabet[84]
	}

	out := make([]byte, 0, len(padded)/5*4)
	var chunkBuf [4]byte
	for i := 0; i < len(padded); i += 5 {
		var word uint64
		for j := 0; j < 5; j++ {
			c := padded[i+j]
			idx := decodeTable[c]
			if idx < 0 {
				return nil, fmt.Errorf("%w: %q at offset %d", ErrInvalidChar, c, i+j)
			}
			word = word*85 + uint64(idx)
		}
		if word > 0xFFFFFFFF {
			return nil, fmt.Errorf("%w: at group starting offset %d", ErrOverflow, i)
		}
		binary.BigEndian.PutUint32(chunkBuf[:], uint32(word))
		out = append(out, chunkBuf[:]...)
	}
	return out[:len(out)-padding], nil
}
