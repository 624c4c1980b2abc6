// Package erasure applies Reed-Solomon coding over GF(256) column-wise
// across a document's chunks: the k data chunks of length L form a k×L
// byte matrix, and E parity chunks are computed one column (byte
// position) at a time, bounding each RS call's shard count by 256 — the
// codec's natural alphabet. Once k alone exceeds that budget, Encode and
// Reconstruct split the matrix into successive maxShards-wide blocks and
// run one independent RS call per block, the way the original codec's
// reedsolo.RSCodec transparently chunks long messages rather than
// refusing them.
package erasure

import (
	"fmt"
	"math"

	"github.com/klauspost/reedsolomon"
)

// ECProportion is the ratio rho used to size the parity count relative
// to the data chunk count.
const ECProportion = 0.2

// maxShards is the GF(256) 1-byte-symbol RS codec's hard operating limit
// for a single block: blockK + e must not exceed this.
const maxShards = 256

// NumECC chooses e, the per-block parity chunk count, for k data
// chunks. Returns 0 if encodeECCodes is false. This is always the
// per-block figure: once k forces Encode to split into multiple
// blocks, the total parity chunk count actually produced is
// numBlocks(k,e)*e, reported by len(Encode's result), not by NumECC
// itself. Fails with ErrTooManyCodes if the projected total_qr_codes
// would reach 2^32.
func NumECC(k int, encodeECCodes bool) (int, error) {
	if !encodeECCodes || k == 0 {
		return 0, nil
	}
	capByShards := int(math.Ceil(256 * ECProportion / (1 + ECProportion)))
	capByRatio := int(math.Ceil(float64(k) * ECProportion))
	e := capByShards
	if capByRatio < e {
		e = capByRatio
	}
	total := uint64(k) + uint64(numBlocks(k, e))*uint64(e)
	if total >= uint64(1)<<32 {
		return 0, fmt.Errorf("%w: k=%d e=%d", ErrTooManyCodes, k, e)
	}
	return e, nil
}

// blockSize is the most data chunks a single Reed-Solomon block can
// carry alongside e parity shards without exceeding maxShards.
func blockSize(e int) int {
	return maxShards - e
}

// numBlocks reports how many blockSize(e)-chunk blocks k data chunks
// split into.
func numBlocks(k, e int) int {
	bs := blockSize(e)
	if bs <= 0 {
		return 0
	}
	return (k + bs - 1) / bs
}

// Encode computes parity chunks for the given equal-length data chunks
// using a (blockK+e, blockK) Reed-Solomon code applied column-wise
// (klauspost's shard-wise Encode already operates byte-position-wise
// across shards, which is exactly the column-wise requirement here),
// one block at a time when k exceeds maxShards-e data chunks. The
// returned slice holds numBlocks(k,e)*e parity chunks, concatenated in
// block order.
func Encode(data [][]byte, e int) ([][]byte, error) {
	k := len(data)
	if e == 0 || k == 0 {
		return nil, nil
	}
	bs := blockSize(e)
	if bs <= 0 {
		return nil, fmt.Errorf("%w: e=%d leaves no room for data shards", ErrECCFailed, e)
	}

	var parity [][]byte
	for start := 0; start < k; start += bs {
		end := start + bs
		if end > k {
			end = k
		}
		block := data[start:end]

		enc, err := reedsolomon.New(len(block), e)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrECCFailed, err)
		}
		l := len(block[0])
		shards := make([][]byte, len(block)+e)
		copy(shards, block)
		for i := len(block); i < len(block)+e; i++ {
			shards[i] = make([]byte, l)
		}
		if err := enc.Encode(shards); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrECCFailed, err)
		}
		parity = append(parity, shards[len(block):]...)
	}
	return parity, nil
}

// Reconstruct fills in missing chunks given a shard slice where unknown
// positions are nil: shards[0:k] is the data section, shards[k:] the
// numBlocks(k,e)*e parity chunks produced by Encode, in block order. A
// block recovers so long as at most e of its own shards (data or
// parity) are missing; on return shards[0:k] holds the recovered data
// chunks.
func Reconstruct(shards [][]byte, k, e int) error {
	if e == 0 {
		for _, s := range shards[:k] {
			if s == nil {
				return fmt.Errorf("%w: no parity available to recover a missing chunk", ErrUnrecoverableLoss)
			}
		}
		return nil
	}
	bs := blockSize(e)
	if bs <= 0 {
		return fmt.Errorf("%w: e=%d leaves no room for data shards", ErrECCFailed, e)
	}

	parity := shards[k:]
	dataStart, parityStart := 0, 0
	for dataStart < k {
		dataEnd := dataStart + bs
		if dataEnd > k {
			dataEnd = k
		}
		blockK := dataEnd - dataStart
		parityEnd := parityStart + e
		if parityEnd > len(parity) {
			return fmt.Errorf("%w: missing parity block", ErrUnrecoverableLoss)
		}

		block := make([][]byte, blockK+e)
		copy(block, shards[dataStart:dataEnd])
		copy(block[blockK:], parity[parityStart:parityEnd])

		enc, err := reedsolomon.New(blockK, e)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrECCFailed, err)
		}
		if err := enc.Reconstruct(block); err != nil {
			return fmt.Errorf("%w: %v", ErrUnrecoverableLoss, err)
		}
		copy(shards[dataStart:dataEnd], block[:blockK])

		dataStart, parityStart = dataEnd, parityEnd
	}
	return nil
}
