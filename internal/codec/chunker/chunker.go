// Package chunker splits the compressed document into fixed-length
// chunks sized to fit inside one QR symbol once framed and base-85
// encoded, and reassembles them afterward (reassembly is just a byte
// concatenation — the erasure package owns chunk recovery).
package chunker

import (
	"bytes"
	"embed"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/shurlinet/qrdm-go/internal/codec/frame"
)

//go:embed data/qr_capacity.csv
var capacityFS embed.FS

// Level is a QR symbol error-correction level.
type Level string

const (
	LevelL Level = "L"
	LevelM Level = "M"
	LevelQ Level = "Q"
	LevelH Level = "H"
)

func (l Level) column() (int, error) {
	switch l {
	case LevelL:
		return 0, nil
	case LevelM:
		return 1, nil
	case LevelQ:
		return 2, nil
	case LevelH:
		return 3, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, l)
	}
}

// QRSize is the fixed QR symbol version this codec targets: large enough
// to carry a useful chunk of compressed text per symbol while still
// packing several per US Letter page at BoxSize pixels per module.
const QRSize = 22

// BoxSize is the pixel size of one QR module when rendered.
const BoxSize = 6

// capacityTable holds byte-mode capacities for QR versions 1..40,
// indexed [version-1][level column], loaded once from the embedded CSV.
var capacityTable [][4]int

func init() {
	data, err := capacityFS.ReadFile("data/qr_capacity.csv")
	if err != nil {
		panic(fmt.Sprintf("chunker: embedded capacity table missing: %v", err))
	}
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		panic(fmt.Sprintf("chunker: embedded capacity table unreadable: %v", err))
	}
	if len(records) < 2 {
		panic("chunker: embedded capacity table has no data rows")
	}
	rows := records[1:] // skip header "L,M,Q,H"
	capacityTable = make([][4]int, len(rows))
	for i, row := range rows {
		if len(row) != 4 {
			panic(fmt.Sprintf("chunker: capacity table row %d has %d columns, want 4", i+1, len(row)))
		}
		for j, cell := range row {
			v, err := strconv.Atoi(cell)
			if err != nil {
				panic(fmt.Sprintf("chunker: capacity table row %d col %d: %v", i+1, j, err))
			}
			capacityTable[i][j] = v
		}
	}
}

// ByteCapacity returns the byte-mode capacity of a QR symbol at the given
// version (1..40) and error-correction level.
func ByteCapacity(version int, level Level) (int, error) {
	col, err := level.column()
	if err != nil {
		return 0, err
	}
	if version < 1 || version > len(capacityTable) {
		return 0, fmt.Errorf("chunker: version %d out of range 1..%d", version, len(capacityTable))
	}
	return capacityTable[version-1][col], nil
}

// ChunkSize returns the number of raw bytes that fit in one chunk once
// framed as a QRContent and base-85 encoded, for the fixed QRSize symbol
// at the given error-correction level.
func ChunkSize(level Level) (int, error) {
	cap, err := ByteCapacity(QRSize, level)
	if err != nil {
		return 0, err
	}
	payloadRoom := cap - frame.ProtobufReservedLen()
	if payloadRoom <= 0 {
		return 0, fmt.Errorf("chunker: QR capacity %d too small for frame overhead %d", cap, frame.ProtobufReservedLen())
	}
	return (payloadRoom / 5) * 4, nil
}

// Split divides data into equal-length chunks of chunkSize, tail-padding
// the final chunk with 0x00. If data already fits within one chunk, a
// single unpadded chunk is returned.
func Split(data []byte, chunkSize int) [][]byte {
	if chunkSize <= 0 {
		panic("chunker: chunkSize must be positive")
	}
	if len(data) <= chunkSize {
		single := make([]byte, len(data))
		copy(single, data)
		return [][]byte{single}
	}

	n := (len(data) + chunkSize - 1) / chunkSize
	chunks := make([][]byte, n)
	for i := 0; i < n; i++ {
		start := i * chunkSize
		end := start + chunkSize
		chunk := make([]byte, chunkSize)
		if end > len(data) {
			copy(chunk, data[start:])
		} else {
			copy(chunk, data[start:end])
		}
		chunks[i] = chunk
	}
	return chunks
}

// Join concatenates chunks in order. Callers strip tail padding separately
// (see fingerprint.StripTrailingNulls) since the last chunk's padding is
// only removable once the full concatenation is known.
func Join(chunks [][]byte) []byte {
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	out := make([]byte, 0, total)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}
