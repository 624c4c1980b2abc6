package qrdm

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/shurlinet/qrdm-go/internal/codec/chunker"
	"github.com/shurlinet/qrdm-go/internal/codec/compress"
	"github.com/shurlinet/qrdm-go/internal/codec/erasure"
	"github.com/shurlinet/qrdm-go/internal/codec/fingerprint"
	"github.com/shurlinet/qrdm-go/internal/codec/frame"
	"github.com/shurlinet/qrdm-go/internal/codec/qrframe"
	"github.com/shurlinet/qrdm-go/internal/pdfsurface"
	"github.com/shurlinet/qrdm-go/internal/qrimage"
)

// warnQRCountThreshold is the spec's "long RS processing" projection
// line: once the projected total_qr_codes exceeds this, encode warns
// but proceeds rather than failing.
const warnQRCountThreshold = 256

// Encoder turns document text into a PDF carrying the document as a grid
// of QR codes. A zero Encoder uses the default QR symbol codec.
type Encoder struct {
	QRCodec qrimage.Encoder
}

// NewEncoder returns an Encoder wired to the module's gozxing-backed QR
// symbol encoder.
func NewEncoder() Encoder {
	return Encoder{QRCodec: qrimage.GozxingCodec{}}
}

// Encode implements the codec's single encode entry point: document text
// plus optional metadata and presentation options in, PDF bytes out.
func (e Encoder) Encode(content string, opts EncodeOptions) ([]byte, error) {
	if e.QRCodec == nil {
		e = NewEncoder()
	}

	payload := frame.DocumentPayload{
		Content:  content,
		Metadata: opts.Metadata,
		DataType: frame.UTF8String,
	}
	serialized := payload.Marshal(nil)

	compressed, err := compress.Compress(serialized)
	if err != nil {
		return nil, fmt.Errorf("qrdm: compress: %w", err)
	}

	docHash := fingerprint.Compute(compressed)

	chunkSize, err := chunker.ChunkSize(opts.ErrorTolerance)
	if err != nil {
		return nil, fmt.Errorf("qrdm: determine chunk size: %w", err)
	}
	dataChunks := chunker.Split(compressed, chunkSize)
	k := len(dataChunks)

	eccPerBlock, err := erasure.NumECC(k, opts.EncodeECCodes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTooManyCodes, err)
	}

	var parityChunks [][]byte
	if eccPerBlock > 0 {
		parityChunks, err = erasure.Encode(dataChunks, eccPerBlock)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrECCFailed, err)
		}
	}
	// num_ecc on the wire is the TOTAL parity chunk count produced,
	// which only equals eccPerBlock while k fits in a single erasure
	// block; past that, erasure.Encode concatenates parity from
	// multiple blocks and the real total is len(parityChunks).
	numECC := len(parityChunks)

	allChunks := append(append([][]byte{}, dataChunks...), parityChunks...)
	total := uint32(len(allChunks))
	if uint64(len(allChunks)) >= uint64(1)<<32 {
		return nil, fmt.Errorf("%w: total_qr_codes=%d", ErrTooManyCodes, len(allChunks))
	}
	if len(allChunks) > warnQRCountThreshold {
		slog.Warn("qrdm: projected total_qr_codes exceeds 256, long Reed-Solomon processing expected", "total_qr_codes", len(allChunks))
	}

	symbols := make([]pdfsurface.Symbol, len(allChunks))
	for i, chunk := range allChunks {
		meta := frame.QRMeta{
			DocumentHash:   docHash,
			SequenceNumber: uint32(i),
			TotalQRCodes:   total,
			NumECC:         uint32(numECC),
		}
		qrPayload := qrframe.Build(frame.QRContent{Meta: meta, DocFragment: chunk})

		img, version, err := e.QRCodec.Encode(qrPayload, opts.ErrorTolerance)
		if err != nil {
			return nil, fmt.Errorf("qrdm: encode qr %d: %w", i, err)
		}
		symbols[i] = pdfsurface.Symbol{Index: i, Image: img, Version: version}
	}

	title := "QR Encoded Document"
	if opts.DocumentName != "" {
		title = fmt.Sprintf("QR Encoding of %s", opts.DocumentName)
	}

	out, err := pdfsurface.Write(symbols, pdfsurface.WriterOptions{
		Title:        title,
		Caption:      content,
		HasCaption:   content != "",
		HeaderText:   opts.HeaderText,
		FooterText:   opts.FooterText,
		DocumentName: opts.DocumentName,
	})
	if err != nil {
		if errors.Is(err, pdfsurface.ErrLayoutImpossible) {
			return nil, fmt.Errorf("%w: %v", ErrLayoutImpossible, err)
		}
		return nil, fmt.Errorf("qrdm: render pdf: %w", err)
	}
	return out, nil
}
