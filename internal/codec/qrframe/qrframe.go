// Package qrframe combines frame and base85 into the per-QR payload
// construction/parsing step: building the ASCII byte string that goes
// into one QR symbol, and reversing it on decode.
package qrframe

import (
	"fmt"

	"github.com/shurlinet/qrdm-go/internal/codec/base85"
	"github.com/shurlinet/qrdm-go/internal/codec/frame"
)

// Build serializes a QRContent and base-85 encodes it for placement in a
// QR symbol.
func Build(content frame.QRContent) []byte {
	return base85.Encode(content.Marshal(nil))
}

// Parse reverses Build: base-85 decode, then frame parse. Any failure is
// reported as a DecodeError::BadFrame-class error by the caller — this
// package only distinguishes the two failure points for diagnostics.
func Parse(payload []byte) (frame.QRContent, error) {
	raw, err := base85.Decode(payload)
	if err != nil {
		return frame.QRContent{}, fmt.Errorf("qrframe: base85 decode: %w", err)
	}
	content, err := frame.UnmarshalQRContent(raw)
	if err != nil {
		return frame.QRContent{}, fmt.Errorf("qrframe: frame parse: %w", err)
	}
	return content, nil
}
