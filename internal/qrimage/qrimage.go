// Package qrimage is the external QR symbol encoder/decoder collaborator
// named in the codec's scope: it turns a chunk's base-85 payload into a
// raster image and back, but does not implement QR symbology itself —
// that work is delegated to github.com/makiuchi-d/gozxing, the same
// library used for both encode and decode in the retrieval pack's
// QR-handling examples.
package qrimage

import (
	"fmt"
	"image"
	"image/color"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/multi/qrcode"
	gozxingqr "github.com/makiuchi-d/gozxing/qrcode"

	"github.com/shurlinet/qrdm-go/internal/codec/chunker"
)

// Encoder renders a QR payload (already base-85 encoded ASCII) into a
// raster image at BoxSize pixels per module, auto-selecting the
// smallest QR version that fits the payload at the given error
// tolerance rather than forcing every symbol to a fixed version. It
// reports the version actually rendered so the caller can lay the
// symbol out at its true on-page footprint.
type Encoder interface {
	Encode(payload []byte, level chunker.Level) (img image.Image, version int, err error)
}

// Decoder finds every QR symbol in a page image and returns each
// symbol's decoded payload bytes, in no particular order — the caller
// re-establishes ordering from the parsed QRMeta.sequence_number.
type Decoder interface {
	DecodeAll(img image.Image) ([][]byte, error)
}

// GozxingCodec implements both Encoder and Decoder using gozxing.
type GozxingCodec struct{}

var (
	_ Encoder = GozxingCodec{}
	_ Decoder = GozxingCodec{}
)

// Encode implements Encoder. It first asks gozxing to lay out the
// payload at 1 pixel per module (no quiet zone, no forced version),
// which yields the minimal QR matrix that fits the content at the
// requested error tolerance. The actual version is read back from that
// matrix's module count, then the matrix is rasterized at BoxSize
// pixels per module for the page.
func (GozxingCodec) Encode(payload []byte, level chunker.Level) (image.Image, int, error) {
	writer := gozxingqr.NewQRCodeWriter()
	hints := map[gozxing.EncodeHintType]interface{}{
		gozxing.EncodeHintType_ERROR_CORRECTION: string(level),
		gozxing.EncodeHintType_MARGIN:           0,
	}
	raw, err := writer.Encode(string(payload), gozxing.BarcodeFormat_QR_CODE, 1, 1, hints)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}

	bounds := raw.Bounds()
	modules := bounds.Dx()
	version := (modules - 17) / 4
	if version < 1 {
		version = 1
	}

	px := modules * chunker.BoxSize
	out := image.NewGray(image.Rect(0, 0, px, px))
	for y := 0; y < modules; y++ {
		for x := 0; x < modules; x++ {
			fill := color.White
			if isDarkModule(raw, x, y) {
				fill = color.Black
			}
			for dy := 0; dy < chunker.BoxSize; dy++ {
				for dx := 0; dx < chunker.BoxSize; dx++ {
					out.Set(x*chunker.BoxSize+dx, y*chunker.BoxSize+dy, fill)
				}
			}
		}
	}
	return out, version, nil
}

// isDarkModule reports whether the module at (x, y) in the raw,
// unscaled matrix image is a dark (black) QR module.
func isDarkModule(raw image.Image, x, y int) bool {
	gray := color.GrayModel.Convert(raw.At(x, y)).(color.Gray)
	return gray.Y < 128
}

// DecodeAll implements Decoder. It uses gozxing's multi-QR reader so a
// single rendered page carrying many QR symbols yields all of their
// payloads in one pass, matching the recovery driver's per-page
// decode-all-symbols step.
func (GozxingCodec) DecodeAll(img image.Image) ([][]byte, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("qrimage: binary bitmap: %w", err)
	}

	reader := qrcode.NewQRCodeMultiReader()
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	results, err := reader.DecodeMultiple(bmp, hints)
	if err != nil || len(results) == 0 {
		return nil, ErrNoSymbolsFound
	}

	out := make([][]byte, 0, len(results))
	for _, r := range results {
		out = append(out, []byte(r.GetText()))
	}
	return out, nil
}
