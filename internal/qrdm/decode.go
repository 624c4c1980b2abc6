package qrdm

import (
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"sync"

	"github.com/shurlinet/qrdm-go/internal/codec/chunker"
	"github.com/shurlinet/qrdm-go/internal/codec/compress"
	"github.com/shurlinet/qrdm-go/internal/codec/erasure"
	"github.com/shurlinet/qrdm-go/internal/codec/fingerprint"
	"github.com/shurlinet/qrdm-go/internal/codec/frame"
	"github.com/shurlinet/qrdm-go/internal/codec/qrframe"
	"github.com/shurlinet/qrdm-go/internal/pdfsurface"
	"github.com/shurlinet/qrdm-go/internal/qrimage"

	"github.com/unidoc/unipdf/v3/model"
)

// Decoder recovers a DocumentPayload from a rendered PDF. A zero Decoder
// uses the default QR symbol codec and rasterizer.
type Decoder struct {
	QRCodec    qrimage.Decoder
	Rasterizer *pdfsurface.Rasterizer
}

// NewDecoder returns a Decoder wired to the module's gozxing-backed QR
// symbol decoder and unipdf-backed rasterizer.
func NewDecoder() Decoder {
	return Decoder{
		QRCodec:    qrimage.GozxingCodec{},
		Rasterizer: pdfsurface.NewRasterizer(),
	}
}

// Decode implements the codec's single decode entry point. It returns
// (nil, nil) iff zero QR symbols were found in the PDF after all
// retries — that is not an error.
func (d Decoder) Decode(pdfBytes []byte, opts DecodeOptions) (*frame.DocumentPayload, error) {
	if d.QRCodec == nil || d.Rasterizer == nil {
		d = NewDecoder()
	}

	reader, err := pdfsurface.Open(pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("qrdm: %w", err)
	}
	pageCount, err := pdfsurface.PageCount(reader)
	if err != nil {
		return nil, fmt.Errorf("qrdm: %w", err)
	}

	pages := make([]image.Image, pageCount)
	workers := resolveWorkerCount(opts.MaxWorkers, pageCount)
	if err := parallelRasterize(d.Rasterizer, reader, pages, workers); err != nil {
		return nil, fmt.Errorf("qrdm: %w", err)
	}

	frames := make(map[uint32]frame.QRContent)
	anySymbol, _ := decodeAllPages(d.QRCodec, pages, workers, frames)

	total, numECC, ok := sufficiency(frames)
	if !ok {
		slog.Warn("qrdm: sufficiency check failed on raw pages, entering retry ladder")
		for _, pass := range pdfsurface.BlurPasses() {
			blurred := blurPages(pages, pass, workers)
			found, _ := decodeAllPages(d.QRCodec, blurred, workers, frames)
			anySymbol = anySymbol || found
			total, numECC, ok = sufficiency(frames)
			if ok {
				break
			}
		}
	}
	if !anySymbol {
		return nil, nil
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: no qr symbol yielded a parseable frame", ErrBadFrame)
	}
	if !ok {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientCodes, len(frames), total-numECC)
	}

	return d.reconstruct(frames, total, numECC)
}

func (d Decoder) reconstruct(frames map[uint32]frame.QRContent, total, numECC uint32) (*frame.DocumentPayload, error) {
	k := int(total - numECC)

	// numECC on the wire is the TOTAL parity chunk count, not the
	// per-block parity count erasure.Reconstruct expects; the per-block
	// count is a pure function of k alone, so it is recomputed here
	// rather than divided out of numECC (which may span several
	// erasure blocks once k is large).
	e, err := erasure.NumECC(k, numECC > 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecoverableLoss, err)
	}

	shards := make([][]byte, int(total))
	var chunkLen int
	for seq, f := range frames {
		if int(seq) >= len(shards) {
			continue
		}
		shards[seq] = f.DocFragment
		chunkLen = len(f.DocFragment)
	}

	if err := erasure.Reconstruct(shards, k, e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecoverableLoss, err)
	}

	dataChunks := shards[:k]
	for i, c := range dataChunks {
		if c == nil {
			dataChunks[i] = make([]byte, chunkLen)
		}
	}

	compressed := chunker.Join(dataChunks)

	var anyHash uint64
	for _, f := range frames {
		anyHash = f.Meta.DocumentHash
		break
	}
	if fingerprint.Compute(compressed) != anyHash {
		return nil, ErrChecksumMismatch
	}

	serialized, err := compress.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	payload, err := frame.UnmarshalDocumentPayload(serialized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownDataType, err)
	}
	return &payload, nil
}

// sufficiency reports whether frames contains at least total-numECC
// distinct sequence numbers, reading total/numECC from any one frame.
func sufficiency(frames map[uint32]frame.QRContent) (total, numECC uint32, ok bool) {
	for _, f := range frames {
		total = f.Meta.TotalQRCodes
		numECC = f.Meta.NumECC
		break
	}
	if total == 0 {
		return 0, 0, false
	}
	return total, numECC, uint32(len(frames)) >= total-numECC
}

// resolveWorkerCount bounds the recovery driver's worker pool by the
// host's logical CPU count, falling back to min(10, page_count) when
// that is unavailable (spec §5 heuristic fallback).
func resolveWorkerCount(max, pageCount int) int {
	if max > 0 {
		return max
	}
	n := runtime.NumCPU()
	if n <= 0 {
		n = pageCount
		if n > 10 {
			n = 10
		}
	}
	if n > pageCount {
		n = pageCount
	}
	if n < 1 {
		n = 1
	}
	return n
}

// parallelRasterize renders every page of reader into pages, using a
// bounded worker pool. A single page's render failure is fatal: a torn
// or unreadable PDF cannot be partially recovered at the page level the
// way a single missing QR symbol can.
func parallelRasterize(r *pdfsurface.Rasterizer, reader *model.PdfReader, pages []image.Image, workers int) error {
	jobs := make(chan int)
	errs := make(chan error, len(pages))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				img, err := r.RasterizePage(reader, i+1)
				if err != nil {
					errs <- err
					continue
				}
				pages[i] = img
			}
		}()
	}
	for i := range pages {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(errs)

	for err := range errs {
		return err
	}
	return nil
}

// decodeAllPages decodes every QR symbol on every page, merging newly
// parsed frames into frames (first-win on a repeated sequence number,
// per spec §9). It reports whether any QR symbol at all was found on
// any page, and whether any of those symbols yielded a parseable frame.
func decodeAllPages(codec qrimage.Decoder, pages []image.Image, workers int, frames map[uint32]frame.QRContent) (anySymbol, anyParsed bool) {
	type result struct {
		contents [][]byte
	}
	jobs := make(chan int)
	results := make([]result, len(pages))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if pages[i] == nil {
					continue
				}
				payloads, err := codec.DecodeAll(pages[i])
				if err != nil {
					continue
				}
				results[i] = result{contents: payloads}
			}
		}()
	}
	for i := range pages {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, r := range results {
		for _, raw := range r.contents {
			anySymbol = true
			content, err := qrframe.Parse(raw)
			if err != nil {
				slog.Debug("qrdm: bad qr frame, treating as missing", "err", err)
				continue
			}
			anyParsed = true
			if _, exists := frames[content.Meta.SequenceNumber]; !exists {
				frames[content.Meta.SequenceNumber] = content
			}
		}
	}
	return anySymbol, anyParsed
}

func blurPages(pages []image.Image, pass pdfsurface.BlurPass, workers int) []image.Image {
	out := make([]image.Image, len(pages))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if pages[i] == nil {
					continue
				}
				out[i] = pass.Apply(pages[i])
			}
		}()
	}
	for i := range pages {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}
