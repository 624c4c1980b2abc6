package pdfsurface

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/shurlinet/qrdm-go/internal/codec/chunker"
)

// MaxCaptionRunesPerPage bounds the printable caption text per page: 45
// characters per line across 192 lines.
const (
	captionCharsPerLine = 45
	captionLinesPerPage = 192
	MaxCaptionRunesPerPage = captionCharsPerLine * captionLinesPerPage
)

// Symbol is one rendered QR image ready to be placed on a page.
type Symbol struct {
	Index   int
	Image   image.Image
	Version int
}

// WriterOptions configures the document-level chrome around the QR grid.
type WriterOptions struct {
	Title      string
	Caption    string
	HasCaption bool

	// HeaderText is rendered centered at the top of every page.
	HeaderText string
	// FooterText, if set, replaces the footer's default "Encoded at
	// <timestamp>" (or "Content from <file> at <timestamp>") lead-in;
	// either way the footer always ends with ", Page i of N".
	FooterText string
	// DocumentName, if set, names the encoded source file in the
	// default footer lead-in.
	DocumentName string
}

// Write lays out symbols across pages and renders a multi-page PDF,
// mirroring the "typewriter", largest-symbol-first packing used for
// encode.
func Write(symbols []Symbol, opts WriterOptions) ([]byte, error) {
	opts.Caption = escapeCaption(opts.Caption)
	if len(opts.Caption) > MaxCaptionRunesPerPage {
		opts.Caption = opts.Caption[:MaxCaptionRunesPerPage-len(captionOverflowNotice)] + captionOverflowNotice
	}

	items := make([]QRItem, len(symbols))
	bySymbolIndex := make(map[int]Symbol, len(symbols))
	for i, s := range symbols {
		items[i] = QRItem{Index: s.Index, SizePt: QRSizePt(s.Version, chunker.BoxSize)}
		bySymbolIndex[s.Index] = s
	}

	cfg := DefaultLayoutConfig(opts.HasCaption)
	pages, err := PackPages(items, cfg)
	if err != nil {
		return nil, err
	}

	footerLeadIn := opts.FooterText
	if footerLeadIn == "" {
		renderTime := time.Now().UTC().Format("2006-01-02 15:04:05 UTC")
		if opts.DocumentName != "" {
			footerLeadIn = fmt.Sprintf("Content from %s at %s", filepath.Base(opts.DocumentName), renderTime)
		} else {
			footerLeadIn = fmt.Sprintf("Encoded at %s", renderTime)
		}
	}
	pageCount := len(pages)

	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetTitle(opts.Title, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetHeaderFuncMode(func() {
		pdf.SetY(18)
		pdf.SetFont("Courier", "", 9)
		pdf.CellFormat(0, 12, opts.HeaderText, "", 0, "C", false, 0, "")
	}, true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-18)
		pdf.SetFont("Courier", "", 9)
		footer := fmt.Sprintf("%s, Page %d of %d", footerLeadIn, pdf.PageNo(), pageCount)
		pdf.CellFormat(0, 12, footer, "", 0, "C", false, 0, "")
	})

	for _, page := range pages {
		pdf.AddPage()
		for _, p := range page.Placements {
			sym, ok := bySymbolIndex[p.Index]
			if !ok {
				continue
			}
			var buf bytes.Buffer
			if err := png.Encode(&buf, sym.Image); err != nil {
				return nil, fmt.Errorf("pdfsurface: encode qr png: %w", err)
			}
			name := fmt.Sprintf("qr-%d.png", p.Index)
			pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, &buf)
			size := QRSizePt(sym.Version, chunker.BoxSize)
			// gofpdf places images from their top-left corner measured
			// down from the page top; our layout anchors are measured up
			// from the page bottom, so flip y.
			pdf.ImageOptions(name, p.X, PageHeightPt-p.Y, size, size, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		}
		if opts.HasCaption {
			pdf.SetXY(StartXPt, PageHeightPt-MinYWithCaptionPt+10)
			pdf.SetFont("Courier", "", 8)
			pdf.MultiCell(MaxXPt-StartXPt, 9, opts.Caption, "", "L", false)
		}
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("pdfsurface: render pdf: %w", err)
	}
	return out.Bytes(), nil
}

const captionOverflowNotice = "...[caption truncated]"

// escapeCaption renders a caption's non-printable bytes as \xHH escapes,
// per the page caption's documented printable-character budget. '\n' is
// kept literal so captions still wrap across lines.
func escapeCaption(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\n' || (c >= 0x20 && c < 0x7f) {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "\\x%02X", c)
		}
	}
	return b.String()
}
