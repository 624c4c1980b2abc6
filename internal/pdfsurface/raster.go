package pdfsurface

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"

	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
	imgdraw "golang.org/x/image/draw"
)

// Rasterizer turns PDF pages back into pixmaps for the decode side's QR
// scan. The recovery driver only ever needs the raster images this
// codec itself placed on the page, so rather than implement a general
// PDF content-stream renderer, it walks each page's embedded images
// (via unipdf's extractor) and composites them onto a blank canvas at
// their recorded position and size, scaled to DPI. This is the
// package's one stdlib-adjacent judgment call; see the design notes for
// why a full vector rasterizer is out of scope here.
type Rasterizer struct {
	DPI float64
}

// NewRasterizer returns a Rasterizer at the codec's standard 300 DPI.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{DPI: DPI}
}

// Open parses PDF bytes into a page-addressable reader.
func Open(data []byte) (*model.PdfReader, error) {
	reader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("pdfsurface: open pdf: %w", err)
	}
	return reader, nil
}

// RasterizePage renders the pageNum'th page (1-indexed) to an RGBA
// image at the Rasterizer's DPI.
func (r *Rasterizer) RasterizePage(reader *model.PdfReader, pageNum int) (image.Image, error) {
	page, err := reader.GetPage(pageNum)
	if err != nil {
		return nil, fmt.Errorf("pdfsurface: get page %d: %w", pageNum, err)
	}

	mediaBox, err := page.GetMediaBox()
	if err != nil {
		return nil, fmt.Errorf("pdfsurface: page %d media box: %w", pageNum, err)
	}
	widthPt := mediaBox.Urx - mediaBox.Llx
	heightPt := mediaBox.Ury - mediaBox.Lly

	scale := r.DPI / PointsPerInch
	widthPx := int(widthPt * scale)
	heightPx := int(heightPt * scale)

	canvas := image.NewRGBA(image.Rect(0, 0, widthPx, heightPx))
	stddraw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, stddraw.Src)

	ext, err := extractor.New(page)
	if err != nil {
		return nil, fmt.Errorf("pdfsurface: new extractor for page %d: %w", pageNum, err)
	}
	pageImages, err := ext.ExtractPageImages(nil)
	if err != nil {
		return nil, fmt.Errorf("pdfsurface: extract images from page %d: %w", pageNum, err)
	}

	for _, mark := range pageImages.Images {
		goImg, err := mark.Image.ToGoImage()
		if err != nil {
			continue
		}
		dstX := int(mark.X * scale)
		dstY := heightPx - int((mark.Y+mark.Height)*scale)
		dstW := int(mark.Width * scale)
		dstH := int(mark.Height * scale)
		if dstW <= 0 || dstH <= 0 {
			continue
		}
		dstRect := image.Rect(dstX, dstY, dstX+dstW, dstY+dstH)
		imgdraw.CatmullRom.Scale(canvas, dstRect, goImg, goImg.Bounds(), imgdraw.Over, nil)
	}

	return canvas, nil
}

// PageCount returns the number of pages in the document.
func PageCount(reader *model.PdfReader) (int, error) {
	n, err := reader.GetNumPages()
	if err != nil {
		return 0, fmt.Errorf("pdfsurface: page count: %w", err)
	}
	return n, nil
}
