// Package pdfsurface is the external PDF writer/rasterizer collaborator:
// it places rendered QR images on US Letter pages and, on the decode
// side, rasterizes PDF pages back to pixmaps. The packing geometry in
// this file is the one piece of "core" logic the spec assigns to this
// boundary (§4.7) — everything else in the package (gofpdf writing,
// unipdf rasterizing, box blur) really is external-library plumbing.
package pdfsurface

import (
	"fmt"
	"sort"
)

// Points per inch, the PDF coordinate unit.
const PointsPerInch = 72.0

// DPI is the decode-side page rasterization resolution.
const DPI = 300.0

// Layout constants, in points, for US Letter (8.5x11in) pages with
// origin at the lower-left corner.
const (
	PageWidthPt  = 8.5 * PointsPerInch
	PageHeightPt = 11.0 * PointsPerInch

	StartXPt = 0.25 * PointsPerInch
	StartYPt = 10.25 * PointsPerInch
	MaxXPt   = 8.5*PointsPerInch - 0.25*PointsPerInch

	MinYWithCaptionPt    = 4.75 * PointsPerInch
	MinYWithoutCaptionPt = 0.75 * PointsPerInch

	QRMarginPt = 0.25 * PointsPerInch
)

// QRSizePt returns a QR symbol's on-page footprint in points: its module
// count (4*version+17) scaled from BoxSize pixels at the decode-side DPI
// down to PDF points, so the printed symbol is physically BoxSize pixels
// wide per module once scanned back at DPI.
func QRSizePt(version, boxSize int) float64 {
	modules := float64(4*version + 17)
	return modules * float64(boxSize) * PointsPerInch / DPI
}

// QRItem is one QR symbol to place: its identity (used to map back to a
// sequence_number) and its on-page footprint.
type QRItem struct {
	Index int
	SizePt float64
}

// Placement is where one QRItem landed: its top-left anchor in points,
// origin lower-left, y decreasing downward the way StartYPt does.
type Placement struct {
	Index int
	X, Y  float64
}

// Page is one page's placements, in packing order.
type Page struct {
	Placements []Placement
}

// LayoutConfig bounds the packable region of a page.
type LayoutConfig struct {
	StartX, StartY float64
	MaxX, MinY     float64
	Margin         float64
}

// DefaultLayoutConfig returns the layout bounds for a page with (or
// without) a caption band.
func DefaultLayoutConfig(hasCaption bool) LayoutConfig {
	minY := MinYWithoutCaptionPt
	if hasCaption {
		minY = MinYWithCaptionPt
	}
	return LayoutConfig{
		StartX: StartXPt,
		StartY: StartYPt,
		MaxX:   MaxXPt,
		MinY:   minY,
		Margin: QRMarginPt,
	}
}

// PackPages places items row-major ("typewriter" order), largest first,
// onto as many pages as needed. A single QRItem that cannot fit even on
// a fresh page is a fatal layout error.
func PackPages(items []QRItem, cfg LayoutConfig) ([]Page, error) {
	sorted := make([]QRItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SizePt > sorted[j].SizePt
	})

	var pages []Page
	cur := Page{}
	x, y := cfg.StartX, cfg.StartY
	rowHeight := 0.0

	newPage := func() error {
		pages = append(pages, cur)
		cur = Page{}
		x, y = cfg.StartX, cfg.StartY
		rowHeight = 0
		return nil
	}

	for _, it := range sorted {
		w, h := it.SizePt, it.SizePt

		if x+w > cfg.MaxX && len(cur.Placements) > 0 {
			x = cfg.StartX
			y -= rowHeight + cfg.Margin
			rowHeight = 0
		}

		if y-h < cfg.MinY {
			if len(cur.Placements) == 0 {
				return nil, fmt.Errorf("%w: item %d needs %.1fpt, page offers %.1fpt", ErrLayoutImpossible, it.Index, h, cfg.StartY-cfg.MinY)
			}
			if err := newPage(); err != nil {
				return nil, err
			}
			if y-h < cfg.MinY {
				return nil, fmt.Errorf("%w: item %d needs %.1fpt, page offers %.1fpt", ErrLayoutImpossible, it.Index, h, cfg.StartY-cfg.MinY)
			}
		}

		cur.Placements = append(cur.Placements, Placement{Index: it.Index, X: x, Y: y})
		x += w + cfg.Margin
		if h > rowHeight {
			rowHeight = h
		}
	}
	if len(cur.Placements) > 0 {
		pages = append(pages, cur)
	}
	return pages, nil
}
