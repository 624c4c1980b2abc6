package pdfsurface

import (
	"image"
	"image/color"
)

// BlurRadii is the recovery driver's retry ladder: each radius is tried
// once, then again compounded a second time, before moving to the next
// radius.
var BlurRadii = []int{2, 3, 4}

// BlurPasses returns the ordered sequence of blur applications the
// recovery driver retries through: radius 2 once, radius 2 twice
// (applied back to back), radius 3 once, radius 3 twice, and so on.
func BlurPasses() []BlurPass {
	passes := make([]BlurPass, 0, len(BlurRadii)*2)
	for _, r := range BlurRadii {
		passes = append(passes, BlurPass{Radius: r, Compound: 1})
		passes = append(passes, BlurPass{Radius: r, Compound: 2})
	}
	return passes
}

// BlurPass is one entry in the retry ladder.
type BlurPass struct {
	Radius   int
	Compound int
}

// Apply runs this pass's box blur against img, compounding it
// Compound times.
func (p BlurPass) Apply(img image.Image) image.Image {
	out := img
	for i := 0; i < p.Compound; i++ {
		out = BoxBlur(out, p.Radius)
	}
	return out
}

// BoxBlur applies a separable box blur of the given radius (in pixels)
// to img. No library in this module's dependency graph implements
// convolution blur directly — golang.org/x/image/draw covers resizing
// and format conversion, not filtering — so this is a deliberate,
// minimal stdlib-based exception; see the design notes.
func BoxBlur(img image.Image, radius int) image.Image {
	if radius <= 0 {
		return img
	}
	bounds := img.Bounds()

	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}

	horiz := boxBlur1D(gray, radius, true, bounds)
	return boxBlur1D(horiz, radius, false, bounds)
}

func boxBlur1D(src *image.Gray, radius int, horizontal bool, bounds image.Rectangle) *image.Gray {
	dst := image.NewGray(bounds)
	window := 2*radius + 1

	at := func(x, y int) int {
		if x < bounds.Min.X {
			x = bounds.Min.X
		}
		if x >= bounds.Max.X {
			x = bounds.Max.X - 1
		}
		if y < bounds.Min.Y {
			y = bounds.Min.Y
		}
		if y >= bounds.Max.Y {
			y = bounds.Max.Y - 1
		}
		return int(src.GrayAt(x, y).Y)
	}

	if horizontal {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			sum := 0
			for dx := -radius; dx <= radius; dx++ {
				sum += at(bounds.Min.X+dx, y)
			}
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				dst.SetGray(x, y, color.Gray{Y: uint8(sum / window)})
				sum -= at(x-radius, y)
				sum += at(x+radius+1, y)
			}
		}
	} else {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sum := 0
			for dy := -radius; dy <= radius; dy++ {
				sum += at(x, bounds.Min.Y+dy)
			}
			for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
				dst.SetGray(x, y, color.Gray{Y: uint8(sum / window)})
				sum -= at(x, y-radius)
				sum += at(x, y+radius+1)
			}
		}
	}
	return dst
}
