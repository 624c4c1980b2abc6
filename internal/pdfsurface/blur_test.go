package pdfsurface

import (
	"image"
	"image/color"
	"testing"
)

func checkerboard(size int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x+y)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

func TestBoxBlurSmoothsCheckerboard(t *testing.T) {
	src := checkerboard(20)
	blurred := BoxBlur(src, 2)

	mid := color.GrayModel.Convert(blurred.At(10, 10)).(color.Gray).Y
	if mid == 0 || mid == 255 {
		t.Errorf("expected blurred checkerboard interior to be a mid gray, got %d", mid)
	}
}

func TestBoxBlurZeroRadiusIsIdentity(t *testing.T) {
	src := checkerboard(5)
	out := BoxBlur(src, 0)
	if out != image.Image(src) {
		t.Error("radius 0 should return the input image unchanged")
	}
}

func TestBlurPassesLadder(t *testing.T) {
	passes := BlurPasses()
	if len(passes) != len(BlurRadii)*2 {
		t.Fatalf("got %d passes, want %d", len(passes), len(BlurRadii)*2)
	}
	for i, r := range BlurRadii {
		once := passes[i*2]
		twice := passes[i*2+1]
		if once.Radius != r || once.Compound != 1 {
			t.Errorf("pass %d = %+v, want radius %d compound 1", i*2, once, r)
		}
		if twice.Radius != r || twice.Compound != 2 {
			t.Errorf("pass %d = %+v, want radius %d compound 2", i*2+1, twice, r)
		}
	}
}

func TestBlurPassApplyCompounds(t *testing.T) {
	src := checkerboard(20)
	single := BlurPass{Radius: 2, Compound: 1}.Apply(src)
	double := BlurPass{Radius: 2, Compound: 2}.Apply(src)

	g1 := single.(*image.Gray)
	g2 := double.(*image.Gray)
	if g1.GrayAt(10, 10) == g2.GrayAt(10, 10) {
		t.Error("compounding the blur twice should differ from applying it once")
	}
}
