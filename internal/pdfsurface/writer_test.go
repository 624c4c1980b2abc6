package pdfsurface

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func fakeQR(size int) image.Image {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/6+y/6)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

func TestWriteProducesPDFBytes(t *testing.T) {
	symbols := []Symbol{
		{Index: 0, Image: fakeQR(630), Version: 22},
		{Index: 1, Image: fakeQR(630), Version: 22},
	}
	out, err := Write(symbols, WriterOptions{
		Title:        "test document",
		HasCaption:   true,
		Caption:      "document content goes here",
		HeaderText:   "a header",
		DocumentName: "doc.txt",
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header: %q", out[:minInt(8, len(out))])
	}
}

func TestWriteEscapesNonPrintableCaption(t *testing.T) {
	symbols := []Symbol{{Index: 0, Image: fakeQR(630), Version: 22}}
	out, err := Write(symbols, WriterOptions{HasCaption: true, Caption: "a\x01b"})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header")
	}
}

func TestWriteTruncatesOverlongCaption(t *testing.T) {
	longCaption := make([]byte, MaxCaptionRunesPerPage+1000)
	for i := range longCaption {
		longCaption[i] = 'x'
	}
	symbols := []Symbol{{Index: 0, Image: fakeQR(630), Version: 22}}
	_, err := Write(symbols, WriterOptions{HasCaption: true, Caption: string(longCaption)})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
}

func TestEscapeCaption(t *testing.T) {
	got := escapeCaption("ok\x00\x01\n\x7f")
	want := "ok\\x00\\x01\n\\x7F"
	if got != want {
		t.Errorf("escapeCaption = %q, want %q", got, want)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
