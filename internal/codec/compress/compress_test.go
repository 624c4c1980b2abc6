package compress

import (
	"bytes"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"hello world",
		strings.Repeat("the quick brown fox jumps over the lazy dog ", 100),
	}
	for _, s := range tests {
		compressed, err := Compress([]byte(s))
		if err != nil {
			t.Fatalf("Compress: %v", err)
		}
		got, err := Decompress(compressed)
		if err != nil {
			t.Fatalf("Decompress: %v", err)
		}
		if !bytes.Equal(got, []byte(s)) {
			t.Errorf("round trip mismatch for %q", s)
		}
	}
}

func TestDecompressCorrupt(t *testing.T) {
	_, err := Decompress([]byte{0xff, 0xff, 0xff, 0xff})
	if err == nil {
		t.Error("expected error for corrupt stream")
	}
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		src := rapid.SliceOf(rapid.Byte()).Draw(t, "src")
		compressed, err := Compress(src)
		if err != nil {
			t.Fatalf("Compress: %v", err)
		}
		got, err := Decompress(compressed)
		if err != nil {
			t.Fatalf("Decompress: %v", err)
		}
		if !bytes.Equal(got, src) {
			t.Fatalf("round trip mismatch: got %v, want %v", got, src)
		}
	})
}
