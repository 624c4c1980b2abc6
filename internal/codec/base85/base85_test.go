package base85

import (
	"bytes"
	"testing"

	"pgregory.net/rapid"
)

func TestEncodeKnownVectors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a", "VE"},
	}
	for _, tc := range tests {
		got := string(Encode([]byte(tc.in)))
		if got != tc.want {
			t.Errorf("Encode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEncodeOutputLength(t *testing.T) {
	tests := []struct {
		inLen, wantLen int
	}{
		{0, 0}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 7}, {8, 10},
	}
	for _, tc := range tests {
		got := len(Encode(make([]byte, tc.inLen)))
		if got != tc.wantLen {
			t.Errorf("len(Encode(%d zero bytes)) = %d, want %d", tc.inLen, got, tc.wantLen)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"a",
		"ab",
		"abc",
		"abcd",
		"abcde",
		"the quick brown fox jumps over the lazy dog",
		string([]byte{0, 0, 0, 0}),
		string([]byte{0xff, 0xff, 0xff, 0xff}),
	}
	for _, s := range tests {
		enc := Encode([]byte(s))
		dec, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(Encode(%q)): %v", s, err)
		}
		if !bytes.Equal(dec, []byte(s)) {
			t.Errorf("round trip %q: got %q", s, dec)
		}
	}
}

func TestDecodeInvalidChar(t *testing.T) {
	_, err := Decode([]byte("VE\x01\x02\x03"))
	if err == nil {
		t.Error("expected error for invalid character")
	}
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		src := rapid.SliceOf(rapid.Byte()).Draw(t, "src")
		enc := Encode(src)
		dec, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !bytes.Equal(dec, src) {
			t.Fatalf("round trip mismatch: got %v, want %v", dec, src)
		}
	})
}
