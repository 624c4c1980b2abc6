package qrimage

import "errors"

var (
	// ErrEncodeFailed wraps a QR symbol encode failure from the external
	// QR library.
	ErrEncodeFailed = errors.New("qrimage: qr encode failed")

	// ErrNoSymbolsFound is returned by Decoder.DecodeAll when an image
	// contains no detectable QR symbols at all.
	ErrNoSymbolsFound = errors.New("qrimage: no qr symbols found in image")
)
