// Package charset is the external charset-autodetection collaborator:
// given raw input bytes and an optional caller-supplied encoding hint, it
// returns the decoded UTF-8 string and the encoding name used. The spec
// treats this as an interface-only external collaborator — no statistical
// detector ships in this module's dependency graph, so the default
// implementation covers the named-encoding path (htmlindex's charmaps)
// and falls back to a UTF-8 validity check when no hint is given.
package charset

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

// Detector decodes raw document bytes into a UTF-8 string, given an
// optional encoding name hint (empty string means "detect").
type Detector interface {
	Decode(data []byte, encodingHint string) (content string, encodingName string, err error)
}

// HTMLIndexDetector resolves an explicit encoding name via
// golang.org/x/text/encoding/htmlindex's WHATWG charmap registry. When no
// hint is given it accepts the input as-is if already valid UTF-8.
type HTMLIndexDetector struct{}

var _ Detector = HTMLIndexDetector{}

// Decode implements Detector.
func (HTMLIndexDetector) Decode(data []byte, encodingHint string) (string, string, error) {
	if encodingHint == "" {
		if utf8.Valid(data) {
			return string(data), "utf-8", nil
		}
		return "", "", fmt.Errorf("%w: input is not valid UTF-8 and no encoding hint was given", ErrDetectionFailed)
	}

	enc, err := htmlindex.Get(encodingHint)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q: %v", ErrUnsupportedEncoding, encodingHint, err)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q: %v", ErrUnsupportedEncoding, encodingHint, err)
	}
	canonicalName, err := htmlindex.Name(enc)
	if err != nil {
		canonicalName = encodingHint
	}
	return string(decoded), canonicalName, nil
}
