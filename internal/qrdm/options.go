package qrdm

import (
	"fmt"

	"github.com/shurlinet/qrdm-go/internal/codec/chunker"
	"github.com/shurlinet/qrdm-go/internal/config"
)

// EncodeOptions configures one Encode call. The zero value is not
// valid; use NewEncodeOptions for sensible defaults.
type EncodeOptions struct {
	Metadata []byte // UTF-8 JSON, nil for absent

	// HeaderText is centered at the top of every page.
	HeaderText string
	// FooterText overrides the footer's default "Content from <file> at
	// <timestamp>" lead-in; either way the footer always ends with
	// ", Page i of N".
	FooterText string
	// DocumentName names the encoded source file in the default footer
	// lead-in and the PDF title.
	DocumentName string

	EncodeECCodes  bool
	ErrorTolerance chunker.Level
	// EncodingHint names the input's charset (e.g. "cp1251"). Encode does
	// not read it: Encode takes already-decoded text, and charset decoding
	// happens in the caller (cmd/qrdm's --encoding flag).
	EncodingHint string
}

// NewEncodeOptions returns the codec's documented defaults:
// encode_ec_codes=true, error_tolerance=M.
func NewEncodeOptions() EncodeOptions {
	return EncodeOptions{
		EncodeECCodes:  true,
		ErrorTolerance: chunker.LevelM,
	}
}

// FromSettings applies a persisted config.Settings value on top of the
// current options, mapping the config package's tolerance vocabulary to
// the codec's single-letter levels.
func (o EncodeOptions) FromSettings(s config.Settings) (EncodeOptions, error) {
	level, err := toleranceToLevel(s.ErrorTolerance)
	if err != nil {
		return o, err
	}
	o.ErrorTolerance = level
	o.EncodeECCodes = s.EncodeECCodes
	return o, nil
}

func toleranceToLevel(t config.ErrorTolerance) (chunker.Level, error) {
	switch t {
	case config.ErrorToleranceLow:
		return chunker.LevelL, nil
	case config.ErrorToleranceMedium:
		return chunker.LevelM, nil
	case config.ErrorToleranceQuartile:
		return chunker.LevelQ, nil
	case config.ErrorToleranceHigh:
		return chunker.LevelH, nil
	default:
		return "", fmt.Errorf("qrdm: unknown error tolerance %q", t)
	}
}

// DecodeOptions configures one Decode call.
type DecodeOptions struct {
	// MaxWorkers caps the recovery driver's page worker pool. Zero means
	// use runtime.NumCPU(), falling back to min(10, page_count).
	MaxWorkers int
}
