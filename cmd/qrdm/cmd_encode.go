package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shurlinet/qrdm-go/internal/charset"
	"github.com/shurlinet/qrdm-go/internal/codec/chunker"
	"github.com/shurlinet/qrdm-go/internal/config"
	"github.com/shurlinet/qrdm-go/internal/qrdm"
	"github.com/shurlinet/qrdm-go/internal/termcolor"
)

func runEncode(args []string) {
	if err := doEncode(args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		osExit(1)
	}
}

func doEncode(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	out := fs.String("o", "", "output PDF path (default: <input>.pdf)")
	metadataFlag := fs.String("metadata", "", "JSON metadata blob")
	headerFlag := fs.String("header", "", "header text to print at the top of each page")
	footerFlag := fs.String("footer", "", "footer lead-in text (default: auto timestamped source filename)")
	toleranceFlag := fs.String("tolerance", "M", "QR error-correction level: L, M, Q, H")
	noECC := fs.Bool("no-ecc", false, "disable cross-QR Reed-Solomon erasure coding")
	encodingFlag := fs.String("encoding", "", "input text encoding (e.g. cp1251); autodetected if omitted")
	configFlag := fs.String("config", "", "path to config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) < 1 {
		return fmt.Errorf("usage: qrdm encode <file> [options]")
	}
	inputPath := rest[0]

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	detector := charset.HTMLIndexDetector{}
	content, encodingName, err := detector.Decode(raw, *encodingFlag)
	if err != nil {
		switch {
		case errors.Is(err, charset.ErrDetectionFailed):
			return fmt.Errorf("%w: %v", qrdm.ErrEncodingDetection, err)
		case errors.Is(err, charset.ErrUnsupportedEncoding):
			return fmt.Errorf("%w: %v", qrdm.ErrUnsupportedEncoding, err)
		default:
			return fmt.Errorf("decode input text: %w", err)
		}
	}

	opts := qrdm.NewEncodeOptions()
	if *configFlag != "" || configExists() {
		if cfgFile, cerr := config.FindConfigFile(*configFlag); cerr == nil {
			if settings, serr := config.LoadSettings(cfgFile); serr == nil {
				if merged, merr := opts.FromSettings(*settings); merr == nil {
					opts = merged
				}
			}
		}
	}
	toleranceSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "tolerance" {
			toleranceSet = true
		}
	})
	if toleranceSet || opts.ErrorTolerance == "" {
		opts.ErrorTolerance = chunker.Level(*toleranceFlag)
	}
	if *noECC {
		opts.EncodeECCodes = false
	}
	opts.Metadata = []byte(*metadataFlag)
	if *metadataFlag == "" {
		opts.Metadata = nil
	}
	opts.HeaderText = *headerFlag
	opts.FooterText = *footerFlag
	opts.DocumentName = filepath.Base(inputPath)

	pdfBytes, err := qrdm.NewEncoder().Encode(content, opts)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	outPath := *out
	if outPath == "" {
		outPath = inputPath + ".pdf"
	}
	if err := os.WriteFile(outPath, pdfBytes, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	termcolor.Green("Encoded %s (%s) -> %s", inputPath, encodingName, outPath)
	fmt.Fprintf(stdout, "%s\n", outPath)
	return nil
}

func configExists() bool {
	_, err := config.FindConfigFile("")
	return err == nil
}
