package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/shurlinet/qrdm-go/internal/qrdm"
	"github.com/shurlinet/qrdm-go/internal/termcolor"
)

func runDecode(args []string) {
	if err := doDecode(args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		osExit(1)
	}
}

type decodeJSONOutput struct {
	Content  string `json:"content"`
	Metadata string `json:"metadata,omitempty"`
}

func doDecode(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	out := fs.String("o", "", "output text path (default: stdout)")
	asJSON := fs.Bool("json", false, "emit {content, metadata} JSON instead of raw text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) < 1 {
		return fmt.Errorf("usage: qrdm decode <file.pdf> [options]")
	}
	inputPath := rest[0]

	pdfBytes, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	payload, err := qrdm.NewDecoder().Decode(pdfBytes, qrdm.DecodeOptions{})
	if err != nil {
		if errors.Is(err, qrdm.ErrInsufficientCodes) || errors.Is(err, qrdm.ErrUnrecoverableLoss) {
			termcolor.Red("Recovery failed: %v", err)
		}
		return fmt.Errorf("decode: %w", err)
	}
	if payload == nil {
		termcolor.Yellow("No QR symbols found in %s", inputPath)
		fmt.Fprintln(stdout, "")
		return nil
	}

	var rendered []byte
	if *asJSON {
		rendered, err = json.MarshalIndent(decodeJSONOutput{
			Content:  payload.Content,
			Metadata: string(payload.Metadata),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		rendered = append(rendered, '\n')
	} else {
		rendered = []byte(payload.Content)
	}

	if *out != "" {
		if err := os.WriteFile(*out, rendered, 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		termcolor.Green("Recovered %s -> %s", inputPath, *out)
		return nil
	}

	fmt.Fprint(stdout, string(rendered))
	return nil
}
