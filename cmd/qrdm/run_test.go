package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shurlinet/qrdm-go/internal/qrdm"
)

// captureExit overrides the package-level osExit variable so that calls to
// osExit inside fn are intercepted. It returns the exit code and a boolean
// indicating whether osExit was actually called.
func captureExit(fn func()) (code int, exited bool) {
	old := osExit
	defer func() { osExit = old }()

	osExit = func(c int) {
		panic(exitSentinel(c))
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				if s, ok := r.(exitSentinel); ok {
					code = int(s)
					exited = true
				} else {
					panic(r)
				}
			}
		}()
		fn()
	}()
	return code, exited
}

func TestRunEncode_Error(t *testing.T) {
	code, exited := captureExit(func() {
		runEncode([]string{"/nonexistent/input.txt"})
	})
	if !exited || code != 1 {
		t.Errorf("expected osExit(1), got exited=%v code=%d", exited, code)
	}
}

func TestDoEncode_RoundTripThenDecode(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(inPath, []byte("hello, qrdm"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	outPath := filepath.Join(dir, "out.pdf")

	var stdout bytes.Buffer
	if err := doEncode([]string{"-o", outPath, inPath}, &stdout); err != nil {
		t.Fatalf("doEncode: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read produced pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("produced file missing PDF header")
	}

	decodedPath := filepath.Join(dir, "recovered.txt")
	stdout.Reset()
	if err := doDecode([]string{"-o", decodedPath, outPath}, &stdout); err != nil {
		t.Fatalf("doDecode: %v", err)
	}
	recovered, err := os.ReadFile(decodedPath)
	if err != nil {
		t.Fatalf("read recovered text: %v", err)
	}
	if string(recovered) != "hello, qrdm" {
		t.Errorf("recovered content %q, want %q", recovered, "hello, qrdm")
	}
}

func TestDoEncode_MissingFile(t *testing.T) {
	var stdout bytes.Buffer
	err := doEncode([]string{"/nonexistent/input.txt"}, &stdout)
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestDoEncode_UndetectableCharsetMapsToEncodingDetectionError(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "doc.txt")
	// Invalid UTF-8 with no --encoding hint.
	if err := os.WriteFile(inPath, []byte{0xff, 0xfe, 0x00, 0x01}, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stdout bytes.Buffer
	err := doEncode([]string{inPath}, &stdout)
	if !errors.Is(err, qrdm.ErrEncodingDetection) {
		t.Errorf("expected qrdm.ErrEncodingDetection, got %v", err)
	}
}

func TestDoEncode_UnknownEncodingHintMapsToUnsupportedEncodingError(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(inPath, []byte("hello"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stdout bytes.Buffer
	err := doEncode([]string{"--encoding", "not-a-real-encoding", inPath}, &stdout)
	if !errors.Is(err, qrdm.ErrUnsupportedEncoding) {
		t.Errorf("expected qrdm.ErrUnsupportedEncoding, got %v", err)
	}
}

func TestDoEncode_NoArgs(t *testing.T) {
	var stdout bytes.Buffer
	err := doEncode([]string{}, &stdout)
	if err == nil {
		t.Fatal("expected usage error with no arguments")
	}
}

func TestDoDecode_BlankPDFDoesNotPanic(t *testing.T) {
	dir := t.TempDir()
	blankPDF := []byte("%PDF-1.4\n%%EOF")
	inPath := filepath.Join(dir, "blank.pdf")
	if err := os.WriteFile(inPath, blankPDF, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stdout bytes.Buffer
	err := doDecode([]string{inPath}, &stdout)
	// A malformed/empty PDF may fail to open at all; either outcome is
	// acceptable here as long as "no symbols" doesn't panic. The real
	// "(nil, nil)" contract is exercised in internal/qrdm's own tests.
	_ = err
}

func TestDoDecode_MissingFile(t *testing.T) {
	var stdout bytes.Buffer
	err := doDecode([]string{"/nonexistent/input.pdf"}, &stdout)
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestDoConfigInit_ThenValidateThenShow(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	var stdout bytes.Buffer
	if err := doConfigInit([]string{"--config", cfgPath}, &stdout); err != nil {
		t.Fatalf("doConfigInit: %v", err)
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Fatalf("expected config file to be written: %v", err)
	}

	stdout.Reset()
	if err := doConfigValidate([]string{"--config", cfgPath}, &stdout); err != nil {
		t.Fatalf("doConfigValidate: %v", err)
	}
	if !strings.Contains(stdout.String(), "OK") {
		t.Errorf("expected OK output, got %q", stdout.String())
	}

	stdout.Reset()
	if err := doConfigShow([]string{"--config", cfgPath}, &stdout); err != nil {
		t.Fatalf("doConfigShow: %v", err)
	}
	if !strings.Contains(stdout.String(), "error_tolerance") {
		t.Errorf("expected resolved config in output, got %q", stdout.String())
	}
}

func TestDoConfigInit_RefusesOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	var stdout bytes.Buffer
	if err := doConfigInit([]string{"--config", cfgPath}, &stdout); err != nil {
		t.Fatalf("doConfigInit: %v", err)
	}
	if err := doConfigInit([]string{"--config", cfgPath}, &stdout); err == nil {
		t.Error("expected second doConfigInit to refuse overwrite")
	}
}

func TestDoConfigInit_ForceThenRollback(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	var stdout bytes.Buffer
	if err := doConfigInit([]string{"--config", cfgPath}, &stdout); err != nil {
		t.Fatalf("first doConfigInit: %v", err)
	}
	original, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read original config: %v", err)
	}

	if err := doConfigInit([]string{"--config", cfgPath, "--force"}, &stdout); err != nil {
		t.Fatalf("forced doConfigInit: %v", err)
	}

	stdout.Reset()
	if err := doConfigRollback([]string{"--config", cfgPath}, &stdout); err != nil {
		t.Fatalf("doConfigRollback: %v", err)
	}
	restored, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read restored config: %v", err)
	}
	if string(restored) != string(original) {
		t.Errorf("rollback restored %q, want original %q", restored, original)
	}
}

func TestDoConfigRollback_NoArchive(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	var stdout bytes.Buffer
	if err := doConfigInit([]string{"--config", cfgPath}, &stdout); err != nil {
		t.Fatalf("doConfigInit: %v", err)
	}
	if err := doConfigRollback([]string{"--config", cfgPath}, &stdout); err == nil {
		t.Error("expected rollback to fail with no archive")
	}
}

func TestRunConfig_NoSubcommand(t *testing.T) {
	code, exited := captureExit(func() {
		runConfig([]string{})
	})
	if !exited || code != 1 {
		t.Errorf("expected osExit(1), got exited=%v code=%d", exited, code)
	}
}

func TestRunConfig_UnknownSubcommand(t *testing.T) {
	code, exited := captureExit(func() {
		runConfig([]string{"bogus"})
	})
	if !exited || code != 1 {
		t.Errorf("expected osExit(1), got exited=%v code=%d", exited, code)
	}
}
