package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
)

// Set via -ldflags at build time:
//
//	go build -ldflags "-X main.version=0.1.0 -X main.commit=$(git rev-parse --short HEAD) -X main.buildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ)" -o qrdm ./cmd/qrdm
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if len(os.Args) < 2 {
		printUsage()
		osExit(1)
	}

	switch os.Args[1] {
	case "encode":
		runEncode(os.Args[2:])
	case "decode":
		runDecode(os.Args[2:])
	case "config":
		runConfig(os.Args[2:])
	case "version", "--version":
		printVersion()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		osExit(1)
	}
}

func printVersion() {
	fmt.Printf("qrdm %s (%s) built %s\n", version, commit, buildDate)
	fmt.Printf("Go %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Println("Usage: qrdm <command> [options]")
	fmt.Println()
	fmt.Println("  encode <file> [-o out.pdf] [--metadata json] [--header text] [--footer text]")
	fmt.Println("                [--tolerance L|M|Q|H] [--no-ecc] [--encoding name] [--config path]")
	fmt.Println("                Encode a text document as a QR-grid PDF")
	fmt.Println()
	fmt.Println("  decode <file.pdf> [-o out.txt] [--json]")
	fmt.Println("                Recover the original document from a QR-grid PDF")
	fmt.Println()
	fmt.Println("  config validate  [--config path]           Validate config")
	fmt.Println("  config show      [--config path]           Show resolved config")
	fmt.Println("  config init      [--config path] [--force] Write a default config")
	fmt.Println("  config rollback  [--config path]           Restore last-known-good config")
	fmt.Println()
	fmt.Println("  version                             Show version information")
	fmt.Println()
	fmt.Println("Without --config, qrdm searches: ./qrdm.yaml, ~/.config/qrdm/config.yaml, /etc/qrdm/config.yaml")
}
