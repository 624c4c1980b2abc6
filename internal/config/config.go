// Package config loads and persists the qrdm CLI's on-disk settings: the
// default QR error-correction level, whether cross-QR erasure coding is
// enabled, and logging verbosity.
package config

import "fmt"

// CurrentConfigVersion is the latest configuration schema version.
// Bump this when adding fields that require migration.
const CurrentConfigVersion = 1

// ErrorTolerance mirrors the four QR symbol error-correction levels a
// document may be encoded with.
type ErrorTolerance string

const (
	ErrorToleranceLow      ErrorTolerance = "LOW"
	ErrorToleranceMedium   ErrorTolerance = "MEDIUM"
	ErrorToleranceQuartile ErrorTolerance = "QUARTILE"
	ErrorToleranceHigh     ErrorTolerance = "HIGH"
)

// Valid reports whether t is one of the four defined tolerance levels.
func (t ErrorTolerance) Valid() bool {
	switch t {
	case ErrorToleranceLow, ErrorToleranceMedium, ErrorToleranceQuartile, ErrorToleranceHigh:
		return true
	default:
		return false
	}
}

// LogLevel is one of the slog-compatible level names accepted in a config file.
type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

// Settings is the unified, persisted configuration for the qrdm CLI.
type Settings struct {
	Version        int            `yaml:"version,omitempty"`
	ErrorTolerance ErrorTolerance `yaml:"error_tolerance"`
	EncodeECCodes  bool           `yaml:"encode_ec_codes"`
	LogLevel       LogLevel       `yaml:"log_level,omitempty"`
	JSONLogs       bool           `yaml:"json_logs,omitempty"`
}

// NewSettings returns the default Settings: medium error tolerance,
// erasure coding enabled, info-level text logs.
func NewSettings() Settings {
	return Settings{
		Version:        CurrentConfigVersion,
		ErrorTolerance: ErrorToleranceMedium,
		EncodeECCodes:  true,
		LogLevel:       LogLevelInfo,
	}
}

// Validate checks that a loaded Settings value is internally consistent.
func (s Settings) Validate() error {
	if !s.ErrorTolerance.Valid() {
		return fmt.Errorf("error_tolerance: invalid value %q", s.ErrorTolerance)
	}
	switch s.LogLevel {
	case "", LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("log_level: invalid value %q", s.LogLevel)
	}
	return nil
}
