package config

import (
	"testing"
)

func BenchmarkLoadSettings(b *testing.B) {
	dir := b.TempDir()
	path := writeTestConfig(b, dir, testSettingsYAML)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		LoadSettings(path)
	}
}

func BenchmarkValidateSettings(b *testing.B) {
	settings := Settings{
		Version:        1,
		ErrorTolerance: ErrorToleranceMedium,
		EncodeECCodes:  true,
		LogLevel:       LogLevelInfo,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		settings.Validate()
	}
}
