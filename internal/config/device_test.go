package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadDeviceConfig(t *testing.T) {
	path := writeConfig(t, "device.json", `{
		"channel_count": 24,
		"max_frequency": 100000000,
		"blast_frequency": 200000000,
		"buffer_size": 96000
	}`)

	cfg, err := LoadDeviceConfig(path)
	if err != nil {
		t.Fatalf("LoadDeviceConfig: %v", err)
	}

	caps := cfg.Capabilities()
	if caps.ChannelCount != 24 {
		t.Errorf("ChannelCount = %d, want 24", caps.ChannelCount)
	}
	if caps.MaxFrequency != 100_000_000 || caps.BlastFrequency != 200_000_000 {
		t.Errorf("frequencies = %d/%d", caps.MaxFrequency, caps.BlastFrequency)
	}
	// Omitted fields pick up derived defaults.
	if caps.MinFrequency != 3051 {
		t.Errorf("derived MinFrequency = %d, want 3051", caps.MinFrequency)
	}
	if caps.MinVoltage != 0 || caps.MaxVoltage != 5 {
		t.Errorf("voltage window = %v..%v, want 0..5", caps.MinVoltage, caps.MaxVoltage)
	}
}

func TestLoadDeviceConfigExplicitOverrides(t *testing.T) {
	path := writeConfig(t, "device.json", `{
		"channel_count": 8,
		"max_frequency": 24000000,
		"min_frequency": 1000,
		"buffer_size": 32000,
		"min_voltage": -2.0,
		"max_voltage": 2.0,
		"default_threshold": 0.4
	}`)

	cfg, err := LoadDeviceConfig(path)
	if err != nil {
		t.Fatalf("LoadDeviceConfig: %v", err)
	}
	caps := cfg.Capabilities()
	if caps.MinFrequency != 1000 {
		t.Errorf("explicit MinFrequency lost: %d", caps.MinFrequency)
	}
	if caps.MinVoltage != -2 || caps.MaxVoltage != 2 || caps.DefaultThreshold != 0.4 {
		t.Errorf("explicit voltage config lost: %+v", caps)
	}
}

func TestLoadDeviceConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"wrong extension", "device.yaml", `{}`},
		{"invalid json", "device.json", `{not json`},
		{"missing channel count", "device.json", `{"max_frequency": 1000, "buffer_size": 100}`},
		{"missing max frequency", "device.json", `{"channel_count": 8, "buffer_size": 100}`},
		{"missing buffer size", "device.json", `{"channel_count": 8, "max_frequency": 1000}`},
		{"inverted voltage window", "device.json",
			`{"channel_count": 8, "max_frequency": 1000, "buffer_size": 100, "min_voltage": 3.0, "max_voltage": 1.0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)
			if _, err := LoadDeviceConfig(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadDeviceConfigMissingFile(t *testing.T) {
	if _, err := LoadDeviceConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
