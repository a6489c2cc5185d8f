// Package config loads device-capability descriptions from JSON files. The
// capability set normally arrives from the device driver at connect time; the
// file form exists so tools can compose and validate captures offline.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/seabright/logicport/internal/trigger"
)

// DeviceConfig is the JSON schema of a device-capability file. Fields are
// pointers so partial configs are safe: anything omitted falls back to the
// derived defaults in trigger.NewDeviceCapabilities.
type DeviceConfig struct {
	ChannelCount   *int `json:"channel_count,omitempty"`
	MinFrequency   *int `json:"min_frequency,omitempty"`
	MaxFrequency   *int `json:"max_frequency,omitempty"`
	BlastFrequency *int `json:"blast_frequency,omitempty"`
	BufferSize     *int `json:"buffer_size,omitempty"`

	MinVoltage       *float64 `json:"min_voltage,omitempty"`
	MaxVoltage       *float64 `json:"max_voltage,omitempty"`
	DefaultThreshold *float64 `json:"default_threshold,omitempty"`
}

// LoadDeviceConfig loads a DeviceConfig from a JSON file. The path must end
// in .json and the file must be small; both checks guard against loading the
// wrong file by accident.
func LoadDeviceConfig(path string) (*DeviceConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("device config must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat device config: %w", err)
	}
	const maxFileSize = 64 * 1024
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("device config too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read device config: %w", err)
	}

	var cfg DeviceConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse device config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configs that cannot describe a real device.
func (c *DeviceConfig) Validate() error {
	if c.ChannelCount == nil || *c.ChannelCount < 1 {
		return fmt.Errorf("device config requires a positive channel_count")
	}
	if c.MaxFrequency == nil || *c.MaxFrequency < 1 {
		return fmt.Errorf("device config requires a positive max_frequency")
	}
	if c.BufferSize == nil || *c.BufferSize < 1 {
		return fmt.Errorf("device config requires a positive buffer_size")
	}
	if c.MinVoltage != nil && c.MaxVoltage != nil && *c.MinVoltage >= *c.MaxVoltage {
		return fmt.Errorf("min_voltage %v must be below max_voltage %v", *c.MinVoltage, *c.MaxVoltage)
	}
	return nil
}

// Capabilities converts the file form into the immutable capability value the
// trigger engine consumes, applying the derived defaults for anything the
// file left out.
func (c *DeviceConfig) Capabilities() trigger.DeviceCapabilities {
	caps := trigger.DeviceCapabilities{}
	if c.ChannelCount != nil {
		caps.ChannelCount = *c.ChannelCount
	}
	if c.MinFrequency != nil {
		caps.MinFrequency = *c.MinFrequency
	}
	if c.MaxFrequency != nil {
		caps.MaxFrequency = *c.MaxFrequency
	}
	if c.BlastFrequency != nil {
		caps.BlastFrequency = *c.BlastFrequency
	}
	if c.BufferSize != nil {
		caps.BufferSize = *c.BufferSize
	}
	if c.MinVoltage != nil {
		caps.MinVoltage = *c.MinVoltage
	}
	if c.MaxVoltage != nil {
		caps.MaxVoltage = *c.MaxVoltage
	}
	if c.DefaultThreshold != nil {
		caps.DefaultThreshold = *c.DefaultThreshold
	}
	return trigger.NewDeviceCapabilities(caps)
}
