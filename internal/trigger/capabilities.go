// Package trigger validates capture intents against device capability limits
// and composes them into the wire commands the firmware expects. Every entry
// point is a pure function of (capabilities, session, inputs); validation
// reports problems through ValidationResult values and never panics.
package trigger

// DeviceCapabilities describes the limits of a connected analyzer. It is an
// immutable value passed explicitly into every validation and composition
// call, so independent configurations can be used concurrently.
type DeviceCapabilities struct {
	// ChannelCount is the number of physical channels the device exposes.
	ChannelCount int

	// MinFrequency and MaxFrequency bound the normal capture sample rate in
	// Hz. BlastFrequency is the higher ceiling available to blast captures.
	MinFrequency   int
	MaxFrequency   int
	BlastFrequency int

	// BufferSize is the total sample budget of the device in 8-channel mode.
	BufferSize int

	// MinVoltage and MaxVoltage bound the trigger threshold; DefaultThreshold
	// is used when no signal-family preset matches.
	MinVoltage       float64
	MaxVoltage       float64
	DefaultThreshold float64
}

// Default voltage window applied when the device does not report one.
const (
	defaultMinVoltage       = 0.0
	defaultMaxVoltage       = 5.0
	defaultLevelThreshold   = 1.5
	defaultPresetHysteresis = 0.2
)

// NewDeviceCapabilities fills in the derived defaults of a capability set
// reported by the device driver. A missing minimum frequency is derived as
// floor(maxFrequency*2/65535); the formula comes from the legacy prescaler
// arithmetic of the firmware and is preserved verbatim.
func NewDeviceCapabilities(caps DeviceCapabilities) DeviceCapabilities {
	if caps.MinFrequency == 0 {
		caps.MinFrequency = caps.MaxFrequency * 2 / 65535
	}
	if caps.BlastFrequency == 0 {
		caps.BlastFrequency = caps.MaxFrequency
	}
	if caps.MinVoltage == 0 && caps.MaxVoltage == 0 {
		caps.MinVoltage = defaultMinVoltage
		caps.MaxVoltage = defaultMaxVoltage
	}
	if caps.DefaultThreshold == 0 {
		caps.DefaultThreshold = defaultLevelThreshold
	}
	return caps
}

// CaptureMode selects the electrical channel configuration of a capture. The
// numeric values travel on the wire in the capture-start command.
type CaptureMode uint8

const (
	Mode8Channel  CaptureMode = 0
	Mode16Channel CaptureMode = 1
	Mode24Channel CaptureMode = 2
)

// ModeForChannels derives the capture mode from the highest channel number a
// session references: channels 0-7 fit the 8-channel mode, 8-15 need the
// 16-channel mode, anything above needs all 24.
func ModeForChannels(channels []int) CaptureMode {
	max := 0
	for _, ch := range channels {
		if ch > max {
			max = ch
		}
	}
	switch {
	case max < 8:
		return Mode8Channel
	case max < 16:
		return Mode16Channel
	default:
		return Mode24Channel
	}
}

// sampleDivider returns how many ways the device buffer is split in the given
// mode: wider captures store more bytes per sample and so fit fewer samples.
func (m CaptureMode) sampleDivider() int {
	switch m {
	case Mode8Channel:
		return 1
	case Mode16Channel:
		return 2
	default:
		return 4
	}
}

// CaptureLimits are the per-mode sample-count bounds derived from the device
// buffer size.
type CaptureLimits struct {
	MinPreSamples   int
	MaxPreSamples   int
	MinPostSamples  int
	MaxPostSamples  int
	MaxTotalSamples int
}

// Limits returns the capture bounds for the given mode. Pre-trigger storage
// is capped at a tenth of the budget; the firmware always needs at least two
// pre-trigger and 512 post-trigger samples.
func (d DeviceCapabilities) Limits(mode CaptureMode) CaptureLimits {
	total := d.BufferSize / mode.sampleDivider()
	return CaptureLimits{
		MinPreSamples:   2,
		MaxPreSamples:   total / 10,
		MinPostSamples:  512,
		MaxPostSamples:  total - 2,
		MaxTotalSamples: total,
	}
}
