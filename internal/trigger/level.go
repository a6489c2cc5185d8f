package trigger

// Hysteresis bounds in volts. The comparator hardware supports at most one
// volt of hysteresis either side of the threshold.
const (
	minHysteresis = 0.0
	maxHysteresis = 1.0
)

// ValidateTriggerLevel checks an analog trigger threshold against the device
// voltage window. hysteresis may be nil when the caller does not use one.
// Both the threshold itself and threshold±hysteresis must stay inside the
// window. Level failures carry no error code; the message describes the
// problem.
func ValidateTriggerLevel(caps DeviceCapabilities, threshold float64, hysteresis *float64) ValidationResult {
	if threshold < caps.MinVoltage || threshold > caps.MaxVoltage {
		return invalid(ErrNone,
			"threshold %.3fV out of range %.2fV-%.2fV", threshold, caps.MinVoltage, caps.MaxVoltage)
	}
	if hysteresis == nil {
		return ok()
	}
	h := *hysteresis
	if h < minHysteresis || h > maxHysteresis {
		return invalid(ErrNone,
			"hysteresis %.3fV out of range %.2fV-%.2fV", h, minHysteresis, maxHysteresis)
	}
	if threshold+h > caps.MaxVoltage || threshold-h < caps.MinVoltage {
		return invalid(ErrNone,
			"threshold %.3fV with %.3fV hysteresis leaves range %.2fV-%.2fV",
			threshold, h, caps.MinVoltage, caps.MaxVoltage)
	}
	return ok()
}

// Impedance selects the comparator input impedance of a level preset.
type Impedance int

const (
	ImpedanceHigh Impedance = iota
	ImpedanceLow
)

// LevelPreset is a threshold/hysteresis/impedance bundle for a common signal
// family.
type LevelPreset struct {
	Threshold  float64
	Hysteresis float64
	Impedance  Impedance
}

// LevelPresetFor returns the preset for a named signal family. Single-ended
// logic families use high input impedance; the differential LVDS preset loads
// the line with low impedance. Unrecognised families fall back to the
// device's configured default threshold.
func LevelPresetFor(caps DeviceCapabilities, family string) LevelPreset {
	switch family {
	case "ttl":
		return LevelPreset{Threshold: 1.4, Hysteresis: 0.4, Impedance: ImpedanceHigh}
	case "cmos-3v3":
		return LevelPreset{Threshold: 1.65, Hysteresis: 0.3, Impedance: ImpedanceHigh}
	case "cmos-2v5":
		return LevelPreset{Threshold: 1.25, Hysteresis: 0.25, Impedance: ImpedanceHigh}
	case "cmos-1v8":
		return LevelPreset{Threshold: 0.9, Hysteresis: 0.2, Impedance: ImpedanceHigh}
	case "lvds":
		return LevelPreset{Threshold: 1.2, Hysteresis: 0.1, Impedance: ImpedanceLow}
	default:
		return LevelPreset{
			Threshold:  caps.DefaultThreshold,
			Hysteresis: defaultPresetHysteresis,
			Impedance:  ImpedanceHigh,
		}
	}
}
