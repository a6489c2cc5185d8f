package trigger

import "testing"

func hyst(v float64) *float64 { return &v }

func TestValidateTriggerLevel(t *testing.T) {
	caps := testCaps() // voltage window defaults to 0-5V

	tests := []struct {
		name       string
		threshold  float64
		hysteresis *float64
		wantOK     bool
	}{
		{"mid range no hysteresis", 2.5, nil, true},
		{"lower bound", 0.0, nil, true},
		{"upper bound", 5.0, nil, true},
		{"with hysteresis", 1.4, hyst(0.4), true},
		{"hysteresis at limit", 2.5, hyst(1.0), true},
		{"threshold below range", -0.1, nil, false},
		{"threshold above range", 5.1, nil, false},
		{"hysteresis negative", 2.5, hyst(-0.1), false},
		{"hysteresis too large", 2.5, hyst(1.1), false},
		{"band leaves range high", 4.8, hyst(0.4), false},
		{"band leaves range low", 0.2, hyst(0.4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ValidateTriggerLevel(caps, tt.threshold, tt.hysteresis)
			if r.Valid != tt.wantOK {
				t.Errorf("Valid = %v, want %v (message %q)", r.Valid, tt.wantOK, r.Message)
			}
			if !tt.wantOK && r.Message == "" {
				t.Error("rejection carries no message")
			}
		})
	}
}

func TestValidateTriggerLevelCustomWindow(t *testing.T) {
	caps := NewDeviceCapabilities(DeviceCapabilities{
		ChannelCount: 8,
		MaxFrequency: 24_000_000,
		BufferSize:   32_000,
		MinVoltage:   -2.0,
		MaxVoltage:   2.0,
	})

	if r := ValidateTriggerLevel(caps, -1.5, hyst(0.3)); !r.Valid {
		t.Errorf("threshold -1.5V in -2..2 window rejected: %s", r.Message)
	}
	if r := ValidateTriggerLevel(caps, 2.5, nil); r.Valid {
		t.Error("threshold 2.5V in -2..2 window accepted")
	}
}

func TestLevelPresetFor(t *testing.T) {
	caps := testCaps()

	ttl := LevelPresetFor(caps, "ttl")
	if ttl.Threshold != 1.4 || ttl.Hysteresis != 0.4 || ttl.Impedance != ImpedanceHigh {
		t.Errorf("ttl preset = %+v", ttl)
	}

	lvds := LevelPresetFor(caps, "lvds")
	if lvds.Impedance != ImpedanceLow {
		t.Errorf("lvds preset uses %v impedance, want low", lvds.Impedance)
	}

	// Low-voltage families sit below the TTL threshold.
	for _, family := range []string{"cmos-3v3", "cmos-2v5", "cmos-1v8"} {
		p := LevelPresetFor(caps, family)
		if p.Threshold <= 0 || p.Threshold > 1.65 {
			t.Errorf("%s preset threshold = %v", family, p.Threshold)
		}
		if p.Impedance != ImpedanceHigh {
			t.Errorf("%s preset uses %v impedance, want high", family, p.Impedance)
		}
	}

	// Unknown families fall back to the configured default threshold.
	def := LevelPresetFor(caps, "rs485")
	if def.Threshold != caps.DefaultThreshold {
		t.Errorf("fallback threshold = %v, want %v", def.Threshold, caps.DefaultThreshold)
	}

	custom := caps
	custom.DefaultThreshold = 0.75
	if p := LevelPresetFor(custom, "unknown"); p.Threshold != 0.75 {
		t.Errorf("configured fallback threshold = %v, want 0.75", p.Threshold)
	}

	// Every preset must itself pass level validation on a default window.
	for _, family := range []string{"ttl", "cmos-3v3", "cmos-2v5", "cmos-1v8", "lvds", "other"} {
		p := LevelPresetFor(caps, family)
		if r := ValidateTriggerLevel(caps, p.Threshold, &p.Hysteresis); !r.Valid {
			t.Errorf("%s preset fails validation: %s", family, r.Message)
		}
	}
}
