package trigger

import "github.com/seabright/logicport/internal/capture"

// EdgeCondition is the abstract edge selection offered by the simplified UI
// path.
type EdgeCondition int

const (
	EdgeRising EdgeCondition = iota
	EdgeFalling
	EdgeBoth
	EdgeAnyChange
)

// Inverted maps the abstract condition onto the hardware inversion flag.
// The edge circuit only distinguishes rising (non-inverted) from falling
// (inverted): both-edges and any-change collapse onto the rising-edge
// representation, so at the hardware level they behave identically to a
// plain rising edge. Known limitation of the trigger circuit mapping;
// preserved rather than reinterpreted.
func (c EdgeCondition) Inverted() bool {
	return c == EdgeFalling
}

// EdgeTriggerConfig carries the inputs of the simplified edge-trigger path.
// Blast switches the capture to the blast frequency ceiling; Burst enables
// looped capture with BurstCount iterations. The two are mutually exclusive.
type EdgeTriggerConfig struct {
	Channel       int
	Inverted      bool
	Blast         bool
	Burst         bool
	BurstCount    int
	MeasureBursts bool
}

// ValidateEdgeTrigger checks an edge-trigger configuration without touching
// any session.
func ValidateEdgeTrigger(cfg EdgeTriggerConfig) ValidationResult {
	if cfg.Channel < 0 || cfg.Channel > 23 {
		return invalid(ErrInvalidTriggerChannel,
			"edge trigger channel %d out of range 0-23", cfg.Channel)
	}
	if cfg.Blast && cfg.Burst {
		return invalid(ErrInvalidLoopCount,
			"blast and burst modes are mutually exclusive")
	}
	if cfg.Burst && (cfg.BurstCount < 1 || cfg.BurstCount > 254) {
		return invalid(ErrInvalidLoopCount,
			"burst count %d out of range 1-254", cfg.BurstCount)
	}
	return ok()
}

// ApplyEdgeTrigger validates cfg and, when legal, mutates the session into a
// consistent edge (or blast) trigger configuration. Edge triggers use a
// single bit, so the bit count is forced to 1 and the pattern cleared.
func ApplyEdgeTrigger(s *capture.CaptureSession, cfg EdgeTriggerConfig) ValidationResult {
	if r := ValidateEdgeTrigger(cfg); !r.Valid {
		return r
	}

	switch {
	case cfg.Blast:
		s.TriggerType = capture.TriggerBlast
		s.LoopCount = 0
	case cfg.Burst:
		s.TriggerType = capture.TriggerEdge
		s.LoopCount = cfg.BurstCount - 1
	default:
		s.TriggerType = capture.TriggerEdge
		s.LoopCount = 0
	}
	s.TriggerChannel = cfg.Channel
	s.TriggerInverted = cfg.Inverted
	s.MeasureBursts = cfg.MeasureBursts
	s.TriggerBitCount = 1
	s.TriggerPattern = 0
	return ok()
}
