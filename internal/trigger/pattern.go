package trigger

import (
	"strings"

	"github.com/seabright/logicport/internal/capture"
)

// Pattern length ceilings. The complex trigger window covers the first 16
// channels; the fast trigger path evaluates at most 5 bits.
const (
	maxPatternBits     = 16
	maxFastPatternBits = 5
)

// PatternTriggerConfig carries the inputs of the pattern-trigger path: a
// left-to-right binary pattern anchored at FirstChannel. Fast selects the
// low-latency trigger circuit with its shorter pattern limit.
type PatternTriggerConfig struct {
	FirstChannel int
	Pattern      string
	Fast         bool
}

// ValidatePatternTrigger checks a pattern-trigger configuration without
// touching any session.
func ValidatePatternTrigger(cfg PatternTriggerConfig) ValidationResult {
	if cfg.Pattern == "" {
		return invalid(ErrInvalidTriggerPattern, "trigger pattern is empty")
	}
	for i, r := range cfg.Pattern {
		if r != '0' && r != '1' {
			return invalid(ErrInvalidTriggerPattern,
				"trigger pattern contains %q at position %d; only 0 and 1 are allowed", r, i)
		}
	}
	if len(cfg.Pattern) > maxPatternBits {
		return invalid(ErrInvalidPatternLength,
			"trigger pattern has %d bits, maximum is %d", len(cfg.Pattern), maxPatternBits)
	}
	if cfg.FirstChannel < 0 || cfg.FirstChannel > 15 {
		return invalid(ErrInvalidTriggerChannel,
			"pattern trigger channel %d out of range 0-15", cfg.FirstChannel)
	}
	if cfg.FirstChannel+len(cfg.Pattern) > maxPatternBits {
		return invalid(ErrInvalidTriggerChannelRange,
			"pattern of %d bits starting at channel %d exceeds channel 16",
			len(cfg.Pattern), cfg.FirstChannel)
	}
	if cfg.Fast && len(cfg.Pattern) > maxFastPatternBits {
		return invalid(ErrFastTriggerPatternTooLong,
			"fast trigger pattern has %d bits, maximum is %d", len(cfg.Pattern), maxFastPatternBits)
	}
	return ok()
}

// ApplyPatternTrigger validates cfg and, when legal, mutates the session into
// a consistent pattern trigger configuration. Pattern triggers are never
// inverted.
func ApplyPatternTrigger(s *capture.CaptureSession, cfg PatternTriggerConfig) ValidationResult {
	if r := ValidatePatternTrigger(cfg); !r.Valid {
		return r
	}

	if cfg.Fast {
		s.TriggerType = capture.TriggerFast
	} else {
		s.TriggerType = capture.TriggerComplex
	}
	s.TriggerChannel = cfg.FirstChannel
	s.TriggerBitCount = len(cfg.Pattern)
	s.TriggerPattern = PatternToTriggerValue(cfg.Pattern)
	s.TriggerInverted = false
	return ok()
}

// PatternToTriggerValue packs a left-to-right binary pattern MSB-first: the
// leftmost character lands in the highest bit of the value. Characters other
// than '1' are treated as '0'; callers validate first.
func PatternToTriggerValue(pattern string) uint16 {
	var value uint16
	n := len(pattern)
	if n > maxPatternBits {
		n = maxPatternBits
	}
	for i := 0; i < n; i++ {
		if pattern[i] == '1' {
			value |= 1 << (n - 1 - i)
		}
	}
	return value
}

// TriggerValueToPattern is the display-side inverse of PatternToTriggerValue:
// it renders bitCount bits of value as a left-to-right binary string.
func TriggerValueToPattern(value uint16, bitCount int) string {
	if bitCount < 1 {
		return ""
	}
	if bitCount > maxPatternBits {
		bitCount = maxPatternBits
	}
	var b strings.Builder
	b.Grow(bitCount)
	for i := bitCount - 1; i >= 0; i-- {
		if value&(1<<i) != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
