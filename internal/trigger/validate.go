package trigger

import (
	"fmt"

	"github.com/seabright/logicport/internal/capture"
)

// ErrorCode identifies why a validation rejected its input. The set is closed
// and consumed by UI/driver callers that branch on it for localised messages.
type ErrorCode int

const (
	ErrNone ErrorCode = iota
	ErrInvalidChannelRange
	ErrInvalidTriggerBitCount
	ErrInvalidTriggerChannel
	ErrInvalidTriggerChannelRange
	ErrInvalidSampleCount
	ErrInvalidFrequency
	ErrInvalidLoopCount
	ErrInvalidTriggerPattern
	ErrInvalidPatternLength
	ErrFastTriggerPatternTooLong
)

// String returns the stable identifier of the error code.
func (c ErrorCode) String() string {
	switch c {
	case ErrNone:
		return "None"
	case ErrInvalidChannelRange:
		return "InvalidChannelRange"
	case ErrInvalidTriggerBitCount:
		return "InvalidTriggerBitCount"
	case ErrInvalidTriggerChannel:
		return "InvalidTriggerChannel"
	case ErrInvalidTriggerChannelRange:
		return "InvalidTriggerChannelRange"
	case ErrInvalidSampleCount:
		return "InvalidSampleCount"
	case ErrInvalidFrequency:
		return "InvalidFrequency"
	case ErrInvalidLoopCount:
		return "InvalidLoopCount"
	case ErrInvalidTriggerPattern:
		return "InvalidTriggerPattern"
	case ErrInvalidPatternLength:
		return "InvalidPatternLength"
	case ErrFastTriggerPatternTooLong:
		return "FastTriggerPatternTooLong"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// ValidationResult is the outcome of every validation operation. Validation
// never panics; rejected input is reported exclusively through this value.
// Message is suitable for surfacing to the user verbatim.
type ValidationResult struct {
	Valid   bool
	Code    ErrorCode
	Message string
}

func ok() ValidationResult {
	return ValidationResult{Valid: true}
}

func invalid(code ErrorCode, format string, args ...any) ValidationResult {
	return ValidationResult{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ValidateSettings checks a session against the device limits for its trigger
// kind. The channel-list precondition is checked first regardless of kind.
func ValidateSettings(caps DeviceCapabilities, s *capture.CaptureSession) ValidationResult {
	if r := validateChannelList(caps, s); !r.Valid {
		return r
	}

	switch s.TriggerType {
	case capture.TriggerEdge, capture.TriggerFast:
		if s.TriggerChannel < 0 || s.TriggerChannel >= caps.ChannelCount {
			return invalid(ErrInvalidTriggerChannel,
				"trigger channel %d out of range 0-%d", s.TriggerChannel, caps.ChannelCount-1)
		}
		return validateCaptureWindow(caps, s, caps.MaxFrequency)

	case capture.TriggerBlast:
		if s.TriggerChannel < 0 || s.TriggerChannel >= caps.ChannelCount {
			return invalid(ErrInvalidTriggerChannel,
				"trigger channel %d out of range 0-%d", s.TriggerChannel, caps.ChannelCount-1)
		}
		if s.LoopCount != 0 {
			return invalid(ErrInvalidLoopCount,
				"blast capture does not support loops (loop count %d)", s.LoopCount)
		}
		return validateCaptureWindow(caps, s, caps.BlastFrequency)

	case capture.TriggerComplex:
		if s.TriggerBitCount < 1 || s.TriggerBitCount > 16 {
			return invalid(ErrInvalidTriggerBitCount,
				"trigger bit count %d out of range 1-16", s.TriggerBitCount)
		}
		// Complex triggers only address the first 16 channels.
		if s.TriggerChannel < 0 || s.TriggerChannel > 15 {
			return invalid(ErrInvalidTriggerChannel,
				"complex trigger channel %d out of range 0-15", s.TriggerChannel)
		}
		if s.TriggerChannel+s.TriggerBitCount > 16 {
			return invalid(ErrInvalidTriggerChannelRange,
				"trigger window exceeds channel 16: channel %d with %d bits",
				s.TriggerChannel, s.TriggerBitCount)
		}
		return validateCaptureWindow(caps, s, caps.MaxFrequency)

	default:
		return invalid(ErrInvalidTriggerChannel,
			"unsupported trigger type %s", s.TriggerType)
	}
}

// validateChannelList is the global precondition: at least one capture
// channel, all within the device channel range.
func validateChannelList(caps DeviceCapabilities, s *capture.CaptureSession) ValidationResult {
	if len(s.CaptureChannels) == 0 {
		return invalid(ErrInvalidChannelRange, "no capture channels selected")
	}
	for _, ch := range s.CaptureChannels {
		if ch.ChannelNumber < 0 || ch.ChannelNumber >= caps.ChannelCount {
			return invalid(ErrInvalidChannelRange,
				"capture channel %d out of range 0-%d", ch.ChannelNumber, caps.ChannelCount-1)
		}
	}
	return ok()
}

// validateCaptureWindow checks the sample counts, frequency and loop count
// shared by every trigger kind. maxFrequency is the kind-specific ceiling
// (the blast ceiling is higher than the normal one).
func validateCaptureWindow(caps DeviceCapabilities, s *capture.CaptureSession, maxFrequency int) ValidationResult {
	limits := caps.Limits(ModeForChannels(sessionChannelNumbers(s)))

	if s.PreTriggerSamples < limits.MinPreSamples || s.PreTriggerSamples > limits.MaxPreSamples {
		return invalid(ErrInvalidSampleCount,
			"pre-trigger samples %d out of range %d-%d",
			s.PreTriggerSamples, limits.MinPreSamples, limits.MaxPreSamples)
	}
	if s.PostTriggerSamples < limits.MinPostSamples || s.PostTriggerSamples > limits.MaxPostSamples {
		return invalid(ErrInvalidSampleCount,
			"post-trigger samples %d out of range %d-%d",
			s.PostTriggerSamples, limits.MinPostSamples, limits.MaxPostSamples)
	}
	if s.TotalSamples() > limits.MaxTotalSamples {
		return invalid(ErrInvalidSampleCount,
			"requested %d samples exceed device maximum %d",
			s.TotalSamples(), limits.MaxTotalSamples)
	}
	if s.Frequency < caps.MinFrequency || s.Frequency > maxFrequency {
		return invalid(ErrInvalidFrequency,
			"frequency %d Hz out of range %d-%d", s.Frequency, caps.MinFrequency, maxFrequency)
	}
	if s.LoopCount < 0 || s.LoopCount > capture.MaxLoopCount {
		return invalid(ErrInvalidLoopCount,
			"loop count %d out of range 0-%d", s.LoopCount, capture.MaxLoopCount)
	}
	return ok()
}

func sessionChannelNumbers(s *capture.CaptureSession) []int {
	nums := make([]int, len(s.CaptureChannels))
	for i, ch := range s.CaptureChannels {
		nums[i] = ch.ChannelNumber
	}
	return nums
}
