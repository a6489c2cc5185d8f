package trigger

import (
	"math"

	"github.com/seabright/logicport/internal/capture"
	"github.com/seabright/logicport/internal/protocol"
)

// Pipeline depth, in device clock cycles, of the pattern-matching trigger
// circuits. The complex matcher needs more cycles to evaluate its wider
// window than the fast matcher does.
const (
	fastTriggerDelay    = 3
	complexTriggerDelay = 5
)

// TriggerDelayOffset returns the number of samples by which the pre/post
// boundary must shift to compensate for the evaluation latency of a pattern
// trigger. Edge and blast triggers fire combinatorially and need no
// compensation, so the offset is 0 for them.
//
// The matcher latency is fixed in device clock cycles, so its duration is
// delay cycles at the device's maximum frequency; dividing by the session's
// sample period converts that into a sample count. The +0.3 bias before
// rounding reproduces the firmware's historical rounding behaviour.
func TriggerDelayOffset(caps DeviceCapabilities, s *capture.CaptureSession) int {
	var delay float64
	switch s.TriggerType {
	case capture.TriggerFast:
		delay = fastTriggerDelay
	case capture.TriggerComplex:
		delay = complexTriggerDelay
	default:
		return 0
	}

	samplePeriodNs := 1e9 / float64(s.Frequency)
	delayPeriodNs := 1e9 / float64(caps.MaxFrequency) * delay
	offset := math.Round(delayPeriodNs/samplePeriodNs + 0.3)
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		return 0
	}
	return int(offset)
}

// ComposeRequest builds the 45-byte capture-start command for the session.
// It assumes validated input and has no error channel: malformed sessions
// yield best-effort bytes. For pattern triggers the pre/post sample counts
// are shifted by the delay offset, clamped at zero, so the reported trigger
// instant lines up with the requested one. Callers wrap the result with
// protocol.Frame before handing it to the transport.
func ComposeRequest(caps DeviceCapabilities, s *capture.CaptureSession) []byte {
	channels := sessionChannelNumbers(s)

	req := protocol.CaptureRequest{
		TriggerType:    uint8(s.TriggerType),
		TriggerChannel: uint8(s.TriggerChannel),
		Frequency:      uint32(s.Frequency),
		LoopCount:      uint8(s.LoopCount),
		CaptureMode:    uint8(ModeForChannels(channels)),
	}
	req.SetChannels(channels)
	if s.MeasureBursts {
		req.MeasureBursts = 1
	}

	switch s.TriggerType {
	case capture.TriggerComplex, capture.TriggerFast:
		req.TriggerFlag = uint8(s.TriggerBitCount)
		req.TriggerValue = s.TriggerPattern
		offset := TriggerDelayOffset(caps, s)
		req.PreSamples = clampSamples(s.PreTriggerSamples + offset)
		req.PostSamples = clampSamples(s.PostTriggerSamples - offset)
	default:
		// Edge, blast, and any unknown kind: inversion flag, no pattern, raw
		// sample counts.
		if s.TriggerInverted {
			req.TriggerFlag = 1
		}
		req.PreSamples = clampSamples(s.PreTriggerSamples)
		req.PostSamples = clampSamples(s.PostTriggerSamples)
	}

	return req.Encode()
}

func clampSamples(n int) uint32 {
	if n < 0 {
		return 0
	}
	return uint32(n)
}
