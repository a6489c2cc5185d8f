// Package capture holds the capture session data model: the user's capture
// intent (channels, sample rate, trigger condition) plus the burst metadata a
// device reports back after a looped capture. The model is plain data; all
// validation lives in the trigger package. Sessions are not safe for
// concurrent mutation and must be serialised by the caller.
package capture

import "fmt"

// TriggerType selects one of the four hardware trigger circuits. The numeric
// values are part of the wire contract (they are sent verbatim in the
// capture-start command), so the ordering here must not change.
type TriggerType uint8

const (
	TriggerEdge    TriggerType = 0 // single-channel edge trigger
	TriggerComplex TriggerType = 1 // multi-bit pattern trigger, up to 16 bits
	TriggerFast    TriggerType = 2 // pattern trigger on the fast path, up to 5 bits
	TriggerBlast   TriggerType = 3 // edge trigger at the blast frequency ceiling
)

// String returns the human-readable trigger kind name.
func (t TriggerType) String() string {
	switch t {
	case TriggerEdge:
		return "edge"
	case TriggerComplex:
		return "complex"
	case TriggerFast:
		return "fast"
	case TriggerBlast:
		return "blast"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Default session values applied by NewSession. Matches the defaults the
// composing driver layer has always used for a fresh capture.
const (
	DefaultFrequency          = 1_000_000 // 1 MHz sample rate
	DefaultPostTriggerSamples = 1000
)

// MaxLoopCount is the largest loop count the capture-start command can carry
// in its single loop-count byte (255 is reserved).
const MaxLoopCount = 254

// CaptureSession is one user-configured (or device-returned) capture intent.
//
// PreTriggerSamples are captured once; PostTriggerSamples are repeated
// LoopCount+1 times in burst/loop capture, which is why TotalSamples is not a
// plain sum. A session is never mutated after it has been serialised to wire
// bytes for a given request.
type CaptureSession struct {
	// Frequency is the requested sample rate in Hz.
	Frequency int

	// PreTriggerSamples and PostTriggerSamples are sample counts either side
	// of the trigger instant.
	PreTriggerSamples  int
	PostTriggerSamples int

	// LoopCount is the number of additional post-trigger repeats (0..254).
	LoopCount int

	// MeasureBursts asks the device to report inter-burst gap timing.
	MeasureBursts bool

	TriggerType     TriggerType
	TriggerChannel  int
	TriggerInverted bool

	// TriggerBitCount and TriggerPattern describe the pattern for Complex and
	// Fast triggers; Edge and Blast force bit count 1 and pattern 0.
	TriggerBitCount int
	TriggerPattern  uint16

	// CaptureChannels is in display order, which is also wire order.
	CaptureChannels []*AnalyzerChannel

	// Bursts is populated only after a multi-loop capture returns.
	Bursts []*BurstInfo
}

// NewSession returns a session with driver defaults: 1 MHz, 1000 post-trigger
// samples, edge trigger, no channels.
func NewSession() *CaptureSession {
	return &CaptureSession{
		Frequency:          DefaultFrequency,
		PostTriggerSamples: DefaultPostTriggerSamples,
		TriggerType:        TriggerEdge,
		TriggerBitCount:    1,
	}
}

// TotalSamples returns the full sample budget of the session: pre-trigger
// samples once plus post-trigger samples repeated LoopCount+1 times.
func (s *CaptureSession) TotalSamples() int {
	return s.PreTriggerSamples + s.PostTriggerSamples*(s.LoopCount+1)
}

// Clone returns a fully independent copy of the session. Channel sample
// buffers are copied element-for-element and burst entries are copied by
// value, so mutating the clone never touches the original. Runs in time
// linear in the total sample count.
func (s *CaptureSession) Clone() *CaptureSession {
	out := *s
	if s.CaptureChannels != nil {
		out.CaptureChannels = make([]*AnalyzerChannel, len(s.CaptureChannels))
		for i, ch := range s.CaptureChannels {
			out.CaptureChannels[i] = ch.Clone()
		}
	}
	if s.Bursts != nil {
		out.Bursts = make([]*BurstInfo, len(s.Bursts))
		for i, b := range s.Bursts {
			cp := *b
			out.Bursts[i] = &cp
		}
	}
	return &out
}

// CloneSettings returns a copy suitable for reuse as a capture template:
// configuration is carried over, but every channel's sample buffer is absent
// and the burst list is dropped.
func (s *CaptureSession) CloneSettings() *CaptureSession {
	out := *s
	out.Bursts = nil
	if s.CaptureChannels != nil {
		out.CaptureChannels = make([]*AnalyzerChannel, len(s.CaptureChannels))
		for i, ch := range s.CaptureChannels {
			cc := ch.Clone()
			cc.Samples = nil
			out.CaptureChannels[i] = cc
		}
	}
	return &out
}

// AnalyzerChannel is one logical/physical channel of the analyzer.
type AnalyzerChannel struct {
	// ChannelNumber is the 0-based hardware index.
	ChannelNumber int

	// ChannelName is the display label; when empty the generated
	// "Channel N" form is used instead (see DisplayName).
	ChannelName string

	// ChannelColor is an optional display colour (RGB hex, e.g. "#ff8800").
	// It never reaches the wire protocol.
	ChannelColor string

	// Hidden excludes the channel from measurement and display at the UI
	// layer only; the protocol layer still serialises it.
	Hidden bool

	// Samples holds one byte per sample, each 0 or 1. Absent until a capture
	// returns data.
	Samples []byte
}

// DisplayName returns the channel's display text: the explicit name when set,
// otherwise "Channel N" with N being the 1-based hardware number.
func (c *AnalyzerChannel) DisplayName() string {
	if c.ChannelName != "" {
		return c.ChannelName
	}
	return fmt.Sprintf("Channel %d", c.ChannelNumber+1)
}

// Clone returns an independent copy of the channel, including a copied sample
// buffer when one is present.
func (c *AnalyzerChannel) Clone() *AnalyzerChannel {
	out := *c
	if c.Samples != nil {
		out.Samples = make([]byte, len(c.Samples))
		copy(out.Samples, c.Samples)
	}
	return &out
}
