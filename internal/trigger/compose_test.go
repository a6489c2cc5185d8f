package trigger

import (
	"testing"

	"github.com/seabright/logicport/internal/capture"
	"github.com/seabright/logicport/internal/protocol"
)

func TestTriggerDelayOffset(t *testing.T) {
	caps := testCaps() // 100 MHz ceiling: 10 ns per device clock

	tests := []struct {
		name      string
		kind      capture.TriggerType
		frequency int
		want      int
	}{
		// Edge and blast triggers need no compensation.
		{"edge", capture.TriggerEdge, 50_000_000, 0},
		{"blast", capture.TriggerBlast, 200_000_000, 0},
		// Complex matcher: 5 cycles = 50 ns. At 50 MHz (20 ns period)
		// round(2.5+0.3) = 3; at 1 MHz (1000 ns) round(0.05+0.3) = 0.
		{"complex at 50MHz", capture.TriggerComplex, 50_000_000, 3},
		{"complex at 100MHz", capture.TriggerComplex, 100_000_000, 5},
		{"complex at 1MHz", capture.TriggerComplex, 1_000_000, 0},
		// Fast matcher: 3 cycles = 30 ns. At 50 MHz round(1.5+0.3) = 2.
		{"fast at 50MHz", capture.TriggerFast, 50_000_000, 2},
		{"fast at 100MHz", capture.TriggerFast, 100_000_000, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSession(tt.kind)
			s.Frequency = tt.frequency
			if got := TriggerDelayOffset(caps, s); got != tt.want {
				t.Errorf("TriggerDelayOffset = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTriggerDelayOffsetAdversarialInput(t *testing.T) {
	caps := testCaps()

	s := validSession(capture.TriggerComplex)
	s.Frequency = 0
	if got := TriggerDelayOffset(caps, s); got != 0 {
		t.Errorf("offset at zero frequency = %d, want 0", got)
	}

	zeroCaps := DeviceCapabilities{}
	s = validSession(capture.TriggerFast)
	if got := TriggerDelayOffset(zeroCaps, s); got != 0 {
		t.Errorf("offset with zero capabilities = %d, want 0", got)
	}
}

func TestComposeRequestEdge(t *testing.T) {
	caps := testCaps()
	s := validSession(capture.TriggerEdge)
	s.TriggerChannel = 3
	s.TriggerInverted = true
	s.LoopCount = 2
	s.MeasureBursts = true

	req, ok := protocol.DecodeCaptureRequest(ComposeRequest(caps, s))
	if !ok {
		t.Fatal("compose produced a malformed buffer")
	}

	if req.TriggerType != uint8(capture.TriggerEdge) {
		t.Errorf("TriggerType = %d", req.TriggerType)
	}
	if req.TriggerChannel != 3 || req.TriggerFlag != 1 || req.TriggerValue != 0 {
		t.Errorf("channel/flag/value = %d/%d/%d, want 3/1/0",
			req.TriggerChannel, req.TriggerFlag, req.TriggerValue)
	}
	// Edge composition leaves the sample counts untouched.
	if req.PreSamples != 1000 || req.PostSamples != 9000 {
		t.Errorf("pre/post = %d/%d, want 1000/9000", req.PreSamples, req.PostSamples)
	}
	if req.LoopCount != 2 || req.MeasureBursts != 1 {
		t.Errorf("loop/measure = %d/%d, want 2/1", req.LoopCount, req.MeasureBursts)
	}
	if req.ChannelCount != 3 || req.CaptureMode != uint8(Mode8Channel) {
		t.Errorf("channelCount/mode = %d/%d, want 3/0", req.ChannelCount, req.CaptureMode)
	}
}

func TestComposeRequestComplexShiftsWindow(t *testing.T) {
	caps := testCaps()
	s := validSession(capture.TriggerComplex)
	s.Frequency = 50_000_000
	s.TriggerChannel = 4
	s.TriggerBitCount = 8
	s.TriggerPattern = 0xA5

	offset := TriggerDelayOffset(caps, s)
	if offset == 0 {
		t.Fatal("test expects a non-zero delay offset")
	}

	req, ok := protocol.DecodeCaptureRequest(ComposeRequest(caps, s))
	if !ok {
		t.Fatal("compose produced a malformed buffer")
	}

	if req.TriggerFlag != 8 || req.TriggerValue != 0xA5 {
		t.Errorf("flag/value = %d/%#x, want 8/0xa5", req.TriggerFlag, req.TriggerValue)
	}
	if got := int(req.PreSamples) - s.PreTriggerSamples; got != offset {
		t.Errorf("pre shift = %d, want %d", got, offset)
	}
	if got := s.PostTriggerSamples - int(req.PostSamples); got != offset {
		t.Errorf("post shift = %d, want %d", got, offset)
	}
}

func TestComposeRequestClampsAtZero(t *testing.T) {
	caps := testCaps()
	s := validSession(capture.TriggerFast)
	s.Frequency = 100_000_000
	s.TriggerBitCount = 3
	s.PreTriggerSamples = 0
	s.PostTriggerSamples = 1 // smaller than the delay offset

	offset := TriggerDelayOffset(caps, s)
	if offset <= s.PostTriggerSamples {
		t.Fatalf("test expects offset > post samples, got %d", offset)
	}

	req, ok := protocol.DecodeCaptureRequest(ComposeRequest(caps, s))
	if !ok {
		t.Fatal("compose produced a malformed buffer")
	}
	if req.PostSamples != 0 {
		t.Errorf("PostSamples = %d, want clamp at 0", req.PostSamples)
	}
	if req.PreSamples != uint32(offset) {
		t.Errorf("PreSamples = %d, want %d", req.PreSamples, offset)
	}
}

func TestComposeRequestUnknownKindBestEffort(t *testing.T) {
	caps := testCaps()
	s := validSession(capture.TriggerType(9))

	buf := ComposeRequest(caps, s)
	if len(buf) != protocol.CaptureRequestSize {
		t.Fatalf("compose produced %d bytes, want %d", len(buf), protocol.CaptureRequestSize)
	}
	req, _ := protocol.DecodeCaptureRequest(buf)
	if req.TriggerType != 9 {
		t.Errorf("TriggerType = %d, want the raw kind value 9", req.TriggerType)
	}
	if req.PreSamples != 1000 || req.PostSamples != 9000 {
		t.Errorf("unknown kind shifted the sample window: %d/%d", req.PreSamples, req.PostSamples)
	}
}

func TestComposeRequestModeFromChannels(t *testing.T) {
	caps := testCaps()

	tests := []struct {
		name     string
		channels []int
		want     CaptureMode
	}{
		{"low channels", []int{0, 3, 7}, Mode8Channel},
		{"mid channels", []int{0, 8}, Mode16Channel},
		{"high channels", []int{0, 16}, Mode24Channel},
		{"highest channel", []int{23}, Mode24Channel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSession(capture.TriggerEdge)
			s.CaptureChannels = nil
			for _, ch := range tt.channels {
				s.CaptureChannels = append(s.CaptureChannels, &capture.AnalyzerChannel{ChannelNumber: ch})
			}
			req, _ := protocol.DecodeCaptureRequest(ComposeRequest(caps, s))
			if req.CaptureMode != uint8(tt.want) {
				t.Errorf("CaptureMode = %d, want %d", req.CaptureMode, tt.want)
			}
		})
	}
}
