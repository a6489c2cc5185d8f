package protocol

import "encoding/binary"

// Capture-start command layout (45 bytes, little-endian). The firmware reads
// these fields at fixed offsets.
//
//	offset  size  field
//	     0     1  trigger kind
//	     1     1  trigger channel
//	     2     1  inverted flag (edge/blast) or bit count (complex/fast)
//	     3     2  trigger value (0 for edge/blast, bit pattern otherwise)
//	     5    24  channel numbers, left-aligned, zero padded
//	    29     1  channel count
//	    30     4  frequency (Hz)
//	    34     4  pre-trigger samples
//	    38     4  post-trigger samples
//	    42     1  loop count
//	    43     1  measure bursts (0/1)
//	    44     1  capture mode (0=8ch, 1=16ch, 2=24ch)
const (
	CaptureRequestSize = 45
	MaxWireChannels    = 24

	offTriggerType    = 0
	offTriggerChannel = 1
	offTriggerFlag    = 2
	offTriggerValue   = 3
	offChannels       = 5
	offChannelCount   = 29
	offFrequency      = 30
	offPreSamples     = 34
	offPostSamples    = 38
	offLoopCount      = 42
	offMeasure        = 43
	offCaptureMode    = 44
)

// CaptureRequest mirrors the capture-start command structure. Field meanings
// depend on the trigger kind: TriggerFlag carries the inversion flag for
// edge/blast triggers and the pattern bit count for complex/fast triggers;
// TriggerValue is zero for edge/blast and the packed bit pattern otherwise.
type CaptureRequest struct {
	TriggerType    uint8
	TriggerChannel uint8
	TriggerFlag    uint8
	TriggerValue   uint16
	Channels       [MaxWireChannels]uint8
	ChannelCount   uint8
	Frequency      uint32
	PreSamples     uint32
	PostSamples    uint32
	LoopCount      uint8
	MeasureBursts  uint8
	CaptureMode    uint8
}

// SetChannels fills the fixed channel array from an ordered channel-number
// list. Channels beyond the 24th are silently ignored; unused slots stay
// zero.
func (r *CaptureRequest) SetChannels(channels []int) {
	n := len(channels)
	if n > MaxWireChannels {
		n = MaxWireChannels
	}
	for i := 0; i < n; i++ {
		r.Channels[i] = uint8(channels[i])
	}
	r.ChannelCount = uint8(n)
}

// Encode serialises the request into its fixed 45-byte wire form.
func (r *CaptureRequest) Encode() []byte {
	buf := make([]byte, CaptureRequestSize)
	buf[offTriggerType] = r.TriggerType
	buf[offTriggerChannel] = r.TriggerChannel
	buf[offTriggerFlag] = r.TriggerFlag
	binary.LittleEndian.PutUint16(buf[offTriggerValue:], r.TriggerValue)
	copy(buf[offChannels:offChannels+MaxWireChannels], r.Channels[:])
	buf[offChannelCount] = r.ChannelCount
	binary.LittleEndian.PutUint32(buf[offFrequency:], r.Frequency)
	binary.LittleEndian.PutUint32(buf[offPreSamples:], r.PreSamples)
	binary.LittleEndian.PutUint32(buf[offPostSamples:], r.PostSamples)
	buf[offLoopCount] = r.LoopCount
	buf[offMeasure] = r.MeasureBursts
	buf[offCaptureMode] = r.CaptureMode
	return buf
}

// DecodeCaptureRequest parses a 45-byte capture-start command back into its
// struct form. The firmware is the production consumer; this decoder backs
// the round-trip serialisation tests.
func DecodeCaptureRequest(buf []byte) (*CaptureRequest, bool) {
	if len(buf) != CaptureRequestSize {
		return nil, false
	}
	r := &CaptureRequest{
		TriggerType:    buf[offTriggerType],
		TriggerChannel: buf[offTriggerChannel],
		TriggerFlag:    buf[offTriggerFlag],
		TriggerValue:   binary.LittleEndian.Uint16(buf[offTriggerValue:]),
		ChannelCount:   buf[offChannelCount],
		Frequency:      binary.LittleEndian.Uint32(buf[offFrequency:]),
		PreSamples:     binary.LittleEndian.Uint32(buf[offPreSamples:]),
		PostSamples:    binary.LittleEndian.Uint32(buf[offPostSamples:]),
		LoopCount:      buf[offLoopCount],
		MeasureBursts:  buf[offMeasure],
		CaptureMode:    buf[offCaptureMode],
	}
	copy(r.Channels[:], buf[offChannels:offChannels+MaxWireChannels])
	return r, true
}

// Network-configuration command layout (115 bytes): three null-padded string
// fields followed by a little-endian port.
//
//	offset  size  field
//	     0    33  access point name
//	    33    64  password
//	    97    16  IP address
//	   113     2  TCP port
const (
	NetworkConfigSize = 115

	apNameFieldSize   = 33
	passwordFieldSize = 64
	ipFieldSize       = 16

	offAPName   = 0
	offPassword = 33
	offIP       = 97
	offPort     = 113
)

// NetworkConfig mirrors the network-configuration command sent to WiFi
// capable devices.
type NetworkConfig struct {
	AccessPointName string
	Password        string
	IPAddress       string
	Port            uint16
}

// putPaddedString copies s into field, truncating so the final byte always
// remains a NUL terminator. Unused bytes stay zero.
func putPaddedString(field []byte, s string) {
	max := len(field) - 1
	if len(s) > max {
		s = s[:max]
	}
	copy(field, s)
}

// Encode serialises the configuration into its fixed 115-byte wire form.
func (c *NetworkConfig) Encode() []byte {
	buf := make([]byte, NetworkConfigSize)
	putPaddedString(buf[offAPName:offAPName+apNameFieldSize], c.AccessPointName)
	putPaddedString(buf[offPassword:offPassword+passwordFieldSize], c.Password)
	putPaddedString(buf[offIP:offIP+ipFieldSize], c.IPAddress)
	binary.LittleEndian.PutUint16(buf[offPort:], c.Port)
	return buf
}
