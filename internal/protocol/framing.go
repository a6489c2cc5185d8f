// Package protocol implements the wire format consumed by the analyzer
// firmware: a SLIP-style byte-stuffed frame around fixed-layout little-endian
// command structures. The firmware parses fields at fixed offsets, so the
// layouts here must match it byte for byte.
package protocol

import "fmt"

// Frame delimiters and the escape byte. The firmware scans the raw byte
// stream for the marker sequences to find frame boundaries, so any payload
// byte that collides with a marker or with the escape byte itself is escaped
// as ESCAPE, b^ESCAPE.
const (
	FrameStartA = 0x55
	FrameStartB = 0xAA
	FrameEndA   = 0xAA
	FrameEndB   = 0x55
	Escape      = 0xF0
)

func needsEscape(b byte) bool {
	return b == FrameStartA || b == FrameStartB || b == Escape
}

// Frame wraps payload for transmission: 0x55 0xAA, the escaped payload, then
// 0xAA 0x55. All bytes other than the two markers and the escape byte pass
// through unmodified.
func Frame(payload []byte) []byte {
	// Worst case every byte escapes, plus the four marker bytes.
	out := make([]byte, 0, len(payload)*2+4)
	out = append(out, FrameStartA, FrameStartB)
	for _, b := range payload {
		if needsEscape(b) {
			out = append(out, Escape, b^Escape)
		} else {
			out = append(out, b)
		}
	}
	out = append(out, FrameEndA, FrameEndB)
	return out
}

// Unframe reverses Frame. Production decoding happens in firmware; this is
// kept so the escaping stays provably invertible.
func Unframe(frame []byte) ([]byte, error) {
	if len(frame) < 4 {
		return nil, fmt.Errorf("frame too short: %d bytes", len(frame))
	}
	if frame[0] != FrameStartA || frame[1] != FrameStartB {
		return nil, fmt.Errorf("bad start marker: % 02x", frame[:2])
	}
	if frame[len(frame)-2] != FrameEndA || frame[len(frame)-1] != FrameEndB {
		return nil, fmt.Errorf("bad end marker: % 02x", frame[len(frame)-2:])
	}

	body := frame[2 : len(frame)-2]
	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); i++ {
		b := body[i]
		if b == Escape {
			i++
			if i >= len(body) {
				return nil, fmt.Errorf("truncated escape sequence at offset %d", i+1)
			}
			out = append(out, body[i]^Escape)
			continue
		}
		if b == FrameStartA || b == FrameStartB {
			return nil, fmt.Errorf("unescaped marker byte 0x%02x at offset %d", b, i+2)
		}
		out = append(out, b)
	}
	return out, nil
}
