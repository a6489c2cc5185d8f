// Package transport delivers framed commands to an analyzer device over a
// byte-oriented link. It is the thin collaborator the capture engine hands
// its composed bytes to: open a port (serial or TCP), frame, write, close.
// Nothing here interprets command contents.
package transport

import (
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/seabright/logicport/internal/protocol"
)

var ErrWriteFailed = fmt.Errorf("failed to write to device port")

// DevicePort is the minimal interface a command link must satisfy. The
// abstraction enables unit testing without real hardware.
type DevicePort interface {
	io.ReadWriter
	io.Closer
}

// Sender frames command payloads and writes them to a device port. Sends are
// not synchronised; callers issuing commands from multiple goroutines must
// serialise access.
type Sender struct {
	port DevicePort
}

// NewSender wraps an open device port.
func NewSender(port DevicePort) *Sender {
	return &Sender{port: port}
}

// Send frames payload and writes the complete frame to the port. Each send
// gets a request ID so log lines of a session can be correlated.
func (s *Sender) Send(payload []byte) error {
	requestID := uuid.NewString()
	frame := protocol.Frame(payload)

	n, err := s.port.Write(frame)
	if err != nil {
		return fmt.Errorf("%w: request %s: %v", ErrWriteFailed, requestID, err)
	}
	if n != len(frame) {
		return fmt.Errorf("%w: request %s: short write %d of %d bytes", ErrWriteFailed, requestID, n, len(frame))
	}

	log.Printf("sent command: request=%s payload=%d bytes frame=%d bytes", requestID, len(payload), len(frame))
	return nil
}

// Close closes the underlying port.
func (s *Sender) Close() error {
	return s.port.Close()
}
