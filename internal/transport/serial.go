package transport

import (
	"fmt"

	"go.bug.st/serial"
)

// DefaultBaudRate is the rate analyzer firmwares enumerate at over USB CDC.
const DefaultBaudRate = 115200

// OpenSerial opens the serial device at path as a command port. baudRate
// of 0 selects the default.
func OpenSerial(path string, baudRate int) (DevicePort, error) {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", path, err)
	}
	return port, nil
}
