package transport

import (
	"fmt"
	"net"
	"time"
)

// DefaultDialTimeout bounds how long a network-attached device may take to
// accept the command connection.
const DefaultDialTimeout = 5 * time.Second

// OpenTCP connects to a network-attached device at addr (host:port). timeout
// of 0 selects the default.
func OpenTCP(addr string, timeout time.Duration) (DevicePort, error) {
	if timeout == 0 {
		timeout = DefaultDialTimeout
	}
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to device at %s: %w", addr, err)
	}
	return conn, nil
}
