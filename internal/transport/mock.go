package transport

import "fmt"

// MockPort is an in-memory DevicePort for tests: it records everything
// written and can be primed to fail.
type MockPort struct {
	Written      []byte
	ReadBuf      []byte
	ErrorMessage string
	ShortWrite   bool
	Closed       bool
}

func (m *MockPort) Write(p []byte) (int, error) {
	if m.ErrorMessage != "" {
		return 0, fmt.Errorf("error %q", m.ErrorMessage)
	}
	if m.ShortWrite {
		n := len(p) / 2
		m.Written = append(m.Written, p[:n]...)
		return n, nil
	}
	m.Written = append(m.Written, p...)
	return len(p), nil
}

func (m *MockPort) Read(p []byte) (int, error) {
	if m.ErrorMessage != "" {
		return 0, fmt.Errorf("error %q", m.ErrorMessage)
	}
	n := copy(p, m.ReadBuf)
	m.ReadBuf = m.ReadBuf[n:]
	return n, nil
}

func (m *MockPort) Close() error {
	m.Closed = true
	return nil
}
