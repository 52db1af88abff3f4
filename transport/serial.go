package transport

import (
	"fmt"
	"log/slog"
	"sync"

	"go.bug.st/serial"

	"github.com/tankpad/tankpad/command"
)

// Serial writes newline-terminated commands to a serial port, for a tank
// wired straight to the operator machine.
type Serial struct {
	name   string
	logger *slog.Logger

	mu   sync.Mutex
	port serial.Port
}

// OpenSerial opens name at baud, 8N1.
func OpenSerial(name string, baud int, logger *slog.Logger) (*Serial, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		StopBits: serial.OneStopBit,
		Parity:   serial.NoParity,
	}
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", name, err)
	}
	logger.Info("tank connected", "port", name, "baud", baud)
	return NewSerial(name, port, logger), nil
}

// NewSerial wraps an already open port.
func NewSerial(name string, port serial.Port, logger *slog.Logger) *Serial {
	return &Serial{name: name, port: port, logger: logger}
}

// Connected reports whether the port is still open.
func (s *Serial) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port != nil
}

// Send implements Sender.
func (s *Serial) Send(cmd command.Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return
	}
	if _, err := s.port.Write([]byte(cmd + "\n")); err != nil {
		_ = s.port.Close()
		s.port = nil
		s.logger.Info("tank disconnected", "port", s.name, "error", err)
	}
}

// Close closes the port.
func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}
