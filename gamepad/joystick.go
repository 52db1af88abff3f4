package gamepad

import (
	"log/slog"
	"sync"

	"github.com/0xcafed00d/joystick"
)

// Opener opens joystick number id.
type Opener func(id int) (joystick.Joystick, error)

// JoystickSampler samples a system joystick device. The device is opened
// lazily and dropped on the first read error, so a pad can be unplugged and
// plugged back in without restarting.
type JoystickSampler struct {
	id     int
	layout Layout
	open   Opener
	logger *slog.Logger

	mu sync.Mutex
	js joystick.Joystick
}

// JoystickOption configures a JoystickSampler.
type JoystickOption func(*JoystickSampler)

// WithOpener replaces joystick.Open, mainly for tests.
func WithOpener(open Opener) JoystickOption {
	return func(s *JoystickSampler) { s.open = open }
}

// WithLogger sets the logger for device details. Presence transitions are
// reported by the caller, not here.
func WithLogger(logger *slog.Logger) JoystickOption {
	return func(s *JoystickSampler) { s.logger = logger }
}

// NewJoystickSampler returns a sampler for joystick number id.
func NewJoystickSampler(id int, layout Layout, opts ...JoystickOption) *JoystickSampler {
	s := &JoystickSampler{
		id:     id,
		layout: layout,
		open:   joystick.Open,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Sample implements Sampler.
func (s *JoystickSampler) Sample() (*Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.js == nil {
		js, err := s.open(s.id)
		if err != nil {
			return nil, false
		}
		s.logger.Debug("joystick opened", "id", s.id, "name", js.Name(), "axes", js.AxisCount(), "buttons", js.ButtonCount())
		s.js = js
	}

	state, err := s.js.Read()
	if err != nil {
		s.logger.Debug("joystick read failed, closing", "id", s.id, "error", err)
		s.js.Close()
		s.js = nil
		return nil, false
	}
	return s.layout.Apply(state.AxisData, state.Buttons), true
}

// Connected reports whether a device handle is currently open.
func (s *JoystickSampler) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.js != nil
}

// Close releases the device handle, if any.
func (s *JoystickSampler) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.js != nil {
		s.js.Close()
		s.js = nil
	}
	return nil
}
