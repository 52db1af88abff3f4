// Package gamepad samples a locally attached gamepad into point-in-time
// snapshots laid out like the browser "standard" gamepad mapping.
package gamepad

// Standard axis indices.
const (
	AxisLeftX = iota
	AxisLeftY
	AxisRightX
	AxisRightY

	StandardAxes
)

// Standard button indices.
const (
	ButtonA = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonLeftBumper
	ButtonRightBumper
	ButtonLeftTrigger
	ButtonRightTrigger
	ButtonBack
	ButtonStart
	ButtonLeftStick
	ButtonRightStick
	ButtonDPadUp
	ButtonDPadDown
	ButtonDPadLeft
	ButtonDPadRight
	ButtonGuide

	StandardButtons
)

// Button is the state of one digital or analog button.
// Value is in [0, 1]; digital buttons report 0 or 1.
type Button struct {
	Pressed bool    `json:"pressed"`
	Value   float64 `json:"value"`
}

// Snapshot is one read of a gamepad. Axes are in [-1, 1].
// A snapshot produced by a Sampler always holds at least StandardAxes axes
// and StandardButtons buttons.
type Snapshot struct {
	Axes    []float64 `json:"axes"`
	Buttons []Button  `json:"buttons"`
}

// NewSnapshot returns a neutral snapshot with the standard layout.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Axes:    make([]float64, StandardAxes),
		Buttons: make([]Button, StandardButtons),
	}
}

// Press marks button i as fully pressed. It returns s for chaining.
func (s *Snapshot) Press(i int) *Snapshot {
	s.Buttons[i] = Button{Pressed: true, Value: 1}
	return s
}

// SetAxis sets axis i to v. It returns s for chaining.
func (s *Snapshot) SetAxis(i int, v float64) *Snapshot {
	s.Axes[i] = v
	return s
}

// WellFormed reports whether s carries the full standard layout.
func (s *Snapshot) WellFormed() bool {
	return s != nil && len(s.Axes) >= StandardAxes && len(s.Buttons) >= StandardButtons
}

// Sampler reads the current gamepad state. Sample returns false when no
// gamepad is available; that is an expected steady state, not an error.
type Sampler interface {
	Sample() (*Snapshot, bool)
	Close() error
}

// StaticSampler always returns the same snapshot, or nothing when Snapshot
// is nil.
type StaticSampler struct {
	Snapshot *Snapshot
}

func (s *StaticSampler) Sample() (*Snapshot, bool) {
	if s.Snapshot == nil {
		return nil, false
	}
	return s.Snapshot, true
}

func (s *StaticSampler) Close() error { return nil }
