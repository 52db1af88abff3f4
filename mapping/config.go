// Package mapping translates gamepad snapshots into tank commands.
//
// A Config names, for every logical control, which snapshot index drives it
// and what it emits. Configs are data: dead zones, scales and thresholds
// are never hard-coded in the translator. A Config is validated and bound
// to its effect callbacks once at startup; after that it is immutable.
package mapping

import (
	"errors"
	"fmt"
	"math"

	"github.com/tankpad/tankpad/command"
	"github.com/tankpad/tankpad/gamepad"
)

// AxisBinding turns one axis into a command with a single numeric argument.
type AxisBinding struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	// Index is the standard axis index.
	Index int `json:"index" yaml:"index" toml:"index"`
	// DeadZone is the largest absolute value that still counts as centered.
	DeadZone float64 `json:"deadZone" yaml:"deadZone" toml:"deadZone"`
	// Scale multiplies the axis value before rounding.
	Scale float64 `json:"scale" yaml:"scale" toml:"scale"`
	// Invert flips the sign, e.g. so that stick-up is positive.
	Invert  bool   `json:"invert,omitempty" yaml:"invert,omitempty" toml:"invert,omitempty"`
	Command string `json:"command" yaml:"command" toml:"command"`
}

// ButtonBinding emits a command and/or runs a local effect while a button
// is held.
type ButtonBinding struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	// Index is the standard button index.
	Index int `json:"index" yaml:"index" toml:"index"`
	// Threshold, when non-zero, compares the analog value instead of the
	// pressed flag.
	Threshold float64 `json:"threshold,omitempty" yaml:"threshold,omitempty" toml:"threshold,omitempty"`
	Command   string  `json:"command,omitempty" yaml:"command,omitempty" toml:"command,omitempty"`
	Effect    string  `json:"effect,omitempty" yaml:"effect,omitempty" toml:"effect,omitempty"`
}

// Config is the full control mapping.
type Config struct {
	Axes    []AxisBinding   `json:"axes" yaml:"axes" toml:"axes"`
	Buttons []ButtonBinding `json:"buttons" yaml:"buttons" toml:"buttons"`
}

// Scaled converts an axis value into the command argument.
func (b AxisBinding) Scaled(v float64) int {
	if b.Invert {
		v = -v
	}
	return int(math.Round(v * b.Scale))
}

// Active reports whether v lies strictly outside the dead zone.
func (b AxisBinding) Active(v float64) bool {
	return math.Abs(v) > b.DeadZone
}

// Held reports whether the binding's condition holds for btn.
func (b ButtonBinding) Held(btn gamepad.Button) bool {
	if b.Threshold > 0 {
		return btn.Value >= b.Threshold
	}
	return btn.Pressed
}

// Validate checks the config against the standard layout. An invalid
// config is a programming error and should stop the program at startup.
func (c *Config) Validate() error {
	var errs []error
	for i, a := range c.Axes {
		where := fmt.Sprintf("axes[%d] %q", i, a.Name)
		if a.Index < 0 || a.Index >= gamepad.StandardAxes {
			errs = append(errs, fmt.Errorf("%s: index %d out of range [0,%d)", where, a.Index, gamepad.StandardAxes))
		}
		if !(a.DeadZone >= 0 && a.DeadZone < 1) {
			errs = append(errs, fmt.Errorf("%s: dead zone %v out of range [0,1)", where, a.DeadZone))
		}
		if a.Scale == 0 || !finite(a.Scale) {
			errs = append(errs, fmt.Errorf("%s: scale must be finite and non-zero, got %v", where, a.Scale))
		}
		if a.Command == "" {
			errs = append(errs, fmt.Errorf("%s: command is empty", where))
		}
	}
	for i, b := range c.Buttons {
		where := fmt.Sprintf("buttons[%d] %q", i, b.Name)
		if b.Index < 0 || b.Index >= gamepad.StandardButtons {
			errs = append(errs, fmt.Errorf("%s: index %d out of range [0,%d)", where, b.Index, gamepad.StandardButtons))
		}
		if !(b.Threshold >= 0 && b.Threshold <= 1) {
			errs = append(errs, fmt.Errorf("%s: threshold %v out of range [0,1]", where, b.Threshold))
		}
		if b.Command == "" && b.Effect == "" {
			errs = append(errs, fmt.Errorf("%s: needs a command or an effect", where))
		}
	}
	return errors.Join(errs...)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// DefaultConfig is the stock tank-drive mapping: each stick's vertical axis
// drives one track, face buttons and the d-pad drive the LEDs, the MP3
// player and the arm, Back/Start drive the local panel.
func DefaultConfig() *Config {
	servo := func(token, name string) string { return string(command.Servo(token, name)) }
	return &Config{
		Axes: []AxisBinding{
			{Name: "left track", Index: gamepad.AxisLeftY, DeadZone: 0.15, Scale: 100, Invert: true, Command: command.LeftTrack},
			{Name: "right track", Index: gamepad.AxisRightY, DeadZone: 0.15, Scale: 100, Invert: true, Command: command.RightTrack},
		},
		Buttons: []ButtonBinding{
			{Name: "gripper stop", Index: gamepad.ButtonA, Command: servo(command.ServoStop, command.ServoGripper)},
			{Name: "music stop", Index: gamepad.ButtonB, Command: command.MP3Stop},
			{Name: "lights off", Index: gamepad.ButtonX, Command: command.LEDOff},
			{Name: "lights on", Index: gamepad.ButtonY, Command: command.LEDOn},
			{Name: "gripper close", Index: gamepad.ButtonLeftBumper, Command: servo(command.ServoMinus, command.ServoGripper)},
			{Name: "gripper open", Index: gamepad.ButtonRightBumper, Command: servo(command.ServoPlus, command.ServoGripper)},
			{Name: "shoulder up", Index: gamepad.ButtonDPadUp, Command: servo(command.ServoPlus, command.ServoShoulder)},
			{Name: "shoulder down", Index: gamepad.ButtonDPadDown, Command: servo(command.ServoMinus, command.ServoShoulder)},
			{Name: "base left", Index: gamepad.ButtonDPadLeft, Command: servo(command.ServoMinus, command.ServoBase)},
			{Name: "base right", Index: gamepad.ButtonDPadRight, Command: servo(command.ServoPlus, command.ServoBase)},
			{Name: "play", Index: gamepad.ButtonRightTrigger, Threshold: 0.5, Command: string(command.New(command.MP3Play, 1))},
			{Name: "close dialogs", Index: gamepad.ButtonBack, Effect: "closeDialogs"},
			{Name: "open sidebar", Index: gamepad.ButtonStart, Effect: "openSidebar"},
		},
	}
}
