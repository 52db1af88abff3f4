package gamepad

import (
	"fmt"
	"sort"
)

// Layout maps raw driver indices onto the standard layout.
type Layout struct {
	// Axes maps raw axis -> standard axis.
	Axes map[int]int
	// Buttons maps raw button bit -> standard button.
	Buttons map[int]int
	// Triggers maps raw axis -> standard analog button. The raw axis rests
	// at -1 and reaches 1 when fully pulled.
	Triggers map[int]int
	// HatX and HatY are the raw d-pad axes, -1 when the pad has none.
	HatX, HatY int
}

// XPad is the Linux xpad driver layout (Xbox 360/One pads and clones).
var XPad = Layout{
	Axes: map[int]int{
		0: AxisLeftX,
		1: AxisLeftY,
		3: AxisRightX,
		4: AxisRightY,
	},
	Triggers: map[int]int{
		2: ButtonLeftTrigger,
		5: ButtonRightTrigger,
	},
	Buttons: map[int]int{
		0:  ButtonA,
		1:  ButtonB,
		2:  ButtonX,
		3:  ButtonY,
		4:  ButtonLeftBumper,
		5:  ButtonRightBumper,
		6:  ButtonBack,
		7:  ButtonStart,
		8:  ButtonGuide,
		9:  ButtonLeftStick,
		10: ButtonRightStick,
	},
	HatX: 6,
	HatY: 7,
}

// DS4 is the Linux hid-sony layout for DualShock 4 pads.
var DS4 = Layout{
	Axes: map[int]int{
		0: AxisLeftX,
		1: AxisLeftY,
		3: AxisRightX,
		4: AxisRightY,
	},
	Triggers: map[int]int{
		2: ButtonLeftTrigger,
		5: ButtonRightTrigger,
	},
	Buttons: map[int]int{
		0:  ButtonA, // cross
		1:  ButtonB, // circle
		2:  ButtonY, // triangle
		3:  ButtonX, // square
		4:  ButtonLeftBumper,
		5:  ButtonRightBumper,
		8:  ButtonBack,  // share
		9:  ButtonStart, // options
		10: ButtonGuide,
		11: ButtonLeftStick,
		12: ButtonRightStick,
	},
	HatX: 6,
	HatY: 7,
}

// Layouts lists the layouts selectable by name.
var Layouts = map[string]Layout{
	"xpad": XPad,
	"ds4":  DS4,
}

// LayoutNames returns the selectable layout names, sorted.
func LayoutNames() []string {
	names := make([]string, 0, len(Layouts))
	for n := range Layouts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LookupLayout returns the named layout.
func LookupLayout(name string) (Layout, error) {
	l, ok := Layouts[name]
	if !ok {
		return Layout{}, fmt.Errorf("unknown gamepad layout %q (known: %v)", name, LayoutNames())
	}
	return l, nil
}

// rawMax is the magnitude of a full axis deflection reported by the driver.
const rawMax = 32767

func normalizeAxis(raw int) float64 {
	v := float64(raw) / rawMax
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func digital(pressed bool) Button {
	if pressed {
		return Button{Pressed: true, Value: 1}
	}
	return Button{}
}

// Apply converts raw axis values and a button bitmask into a standard
// snapshot. Raw indices missing from the layout are ignored.
func (l Layout) Apply(axes []int, buttons uint32) *Snapshot {
	s := NewSnapshot()
	for raw, std := range l.Axes {
		if raw < len(axes) {
			s.Axes[std] = normalizeAxis(axes[raw])
		}
	}
	for raw, std := range l.Triggers {
		if raw < len(axes) {
			v := (normalizeAxis(axes[raw]) + 1) / 2
			s.Buttons[std] = Button{Pressed: v > 0.5, Value: v}
		}
	}
	for raw, std := range l.Buttons {
		s.Buttons[std] = digital(buttons&(1<<uint(raw)) != 0)
	}
	if l.HatX >= 0 && l.HatX < len(axes) {
		x := axes[l.HatX]
		s.Buttons[ButtonDPadLeft] = digital(x < 0)
		s.Buttons[ButtonDPadRight] = digital(x > 0)
	}
	if l.HatY >= 0 && l.HatY < len(axes) {
		y := axes[l.HatY]
		s.Buttons[ButtonDPadUp] = digital(y < 0)
		s.Buttons[ButtonDPadDown] = digital(y > 0)
	}
	return s
}
