// Package panel is the operator control panel: dialogs, sliders, a color
// picker, a sidebar and dropdown menus. Discrete operator actions change
// widget state or build one command and hand it to a transport.Sender.
//
// Dialogs are independent: opening one never closes another. CloseDialogs
// hides all of them and the modal at once.
package panel

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/tankpad/tankpad/apitypes"
	"github.com/tankpad/tankpad/command"
	"github.com/tankpad/tankpad/transport"
)

// Dialog names.
const (
	DialogColor      = "color"
	DialogSpeed      = "speed"
	DialogVolume     = "volume"
	DialogBrightness = "brightness"
	DialogInterval   = "interval"
)

// Dialogs lists every dialog.
var Dialogs = []string{DialogColor, DialogSpeed, DialogVolume, DialogBrightness, DialogInterval}

// Widget names. Sliders share their dialog's name.
const (
	WidgetColor      = "color"
	WidgetSpeed      = "speed"
	WidgetVolume     = "volume"
	WidgetBrightness = "brightness"
	WidgetInterval   = "interval"
)

// Dropdown names.
const (
	DropdownEngines = "engines"
	DropdownLED     = "led"
	DropdownMP3     = "mp3"
	DropdownArm     = "arm"
)

// Dropdowns lists every sidebar dropdown.
var Dropdowns = []string{DropdownEngines, DropdownLED, DropdownMP3, DropdownArm}

// Click targets that close the sidebar.
const (
	TargetGamepadImage = "gamepad-image"
	TargetWelcomeTitle = "welcome-title"
)

const intervalUnit = " [ms]"

var (
	ErrUnknownDialog   = errors.New("unknown dialog")
	ErrUnknownWidget   = errors.New("unknown widget")
	ErrUnknownDropdown = errors.New("unknown dropdown")
	ErrInvalidValue    = errors.New("invalid value")
)

type slider struct {
	min, max, value int
	unit            string
}

func (s *slider) set(v int) {
	s.value = min(max(v, s.min), s.max)
}

func (s *slider) label() string {
	return strconv.Itoa(s.value) + s.unit
}

// Panel holds widget state. All methods are safe for concurrent use; each
// runs to completion before the next one starts.
type Panel struct {
	sender transport.Sender
	logger *slog.Logger

	mu        sync.Mutex
	dialogs   map[string]bool
	modal     bool
	sidebar   bool
	dropdowns map[string]bool
	sliders   map[string]*slider
	color     string
}

// New returns a panel with every dialog hidden, the sidebar closed and
// widgets at their defaults.
func New(sender transport.Sender, logger *slog.Logger) *Panel {
	p := &Panel{
		sender:    sender,
		logger:    logger,
		dialogs:   make(map[string]bool, len(Dialogs)),
		dropdowns: make(map[string]bool, len(Dropdowns)),
		sliders: map[string]*slider{
			WidgetSpeed:      {min: 0, max: 100, value: 50},
			WidgetVolume:     {min: 0, max: 30, value: 15},
			WidgetBrightness: {min: 0, max: 255, value: 128},
			WidgetInterval:   {min: 10, max: 1000, value: 100, unit: intervalUnit},
		},
		color: "#ff0000",
	}
	for _, d := range Dialogs {
		p.dialogs[d] = false
	}
	for _, d := range Dropdowns {
		p.dropdowns[d] = false
	}
	return p
}

// OpenDialog shows dialog name and the modal behind it.
func (p *Panel) OpenDialog(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.dialogs[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDialog, name)
	}
	p.logger.Debug("opening dialog", "dialog", name)
	p.dialogs[name] = true
	p.modal = true
	return nil
}

func (p *Panel) OpenColorPickerDialog() { _ = p.OpenDialog(DialogColor) }
func (p *Panel) OpenSpeedDialog()       { _ = p.OpenDialog(DialogSpeed) }
func (p *Panel) OpenVolumeDialog()      { _ = p.OpenDialog(DialogVolume) }
func (p *Panel) OpenBrightnessDialog()  { _ = p.OpenDialog(DialogBrightness) }
func (p *Panel) OpenIntervalDialog()    { _ = p.OpenDialog(DialogInterval) }

// CloseDialogs hides every dialog and the modal.
func (p *Panel) CloseDialogs() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger.Debug("closing all dialogs")
	p.modal = false
	for d := range p.dialogs {
		p.dialogs[d] = false
	}
}

// DialogVisible reports whether dialog name is visible.
func (p *Panel) DialogVisible(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dialogs[name]
}

// ModalVisible reports whether the modal backdrop is visible.
func (p *Panel) ModalVisible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.modal
}

// OpenSidebar shows the sidebar.
func (p *Panel) OpenSidebar() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger.Debug("opening sidebar")
	p.sidebar = true
}

// CloseSidebar hides the sidebar when the click landed on the gamepad image
// or the welcome title; clicks elsewhere are ignored. It reports whether
// the sidebar was closed.
func (p *Panel) CloseSidebar(target string) bool {
	if target != TargetGamepadImage && target != TargetWelcomeTitle {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger.Debug("closing sidebar", "target", target)
	p.sidebar = false
	return true
}

// SidebarOpen reports whether the sidebar is shown.
func (p *Panel) SidebarOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sidebar
}

// ToggleDropdown expands or collapses a sidebar dropdown and returns its new
// state.
func (p *Panel) ToggleDropdown(name string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	open, ok := p.dropdowns[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownDropdown, name)
	}
	p.dropdowns[name] = !open
	return !open, nil
}

// SetSlider moves a slider, clamping to its bounds, and returns the stored
// value.
func (p *Panel) SetSlider(name string, v int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sliders[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWidget, name)
	}
	s.set(v)
	return s.value, nil
}

// Slider returns a slider's bounds, value and label.
func (p *Panel) Slider(name string) (apitypes.Slider, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sliders[name]
	if !ok {
		return apitypes.Slider{}, fmt.Errorf("%w: %q", ErrUnknownWidget, name)
	}
	return apitypes.Slider{Min: s.min, Max: s.max, Value: s.value, Label: s.label()}, nil
}

// SetColor stores a "#rrggbb" value in the color picker.
func (p *Panel) SetColor(hex string) error {
	r, g, b, err := command.ParseHexColor(hex)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	p.mu.Lock()
	p.color = command.FormatHexColor(r, g, b)
	p.mu.Unlock()
	return nil
}

// Color returns the color picker value.
func (p *Panel) Color() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.color
}

// SetWidget sets any widget from its textual value.
func (p *Panel) SetWidget(name, value string) error {
	if name == WidgetColor {
		return p.SetColor(value)
	}
	if !p.hasSlider(name) {
		return fmt.Errorf("%w: %q", ErrUnknownWidget, name)
	}
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, value)
	}
	_, err = p.SetSlider(name, v)
	return err
}

func (p *Panel) hasSlider(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.sliders[name]
	return ok
}

// State returns a snapshot of every widget.
func (p *Panel) State() apitypes.PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	st := apitypes.PanelState{
		Dialogs:      make(map[string]bool, len(p.dialogs)),
		ModalVisible: p.modal,
		SidebarOpen:  p.sidebar,
		Dropdowns:    make(map[string]bool, len(p.dropdowns)),
		Sliders:      make(map[string]apitypes.Slider, len(p.sliders)),
		Color:        p.color,
	}
	for k, v := range p.dialogs {
		st.Dialogs[k] = v
	}
	for k, v := range p.dropdowns {
		st.Dropdowns[k] = v
	}
	for k, s := range p.sliders {
		st.Sliders[k] = apitypes.Slider{Min: s.min, Max: s.max, Value: s.value, Label: s.label()}
	}
	return st
}

// Effects returns the panel actions that gamepad bindings may reference by
// name.
func (p *Panel) Effects() map[string]func() {
	return map[string]func(){
		"openSidebar":          p.OpenSidebar,
		"closeSidebar":         func() { p.CloseSidebar(TargetGamepadImage) },
		"closeDialogs":         p.CloseDialogs,
		"openColorPicker":      p.OpenColorPickerDialog,
		"openSpeedDialog":      p.OpenSpeedDialog,
		"openVolumeDialog":     p.OpenVolumeDialog,
		"openBrightnessDialog": p.OpenBrightnessDialog,
		"openIntervalDialog":   p.OpenIntervalDialog,
	}
}
