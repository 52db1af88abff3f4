package panel_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tankpad/tankpad/command"
	"github.com/tankpad/tankpad/panel"
	"github.com/tankpad/tankpad/transport"
)

func newPanel() (*panel.Panel, *transport.Recorder) {
	rec := &transport.Recorder{}
	return panel.New(rec, slog.Default()), rec
}

func assertAllHidden(t *testing.T, p *panel.Panel) {
	t.Helper()
	for _, d := range panel.Dialogs {
		assert.False(t, p.DialogVisible(d), "dialog %s", d)
	}
	assert.False(t, p.ModalVisible())
}

func TestInitialState(t *testing.T) {
	p, rec := newPanel()
	assertAllHidden(t, p)
	assert.False(t, p.SidebarOpen())
	assert.Equal(t, "#ff0000", p.Color())

	st := p.State()
	assert.Len(t, st.Dialogs, 5)
	assert.Len(t, st.Dropdowns, 4)
	assert.Equal(t, "100 [ms]", st.Sliders[panel.WidgetInterval].Label)
	assert.Equal(t, "50", st.Sliders[panel.WidgetSpeed].Label)
	assert.Empty(t, rec.Sent())
}

func TestOpenColorPickerDialog(t *testing.T) {
	p, _ := newPanel()
	p.OpenColorPickerDialog()
	assert.True(t, p.DialogVisible(panel.DialogColor))
	assert.True(t, p.ModalVisible())
	assert.False(t, p.DialogVisible(panel.DialogSpeed))
}

func TestCloseDialogs(t *testing.T) {
	opens := map[string]func(p *panel.Panel){
		panel.DialogColor:      (*panel.Panel).OpenColorPickerDialog,
		panel.DialogSpeed:      (*panel.Panel).OpenSpeedDialog,
		panel.DialogVolume:     (*panel.Panel).OpenVolumeDialog,
		panel.DialogBrightness: (*panel.Panel).OpenBrightnessDialog,
		panel.DialogInterval:   (*panel.Panel).OpenIntervalDialog,
	}

	tests := []struct {
		name string
		open []string
	}{
		{name: "nothing open"},
		{name: "one open", open: []string{panel.DialogVolume}},
		{name: "two open", open: []string{panel.DialogSpeed, panel.DialogInterval}},
		{name: "all open", open: panel.Dialogs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newPanel()
			for _, d := range tt.open {
				opens[d](p)
			}
			for _, d := range tt.open {
				assert.True(t, p.DialogVisible(d))
			}
			p.CloseDialogs()
			assertAllHidden(t, p)

			// toggles indefinitely
			p.OpenBrightnessDialog()
			assert.True(t, p.DialogVisible(panel.DialogBrightness))
			p.CloseDialogs()
			assertAllHidden(t, p)
		})
	}
}

func TestOpenUnknownDialog(t *testing.T) {
	p, _ := newPanel()
	err := p.OpenDialog("settings")
	assert.ErrorIs(t, err, panel.ErrUnknownDialog)
	assert.False(t, p.ModalVisible())
}

func TestSidebar(t *testing.T) {
	p, _ := newPanel()
	p.OpenSidebar()
	assert.True(t, p.SidebarOpen())

	assert.False(t, p.CloseSidebar("sidebar"))
	assert.True(t, p.SidebarOpen())

	assert.True(t, p.CloseSidebar(panel.TargetWelcomeTitle))
	assert.False(t, p.SidebarOpen())

	p.OpenSidebar()
	assert.True(t, p.CloseSidebar(panel.TargetGamepadImage))
	assert.False(t, p.SidebarOpen())
}

func TestToggleDropdown(t *testing.T) {
	p, _ := newPanel()
	open, err := p.ToggleDropdown(panel.DropdownLED)
	require.NoError(t, err)
	assert.True(t, open)
	assert.True(t, p.State().Dropdowns[panel.DropdownLED])

	open, err = p.ToggleDropdown(panel.DropdownLED)
	require.NoError(t, err)
	assert.False(t, open)

	_, err = p.ToggleDropdown("camera")
	assert.ErrorIs(t, err, panel.ErrUnknownDropdown)
}

func TestSliders(t *testing.T) {
	tests := []struct {
		name      string
		widget    string
		value     string
		wantValue int
		wantLabel string
		wantErr   error
	}{
		{name: "speed in range", widget: panel.WidgetSpeed, value: "75", wantValue: 75, wantLabel: "75"},
		{name: "speed clamps high", widget: panel.WidgetSpeed, value: "180", wantValue: 100, wantLabel: "100"},
		{name: "volume clamps low", widget: panel.WidgetVolume, value: "-3", wantValue: 0, wantLabel: "0"},
		{name: "brightness", widget: panel.WidgetBrightness, value: " 255 ", wantValue: 255, wantLabel: "255"},
		{name: "interval label unit", widget: panel.WidgetInterval, value: "250", wantValue: 250, wantLabel: "250 [ms]"},
		{name: "interval clamps low", widget: panel.WidgetInterval, value: "1", wantValue: 10, wantLabel: "10 [ms]"},
		{name: "not a number", widget: panel.WidgetSpeed, value: "fast", wantErr: panel.ErrInvalidValue},
		{name: "unknown widget", widget: "throttle", value: "1", wantErr: panel.ErrUnknownWidget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newPanel()
			err := p.SetWidget(tt.widget, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			s, err := p.Slider(tt.widget)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, s.Value)
			assert.Equal(t, tt.wantLabel, s.Label)
		})
	}
}

func TestSendColor(t *testing.T) {
	p, rec := newPanel()
	require.NoError(t, p.SetWidget(panel.WidgetColor, "#FF0080"))
	assert.Equal(t, "#ff0080", p.Color())

	p.SendColor()
	assert.Equal(t, []command.Command{"LED_COLOR 255 0 128"}, rec.Sent())

	err := p.SetColor("#12345")
	assert.ErrorIs(t, err, panel.ErrInvalidValue)
	assert.Equal(t, "#ff0080", p.Color())
}

func TestSendWidgets(t *testing.T) {
	p, rec := newPanel()
	_, _ = p.SetSlider(panel.WidgetSpeed, 40)
	_, _ = p.SetSlider(panel.WidgetVolume, 20)
	_, _ = p.SetSlider(panel.WidgetBrightness, 99)
	_, _ = p.SetSlider(panel.WidgetInterval, 500)

	p.SendSpeed()
	p.SendVolume()
	p.SendBrightness()
	p.SendInterval()
	p.SendRaw(command.New(command.Stop))

	assert.Equal(t, []command.Command{
		"SPEED 40",
		"MP3_VOLUME 20",
		"LED_BRIGHTNESS 99",
		"LED_INTERVAL 500",
		"STOP",
	}, rec.Sent())

	_, err := p.Send("horn")
	assert.ErrorIs(t, err, panel.ErrUnknownWidget)
	assert.Len(t, rec.Sent(), 5)
}

func TestEffects(t *testing.T) {
	p, rec := newPanel()
	effects := p.Effects()

	effects["openSidebar"]()
	assert.True(t, p.SidebarOpen())
	effects["closeSidebar"]()
	assert.False(t, p.SidebarOpen())

	effects["openColorPicker"]()
	effects["openIntervalDialog"]()
	assert.True(t, p.DialogVisible(panel.DialogColor))
	assert.True(t, p.DialogVisible(panel.DialogInterval))
	effects["closeDialogs"]()
	assertAllHidden(t, p)

	assert.Empty(t, rec.Sent())
}
