package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tankpad/tankpad/command"
)

func TestColor(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		want    command.Command
		wantErr bool
	}{
		{name: "mixed channels", hex: "#FF0080", want: "LED_COLOR 255 0 128"},
		{name: "lower case", hex: "#0a0b0c", want: "LED_COLOR 10 11 12"},
		{name: "without hash", hex: "00ff00", want: "LED_COLOR 0 255 0"},
		{name: "black", hex: "#000000", want: "LED_COLOR 0 0 0"},
		{name: "too short", hex: "#fff", wantErr: true},
		{name: "not hex", hex: "#gg0000", wantErr: true},
		{name: "empty", hex: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := command.Color(tt.hex)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatHexColor(t *testing.T) {
	assert.Equal(t, "#ff0080", command.FormatHexColor(255, 0, 128))
	r, g, b, err := command.ParseHexColor(command.FormatHexColor(1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 2, 3}, []uint8{r, g, b})
}

func TestBuilders(t *testing.T) {
	assert.Equal(t, command.Command("SPEED 40"), command.Speed(40))
	assert.Equal(t, command.Command("MP3_VOLUME 12"), command.Volume(12))
	assert.Equal(t, command.Command("LED_BRIGHTNESS 200"), command.Brightness(200))
	assert.Equal(t, command.Command("LED_INTERVAL 250"), command.AnimationInterval(250))
	assert.Equal(t, command.Command("SERVO_PLUS gripper"), command.Servo(command.ServoPlus, command.ServoGripper))
	assert.Equal(t, command.Command("LEFT_TRACK -35"), command.New(command.LeftTrack, -35))
	assert.Equal(t, command.Command("STOP"), command.New(command.Stop))
}

func TestTokenArgs(t *testing.T) {
	c := command.RGB(255, 0, 128)
	assert.Equal(t, "LED_COLOR", c.Token())
	assert.Equal(t, []string{"255", "0", "128"}, c.Args())

	stop := command.New(command.Stop)
	assert.Equal(t, "STOP", stop.Token())
	assert.Nil(t, stop.Args())
}
