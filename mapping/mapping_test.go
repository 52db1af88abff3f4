package mapping_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tankpad/tankpad/command"
	"github.com/tankpad/tankpad/gamepad"
	"github.com/tankpad/tankpad/mapping"
)

func noopEffects() map[string]func() {
	return map[string]func(){
		"closeDialogs": func() {},
		"openSidebar":  func() {},
	}
}

func bindDefault(t *testing.T) *mapping.Bound {
	t.Helper()
	b, err := mapping.DefaultConfig().Bind(noopEffects())
	require.NoError(t, err)
	return b
}

func referencing(msgs []command.Command, token string) []command.Command {
	var out []command.Command
	for _, m := range msgs {
		if m.Token() == token {
			out = append(out, m)
		}
	}
	return out
}

func TestTranslateDeadZone(t *testing.T) {
	b := bindDefault(t)

	tests := []struct {
		name string
		v    float64
		want []command.Command
	}{
		{name: "centered", v: 0},
		{name: "inside", v: 0.1},
		{name: "edge positive is inclusive", v: 0.15},
		{name: "edge negative is inclusive", v: -0.15},
		{name: "just outside", v: -0.16, want: []command.Command{"LEFT_TRACK 16"}},
		{name: "full up", v: -1, want: []command.Command{"LEFT_TRACK 100"}},
		{name: "full down", v: 1, want: []command.Command{"LEFT_TRACK -100"}},
		{name: "half down", v: 0.5, want: []command.Command{"LEFT_TRACK -50"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := gamepad.NewSnapshot().SetAxis(gamepad.AxisLeftY, tt.v)
			msgs, effects := mapping.Translate(s, b)
			assert.Equal(t, tt.want, referencing(msgs, command.LeftTrack))
			assert.Empty(t, referencing(msgs, command.RightTrack))
			assert.Empty(t, effects)
		})
	}
}

func TestTranslateNeutral(t *testing.T) {
	msgs, effects := mapping.Translate(gamepad.NewSnapshot(), bindDefault(t))
	assert.Empty(t, msgs)
	assert.Empty(t, effects)
}

func TestTranslateOrder(t *testing.T) {
	b := bindDefault(t)
	s := gamepad.NewSnapshot().
		SetAxis(gamepad.AxisLeftY, -1).
		SetAxis(gamepad.AxisRightY, 1).
		Press(gamepad.ButtonY).
		Press(gamepad.ButtonLeftBumper).
		Press(gamepad.ButtonBack).
		Press(gamepad.ButtonStart)

	msgs, effects := mapping.Translate(s, b)
	assert.Equal(t, []command.Command{
		"LEFT_TRACK 100",
		"RIGHT_TRACK -100",
		"LED_ON",
		"SERVO_MINUS gripper",
	}, msgs)

	require.Len(t, effects, 2)
	assert.Equal(t, "closeDialogs", effects[0].Name)
	assert.Equal(t, "openSidebar", effects[1].Name)
}

func TestTranslateDeterministic(t *testing.T) {
	b := bindDefault(t)
	s := gamepad.NewSnapshot().
		SetAxis(gamepad.AxisRightY, -0.73).
		Press(gamepad.ButtonDPadUp).
		Press(gamepad.ButtonStart)

	msgs1, effects1 := mapping.Translate(s, b)
	for i := 0; i < 10; i++ {
		msgs, effects := mapping.Translate(s, b)
		assert.Equal(t, msgs1, msgs)
		require.Len(t, effects, len(effects1))
		for j := range effects {
			assert.Same(t, effects1[j], effects[j])
		}
	}
}

func TestTranslateThreshold(t *testing.T) {
	b := bindDefault(t)
	s := gamepad.NewSnapshot()

	s.Buttons[gamepad.ButtonRightTrigger] = gamepad.Button{Pressed: true, Value: 0.4}
	msgs, _ := mapping.Translate(s, b)
	assert.Empty(t, referencing(msgs, command.MP3Play))

	s.Buttons[gamepad.ButtonRightTrigger] = gamepad.Button{Pressed: true, Value: 0.5}
	msgs, _ = mapping.Translate(s, b)
	assert.Equal(t, []command.Command{"MP3_PLAY 1"}, referencing(msgs, command.MP3Play))
}

func TestTranslateRunsBoundEffect(t *testing.T) {
	calls := 0
	cfg := &mapping.Config{Buttons: []mapping.ButtonBinding{
		{Name: "a", Index: gamepad.ButtonA, Effect: "count"},
		{Name: "b", Index: gamepad.ButtonB, Effect: "count"},
	}}
	b, err := cfg.Bind(map[string]func(){"count": func() { calls++ }})
	require.NoError(t, err)

	s := gamepad.NewSnapshot().Press(gamepad.ButtonA).Press(gamepad.ButtonB)
	msgs, effects := mapping.Translate(s, b)
	assert.Empty(t, msgs)
	require.Len(t, effects, 2)
	assert.Same(t, effects[0], effects[1])
	assert.Equal(t, 0, calls)

	for _, e := range effects {
		e.Run()
	}
	assert.Equal(t, 2, calls)
}

func TestAxisScale(t *testing.T) {
	a := mapping.AxisBinding{Scale: 255}
	assert.Equal(t, 128, a.Scaled(0.5))
	assert.Equal(t, -255, a.Scaled(-1))
	a.Invert = true
	assert.Equal(t, -128, a.Scaled(0.5))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     mapping.Config
		wantErr string
	}{
		{
			name: "default is valid",
			cfg:  *mapping.DefaultConfig(),
		},
		{
			name:    "axis index out of range",
			cfg:     mapping.Config{Axes: []mapping.AxisBinding{{Name: "x", Index: 4, Scale: 1, Command: "X"}}},
			wantErr: `axes[0] "x": index 4 out of range [0,4)`,
		},
		{
			name:    "negative button index",
			cfg:     mapping.Config{Buttons: []mapping.ButtonBinding{{Name: "b", Index: -1, Command: "B"}}},
			wantErr: `buttons[0] "b": index -1 out of range [0,17)`,
		},
		{
			name:    "dead zone too large",
			cfg:     mapping.Config{Axes: []mapping.AxisBinding{{Name: "x", DeadZone: 1, Scale: 1, Command: "X"}}},
			wantErr: "dead zone 1 out of range",
		},
		{
			name:    "zero scale",
			cfg:     mapping.Config{Axes: []mapping.AxisBinding{{Name: "x", Command: "X"}}},
			wantErr: "scale must be finite and non-zero",
		},
		{
			name:    "NaN dead zone",
			cfg:     mapping.Config{Axes: []mapping.AxisBinding{{Name: "x", DeadZone: math.NaN(), Scale: 1, Command: "X"}}},
			wantErr: "dead zone NaN out of range",
		},
		{
			name:    "NaN scale",
			cfg:     mapping.Config{Axes: []mapping.AxisBinding{{Name: "x", Scale: math.NaN(), Command: "X"}}},
			wantErr: "scale must be finite and non-zero, got NaN",
		},
		{
			name:    "infinite scale",
			cfg:     mapping.Config{Axes: []mapping.AxisBinding{{Name: "x", Scale: math.Inf(-1), Command: "X"}}},
			wantErr: "scale must be finite and non-zero, got -Inf",
		},
		{
			name:    "NaN threshold",
			cfg:     mapping.Config{Buttons: []mapping.ButtonBinding{{Name: "b", Threshold: math.NaN(), Command: "B"}}},
			wantErr: "threshold NaN out of range",
		},
		{
			name:    "button without output",
			cfg:     mapping.Config{Buttons: []mapping.ButtonBinding{{Name: "b"}}},
			wantErr: "needs a command or an effect",
		},
		{
			name:    "threshold above one",
			cfg:     mapping.Config{Buttons: []mapping.ButtonBinding{{Name: "b", Threshold: 1.5, Command: "B"}}},
			wantErr: "threshold 1.5 out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestBindUnknownEffect(t *testing.T) {
	_, err := mapping.DefaultConfig().Bind(map[string]func(){"closeDialogs": func() {}})
	assert.ErrorContains(t, err, `unknown effect "openSidebar"`)
}

func TestBindRejectsInvalid(t *testing.T) {
	cfg := &mapping.Config{Axes: []mapping.AxisBinding{{Name: "x", Index: 9, Scale: 1, Command: "X"}}}
	_, err := cfg.Bind(nil)
	assert.ErrorContains(t, err, "invalid mapping")
}

func TestLoadRoundTrip(t *testing.T) {
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			data, err := mapping.Encode(mapping.DefaultConfig(), format)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "mapping."+format)
			require.NoError(t, os.WriteFile(path, data, 0o644))

			got, err := mapping.Load(path)
			require.NoError(t, err)
			assert.Equal(t, mapping.DefaultConfig(), got)
		})
	}
}

func TestDecodeHandWritten(t *testing.T) {
	want := &mapping.Config{
		Axes: []mapping.AxisBinding{
			{Name: "left track", Index: gamepad.AxisLeftY, DeadZone: 0, Scale: 100, Invert: true, Command: command.LeftTrack},
		},
		Buttons: []mapping.ButtonBinding{
			{Name: "play", Index: gamepad.ButtonRightTrigger, Threshold: 1, Command: "MP3_PLAY 1"},
			{Name: "open sidebar", Index: gamepad.ButtonStart, Effect: "openSidebar"},
		},
	}

	docs := map[string]string{
		"toml": `
[[axes]]
name = "left track"
index = 1
deadZone = 0
scale = 100
invert = true
command = "LEFT_TRACK"

[[buttons]]
name = "play"
index = 7
threshold = 1
command = "MP3_PLAY 1"

[[buttons]]
name = "open sidebar"
index = 9
effect = "openSidebar"
`,
		"yaml": `
axes:
  - {name: left track, index: 1, deadZone: 0, scale: 100, invert: true, command: LEFT_TRACK}
buttons:
  - {name: play, index: 7, threshold: 1, command: MP3_PLAY 1}
  - {name: open sidebar, index: 9, effect: openSidebar}
`,
		"json": `{
  "axes": [{"name": "left track", "index": 1, "deadZone": 0, "scale": 100, "invert": true, "command": "LEFT_TRACK"}],
  "buttons": [
    {"name": "play", "index": 7, "threshold": 1, "command": "MP3_PLAY 1"},
    {"name": "open sidebar", "index": 9, "effect": "openSidebar"}
  ]
}`,
	}

	for format, doc := range docs {
		t.Run(format, func(t *testing.T) {
			got, err := mapping.Decode([]byte(doc), format)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestDecodeTOMLRejectsNaN(t *testing.T) {
	doc := "[[axes]]\nname = \"x\"\nindex = 0\ndeadZone = nan\nscale = 1\ncommand = \"X\"\n"
	_, err := mapping.Decode([]byte(doc), "toml")
	assert.ErrorContains(t, err, "dead zone NaN out of range")
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("axes:\n  - name: x\n    index: 7\n    scale: 1\n    command: X\n"), 0o644))
	_, err := mapping.Load(path)
	assert.ErrorContains(t, err, "index 7 out of range")

	_, err = mapping.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
