package poller_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tankpad/tankpad/command"
	"github.com/tankpad/tankpad/gamepad"
	"github.com/tankpad/tankpad/mapping"
	"github.com/tankpad/tankpad/panel"
	"github.com/tankpad/tankpad/poller"
	"github.com/tankpad/tankpad/transport"
)

type countingSampler struct {
	gamepad.StaticSampler
	calls atomic.Int32
}

func (c *countingSampler) Sample() (*gamepad.Snapshot, bool) {
	c.calls.Add(1)
	return c.StaticSampler.Sample()
}

// scriptedSampler reports presence from a fixed script, one entry per call.
type scriptedSampler struct {
	present []bool
	calls   int
}

func (s *scriptedSampler) Sample() (*gamepad.Snapshot, bool) {
	ok := s.present[s.calls%len(s.present)]
	s.calls++
	if !ok {
		return nil, false
	}
	return gamepad.NewSnapshot(), true
}

func (s *scriptedSampler) Close() error { return nil }

func TestTickLogsPresenceTransitionsOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	b, err := mapping.DefaultConfig().Bind(panel.New(transport.Discard{}, logger).Effects())
	require.NoError(t, err)

	s := &scriptedSampler{present: []bool{true, true, true, false, false, true, true}}
	p := poller.New(s, b, transport.Discard{}, 0, logger)
	for range s.present {
		p.Tick()
	}

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "gamepad input active"))
	assert.Equal(t, 1, strings.Count(out, "gamepad input lost"))
}

func TestTickAbsentGamepad(t *testing.T) {
	effectRuns := 0
	cfg := mapping.DefaultConfig()
	b, err := cfg.Bind(map[string]func(){
		"closeDialogs": func() { effectRuns++ },
		"openSidebar":  func() { effectRuns++ },
	})
	require.NoError(t, err)

	rec := &transport.Recorder{}
	p := poller.New(&gamepad.StaticSampler{}, b, rec, 0, slog.Default())

	assert.False(t, p.Tick())
	assert.Empty(t, rec.Sent())
	assert.Equal(t, 0, effectRuns)
}

func TestTickRunsEffectsAndSends(t *testing.T) {
	rec := &transport.Recorder{}
	pnl := panel.New(rec, slog.Default())
	pnl.OpenVolumeDialog()

	b, err := mapping.DefaultConfig().Bind(pnl.Effects())
	require.NoError(t, err)

	snap := gamepad.NewSnapshot().
		SetAxis(gamepad.AxisLeftY, -0.5).
		Press(gamepad.ButtonX).
		Press(gamepad.ButtonBack).
		Press(gamepad.ButtonStart)
	p := poller.New(&gamepad.StaticSampler{Snapshot: snap}, b, rec, 0, slog.Default())

	assert.True(t, p.Tick())
	assert.Equal(t, []command.Command{"LEFT_TRACK 50", "LED_OFF"}, rec.Sent())
	assert.False(t, pnl.DialogVisible("volume"))
	assert.False(t, pnl.ModalVisible())
	assert.True(t, pnl.SidebarOpen())
}

func TestTickResendsEveryTick(t *testing.T) {
	b, err := mapping.DefaultConfig().Bind(panel.New(transport.Discard{}, slog.Default()).Effects())
	require.NoError(t, err)

	rec := &transport.Recorder{}
	snap := gamepad.NewSnapshot().SetAxis(gamepad.AxisRightY, 1)
	p := poller.New(&gamepad.StaticSampler{Snapshot: snap}, b, rec, 0, slog.Default())

	for i := 0; i < 3; i++ {
		p.Tick()
	}
	assert.Equal(t, []command.Command{"RIGHT_TRACK -100", "RIGHT_TRACK -100", "RIGHT_TRACK -100"}, rec.Sent())
}

func TestRunStopsOnCancel(t *testing.T) {
	b, err := mapping.DefaultConfig().Bind(panel.New(transport.Discard{}, slog.Default()).Effects())
	require.NoError(t, err)

	s := &countingSampler{}
	p := poller.New(s, b, transport.Discard{}, 5*time.Millisecond, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	assert.Eventually(t, func() bool { return s.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop")
	}
}
