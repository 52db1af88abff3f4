// Package poller drives the gamepad loop: sample, translate, run local
// effects, send commands, on a fixed interval.
package poller

import (
	"context"
	"log/slog"
	"time"

	"github.com/tankpad/tankpad/gamepad"
	"github.com/tankpad/tankpad/internal/log"
	"github.com/tankpad/tankpad/mapping"
	"github.com/tankpad/tankpad/transport"
)

// DefaultInterval is the nominal tick, about 30 Hz.
const DefaultInterval = 33 * time.Millisecond

// Poller ties a sampler to a sender through a bound mapping.
type Poller struct {
	sampler  gamepad.Sampler
	mapping  *mapping.Bound
	sender   transport.Sender
	interval time.Duration
	logger   *slog.Logger

	present bool
}

// New returns a poller. A non-positive interval selects DefaultInterval.
func New(sampler gamepad.Sampler, m *mapping.Bound, sender transport.Sender, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		sampler:  sampler,
		mapping:  m,
		sender:   sender,
		interval: interval,
		logger:   logger,
	}
}

// Tick runs one cycle and reports whether a gamepad was present. With no
// gamepad nothing is sent and no effect runs.
func (p *Poller) Tick() bool {
	snap, ok := p.sampler.Sample()
	if ok != p.present {
		p.present = ok
		if ok {
			p.logger.Info("gamepad input active")
		} else {
			p.logger.Info("gamepad input lost")
		}
	}
	if !ok {
		return false
	}

	msgs, effects := mapping.Translate(snap, p.mapping)
	for _, e := range effects {
		p.logger.Log(context.Background(), log.LevelTrace, "effect", "name", e.Name)
		e.Run()
	}
	for _, m := range msgs {
		p.sender.Send(m)
	}
	return true
}

// Run ticks until ctx is cancelled. A tick that overruns the interval
// delays the next one; ticks are never run concurrently.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("polling gamepad", "interval", p.interval)
	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			p.Tick()
		}
	}
}
