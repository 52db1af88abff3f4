package mapping

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tankpad/tankpad/command"
	"github.com/tankpad/tankpad/gamepad"
)

// Effect is a named local callback. It never reaches the tank; it updates
// local state (usually the panel) in step with translation.
type Effect struct {
	Name string
	Run  func()
}

type boundButton struct {
	ButtonBinding
	effect *Effect
}

// Bound is a validated Config whose effect names have been resolved.
type Bound struct {
	axes    []AxisBinding
	buttons []boundButton
}

// Bind validates c and resolves effect names against effects. Unknown
// names are an error.
func (c *Config) Bind(effects map[string]func()) (*Bound, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mapping: %w", err)
	}

	resolved := make(map[string]*Effect, len(effects))
	b := &Bound{axes: append([]AxisBinding(nil), c.Axes...)}
	for _, btn := range c.Buttons {
		bb := boundButton{ButtonBinding: btn}
		if btn.Effect != "" {
			e, ok := resolved[btn.Effect]
			if !ok {
				fn, known := effects[btn.Effect]
				if !known {
					return nil, fmt.Errorf("invalid mapping: button %q: unknown effect %q (known: %s)", btn.Name, btn.Effect, knownNames(effects))
				}
				e = &Effect{Name: btn.Effect, Run: fn}
				resolved[btn.Effect] = e
			}
			bb.effect = e
		}
		b.buttons = append(b.buttons, bb)
	}
	return b, nil
}

func knownNames(effects map[string]func()) string {
	names := make([]string, 0, len(effects))
	for n := range effects {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// Translate evaluates every binding against s. Axis commands come first in
// binding order, then button commands in binding order. Translate is a pure
// function of its inputs and never fails on a well-formed snapshot.
func Translate(s *gamepad.Snapshot, b *Bound) ([]command.Command, []*Effect) {
	var msgs []command.Command
	var effects []*Effect

	for _, a := range b.axes {
		v := s.Axes[a.Index]
		if !a.Active(v) {
			continue
		}
		msgs = append(msgs, command.New(a.Command, a.Scaled(v)))
	}
	for _, btn := range b.buttons {
		if !btn.Held(s.Buttons[btn.Index]) {
			continue
		}
		if btn.Command != "" {
			msgs = append(msgs, command.Command(btn.Command))
		}
		if btn.effect != nil {
			effects = append(effects, btn.effect)
		}
	}
	return msgs, effects
}
