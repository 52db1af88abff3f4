// Package transport forwards commands to the tank.
//
// Every Sender is fire-and-forget: when the link is down a Send is silently
// dropped. The poll loop resends fresh state on the next tick, so nothing is
// queued, retried or acknowledged.
package transport

import (
	"sync"

	"github.com/tankpad/tankpad/command"
)

// Sender forwards one command.
type Sender interface {
	Send(cmd command.Command)
}

// Tracer receives a copy of every outbound command.
type Tracer interface {
	Log(in bool, line string)
}

// Discard drops every command.
type Discard struct{}

func (Discard) Send(command.Command) {}

type traced struct {
	next   Sender
	tracer Tracer
}

// Traced wraps next so that every command is also handed to tracer.
func Traced(next Sender, tracer Tracer) Sender {
	if tracer == nil {
		return next
	}
	return &traced{next: next, tracer: tracer}
}

func (t *traced) Send(cmd command.Command) {
	t.tracer.Log(false, cmd.String())
	t.next.Send(cmd)
}

// Recorder keeps every command it is sent. Safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	sent []command.Command
}

func (r *Recorder) Send(cmd command.Command) {
	r.mu.Lock()
	r.sent = append(r.sent, cmd)
	r.mu.Unlock()
}

// Sent returns a copy of the commands recorded so far.
func (r *Recorder) Sent() []command.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]command.Command(nil), r.sent...)
}

// Reset forgets recorded commands.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.sent = nil
	r.mu.Unlock()
}
