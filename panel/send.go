package panel

import (
	"fmt"

	"github.com/tankpad/tankpad/command"
)

// Build returns the command widget name would send, without sending it.
func (p *Panel) Build(name string) (command.Command, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch name {
	case WidgetColor:
		return command.Color(p.color)
	case WidgetSpeed:
		return command.Speed(p.sliders[WidgetSpeed].value), nil
	case WidgetVolume:
		return command.Volume(p.sliders[WidgetVolume].value), nil
	case WidgetBrightness:
		return command.Brightness(p.sliders[WidgetBrightness].value), nil
	case WidgetInterval:
		return command.AnimationInterval(p.sliders[WidgetInterval].value), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownWidget, name)
	}
}

// Send builds the command for widget name from its current value and
// forwards it.
func (p *Panel) Send(name string) (command.Command, error) {
	cmd, err := p.Build(name)
	if err != nil {
		return "", err
	}
	p.logger.Debug("sending", "widget", name, "command", cmd)
	p.sender.Send(cmd)
	return cmd, nil
}

func (p *Panel) SendColor()      { _, _ = p.Send(WidgetColor) }
func (p *Panel) SendSpeed()      { _, _ = p.Send(WidgetSpeed) }
func (p *Panel) SendVolume()     { _, _ = p.Send(WidgetVolume) }
func (p *Panel) SendBrightness() { _, _ = p.Send(WidgetBrightness) }
func (p *Panel) SendInterval()   { _, _ = p.Send(WidgetInterval) }

// SendRaw forwards cmd verbatim.
func (p *Panel) SendRaw(cmd command.Command) {
	p.sender.Send(cmd)
}
