package handler

import (
	"log/slog"
	"strings"

	"github.com/tankpad/tankpad/apitypes"
	"github.com/tankpad/tankpad/command"
	"github.com/tankpad/tankpad/internal/server/api"
	"github.com/tankpad/tankpad/internal/server/api/apierror"
	"github.com/tankpad/tankpad/panel"
)

// WidgetSet stores the payload as the value of widget {name}.
func WidgetSet(p *panel.Panel) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		if err := p.SetWidget(req.Params["name"], req.Payload); err != nil {
			return panelError(err)
		}
		return writeJSON(res, p.State())
	}
}

// Send forwards the command built from widget {name}.
func Send(p *panel.Panel) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		cmd, err := p.Send(req.Params["name"])
		if err != nil {
			return panelError(err)
		}
		return writeJSON(res, apitypes.SendResponse{Command: cmd.String()})
	}
}

// SendRaw forwards the payload verbatim. It must be registered before
// send/{name} so that "raw" is not taken for a widget.
func SendRaw(p *panel.Panel) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		line := strings.TrimSpace(req.Payload)
		if line == "" {
			return apierror.ErrBadRequest("missing command")
		}
		if strings.ContainsAny(line, "\r\n") {
			return apierror.ErrBadRequest("command must be a single line")
		}
		cmd := command.Command(line)
		p.SendRaw(cmd)
		return writeJSON(res, apitypes.SendResponse{Command: cmd.String()})
	}
}
