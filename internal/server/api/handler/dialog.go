package handler

import (
	"log/slog"

	"github.com/tankpad/tankpad/internal/server/api"
	"github.com/tankpad/tankpad/panel"
)

// DialogOpen opens the dialog named by the {name} parameter.
func DialogOpen(p *panel.Panel) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		if err := p.OpenDialog(req.Params["name"]); err != nil {
			return panelError(err)
		}
		return writeJSON(res, p.State())
	}
}

// DialogsClose hides every dialog and the modal.
func DialogsClose(p *panel.Panel) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		p.CloseDialogs()
		return writeJSON(res, p.State())
	}
}
