package handler

import (
	"log/slog"

	"github.com/tankpad/tankpad/internal/server/api"
	"github.com/tankpad/tankpad/panel"
)

// PanelState returns every widget's current state.
func PanelState(p *panel.Panel) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		return writeJSON(res, p.State())
	}
}
