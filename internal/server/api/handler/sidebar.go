package handler

import (
	"log/slog"
	"strings"

	"github.com/tankpad/tankpad/internal/server/api"
	"github.com/tankpad/tankpad/panel"
)

func SidebarOpen(p *panel.Panel) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		p.OpenSidebar()
		return writeJSON(res, p.State())
	}
}

// SidebarClose treats the payload as the click target. Targets other than
// the gamepad image and the welcome title leave the sidebar open.
func SidebarClose(p *panel.Panel) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		target := strings.TrimSpace(req.Payload)
		if !p.CloseSidebar(target) {
			logger.Debug("sidebar close ignored", "target", target)
		}
		return writeJSON(res, p.State())
	}
}

// DropdownToggle expands or collapses the dropdown named by {name}.
func DropdownToggle(p *panel.Panel) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		if _, err := p.ToggleDropdown(req.Params["name"]); err != nil {
			return panelError(err)
		}
		return writeJSON(res, p.State())
	}
}
