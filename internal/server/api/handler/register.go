package handler

import (
	"github.com/tankpad/tankpad/internal/server/api"
	"github.com/tankpad/tankpad/panel"
)

// Register wires every panel route into r.
func Register(r *api.Router, p *panel.Panel, version string) {
	r.Register("ping", Ping(version))
	r.Register("panel/state", PanelState(p))
	r.Register("dialog/{name}/open", DialogOpen(p))
	r.Register("dialogs/close", DialogsClose(p))
	r.Register("sidebar/open", SidebarOpen(p))
	r.Register("sidebar/close", SidebarClose(p))
	r.Register("dropdown/{name}/toggle", DropdownToggle(p))
	r.Register("widget/{name}/set", WidgetSet(p))
	r.Register("send/raw", SendRaw(p))
	r.Register("send/{name}", Send(p))
}
