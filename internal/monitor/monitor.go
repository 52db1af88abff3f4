// Package monitor is a bench stand-in for the tank: it accepts WebSocket
// connections like the firmware does and logs every command it receives.
package monitor

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/tankpad/tankpad/command"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler upgrades requests to WebSocket and reports every text message.
type Handler struct {
	logger *slog.Logger
	// OnCommand, when set, is called for every received command.
	OnCommand func(cmd command.Command)
}

// New returns a Handler logging to logger.
func New(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	logger := h.logger.With("remote", r.RemoteAddr)
	logger.Info("operator connected")
	for {
		typ, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Info("operator disconnected")
			} else {
				logger.Info("operator connection lost", "error", err)
			}
			return
		}
		if typ != websocket.TextMessage {
			logger.Debug("ignoring non-text frame", "type", typ)
			continue
		}
		cmd := command.Command(data)
		logger.Info("command", "token", cmd.Token(), "args", cmd.Args())
		if h.OnCommand != nil {
			h.OnCommand(cmd)
		}
	}
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>tankpad monitor</title>
  <style>
    body { margin: 0; display: grid; place-items: center; height: 100vh; font-family: sans-serif; background: #0b1c2c; color: #e8f0f7; }
    code { background: #0f2438; padding: 2px 6px; border-radius: 6px; }
  </style>
</head>
<body>
  <div>
    <h1>tankpad monitor</h1>
    <p>Point the operator at <code>ws://%s/ws</code>; received commands are logged.</p>
  </div>
</body>
</html>`

// Mux serves the placeholder index page on "/" and the command endpoint on
// "/ws".
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, indexHTML, r.Host)
	})
	return mux
}
