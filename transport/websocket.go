package transport

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tankpad/tankpad/command"
)

// WebSocket sends each command as one text frame to the tank's WebSocket
// endpoint. It connects once; after the connection drops, Send is a no-op.
type WebSocket struct {
	url          string
	dialer       *websocket.Dialer
	writeTimeout time.Duration
	logger       *slog.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWebSocket returns an unconnected sender for url (ws:// or wss://).
func NewWebSocket(url string, writeTimeout time.Duration, logger *slog.Logger) *WebSocket {
	return &WebSocket{
		url:          url,
		dialer:       &websocket.Dialer{HandshakeTimeout: 5 * time.Second},
		writeTimeout: writeTimeout,
		logger:       logger,
	}
}

// Dial opens the connection.
func (w *WebSocket) Dial(ctx context.Context) error {
	conn, _, err := w.dialer.DialContext(ctx, w.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", w.url, err)
	}

	w.mu.Lock()
	if w.conn != nil {
		_ = w.conn.Close()
	}
	w.conn = conn
	w.mu.Unlock()

	w.logger.Info("tank connected", "url", w.url)
	go w.drain(conn)
	return nil
}

// drain discards inbound frames so that control frames are processed and a
// closed peer is noticed.
func (w *WebSocket) drain(conn *websocket.Conn) {
	for {
		if _, _, err := conn.NextReader(); err != nil {
			w.drop(conn, err)
			return
		}
	}
}

func (w *WebSocket) drop(conn *websocket.Conn, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn != conn {
		return
	}
	_ = conn.Close()
	w.conn = nil
	w.logger.Info("tank disconnected", "url", w.url, "error", err)
}

// Connected reports whether the connection is open.
func (w *WebSocket) Connected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn != nil
}

// Send implements Sender.
func (w *WebSocket) Send(cmd command.Command) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn == nil {
		return
	}
	if w.writeTimeout > 0 {
		_ = w.conn.SetWriteDeadline(time.Now().Add(w.writeTimeout))
	}
	if err := w.conn.WriteMessage(websocket.TextMessage, []byte(cmd)); err != nil {
		_ = w.conn.Close()
		w.conn = nil
		w.logger.Info("tank disconnected", "url", w.url, "error", err)
	}
}

// Close sends a close frame and closes the connection.
func (w *WebSocket) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn == nil {
		return nil
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = w.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	err := w.conn.Close()
	w.conn = nil
	return err
}
