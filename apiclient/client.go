package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tankpad/tankpad/apitypes"
)

// Client wraps Transport with typed panel calls. Problem responses come
// back as *apitypes.ApiError.
type Client struct{ transport *Transport }

// New returns a client for the panel API at addr (host:port).
func New(addr string) *Client { return &Client{transport: NewTransport(addr)} }

// NewWithPassword returns a client that authenticates with password.
func NewWithPassword(addr, password string) *Client {
	return &Client{transport: NewTransportWithPassword(addr, password)}
}

// NewWithConfig returns a client with custom transport settings.
func NewWithConfig(addr string, cfg *Config) *Client {
	return &Client{transport: NewTransportWithConfig(addr, cfg)}
}

// WithTransport returns a client over t, typically a mock.
func WithTransport(t *Transport) *Client { return &Client{transport: t} }

func (c *Client) Ping() (*apitypes.PingResponse, error) {
	return c.PingCtx(context.Background())
}

func (c *Client) PingCtx(ctx context.Context) (*apitypes.PingResponse, error) {
	return call[apitypes.PingResponse](ctx, c, "ping", nil, nil)
}

// State returns every widget's state.
func (c *Client) State(ctx context.Context) (*apitypes.PanelState, error) {
	return call[apitypes.PanelState](ctx, c, "panel/state", nil, nil)
}

// OpenDialog opens one dialog and the modal.
func (c *Client) OpenDialog(ctx context.Context, name string) (*apitypes.PanelState, error) {
	return call[apitypes.PanelState](ctx, c, "dialog/{name}/open", nil, map[string]string{"name": name})
}

// CloseDialogs hides every dialog.
func (c *Client) CloseDialogs(ctx context.Context) (*apitypes.PanelState, error) {
	return call[apitypes.PanelState](ctx, c, "dialogs/close", nil, nil)
}

func (c *Client) OpenSidebar(ctx context.Context) (*apitypes.PanelState, error) {
	return call[apitypes.PanelState](ctx, c, "sidebar/open", nil, nil)
}

// CloseSidebar reports a click on target; only the gamepad image and the
// welcome title close the sidebar.
func (c *Client) CloseSidebar(ctx context.Context, target string) (*apitypes.PanelState, error) {
	return call[apitypes.PanelState](ctx, c, "sidebar/close", target, nil)
}

func (c *Client) ToggleDropdown(ctx context.Context, name string) (*apitypes.PanelState, error) {
	return call[apitypes.PanelState](ctx, c, "dropdown/{name}/toggle", nil, map[string]string{"name": name})
}

// SetWidget sets a slider (integer text) or the color ("#rrggbb").
func (c *Client) SetWidget(ctx context.Context, name, value string) (*apitypes.PanelState, error) {
	return call[apitypes.PanelState](ctx, c, "widget/{name}/set", value, map[string]string{"name": name})
}

// Send forwards the command built from a widget's current value.
func (c *Client) Send(ctx context.Context, widget string) (*apitypes.SendResponse, error) {
	return call[apitypes.SendResponse](ctx, c, "send/{name}", nil, map[string]string{"name": widget})
}

// SendRaw forwards line verbatim.
func (c *Client) SendRaw(ctx context.Context, line string) (*apitypes.SendResponse, error) {
	return call[apitypes.SendResponse](ctx, c, "send/raw", line, nil)
}

func call[T any](ctx context.Context, c *Client, path string, payload any, params map[string]string) (*T, error) {
	raw, err := c.transport.DoCtx(ctx, path, payload, params)
	if err != nil {
		return nil, err
	}
	return parse[T](raw)
}

func parse[T any](data string) (*T, error) {
	if data == "" {
		return nil, errors.New("empty response")
	}
	var problem apitypes.ApiError
	if err := json.Unmarshal([]byte(data), &problem); err == nil && (problem.Status != 0 || problem.Title != "") {
		return nil, &problem
	}
	var out T
	if err := json.NewDecoder(bytes.NewReader([]byte(data))).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}
