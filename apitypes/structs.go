package apitypes

import (
	"fmt"
)

// ApiError represents an RFC 7807 (problem+json) error response.
type ApiError struct {
	// Status is the HTTP-style status code (e.g., 400, 404, 500)
	Status int `json:"status"`
	// Title is a short, human-readable summary of the problem type
	Title string `json:"title"`
	// Detail is a human-readable explanation specific to this occurrence
	Detail string `json:"detail"`
}

func (e ApiError) Error() string {
	if e.Status == 0 && e.Title == "" {
		return "unknown error"
	}
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Title, e.Detail)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Title, e.Detail)
}

// --

type PingResponse struct {
	Server  string `json:"server"`
	Version string `json:"version"`
}

// Slider is one bounded numeric widget and the label shown next to it.
type Slider struct {
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Value int    `json:"value"`
	Label string `json:"label"`
}

// PanelState is a snapshot of every panel widget.
type PanelState struct {
	// Dialogs maps dialog name to visibility.
	Dialogs      map[string]bool   `json:"dialogs"`
	ModalVisible bool              `json:"modalVisible"`
	SidebarOpen  bool              `json:"sidebarOpen"`
	Dropdowns    map[string]bool   `json:"dropdowns"`
	Sliders      map[string]Slider `json:"sliders"`
	Color        string            `json:"color"`
}

// SendResponse echoes the command that was forwarded to the tank.
type SendResponse struct {
	Command string `json:"command"`
}
