//go:build windows

package main

import (
	"log/slog"
	"os"

	"github.com/tankpad/tankpad/internal/util"
)

// Double-clicking the binary starts "run" with configured defaults.
func init() {
	if !util.IsRunFromGUI() {
		return
	}
	if len(os.Args) >= 2 && os.Args[1] == "run" {
		return
	}
	slog.Info("detected GUI startup, injecting 'run' argument")
	slog.Warn("run from a terminal for more options")
	os.Args = append([]string{os.Args[0], "run"}, os.Args[1:]...)
}
