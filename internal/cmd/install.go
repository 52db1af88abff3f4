package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Install registers tankpad as a system service running "tankpad run".
type Install struct {
	Args []string `arg:"" optional:"" passthrough:"" help:"Extra arguments for the run command"`
}

func (i *Install) Run(logger *slog.Logger) error { return install(logger, i.Args) }

// Uninstall removes the system service.
type Uninstall struct{}

func (Uninstall) Run(logger *slog.Logger) error { return uninstall(logger) }

func currentExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Abs(exe)
}
