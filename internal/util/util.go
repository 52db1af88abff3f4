//go:build !windows

// Package util holds platform helpers for launching tankpad outside a
// terminal.
package util

// IsRunFromGUI is always false off Windows; use systemd ("tankpad install")
// to run headless.
func IsRunFromGUI() bool { return false }

func HideConsoleWindow() {}
