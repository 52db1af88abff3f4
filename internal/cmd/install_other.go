//go:build !linux

package cmd

import (
	"errors"
	"log/slog"
	"runtime"
)

var errNoServiceManager = errors.New("service install is only supported on linux (systemd), not " + runtime.GOOS)

func install(*slog.Logger, []string) error { return errNoServiceManager }

func uninstall(*slog.Logger) error { return errNoServiceManager }
