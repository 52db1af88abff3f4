//go:build linux

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	serviceName = "tankpad.service"
	servicePath = "/etc/systemd/system/tankpad.service"
)

func install(logger *slog.Logger, args []string) error {
	exePath, err := currentExecutable()
	if err != nil {
		return err
	}
	if err := os.WriteFile(servicePath, []byte(systemdUnitContent(exePath, args)), 0o644); err != nil {
		return err
	}
	for _, step := range [][]string{{"daemon-reload"}, {"enable", serviceName}, {"restart", serviceName}} {
		if err := runSystemctl(step...); err != nil {
			return err
		}
	}
	logger.Info("tankpad systemd service installed", "path", servicePath, "exe", exePath)
	return nil
}

func uninstall(logger *slog.Logger) error {
	var errs []error
	for _, step := range [][]string{{"stop", serviceName}, {"disable", serviceName}} {
		if err := runSystemctl(step...); err != nil {
			errs = append(errs, err)
		}
	}
	if err := os.Remove(servicePath); err != nil && !os.IsNotExist(err) {
		errs = append(errs, err)
	}
	if err := runSystemctl("daemon-reload"); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	logger.Info("tankpad systemd service removed", "path", servicePath)
	return nil
}

func systemdUnitContent(exePath string, args []string) string {
	execStart := []string{strconv.Quote(exePath), "run"}
	for _, a := range args {
		execStart = append(execStart, strconv.Quote(a))
	}
	return fmt.Sprintf(`[Unit]
Description=tankpad gamepad bridge
After=network-online.target
Wants=network-online.target

[Service]
Type=simple
ExecStart=%s
WorkingDirectory=%s
Restart=on-failure
SupplementaryGroups=input dialout

[Install]
WantedBy=multi-user.target
`, strings.Join(execStart, " "), filepath.Dir(exePath))
}

func runSystemctl(args ...string) error {
	output, err := exec.Command("systemctl", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl %s failed: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}
