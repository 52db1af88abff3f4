package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tankpad/tankpad/gamepad"
	"github.com/tankpad/tankpad/internal/configpaths"
	"github.com/tankpad/tankpad/internal/log"
	"github.com/tankpad/tankpad/internal/server/api"
	"github.com/tankpad/tankpad/internal/server/api/auth"
	"github.com/tankpad/tankpad/internal/server/api/handler"
	"github.com/tankpad/tankpad/internal/util"
	"github.com/tankpad/tankpad/mapping"
	"github.com/tankpad/tankpad/panel"
	"github.com/tankpad/tankpad/poller"
	"github.com/tankpad/tankpad/transport"
)

// Version is stamped at build time.
var Version = "dev"

type GamepadConfig struct {
	Disabled bool   `help:"Run without a gamepad; only the panel API sends commands" default:"false" env:"TANKPAD_GAMEPAD_DISABLED"`
	Index    int    `help:"Joystick device index" default:"0" env:"TANKPAD_GAMEPAD_INDEX"`
	Layout   string `help:"Driver layout of the gamepad (xpad, ds4)" default:"xpad" env:"TANKPAD_GAMEPAD_LAYOUT"`
}

type TankConfig struct {
	URL          string        `help:"Tank WebSocket URL" default:"ws://192.168.4.1:81/ws" env:"TANKPAD_TANK_URL"`
	Serial       string        `help:"Serial port to use instead of WebSocket (e.g. /dev/ttyUSB0)" env:"TANKPAD_TANK_SERIAL"`
	Baud         int           `help:"Serial baud rate" default:"115200" env:"TANKPAD_TANK_BAUD"`
	WriteTimeout time.Duration `help:"Deadline for one outbound command" default:"1s" env:"TANKPAD_TANK_WRITE_TIMEOUT"`
	DryRun       bool          `help:"Log commands instead of sending them" default:"false" env:"TANKPAD_TANK_DRY_RUN"`
}

// Run is the main command: gamepad loop, tank link and panel API.
type Run struct {
	ApiServerConfig api.ServerConfig `embed:"" prefix:"api."`
	Gamepad         GamepadConfig    `embed:"" prefix:"gamepad."`
	Tank            TankConfig       `embed:"" prefix:"tank."`
	Mapping         string           `help:"Gamepad mapping file (json, yaml or toml); the built-in mapping is used when empty" env:"TANKPAD_MAPPING"`
	PollInterval    time.Duration    `help:"Gamepad poll interval" default:"33ms" env:"TANKPAD_POLL_INTERVAL"`
}

// Run is called by Kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger, trace log.CommandLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.Start(ctx, logger, trace)
}

func (r *Run) loadMapping(logger *slog.Logger) (*mapping.Config, error) {
	if r.Mapping == "" {
		logger.Info("using built-in gamepad mapping")
		return mapping.DefaultConfig(), nil
	}
	cfg, err := mapping.Load(r.Mapping)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded gamepad mapping", "path", r.Mapping, "axes", len(cfg.Axes), "buttons", len(cfg.Buttons))
	return cfg, nil
}

func (r *Run) openSampler(logger *slog.Logger) (gamepad.Sampler, error) {
	if r.Gamepad.Disabled {
		logger.Info("gamepad disabled")
		return &gamepad.StaticSampler{}, nil
	}
	layout, err := gamepad.LookupLayout(r.Gamepad.Layout)
	if err != nil {
		return nil, err
	}
	return gamepad.NewJoystickSampler(r.Gamepad.Index, layout, gamepad.WithLogger(logger)), nil
}

// openTank returns the sender and a close function.
func (r *Run) openTank(ctx context.Context, logger *slog.Logger) (transport.Sender, func() error, error) {
	switch {
	case r.Tank.DryRun:
		logger.Info("dry run: commands are only traced")
		return transport.Discard{}, func() error { return nil }, nil
	case r.Tank.Serial != "":
		s, err := transport.OpenSerial(r.Tank.Serial, r.Tank.Baud, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case r.Tank.URL != "":
		ws := transport.NewWebSocket(r.Tank.URL, r.Tank.WriteTimeout, logger)
		if err := ws.Dial(ctx); err != nil {
			// The panel stays usable; sends are dropped until restart.
			logger.Warn("tank unreachable, commands will be dropped", "url", r.Tank.URL, "error", err)
		}
		return ws, ws.Close, nil
	default:
		return nil, nil, errors.New("no tank link configured: set --tank.url, --tank.serial or --tank.dry-run")
	}
}

// apiPassword reads the API password from the key file, generating one on
// first use.
func apiPassword(logger *slog.Logger) (string, error) {
	keyPath, err := configpaths.KeyPath()
	if err != nil {
		return "", fmt.Errorf("resolve key file path: %w", err)
	}
	if pwd, err := os.ReadFile(keyPath); err == nil {
		if p := strings.TrimSpace(string(pwd)); p != "" {
			return p, nil
		}
	}
	pwd, err := auth.GenerateKey()
	if err != nil {
		return "", fmt.Errorf("generate API password: %w", err)
	}
	if err := configpaths.EnsureDir(keyPath); err != nil {
		return "", fmt.Errorf("create config dir for key file: %w", err)
	}
	if err := os.WriteFile(keyPath, []byte(pwd), 0o600); err != nil {
		return "", fmt.Errorf("write API password: %w", err)
	}
	logger.Info("generated API password", "path", keyPath)
	logger.Info("-------------------------------------")
	logger.Info("Your tankpad API password is:")
	logger.Info(pwd)
	logger.Info("-------------------------------------")
	return pwd, nil
}

func (r *Run) Start(ctx context.Context, logger *slog.Logger, trace log.CommandLogger) error {
	logger.Info("starting tankpad", "version", Version)

	cfg, err := r.loadMapping(logger)
	if err != nil {
		return err
	}
	sampler, err := r.openSampler(logger)
	if err != nil {
		return err
	}
	defer sampler.Close()

	tank, closeTank, err := r.openTank(ctx, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeTank() }()
	sender := transport.Traced(tank, trace)

	p := panel.New(sender, logger)
	bound, err := cfg.Bind(p.Effects())
	if err != nil {
		return err
	}

	if r.ApiServerConfig.RequireAuth && r.ApiServerConfig.Password == "" {
		if r.ApiServerConfig.Password, err = apiPassword(logger); err != nil {
			return err
		}
	}
	apiSrv, err := api.New(r.ApiServerConfig, logger)
	if err != nil {
		return err
	}
	handler.Register(apiSrv.Router(), p, Version)
	if err := apiSrv.Start(); err != nil {
		logger.Error("failed to start API server", "error", err)
		if util.IsRunFromGUI() {
			fmt.Println("Press any key to exit...")
			_, _ = os.Stdin.Read(make([]byte, 1))
		}
		return err
	}
	defer apiSrv.Close()

	if util.IsRunFromGUI() {
		go func() {
			time.Sleep(250 * time.Millisecond)
			util.HideConsoleWindow()
		}()
	}

	err = poller.New(sampler, bound, sender, r.PollInterval, logger).Run(ctx)
	logger.Info("shutting down")
	return err
}
