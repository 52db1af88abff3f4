package main

import (
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/tankpad/tankpad/internal/config"
	"github.com/tankpad/tankpad/internal/configpaths"
	"github.com/tankpad/tankpad/internal/log"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("tankpad"),
		kong.Description("Gamepad and control panel bridge for a WebSocket-driven tank"),
		kong.UsageOnError(),
		// Config files in priority order; flags and env override them.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closers, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}

	trace := log.NewCommandLogger(nil)
	switch {
	case cli.Log.CommandFile != "":
		var c io.Closer
		trace, c, err = log.OpenCommandLog(cli.Log.CommandFile)
		if err != nil {
			logger.Error("command log disabled", "file", cli.Log.CommandFile, "error", err)
			trace = log.NewCommandLogger(nil)
		} else {
			closers = append(closers, c)
		}
	case log.ParseLevel(cli.Log.Level) <= log.LevelTrace:
		trace = log.NewCommandLogger(os.Stdout)
	}

	ctx.Bind(logger)
	ctx.BindTo(trace, (*log.CommandLogger)(nil))

	err = ctx.Run()
	for _, c := range closers {
		_ = c.Close()
	}
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if v, ok := strings.CutPrefix(a, "--config="); ok {
			return v
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv(configpaths.EnvConfig)
}
