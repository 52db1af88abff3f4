// Package config defines the tankpad command line.
package config

import "github.com/tankpad/tankpad/internal/cmd"

type LogConfig struct {
	Level       string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"TANKPAD_LOG_LEVEL"`
	File        string `help:"Also write logs to this file" env:"TANKPAD_LOG_FILE"`
	CommandFile string `help:"Write every outbound tank command to this file" env:"TANKPAD_LOG_COMMAND_FILE"`
}

type CLI struct {
	Config string    `help:"Config file (json, yaml or toml)" env:"TANKPAD_CONFIG"`
	Log    LogConfig `embed:"" prefix:"log."`

	Run        cmd.Run           `cmd:"" help:"Poll the gamepad, drive the tank and serve the panel API"`
	Panel      cmd.PanelCommand  `cmd:"" help:"Operate a running panel over its API"`
	Monitor    cmd.Monitor       `cmd:"" help:"Accept tank connections and log received commands"`
	ConfigCmds cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
	Install    cmd.Install       `cmd:"" help:"Install tankpad as a system service"`
	Uninstall  cmd.Uninstall     `cmd:"" help:"Remove the system service"`
}
