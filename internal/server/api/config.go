package api

import "time"

// ServerConfig configures the panel API listener.
type ServerConfig struct {
	Addr        string        `help:"Panel API listen address" default:"localhost:3243" env:"TANKPAD_API_ADDR"`
	RequireAuth bool          `help:"Require the password handshake on every API connection" default:"false" env:"TANKPAD_API_REQUIRE_AUTH"`
	ReadTimeout time.Duration `help:"Time allowed for a client to send its request" default:"10s" env:"TANKPAD_API_READ_TIMEOUT"`
	Password    string        `kong:"-"`
}
