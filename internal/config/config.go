package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config stores environment-driven bootstrap settings for the server.
type Config struct {
	// ConfigPath is the path to the YAML settings file.
	ConfigPath string `env:"BASH_MCP_CONFIG" envDefault:"config.yaml"`
	// LogLevel sets the logger level.
	LogLevel string `env:"BASH_MCP_LOG_LEVEL" envDefault:"info"`
	// ShutdownTimeout controls graceful shutdown duration.
	ShutdownTimeout time.Duration `env:"BASH_MCP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load parses environment variables into Config.
func Load() (Config, error) {
	return env.ParseAs[Config]()
}
