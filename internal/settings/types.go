package settings

// Settings is the top-level YAML configuration. All values are fixed
// at startup; nothing mutates them afterwards.
type Settings struct {
	// Server describes the MCP server and its transport.
	Server ServerSettings `yaml:"server"`
	// Execution configures the command execution policy.
	Execution ExecutionSettings `yaml:"execution"`
	// Limits configures optional admission control on tool calls.
	Limits LimitsSettings `yaml:"limits"`
}

// ServerSettings defines MCP server settings.
type ServerSettings struct {
	// Name is the MCP server name.
	Name string `yaml:"name"`
	// Version is the MCP server version.
	Version string `yaml:"version"`
	// Transport selects the server transport ("stdio" or "http").
	Transport string `yaml:"transport"`
	// ShutdownTimeout overrides graceful shutdown duration.
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	// StartupHooks defines one-time commands executed on start.
	StartupHooks []HookSettings `yaml:"startup_hooks"`
	// HTTP configures the HTTP transport.
	HTTP HTTPSettings `yaml:"http"`
}

// HTTPSettings configures the HTTP transport.
type HTTPSettings struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`
	// Path is the MCP HTTP endpoint path.
	Path string `yaml:"path"`
	// ReadTimeout limits request read time.
	ReadTimeout string `yaml:"read_timeout"`
	// WriteTimeout limits response write time.
	WriteTimeout string `yaml:"write_timeout"`
	// IdleTimeout controls idle connections.
	IdleTimeout string `yaml:"idle_timeout"`
	// Stateless disables session tracking.
	Stateless bool `yaml:"stateless"`
}

// ExecutionSettings configures how payloads are executed.
type ExecutionSettings struct {
	// TimeoutSeconds is the default command timeout.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// MaxOutputLength bounds captured stdout/stderr characters.
	MaxOutputLength int `yaml:"max_output_length"`
	// AllowedCommands lists permitted leading command tokens.
	// Empty allows all commands.
	AllowedCommands []string `yaml:"allowed_commands"`
	// Shell overrides the interpreter used to run payloads.
	Shell string `yaml:"shell"`
}

// LimitsSettings configures the per-tool rate guard.
type LimitsSettings struct {
	// RatePerMinute limits calls per tool per minute. Zero disables
	// the guard.
	RatePerMinute int `yaml:"rate_per_minute"`
}

// HookSettings defines a startup hook command.
type HookSettings struct {
	// Command is the shell command to run.
	Command string `yaml:"command"`
	// Timeout controls hook execution duration.
	Timeout string `yaml:"timeout"`
}
