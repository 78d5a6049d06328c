package settings

import (
	"fmt"
	"strings"
	"time"

	"github.com/codex-k8s/bash-mcp-server/internal/output"
	"github.com/codex-k8s/bash-mcp-server/internal/policy"
)

// Validate applies defaults and verifies field values.
func Validate(s *Settings) error {
	if s == nil {
		return fmt.Errorf("settings are nil")
	}

	if strings.TrimSpace(s.Server.Name) == "" {
		s.Server.Name = "bash-command-server"
	}
	if strings.TrimSpace(s.Server.Version) == "" {
		s.Server.Version = "0.1.0"
	}
	if s.Server.Transport == "" {
		s.Server.Transport = "stdio"
	}
	switch s.Server.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("server.transport must be stdio or http")
	}
	if s.Server.Transport == "http" {
		if strings.TrimSpace(s.Server.HTTP.Listen) == "" {
			s.Server.HTTP.Listen = ":8080"
		}
		if s.Server.HTTP.Path == "" {
			s.Server.HTTP.Path = "/mcp"
		}
	}

	durationFields := map[string]string{
		"server.shutdown_timeout":   s.Server.ShutdownTimeout,
		"server.http.read_timeout":  s.Server.HTTP.ReadTimeout,
		"server.http.write_timeout": s.Server.HTTP.WriteTimeout,
		"server.http.idle_timeout":  s.Server.HTTP.IdleTimeout,
	}
	for field, value := range durationFields {
		if strings.TrimSpace(value) == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%s is invalid: %w", field, err)
		}
	}

	if s.Execution.TimeoutSeconds == 0 {
		s.Execution.TimeoutSeconds = policy.DefaultTimeoutSeconds
	}
	if s.Execution.TimeoutSeconds < 0 {
		return fmt.Errorf("execution.timeout_seconds must be positive")
	}
	if s.Execution.MaxOutputLength == 0 {
		s.Execution.MaxOutputLength = output.DefaultMaxLength
	}
	if s.Execution.MaxOutputLength < 0 {
		return fmt.Errorf("execution.max_output_length must be positive")
	}
	for i, token := range s.Execution.AllowedCommands {
		if strings.TrimSpace(token) == "" {
			return fmt.Errorf("execution.allowed_commands[%d] is empty", i)
		}
	}

	if s.Limits.RatePerMinute < 0 {
		return fmt.Errorf("limits.rate_per_minute must be >= 0")
	}

	for i, hook := range s.Server.StartupHooks {
		if strings.TrimSpace(hook.Command) == "" {
			return fmt.Errorf("server.startup_hooks[%d].command is required", i)
		}
		if strings.TrimSpace(hook.Timeout) != "" {
			if _, err := time.ParseDuration(hook.Timeout); err != nil {
				return fmt.Errorf("server.startup_hooks[%d].timeout is invalid: %w", i, err)
			}
		}
	}

	return nil
}
