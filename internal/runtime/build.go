package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codex-k8s/bash-mcp-server/internal/audit"
	"github.com/codex-k8s/bash-mcp-server/internal/limits"
	"github.com/codex-k8s/bash-mcp-server/internal/policy"
	"github.com/codex-k8s/bash-mcp-server/internal/runner"
	"github.com/codex-k8s/bash-mcp-server/internal/settings"
	"github.com/codex-k8s/bash-mcp-server/internal/sysinfo"
)

// Builder assembles the MCP server from validated settings.
type Builder struct {
	// Logger is used for structured logging.
	Logger *slog.Logger
	// Audit records tool invocation events.
	Audit audit.Logger
	// Settings is the validated server configuration.
	Settings *settings.Settings
	// Runner executes command and script payloads.
	Runner runner.Runner
}

// Build creates an MCP server with both execution tools, the static
// system-state resources and the helper prompt.
func (b Builder) Build() (*mcp.Server, error) {
	if b.Settings == nil {
		return nil, fmt.Errorf("settings are nil")
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    b.Settings.Server.Name,
		Version: b.Settings.Server.Version,
	}, nil)

	tools := toolHandlers{
		logger: b.Logger,
		audit:  b.Audit,
		resolver: policy.NewResolver(policy.Config{
			DefaultTimeoutSeconds: b.Settings.Execution.TimeoutSeconds,
			AllowedCommands:       b.Settings.Execution.AllowedCommands,
		}),
		guard:     limits.NewGuard(b.Settings.Limits.RatePerMinute),
		runner:    b.Runner,
		maxOutput: b.Settings.Execution.MaxOutputLength,
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_bash_command",
		Title:       "Run Bash Command",
		Description: "Execute a bash command on the host system and return its output, exit code, and any errors.",
	}, tools.runCommand)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_bash_script",
		Title:       "Run Bash Script",
		Description: "Execute a bash script from string content and return its output, exit code, and any errors.",
	}, tools.runScript)

	server.AddResource(&mcp.Resource{
		Name:        "system-info",
		URI:         "system://info",
		Description: "Basic system information",
		MIMEType:    "text/plain",
	}, textResource(sysinfo.Info))

	server.AddResource(&mcp.Resource{
		Name:        "current-directory",
		URI:         "pwd://current",
		Description: "The server process working directory",
		MIMEType:    "text/plain",
	}, textResource(sysinfo.CurrentDirectory))

	server.AddPrompt(&mcp.Prompt{
		Name:        "bash_helper",
		Description: "Get help and examples for using the bash command tools",
	}, bashHelper)

	return server, nil
}

func textResource(text func() string) func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: req.Params.URI, MIMEType: "text/plain", Text: text()},
			},
		}, nil
	}
}

const bashHelperText = `This MCP server provides tools to execute bash commands on the host system.

Available tools:
1. run_bash_command - Execute a single bash command
2. run_bash_script - Execute a bash script from string content

Available resources:
1. system://info - Get system information
2. pwd://current - Get current working directory

Examples:
- List files: run_bash_command("ls -la")
- Check disk usage: run_bash_command("df -h")
- Run in specific directory: run_bash_command("pwd", working_directory="/tmp")
- Multi-line script: run_bash_script("#!/bin/bash\necho 'Hello'\ndate\nuptime")

Security notes:
- Commands run with the permissions of the server process
- Output is truncated at the configured character bound
- Commands time out after 30 seconds by default
- Be careful with destructive commands`

func bashHelper(_ context.Context, _ *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Help and examples for using the bash command tools",
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: bashHelperText}},
		},
	}, nil
}
