package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codex-k8s/bash-mcp-server/internal/audit"
	"github.com/codex-k8s/bash-mcp-server/internal/limits"
	"github.com/codex-k8s/bash-mcp-server/internal/policy"
	"github.com/codex-k8s/bash-mcp-server/internal/report"
	"github.com/codex-k8s/bash-mcp-server/internal/runner"
	"github.com/codex-k8s/bash-mcp-server/internal/security"
)

// CommandInput is the input schema for run_bash_command.
type CommandInput struct {
	Command          string `json:"command" jsonschema:"the bash command to execute"`
	WorkingDirectory string `json:"working_directory,omitempty" jsonschema:"optional working directory to execute the command in"`
	Timeout          int    `json:"timeout,omitempty" jsonschema:"optional timeout in seconds (default: 30)"`
}

// ScriptInput is the input schema for run_bash_script.
type ScriptInput struct {
	ScriptContent    string `json:"script_content" jsonschema:"the bash script content to execute"`
	WorkingDirectory string `json:"working_directory,omitempty" jsonschema:"optional working directory to execute the script in"`
	Timeout          int    `json:"timeout,omitempty" jsonschema:"optional timeout in seconds (default: 30)"`
}

const rateLimitedMessage = "Error: rate limit exceeded, try again later"

// toolHandlers binds the execution core to the MCP tool surface. Each
// handler always returns a textual result, never a protocol error:
// policy rejections, timeouts and spawn failures all come back as
// report strings.
type toolHandlers struct {
	logger    *slog.Logger
	audit     audit.Logger
	resolver  *policy.Resolver
	guard     *limits.Guard
	runner    runner.Runner
	maxOutput int
}

func (h toolHandlers) runCommand(ctx context.Context, _ *mcp.CallToolRequest, input CommandInput) (*mcp.CallToolResult, any, error) {
	const tool = "run_bash_command"
	correlationID := newCorrelationID()
	h.logCall(ctx, tool, correlationID, input.Command)

	if !h.guard.Allow(tool) {
		h.record(ctx, "tool_denied", tool, correlationID, rateLimitedMessage)
		return textResult(rateLimitedMessage), nil, nil
	}
	if err := h.resolver.CheckCommand(input.Command); err != nil {
		message := report.PolicyMessage(err)
		h.record(ctx, "tool_denied", tool, correlationID, message)
		return textResult(message), nil, nil
	}

	return h.execute(ctx, tool, correlationID, runner.Command(input.Command), policy.Request{
		WorkingDirectory: input.WorkingDirectory,
		TimeoutSeconds:   input.Timeout,
	})
}

func (h toolHandlers) runScript(ctx context.Context, _ *mcp.CallToolRequest, input ScriptInput) (*mcp.CallToolResult, any, error) {
	const tool = "run_bash_script"
	correlationID := newCorrelationID()
	h.logCall(ctx, tool, correlationID, input.ScriptContent)

	if !h.guard.Allow(tool) {
		h.record(ctx, "tool_denied", tool, correlationID, rateLimitedMessage)
		return textResult(rateLimitedMessage), nil, nil
	}

	// Scripts are not subjected to the command allow-list; see
	// policy.CheckCommand for the documented gap.
	return h.execute(ctx, tool, correlationID, runner.Script(input.ScriptContent), policy.Request{
		WorkingDirectory: input.WorkingDirectory,
		TimeoutSeconds:   input.Timeout,
	})
}

func (h toolHandlers) execute(ctx context.Context, tool, correlationID string, payload runner.Payload, req policy.Request) (*mcp.CallToolResult, any, error) {
	execCtx, err := h.resolver.Resolve(req)
	if err != nil {
		message := report.PolicyMessage(err)
		h.record(ctx, "tool_denied", tool, correlationID, message)
		return textResult(message), nil, nil
	}

	outcome := h.runner.Run(ctx, payload, execCtx.Cwd, execCtx.TimeoutSeconds)
	text := report.Render(payload, execCtx.Cwd, outcome, h.maxOutput)

	switch outcome.State {
	case runner.TimedOut:
		h.record(ctx, "tool_timeout", tool, correlationID, text)
	case runner.SpawnFailed:
		h.record(ctx, "tool_spawn_failed", tool, correlationID, text)
	default:
		h.record(ctx, "tool_ok", tool, correlationID, fmt.Sprintf("exit code %d", outcome.ExitCode))
	}

	return textResult(text), nil, nil
}

func (h toolHandlers) logCall(ctx context.Context, tool, correlationID, payload string) {
	if h.logger != nil {
		h.logger.Info("tool call", "tool", tool, "correlation_id", correlationID, "payload", security.RedactPayload(payload))
	}
	h.record(ctx, "tool_call", tool, correlationID, "")
}

func (h toolHandlers) record(ctx context.Context, eventType, tool, correlationID, detail string) {
	if h.audit == nil {
		return
	}
	h.audit.Record(ctx, audit.Event{
		Type:          eventType,
		Tool:          tool,
		CorrelationID: correlationID,
		Detail:        detail,
	})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func newCorrelationID() string {
	return fmt.Sprintf("corr-%d", time.Now().UTC().UnixNano())
}
