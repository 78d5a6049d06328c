// Package report renders execution outcomes into the fixed textual
// format returned to MCP clients. Every function is total: each
// outcome variant yields a string, never an error, because the
// protocol surface always expects a text result.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codex-k8s/bash-mcp-server/internal/output"
	"github.com/codex-k8s/bash-mcp-server/internal/policy"
	"github.com/codex-k8s/bash-mcp-server/internal/runner"
)

// scriptPreviewLength bounds the script excerpt shown in report headers.
const scriptPreviewLength = 200

const noOutputLine = "No output produced.\n"

// Render produces the report for one execution outcome. Stdout and
// stderr are truncated independently to maxOutputLength characters.
func Render(payload runner.Payload, cwd string, outcome runner.Outcome, maxOutputLength int) string {
	switch outcome.State {
	case runner.TimedOut:
		if payload.Kind == runner.KindScript {
			return fmt.Sprintf("Error: Script timed out after %d seconds", outcome.TimeoutSeconds)
		}
		return fmt.Sprintf("Error: Command '%s' timed out after %d seconds", payload.Text, outcome.TimeoutSeconds)
	case runner.SpawnFailed:
		if payload.Kind == runner.KindScript {
			return fmt.Sprintf("Error executing script: %s", outcome.SpawnError)
		}
		return fmt.Sprintf("Error executing command '%s': %s", payload.Text, outcome.SpawnError)
	}

	stdout := output.Truncate(outcome.Stdout, maxOutputLength)
	stderr := output.Truncate(outcome.Stderr, maxOutputLength)

	var b strings.Builder
	if payload.Kind == runner.KindScript {
		fmt.Fprintf(&b, "Script Content:\n%s\n\n", scriptPreview(payload.Text))
	} else {
		fmt.Fprintf(&b, "Command: %s\n", payload.Text)
	}
	fmt.Fprintf(&b, "Exit Code: %d\n", outcome.ExitCode)
	fmt.Fprintf(&b, "Working Directory: %s\n\n", cwd)

	if stdout != "" {
		fmt.Fprintf(&b, "STDOUT:\n%s\n", stdout)
	}
	if stderr != "" {
		fmt.Fprintf(&b, "STDERR:\n%s\n", stderr)
	}
	if stdout == "" && stderr == "" {
		b.WriteString(noOutputLine)
	}

	return b.String()
}

// PolicyMessage maps a pre-execution policy failure to its report string.
func PolicyMessage(err error) string {
	var wdErr *policy.WorkingDirError
	if errors.As(err, &wdErr) {
		return fmt.Sprintf("Error: Working directory '%s' does not exist", wdErr.Dir)
	}
	var naErr *policy.NotAllowedError
	if errors.As(err, &naErr) {
		return fmt.Sprintf("Error: Command '%s' is not allowed", naErr.Token)
	}
	return "Error: " + err.Error()
}

func scriptPreview(script string) string {
	runes := []rune(script)
	if len(runes) <= scriptPreviewLength {
		return script
	}
	return string(runes[:scriptPreviewLength]) + "..."
}
