package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/bash-mcp-server/internal/output"
	"github.com/codex-k8s/bash-mcp-server/internal/policy"
	"github.com/codex-k8s/bash-mcp-server/internal/report"
	"github.com/codex-k8s/bash-mcp-server/internal/runner"
)

const testMaxOutput = 10000

func TestRenderCompletedCommand(t *testing.T) {
	outcome := runner.Outcome{State: runner.Completed, ExitCode: 0, Stdout: "a\n"}
	got := report.Render(runner.Command("echo a"), "/tmp", outcome, testMaxOutput)

	require.Equal(t, "Command: echo a\nExit Code: 0\nWorking Directory: /tmp\n\nSTDOUT:\na\n\n", got)
}

func TestRenderCompletedWithStderr(t *testing.T) {
	outcome := runner.Outcome{State: runner.Completed, ExitCode: 1, Stdout: "out\n", Stderr: "err\n"}
	got := report.Render(runner.Command("thing"), "/tmp", outcome, testMaxOutput)

	require.Contains(t, got, "Exit Code: 1\n")
	require.Contains(t, got, "STDOUT:\nout\n\n")
	require.Contains(t, got, "STDERR:\nerr\n\n")
	require.NotContains(t, got, "No output produced.")
}

func TestRenderNoOutput(t *testing.T) {
	outcome := runner.Outcome{State: runner.Completed, ExitCode: 0}
	got := report.Render(runner.Command("true"), "/tmp", outcome, testMaxOutput)

	require.Contains(t, got, "No output produced.\n")
	require.NotContains(t, got, "STDOUT:")
	require.NotContains(t, got, "STDERR:")
}

func TestRenderTruncatesEachStream(t *testing.T) {
	outcome := runner.Outcome{
		State:    runner.Completed,
		ExitCode: 0,
		Stdout:   strings.Repeat("o", 50),
		Stderr:   strings.Repeat("e", 50),
	}
	got := report.Render(runner.Command("noisy"), "/tmp", outcome, 10)

	require.Contains(t, got, "STDOUT:\n"+strings.Repeat("o", 10)+output.Marker)
	require.Contains(t, got, "STDERR:\n"+strings.Repeat("e", 10)+output.Marker)
}

func TestRenderScriptHeaderPreviewsContent(t *testing.T) {
	script := "echo a"
	outcome := runner.Outcome{State: runner.Completed, ExitCode: 0, Stdout: "a\n"}
	got := report.Render(runner.Script(script), "/tmp", outcome, testMaxOutput)

	require.True(t, strings.HasPrefix(got, "Script Content:\necho a\n\n"))
	require.NotContains(t, got, "Command: echo a")
	require.Contains(t, got, "Exit Code: 0\n")
}

func TestRenderScriptPreviewBoundedAt200Chars(t *testing.T) {
	script := strings.Repeat("x", 300)
	outcome := runner.Outcome{State: runner.Completed, ExitCode: 0}
	got := report.Render(runner.Script(script), "/tmp", outcome, testMaxOutput)

	require.Contains(t, got, "Script Content:\n"+strings.Repeat("x", 200)+"...\n\n")
	require.NotContains(t, got, strings.Repeat("x", 201))
}

func TestRenderTimedOut(t *testing.T) {
	outcome := runner.Outcome{State: runner.TimedOut, TimeoutSeconds: 5}

	got := report.Render(runner.Command("sleep 30"), "/tmp", outcome, testMaxOutput)
	require.Equal(t, "Error: Command 'sleep 30' timed out after 5 seconds", got)

	got = report.Render(runner.Script("sleep 30"), "/tmp", outcome, testMaxOutput)
	require.Equal(t, "Error: Script timed out after 5 seconds", got)
}

func TestRenderSpawnFailed(t *testing.T) {
	outcome := runner.Outcome{State: runner.SpawnFailed, SpawnError: "permission denied"}

	got := report.Render(runner.Command("thing"), "/tmp", outcome, testMaxOutput)
	require.Equal(t, "Error executing command 'thing': permission denied", got)

	got = report.Render(runner.Script("thing"), "/tmp", outcome, testMaxOutput)
	require.Equal(t, "Error executing script: permission denied", got)
}

func TestPolicyMessages(t *testing.T) {
	require.Equal(t,
		"Error: Working directory '/nope' does not exist",
		report.PolicyMessage(&policy.WorkingDirError{Dir: "/nope"}))
	require.Equal(t,
		"Error: Command 'rm' is not allowed",
		report.PolicyMessage(&policy.NotAllowedError{Token: "rm"}))
}
