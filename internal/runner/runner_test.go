package runner_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/bash-mcp-server/internal/runner"
)

func TestRunCapturesStdout(t *testing.T) {
	var r runner.Runner
	outcome := r.Run(context.Background(), runner.Command("echo a"), t.TempDir(), 10)

	require.Equal(t, runner.Completed, outcome.State)
	require.Equal(t, 0, outcome.ExitCode)
	require.Equal(t, "a\n", outcome.Stdout)
	require.Empty(t, outcome.Stderr)
}

func TestRunCapturesStderrIndependently(t *testing.T) {
	var r runner.Runner
	outcome := r.Run(context.Background(), runner.Command("echo out; echo err >&2"), t.TempDir(), 10)

	require.Equal(t, runner.Completed, outcome.State)
	require.Equal(t, "out\n", outcome.Stdout)
	require.Equal(t, "err\n", outcome.Stderr)
}

func TestRunPreservesExitCode(t *testing.T) {
	var r runner.Runner
	outcome := r.Run(context.Background(), runner.Command("exit 7"), t.TempDir(), 10)

	require.Equal(t, runner.Completed, outcome.State)
	require.Equal(t, 7, outcome.ExitCode)
}

func TestRunRespectsWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	var r runner.Runner
	outcome := r.Run(context.Background(), runner.Command("pwd"), dir, 10)

	require.Equal(t, runner.Completed, outcome.State)
	// bash may report a resolved path; compare without symlinks in play
	// by checking the trailing component.
	require.True(t, strings.HasSuffix(strings.TrimSpace(outcome.Stdout), lastComponent(dir)))
}

func TestRunScriptPayload(t *testing.T) {
	script := "set -e\necho first\necho second"
	var r runner.Runner
	outcome := r.Run(context.Background(), runner.Script(script), t.TempDir(), 10)

	require.Equal(t, runner.Completed, outcome.State)
	require.Equal(t, 0, outcome.ExitCode)
	require.Equal(t, "first\nsecond\n", outcome.Stdout)
}

func TestRunTimeoutKillsProcess(t *testing.T) {
	var r runner.Runner
	start := time.Now()
	outcome := r.Run(context.Background(), runner.Command("sleep 30"), t.TempDir(), 1)
	elapsed := time.Since(start)

	require.Equal(t, runner.TimedOut, outcome.State)
	require.Equal(t, 1, outcome.TimeoutSeconds)
	// The call must come back near the deadline, not after the sleep:
	// the process is killed, not awaited.
	require.Less(t, elapsed, 10*time.Second)
}

func TestRunTimeoutKillsWholeProcessTree(t *testing.T) {
	// A compound script makes the sleep a grandchild of the runner:
	// killing only the shell would leave it behind. The sleep argument
	// is unique so the process table can be checked afterwards.
	marker := fmt.Sprintf("sleep 31.%06d", os.Getpid())
	script := marker + "\ntrue"

	var r runner.Runner
	start := time.Now()
	outcome := r.Run(context.Background(), runner.Script(script), t.TempDir(), 1)
	elapsed := time.Since(start)

	require.Equal(t, runner.TimedOut, outcome.State)
	// The group kill closes every pipe holder, so the call comes back
	// near the deadline instead of waiting out the WaitDelay backstop.
	require.Less(t, elapsed, 3*time.Second)

	// Process-table check: nothing from the spawned tree survives.
	out, err := exec.Command("pgrep", "-f", marker).Output()
	require.Error(t, err, "timed-out process tree still alive: %s", out)
}

func TestRunSpawnFailure(t *testing.T) {
	r := runner.Runner{Shell: "/nonexistent/interpreter"}
	outcome := r.Run(context.Background(), runner.Command("echo a"), t.TempDir(), 10)

	require.Equal(t, runner.SpawnFailed, outcome.State)
	require.NotEmpty(t, outcome.SpawnError)
}

func TestRunReplacesInvalidUTF8(t *testing.T) {
	var r runner.Runner
	outcome := r.Run(context.Background(), runner.Command(`printf '\xff\xfe'`), t.TempDir(), 10)

	require.Equal(t, runner.Completed, outcome.State)
	require.True(t, utf8.ValidString(outcome.Stdout))
	require.Contains(t, outcome.Stdout, string(utf8.RuneError))
}

func lastComponent(path string) string {
	parts := strings.Split(strings.TrimRight(path, "/"), "/")
	return parts[len(parts)-1]
}
