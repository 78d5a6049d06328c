package startup_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/bash-mcp-server/internal/runner"
	"github.com/codex-k8s/bash-mcp-server/internal/settings"
	"github.com/codex-k8s/bash-mcp-server/internal/startup"
)

func TestRunExecutesHooksInOrder(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "marker")
	hooks := []settings.HookSettings{
		{Command: "echo first > " + marker},
		{Command: "echo second >> " + marker},
	}

	err := startup.Run(context.Background(), hooks, runner.Runner{}, nil)
	require.NoError(t, err)

	content, readErr := os.ReadFile(marker)
	require.NoError(t, readErr)
	require.Equal(t, "first\nsecond\n", string(content))
}

func TestRunFailsOnNonZeroExit(t *testing.T) {
	hooks := []settings.HookSettings{{Command: "echo broken >&2; exit 3"}}

	err := startup.Run(context.Background(), hooks, runner.Runner{}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "exited with code 3")
	require.Contains(t, err.Error(), "broken")
}

func TestRunFailsOnTimeout(t *testing.T) {
	hooks := []settings.HookSettings{{Command: "sleep 30", Timeout: "1s"}}

	err := startup.Run(context.Background(), hooks, runner.Runner{}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "timed out")
}

func TestRunHonorsSubSecondTimeout(t *testing.T) {
	// 500ms is valid per settings validation; it must round up to a
	// usable deadline, not truncate to an already-expired one.
	hooks := []settings.HookSettings{{Command: "echo ok", Timeout: "500ms"}}
	require.NoError(t, startup.Run(context.Background(), hooks, runner.Runner{}, nil))
}

func TestRunSkipsBlankHooks(t *testing.T) {
	hooks := []settings.HookSettings{{Command: "   "}}
	require.NoError(t, startup.Run(context.Background(), hooks, runner.Runner{}, nil))
}
