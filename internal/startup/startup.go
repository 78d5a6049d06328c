package startup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/codex-k8s/bash-mcp-server/internal/runner"
	"github.com/codex-k8s/bash-mcp-server/internal/settings"
)

// defaultHookTimeout applies to hooks without an explicit timeout.
const defaultHookTimeout = 30 * time.Second

// Run executes configured startup hooks sequentially through the
// command runner. The first failing hook aborts startup.
func Run(ctx context.Context, hooks []settings.HookSettings, run runner.Runner, logger *slog.Logger) error {
	for idx, hook := range hooks {
		if strings.TrimSpace(hook.Command) == "" {
			continue
		}

		timeout := defaultHookTimeout
		if strings.TrimSpace(hook.Timeout) != "" {
			parsed, err := time.ParseDuration(hook.Timeout)
			if err != nil {
				return fmt.Errorf("startup hook %d: invalid timeout: %w", idx, err)
			}
			timeout = parsed
		}

		if logger != nil {
			logger.Info("running startup hook", "index", idx)
		}

		// The runner takes whole seconds; round sub-second timeouts up
		// so a valid short timeout never becomes an expired deadline.
		seconds := int((timeout + time.Second - 1) / time.Second)
		outcome := run.Run(ctx, runner.Command(hook.Command), "", seconds)
		switch outcome.State {
		case runner.TimedOut:
			return fmt.Errorf("startup hook %d timed out after %d seconds", idx, outcome.TimeoutSeconds)
		case runner.SpawnFailed:
			return fmt.Errorf("startup hook %d failed to start: %s", idx, outcome.SpawnError)
		}

		if outcome.ExitCode != 0 {
			detail := strings.TrimSpace(outcome.Stderr)
			if detail == "" {
				detail = strings.TrimSpace(outcome.Stdout)
			}
			return fmt.Errorf("startup hook %d exited with code %d: %s", idx, outcome.ExitCode, detail)
		}
		if logger != nil && strings.TrimSpace(outcome.Stdout) != "" {
			logger.Info("startup hook output", "index", idx, "output", strings.TrimSpace(outcome.Stdout))
		}
	}
	return nil
}
