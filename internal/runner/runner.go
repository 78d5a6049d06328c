package runner

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"
)

// PayloadKind distinguishes a single command line from inline script content.
type PayloadKind int

const (
	// KindCommand is a shell command string (pipes, redirection and
	// globbing are interpreted by the shell).
	KindCommand PayloadKind = iota
	// KindScript is multi-line script content passed to the
	// interpreter as a single inline argument, avoiding a second
	// round of shell quoting.
	KindScript
)

// Payload is the unit of work submitted for execution.
type Payload struct {
	Kind PayloadKind
	Text string
}

// Command wraps a shell command string as a payload.
func Command(text string) Payload {
	return Payload{Kind: KindCommand, Text: text}
}

// Script wraps inline script content as a payload.
func Script(text string) Payload {
	return Payload{Kind: KindScript, Text: text}
}

// State enumerates the terminal outcomes of one execution.
type State int

const (
	// Completed means the process exited on its own; the exit code may
	// still be non-zero.
	Completed State = iota
	// TimedOut means the deadline expired and the process was killed.
	TimedOut
	// SpawnFailed means the process never started.
	SpawnFailed
)

// Outcome is the result of one execution. Exactly one variant is
// meaningful, selected by State; the formatter never sees partial state.
type Outcome struct {
	State State

	// Completed fields.
	ExitCode int
	Stdout   string
	Stderr   string

	// TimedOut field.
	TimeoutSeconds int

	// SpawnFailed field.
	SpawnError string
}

// Runner spawns payloads through a shell interpreter. The zero value
// uses bash.
type Runner struct {
	// Shell overrides the interpreter binary.
	Shell string
}

func (r Runner) interpreter() string {
	if strings.TrimSpace(r.Shell) == "" {
		return "bash"
	}
	return r.Shell
}

// Run executes the payload in cwd under a wall-clock deadline of
// timeoutSeconds. Stdout and stderr are captured independently and
// decoded with invalid UTF-8 sequences replaced. Every failure mode is
// folded into the returned Outcome; Run never returns an error. On
// deadline expiry the spawned process is killed before Run returns.
func (r Runner) Run(ctx context.Context, payload Payload, cwd string, timeoutSeconds int) Outcome {
	runCtx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	cmd := exec.CommandContext(runCtx, r.interpreter(), "-c", payload.Text)
	cmd.Dir = cwd
	// Run the shell in its own process group and kill the whole group
	// at the deadline. Killing only the shell would orphan grandchildren
	// of compound payloads and leave them running after the call returns.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	// Backstop so Wait cannot hang on the pipes if the group kill races
	// a detached descendant.
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return Outcome{State: SpawnFailed, SpawnError: err.Error()}
	}

	err := cmd.Wait()
	if err != nil && runCtx.Err() == context.DeadlineExceeded {
		return Outcome{State: TimedOut, TimeoutSeconds: timeoutSeconds}
	}

	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}

	return Outcome{
		State:    Completed,
		ExitCode: exitCode,
		Stdout:   decode(stdout.Bytes()),
		Stderr:   decode(stderr.Bytes()),
	}
}

func decode(raw []byte) string {
	return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
}
