package policy

import (
	"fmt"
	"os"

	"github.com/google/shlex"
)

// DefaultTimeoutSeconds applies when neither the call nor the
// configuration sets a timeout.
const DefaultTimeoutSeconds = 30

// Config holds process-wide execution policy, immutable after startup.
type Config struct {
	// DefaultTimeoutSeconds is used when a call does not override the timeout.
	DefaultTimeoutSeconds int
	// AllowedCommands lists permitted leading command tokens. Empty allows all.
	AllowedCommands []string
}

// Request carries the per-call overrides submitted with an execution.
type Request struct {
	// WorkingDirectory optionally overrides the process working directory.
	WorkingDirectory string
	// TimeoutSeconds optionally overrides the default timeout.
	TimeoutSeconds int
}

// Context is the resolved execution context for a single call.
type Context struct {
	// Cwd is the directory the process is started in.
	Cwd string
	// TimeoutSeconds is the effective wall-clock deadline.
	TimeoutSeconds int
}

// WorkingDirError reports an explicitly requested working directory
// that does not exist on disk.
type WorkingDirError struct {
	Dir string
}

func (e *WorkingDirError) Error() string {
	return fmt.Sprintf("working directory %q does not exist", e.Dir)
}

// NotAllowedError reports a command whose leading token is absent from
// the configured allow-list.
type NotAllowedError struct {
	Token string
}

func (e *NotAllowedError) Error() string {
	return fmt.Sprintf("command %q is not allowed", e.Token)
}

// Resolver validates requests against the configured policy.
type Resolver struct {
	cfg     Config
	allowed map[string]struct{}
}

// NewResolver builds a resolver for the given policy configuration.
func NewResolver(cfg Config) *Resolver {
	resolver := &Resolver{cfg: cfg}
	if len(cfg.AllowedCommands) > 0 {
		resolver.allowed = make(map[string]struct{}, len(cfg.AllowedCommands))
		for _, token := range cfg.AllowedCommands {
			resolver.allowed[token] = struct{}{}
		}
	}
	return resolver
}

// Resolve produces the effective working directory and timeout for a
// request. It fails before anything is spawned when an explicitly
// requested working directory does not exist; the implicit default is
// never validated.
func (r *Resolver) Resolve(req Request) (Context, error) {
	cwd := req.WorkingDirectory
	if cwd == "" {
		if wd, err := os.Getwd(); err == nil {
			cwd = wd
		}
	} else if _, err := os.Stat(cwd); err != nil {
		return Context{}, &WorkingDirError{Dir: cwd}
	}

	timeout := req.TimeoutSeconds
	if timeout <= 0 {
		timeout = r.cfg.DefaultTimeoutSeconds
	}
	if timeout <= 0 {
		timeout = DefaultTimeoutSeconds
	}

	return Context{Cwd: cwd, TimeoutSeconds: timeout}, nil
}

// CheckCommand enforces the allow-list on a command payload. The
// leading token is extracted with shell quoting rules. Script payloads
// are never checked: script content is assumed to come from a trusted
// caller, so the allow-list can be bypassed by routing a command
// through the script tool. Known gap, kept deliberately.
func (r *Resolver) CheckCommand(command string) error {
	if len(r.allowed) == 0 {
		return nil
	}
	parts, err := shlex.Split(command)
	if err != nil || len(parts) == 0 {
		return &NotAllowedError{Token: command}
	}
	if _, ok := r.allowed[parts[0]]; !ok {
		return &NotAllowedError{Token: parts[0]}
	}
	return nil
}
