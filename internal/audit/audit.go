package audit

import (
	"context"
	"log/slog"
)

// Event represents an audit entry for one tool invocation.
type Event struct {
	// Type describes the event kind (tool_call, tool_ok, tool_denied,
	// tool_timeout, tool_spawn_failed).
	Type string
	// Tool is the tool name.
	Tool string
	// CorrelationID links related events within one call.
	CorrelationID string
	// Detail carries a short human-readable summary.
	Detail string
}

// Logger records audit events.
type Logger interface {
	// Record stores an audit event.
	Record(ctx context.Context, event Event)
}

// StdLogger writes audit events to slog.
type StdLogger struct {
	logger *slog.Logger
}

// New returns a StdLogger.
func New(logger *slog.Logger) *StdLogger {
	return &StdLogger{logger: logger}
}

// Record logs an audit event.
func (l *StdLogger) Record(_ context.Context, event Event) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Info("audit",
		"type", event.Type,
		"tool", event.Tool,
		"correlation_id", event.CorrelationID,
		"detail", event.Detail,
	)
}
