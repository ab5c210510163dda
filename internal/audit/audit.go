package audit

import (
	"context"
	"log/slog"
	"time"
)

type ctxKey struct{}

// WithRequestID attaches the request id that audit records are correlated by.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}

// Logger writes audit records for privileged and state-changing actions.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates an audit logger. A nil slog logger discards records.
func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

// LogAction records one audited action.
func (al *Logger) LogAction(ctx context.Context, actorID, action, resource, resourceID, status, details string) {
	if al == nil || al.logger == nil {
		return
	}
	al.logger.InfoContext(ctx, "audit",
		slog.String("action", action),
		slog.String("resource", resource),
		slog.String("resource_id", resourceID),
		slog.String("actor_id", actorID),
		slog.String("status", status),
		slog.String("details", details),
		slog.String("request_id", RequestID(ctx)),
		slog.Time("timestamp", time.Now()),
	)
}

// LogRoleTransition records a role change driven by restaurant creation or removal.
func (al *Logger) LogRoleTransition(ctx context.Context, actorID, userID, from, to string) {
	al.LogAction(ctx, actorID, "role_transition", "user", userID, "success", from+"->"+to)
}

// LogDenied records a rejected privileged call.
func (al *Logger) LogDenied(ctx context.Context, actorID, action, reason string) {
	al.LogAction(ctx, actorID, action, "api", "", "denied", reason)
}
