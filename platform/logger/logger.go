// Package logger wraps slog with the event helpers the modules log
// through. Development gets readable text at debug level, everything
// else JSON at info.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

type contextKey string

const (
	// RequestIDKey carries the request ID through context.
	RequestIDKey contextKey = "request_id"
	// OperatorKey carries the authenticated operator email through context.
	OperatorKey contextKey = "operator"
)

// Logger embeds *slog.Logger so call sites keep the full slog API.
type Logger struct {
	*slog.Logger
}

// New builds a logger for the given environment.
func New(env string) *Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	var handler slog.Handler
	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// WithContext attaches the request ID and operator from ctx, when set.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	out := l

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		out = out.WithRequestID(requestID)
	}

	if operator, ok := ctx.Value(OperatorKey).(string); ok && operator != "" {
		out = &Logger{Logger: out.With(slog.String("operator", operator))}
	}

	return out
}

// WithRequestID attaches a request ID attribute.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{Logger: l.With(slog.String("request_id", requestID))}
}

// HTTPRequest logs one handled request.
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// AuthEvent logs a login attempt. Failures carry the internal reason;
// the HTTP response stays opaque.
func (l *Logger) AuthEvent(event, email string, success bool, reason string) {
	if success {
		l.Info("auth_event",
			slog.String("event", event),
			slog.String("email", email),
			slog.Bool("success", success),
		)
		return
	}
	l.Warn("auth_event",
		slog.String("event", event),
		slog.String("email", email),
		slog.Bool("success", success),
		slog.String("reason", reason),
	)
}

// DocumentEvent logs a document intake outcome.
func (l *Logger) DocumentEvent(leadID, docType, status string, attempts int) {
	l.Info("document_event",
		slog.String("lead_id", leadID),
		slog.String("doc_type", docType),
		slog.String("status", status),
		slog.Int("attempts", attempts),
	)
}

// StageEvent logs an activation stage transition.
func (l *Logger) StageEvent(leadID, stage, status string) {
	l.Info("stage_event",
		slog.String("lead_id", leadID),
		slog.String("stage", stage),
		slog.String("status", status),
	)
}

// RateLimitExceeded logs a rejected request.
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
