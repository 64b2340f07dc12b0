// Package observability provides the structured logger used across the
// engine: a slog wrapper that can additionally forward captured errors
// and warnings to Sentry when a DSN is configured.
package observability

import (
	"io"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
)

// CoreLogger wraps slog and optionally reports captured problems to
// Sentry. The zero-value-ish NoOp form discards everything, which is
// what tests use.
type CoreLogger struct {
	*slog.Logger
	sentryEnabled bool
}

// Params configures a CoreLogger.
type Params struct {
	// SentryDSN enables Sentry capture when non-empty.
	SentryDSN string
	// Release tags captured events with a release identifier.
	Release string
}

// NewCoreLogger builds a CoreLogger on top of an slog logger.
func NewCoreLogger(logger *slog.Logger, params Params) *CoreLogger {
	enabled := false
	if params.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:     params.SentryDSN,
			Release: params.Release,
		})
		if err != nil {
			logger.Warn("observability: sentry init failed", "error", err)
		} else {
			enabled = true
		}
	}
	return &CoreLogger{Logger: logger, sentryEnabled: enabled}
}

// NewNoOpLogger returns a logger that discards all messages.
//
// Used for testing.
func NewNoOpLogger() *CoreLogger {
	return &CoreLogger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// With returns a derived logger carrying the given attributes.
func (cl *CoreLogger) With(args ...any) *CoreLogger {
	return &CoreLogger{
		Logger:        cl.Logger.With(args...),
		sentryEnabled: cl.sentryEnabled,
	}
}

// CaptureError logs an error and sends it to Sentry when enabled.
func (cl *CoreLogger) CaptureError(err error, args ...any) {
	cl.Error(err.Error(), args...)
	if cl.sentryEnabled {
		sentry.CaptureException(err)
	}
}

// CaptureWarn logs a warning and sends it to Sentry when enabled.
func (cl *CoreLogger) CaptureWarn(msg string, args ...any) {
	cl.Warn(msg, args...)
	if cl.sentryEnabled {
		sentry.CaptureMessage(msg)
	}
}

// Flush waits for queued Sentry events to be delivered before the
// process exits.
func (cl *CoreLogger) Flush(timeout time.Duration) {
	if cl.sentryEnabled {
		sentry.Flush(timeout)
	}
}
