package telemetry

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryReporter sends guard panics and transaction errors to Sentry. It's
// the production-grade ErrorReporter; ConsoleReporter covers local
// development.
//
// Grounded on observability/sentry_reporter.go's hub.WithScope usage,
// generalized from component/event tags to graph/route tags.
type SentryReporter struct {
	hub *sentry.Hub
}

// SentryOption configures the underlying Sentry client.
type SentryOption func(*sentry.ClientOptions)

// WithDebug enables Sentry SDK debug logging.
func WithDebug(debug bool) SentryOption {
	return func(opts *sentry.ClientOptions) { opts.Debug = debug }
}

// WithEnvironment tags every event with environment.
func WithEnvironment(environment string) SentryOption {
	return func(opts *sentry.ClientOptions) { opts.Environment = environment }
}

// NewSentryReporter initializes the Sentry SDK with dsn and returns a
// reporter bound to the current hub. An empty dsn disables sending, which
// is useful for tests.
func NewSentryReporter(dsn string, opts ...SentryOption) (*SentryReporter, error) {
	clientOpts := sentry.ClientOptions{Dsn: dsn}
	for _, opt := range opts {
		opt(&clientOpts)
	}
	if err := sentry.Init(clientOpts); err != nil {
		return nil, fmt.Errorf("navstate/telemetry: failed to initialize Sentry: %w", err)
	}
	return &SentryReporter{hub: sentry.CurrentHub()}, nil
}

func (r *SentryReporter) ReportPanic(err *GuardPanicError, ctx *ErrorContext) {
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("graph_id", ctx.GraphID)
		scope.SetTag("route", ctx.Route)
		scope.SetTag("event", ctx.EventName)
		for k, v := range ctx.Tags {
			scope.SetTag(k, v)
		}
		scope.SetExtra("panic_value", err.PanicValue)
		for k, v := range ctx.Extra {
			scope.SetExtra(k, v)
		}
		r.hub.CaptureException(fmt.Errorf("navstate: guard panic for graph %q route %q: %v",
			ctx.GraphID, ctx.Route, err.PanicValue))
	})
}

func (r *SentryReporter) ReportError(err error, ctx *ErrorContext) {
	r.hub.WithScope(func(scope *sentry.Scope) {
		if ctx != nil {
			scope.SetTag("graph_id", ctx.GraphID)
			scope.SetTag("route", ctx.Route)
			scope.SetTag("event", ctx.EventName)
			for k, v := range ctx.Tags {
				scope.SetTag(k, v)
			}
		}
		r.hub.CaptureException(err)
	})
}

func (r *SentryReporter) Flush(timeout time.Duration) error {
	if r.hub.Flush(timeout) {
		return nil
	}
	return fmt.Errorf("navstate/telemetry: sentry flush timed out after %s", timeout)
}
