// Package telemetry is navstate's pluggable observability surface: error
// reporting for guard panics/failures and Prometheus metrics for navigation
// throughput.
//
// Grounded on observability/reporter.go's ErrorReporter interface and
// console_reporter.go's development backend, generalized from component
// event handlers to guard evaluation and transaction commits.
package telemetry

import "time"

// GuardPanicError wraps a panic recovered from a GuardFunc so navigation can
// continue (as a Reject) instead of crashing the host program.
type GuardPanicError struct {
	GraphID    string
	Route      string
	PanicValue interface{}
}

func (e *GuardPanicError) Error() string {
	return "navstate: guard panicked for graph " + e.GraphID + " route " + e.Route
}

// ErrorContext carries the circumstances around a reported error: which
// guard or transaction it happened in and when.
type ErrorContext struct {
	GraphID    string
	Route      string
	EventName  string
	Timestamp  time.Time
	Tags       map[string]string
	Extra      map[string]interface{}
	StackTrace []byte
}

// ErrorReporter is a pluggable backend for guard panics and transaction
// errors. A nil reporter means errors are silently dropped — callers should
// always nil-check before invoking one (design note: zero overhead when
// telemetry isn't configured).
type ErrorReporter interface {
	ReportPanic(err *GuardPanicError, ctx *ErrorContext)
	ReportError(err error, ctx *ErrorContext)
	Flush(timeout time.Duration) error
}
