package telemetry

import (
	"log"
	"sync"
	"time"
)

// ConsoleReporter logs guard panics and transaction errors to the standard
// logger. It's the development-mode backend; production callers typically
// wire a real APM/error-tracking client behind the same ErrorReporter
// interface instead.
type ConsoleReporter struct {
	verbose bool
	mu      sync.Mutex
}

// NewConsoleReporter builds a ConsoleReporter. With verbose, stack traces
// are included in the log output.
func NewConsoleReporter(verbose bool) *ConsoleReporter {
	return &ConsoleReporter{verbose: verbose}
}

func (r *ConsoleReporter) ReportPanic(err *GuardPanicError, ctx *ErrorContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.Printf("navstate: guard panic: %v (graph=%s route=%s)", err, ctx.GraphID, ctx.Route)
	if r.verbose && ctx != nil && ctx.StackTrace != nil {
		log.Printf("navstate: stack trace:\n%s", ctx.StackTrace)
	}
}

func (r *ConsoleReporter) ReportError(err error, ctx *ErrorContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ctx != nil {
		log.Printf("navstate: error in %s: %v (graph=%s route=%s)", ctx.EventName, err, ctx.GraphID, ctx.Route)
		return
	}
	log.Printf("navstate: error: %v", err)
}

func (r *ConsoleReporter) Flush(timeout time.Duration) error {
	return nil
}
