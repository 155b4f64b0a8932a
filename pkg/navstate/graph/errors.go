package graph

import "fmt"

// ErrorCode categorizes graph-model build and resolution failures.
type ErrorCode int

const (
	// ErrCodeRouteNotFound indicates no route matched the requested path.
	ErrCodeRouteNotFound ErrorCode = iota
	// ErrCodeInvalidConfiguration indicates a build-time graph defect:
	// an unterminated alias chain, a duplicate id, or a malformed route.
	ErrCodeInvalidConfiguration
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeRouteNotFound:
		return "RouteNotFound"
	case ErrCodeInvalidConfiguration:
		return "InvalidConfiguration"
	default:
		return fmt.Sprintf("UnknownError(%d)", int(c))
	}
}

// Error is the graph package's typed failure, grounded on
// router/errors.go's RouterError: a code plus rich, formattable context.
type Error struct {
	Code    ErrorCode
	Message string
	// Unresolved is the token or path that failed to match, when relevant.
	Unresolved string
	// AvailableRoutes lists what was searched, for RouteNotFound diagnostics.
	AvailableRoutes []string
	Cause           error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Unresolved != "" {
		msg += fmt.Sprintf(" (unresolved: %q)", e.Unresolved)
	}
	if len(e.AvailableRoutes) > 0 {
		msg += fmt.Sprintf(" (available: %v)", e.AvailableRoutes)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// NewRouteNotFoundError builds a RouteNotFound error with diagnostic context.
func NewRouteNotFoundError(unresolved string, available []string) *Error {
	return &Error{
		Code:            ErrCodeRouteNotFound,
		Message:         fmt.Sprintf("no route matches %q", unresolved),
		Unresolved:      unresolved,
		AvailableRoutes: available,
	}
}

// NewInvalidConfigurationError builds an InvalidConfiguration error.
func NewInvalidConfigurationError(message string, cause error) *Error {
	return &Error{
		Code:    ErrCodeInvalidConfiguration,
		Message: message,
		Cause:   cause,
	}
}
