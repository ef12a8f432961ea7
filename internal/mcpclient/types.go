package mcpclient

import "fmt"

// SessionError represents a failure to establish or initialize a tool
// session. Operations on an established session return plain wrapped
// errors or *ToolError instead.
type SessionError struct {
	// Op is the phase that failed ("connect" or "initialize")
	Op string

	// Transport is the transport kind name ("stdio" or "http")
	Transport string

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *SessionError) Error() string {
	return fmt.Sprintf("mcp session %s (%s): %v", e.Op, e.Transport, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *SessionError) Unwrap() error {
	return e.Err
}

// ToolError represents a failed tool invocation, carrying the tool name
// so callers can classify the failure.
type ToolError struct {
	// Tool is the name of the tool that was invoked
	Tool string

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *ToolError) Error() string {
	return fmt.Sprintf("mcp tool %s: %v", e.Tool, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *ToolError) Unwrap() error {
	return e.Err
}
