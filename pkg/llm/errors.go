package llm

import "fmt"

// UnreachableError represents a network-level failure contacting the
// provider: connection refused, DNS failure, timeout before a response.
type UnreachableError struct {
	// BaseURL is the provider endpoint that could not be reached
	BaseURL string

	// Cause is the underlying transport error
	Cause error
}

// Error implements the error interface.
func (e *UnreachableError) Error() string {
	return fmt.Sprintf("upstream %q unreachable: %v", e.BaseURL, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *UnreachableError) Unwrap() error {
	return e.Cause
}

// ProtocolError represents a provider that responded, but not with the
// expected chat-completion envelope: a non-2xx status, unparseable JSON, or
// an envelope with no choices.
type ProtocolError struct {
	// StatusCode is the upstream HTTP status (0 if the body was the problem)
	StatusCode int

	// Message describes what was wrong with the response
	Message string

	// Cause is the underlying error (if any)
	Cause error
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream protocol error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream protocol error: %s", e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *ProtocolError) Unwrap() error {
	return e.Cause
}
