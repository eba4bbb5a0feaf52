package mock

import "fmt"

// InvalidBodyError indicates the inbound request body could not be decoded
// as UTF-8 text. This is a caller error; nothing is sent upstream.
type InvalidBodyError struct {
	// Message describes what is invalid about the body
	Message string
}

// Error implements the error interface.
func (e *InvalidBodyError) Error() string {
	return fmt.Sprintf("invalid request body: %s", e.Message)
}

// MalformedOutputError indicates the model's answer was not parseable JSON
// or was missing a required field after fence stripping. The exchange is
// aborted without appending an assistant turn.
type MalformedOutputError struct {
	// RawText is the model's answer text after fence stripping. Preserved so
	// operators can inspect it in logs and the exchange journal.
	RawText string

	// Message describes the validation failure
	Message string

	// Cause is the underlying parse error (if any)
	Cause error
}

// Error implements the error interface.
func (e *MalformedOutputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed model output: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed model output: %s", e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *MalformedOutputError) Unwrap() error {
	return e.Cause
}
