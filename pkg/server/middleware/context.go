// Package middleware provides HTTP middleware for the llmockapi server.
package middleware

// contextKey is a private type for context values to avoid collisions.
type contextKey string

const (
	// RequestIDKey is the context key for the request ID.
	RequestIDKey contextKey = "request_id"
)
