package journal

import (
	"context"
	"time"
)

// Record is the audit entry for a single pipeline exchange.
type Record struct {
	// ID is a UUID assigned by the recorder.
	ID string `json:"id"`

	// RequestID correlates the record with server logs.
	RequestID string `json:"request_id"`

	// Method and Path are the inbound request line.
	Method string `json:"method"`
	Path   string `json:"path"`

	// Outcome is "success" or the error kind that aborted the exchange.
	Outcome string `json:"outcome"`

	// StatusCode is the status returned to the caller.
	StatusCode int `json:"status_code"`

	// Error is the error text for failed exchanges (empty on success).
	// For rejected model output this includes the raw answer text.
	Error string `json:"error,omitempty"`

	// UpstreamLatency is the provider round-trip duration.
	UpstreamLatency time.Duration `json:"upstream_latency"`

	// Turns is the conversation length after the exchange.
	Turns int `json:"turns"`

	// CreatedAt is when the record was written.
	CreatedAt time.Time `json:"created_at"`
}

// Storage is the persistence interface for journal records.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists a record.
	Store(ctx context.Context, record *Record) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]*Record, error)

	// Count returns the total number of records.
	Count(ctx context.Context) (int64, error)

	// DeleteBefore removes records created before the cutoff and returns
	// the number deleted.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteOverCount removes the oldest records beyond max and returns the
	// number deleted.
	DeleteOverCount(ctx context.Context, max int64) (int64, error)

	// Close releases storage resources.
	Close() error
}
