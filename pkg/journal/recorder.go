package journal

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Recorder writes exchange records to storage.
//
// Recording is best-effort: a storage failure is logged and swallowed so the
// audit trail never breaks the pipeline or the caller's response.
type Recorder struct {
	storage Storage
	logger  *slog.Logger
}

// NewRecorder creates a recorder on the given storage backend.
func NewRecorder(storage Storage) *Recorder {
	return &Recorder{
		storage: storage,
		logger:  slog.Default().With("component", "journal.recorder"),
	}
}

// Record assigns the record identity and persists it.
func (r *Recorder) Record(ctx context.Context, record *Record) {
	record.ID = uuid.NewString()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	if err := r.storage.Store(ctx, record); err != nil {
		r.logger.Error("failed to record exchange",
			"record_id", record.ID,
			"request_id", record.RequestID,
			"error", err,
		)
		return
	}

	r.logger.Debug("exchange recorded",
		"record_id", record.ID,
		"outcome", record.Outcome,
		"status", record.StatusCode,
	)
}
