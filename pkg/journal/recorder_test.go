package journal

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRecorderAssignsIdentity(t *testing.T) {
	storage := NewMemoryStorage()
	recorder := NewRecorder(storage)

	recorder.Record(context.Background(), &Record{
		RequestID: "req-1",
		Method:    "GET",
		Path:      "/widgets/7",
		Outcome:   "success",
	})

	records, err := storage.Recent(context.Background(), 1)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("stored %d records, want 1", len(records))
	}
	if records[0].ID == "" {
		t.Error("record has no assigned ID")
	}
	if records[0].CreatedAt.IsZero() {
		t.Error("record has no timestamp")
	}
}

func TestRecorderAssignsUniqueIDs(t *testing.T) {
	storage := NewMemoryStorage()
	recorder := NewRecorder(storage)

	for i := 0; i < 3; i++ {
		recorder.Record(context.Background(), &Record{Outcome: "success"})
	}

	records, _ := storage.Recent(context.Background(), 10)
	ids := map[string]bool{}
	for _, rec := range records {
		if ids[rec.ID] {
			t.Errorf("duplicate record ID %q", rec.ID)
		}
		ids[rec.ID] = true
	}
}

// failingStorage always errors on Store.
type failingStorage struct {
	MemoryStorage
}

func (f *failingStorage) Store(context.Context, *Record) error {
	return errors.New("disk full")
}

func TestRecorderSwallowsStorageFailure(t *testing.T) {
	recorder := NewRecorder(&failingStorage{})

	// Must not panic or propagate; recording is best-effort.
	recorder.Record(context.Background(), &Record{Outcome: "success", CreatedAt: time.Now()})
}
