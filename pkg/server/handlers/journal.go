package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rbs392/llmockapi/pkg/journal"
)

// defaultJournalLimit bounds the journal dump when no limit is given.
const defaultJournalLimit = 50

// Journal returns recent exchange records, newest first. The optional
// ?limit=N query parameter bounds the result.
func Journal(storage journal.Storage) http.HandlerFunc {
	logger := slog.Default().With("component", "server.journal")

	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultJournalLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				writeJSON(w, http.StatusBadRequest, map[string]string{
					"error": "limit must be a positive integer",
				})
				return
			}
			limit = n
		}

		records, err := storage.Recent(r.Context(), limit)
		if err != nil {
			logger.Error("failed to read journal", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "failed to read journal",
			})
			return
		}

		if records == nil {
			records = []*journal.Record{}
		}
		writeJSON(w, http.StatusOK, records)
	}
}
