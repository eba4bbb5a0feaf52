package handlers

import (
	"net/http"

	"github.com/rbs392/llmockapi/pkg/conversation"
)

// Messages dumps the full conversation as a JSON array of turns.
func Messages(store *conversation.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.Snapshot())
	}
}
