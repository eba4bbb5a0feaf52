package handlers

import (
	_ "embed"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rbs392/llmockapi/pkg/conversation"
)

//go:embed chat_template.html
var chatTemplate string

// chatDataPlaceholder is the line in the template replaced with the live
// conversation on every render.
const chatDataPlaceholder = "const chatData = [];"

// UI renders the conversation as a browsable HTML page. The template is
// embedded at build time and the current turns are injected on each request.
func UI(store *conversation.Store) http.HandlerFunc {
	logger := slog.Default().With("component", "server.ui")

	return func(w http.ResponseWriter, r *http.Request) {
		turns, err := json.Marshal(store.Snapshot())
		if err != nil {
			logger.Error("failed to marshal conversation for ui", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		page := strings.Replace(chatTemplate, chatDataPlaceholder,
			"const chatData = "+string(turns)+";", 1)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(page))
	}
}
