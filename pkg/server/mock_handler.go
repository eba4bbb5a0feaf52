package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rbs392/llmockapi/pkg/conversation"
	"github.com/rbs392/llmockapi/pkg/journal"
	"github.com/rbs392/llmockapi/pkg/mock"
	"github.com/rbs392/llmockapi/pkg/server/middleware"
	"github.com/rbs392/llmockapi/pkg/telemetry/metrics"
)

// mockHandler feeds every non-diagnostic request through the pipeline and
// writes the synthesized response back to the caller.
type mockHandler struct {
	pipeline *mock.Pipeline
	store    *conversation.Store
	metrics  *metrics.Metrics
	recorder *journal.Recorder
	logger   *slog.Logger
}

func newMockHandler(pipeline *mock.Pipeline, store *conversation.Store, m *metrics.Metrics, recorder *journal.Recorder) *mockHandler {
	return &mockHandler{
		pipeline: pipeline,
		store:    store,
		metrics:  m,
		recorder: recorder,
		logger:   slog.Default().With("component", "server.mock"),
	}
}

func (h *mockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, err := buildRequest(w, r)
	if err != nil {
		h.logger.Error("failed to read request body",
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	result, err := h.pipeline.Execute(r.Context(), req)
	total := time.Since(start)

	if err != nil {
		status, outcome := classify(err)
		h.observe(r, req, outcome, status, err, result.UpstreamLatency, total)
		writeError(w, status, err.Error())
		return
	}

	h.observe(r, req, metrics.OutcomeSuccess, result.Response.StatusCode, nil, result.UpstreamLatency, total)

	for name, value := range result.Response.Headers {
		w.Header().Set(name, value)
	}
	w.WriteHeader(result.Response.StatusCode)
	_, _ = w.Write(result.Response.Body)
}

// observe records metrics and the journal entry for one exchange.
func (h *mockHandler) observe(r *http.Request, req mock.Request, outcome string, status int, err error, upstream, total time.Duration) {
	if h.metrics != nil {
		h.metrics.RecordExchange(outcome, total, upstream)
		h.metrics.SetConversationTurns(h.store.Len())
	}

	if h.recorder != nil {
		record := &journal.Record{
			RequestID:       middleware.GetRequestID(r.Context()),
			Method:          req.Method,
			Path:            req.Path,
			Outcome:         outcome,
			StatusCode:      status,
			UpstreamLatency: upstream,
			Turns:           h.store.Len(),
		}
		if err != nil {
			record.Error = err.Error()
			if mo, ok := err.(*mock.MalformedOutputError); ok && mo.RawText != "" {
				record.Error += "; raw text: " + mo.RawText
			}
		}
		h.recorder.Record(r.Context(), record)
	}

	if err != nil {
		h.logger.Warn("exchange failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"method", req.Method,
			"path", req.Path,
			"outcome", outcome,
			"status", status,
			"error", err,
		)
	}
}

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
