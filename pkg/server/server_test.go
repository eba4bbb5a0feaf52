package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rbs392/llmockapi/internal/llmtest"
	"github.com/rbs392/llmockapi/pkg/config"
	"github.com/rbs392/llmockapi/pkg/conversation"
	"github.com/rbs392/llmockapi/pkg/journal"
	"github.com/rbs392/llmockapi/pkg/llm"
	"github.com/rbs392/llmockapi/pkg/mock"
	"github.com/rbs392/llmockapi/pkg/telemetry/metrics"
)

// testHarness wires a full server against a scriptable upstream.
type testHarness struct {
	upstream *llmtest.Upstream
	store    *conversation.Store
	journal  journal.Storage
	server   *httptest.Server
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	upstream := llmtest.NewUpstream()
	t.Cleanup(upstream.Close)

	store := conversation.NewStore("system prompt")
	client := llm.NewClient(llm.ClientConfig{
		BaseURL: upstream.URL(),
		APIKey:  "test-key",
		Model:   "anthropic/claude-haiku-4.5",
		Timeout: 5 * time.Second,
	})
	t.Cleanup(client.Close)

	storage := journal.NewMemoryStorage()
	m := metrics.New(config.MetricsConfig{Enabled: true, Namespace: "llmockapi"})

	srv := New(config.ServerConfig{ListenAddress: "localhost:0"}, Options{
		Pipeline: mock.NewPipeline(store, client),
		Store:    store,
		Metrics:  m,
		Journal:  storage,
		Recorder: journal.NewRecorder(storage),
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &testHarness{
		upstream: upstream,
		store:    store,
		journal:  storage,
		server:   ts,
	}
}

func (h *testHarness) do(t *testing.T, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, h.server.URL+path, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return body
}

func TestMockExchangeFiltersCredentials(t *testing.T) {
	h := newHarness(t)
	h.upstream.Enqueue(llmtest.Answer{
		Content: `{"content":{"id":7},"status_code":200,"headers":{}}`,
	})

	resp := h.do(t, http.MethodGet, "/widgets/7", nil, map[string]string{
		"Authorization": "Bearer caller-secret",
		"Accept":        "application/json",
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	requests := h.upstream.Requests()
	if len(requests) != 1 {
		t.Fatalf("upstream calls = %d, want 1", len(requests))
	}

	userTurn := requests[0].Messages[len(requests[0].Messages)-1]["content"]
	if !strings.Contains(userTurn, "GET /widgets/7 HTTP/1.1") {
		t.Errorf("transcription missing request line: %q", userTurn)
	}
	if strings.Contains(userTurn, "caller-secret") || strings.Contains(strings.ToLower(userTurn), "authorization") {
		t.Errorf("caller credentials leaked upstream: %q", userTurn)
	}
	if !strings.Contains(userTurn, "Accept: application/json") {
		t.Errorf("non-credential header missing from transcription: %q", userTurn)
	}
}

func TestMockExchangeFencedReply(t *testing.T) {
	h := newHarness(t)
	h.upstream.Enqueue(llmtest.Answer{
		Content: "```json\n{\"content\":{\"id\":7},\"status_code\":200,\"headers\":{}}\n```",
	})

	resp := h.do(t, http.MethodGet, "/widgets/7", nil, nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]any
	if err := json.Unmarshal(readBody(t, resp), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["id"] != float64(7) {
		t.Errorf("body = %v, want {\"id\":7}", body)
	}
}

func TestMockExchangeReplaysModelHeaders(t *testing.T) {
	h := newHarness(t)
	h.upstream.Enqueue(llmtest.Answer{
		Content: `{"content":"created","status_code":201,"headers":{"Location":"/orders/99","X-Mock":"1"}}`,
	})

	resp := h.do(t, http.MethodPost, "/orders", strings.NewReader(`{"sku":"a"}`), nil)

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != "/orders/99" {
		t.Errorf("Location = %q", got)
	}
	if got := resp.Header.Get("X-Mock"); got != "1" {
		t.Errorf("X-Mock = %q", got)
	}
}

func TestMockExchangeErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		answer     llmtest.Answer
		wantStatus int
	}{
		{
			name:       "malformed model output",
			answer:     llmtest.Answer{Content: "not json"},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "upstream protocol error",
			answer:     llmtest.Answer{StatusCode: http.StatusInternalServerError, Raw: "boom"},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.upstream.Enqueue(tt.answer)

			resp := h.do(t, http.MethodGet, "/widgets/7", nil, nil)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			var body map[string]string
			if err := json.Unmarshal(readBody(t, resp), &body); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if body["error"] == "" {
				t.Error("error body has no message")
			}
		})
	}
}

func TestMockExchangeUnreachableUpstream(t *testing.T) {
	upstream := llmtest.NewUpstream()
	baseURL := upstream.URL()
	upstream.Close() // nothing listening anymore

	store := conversation.NewStore("system prompt")
	client := llm.NewClient(llm.ClientConfig{BaseURL: baseURL, Timeout: time.Second})
	defer client.Close()

	srv := New(config.ServerConfig{ListenAddress: "localhost:0"}, Options{
		Pipeline: mock.NewPipeline(store, client),
		Store:    store,
	})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/widgets/7")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
	// The failed cycle keeps its user turn but gains no assistant turn.
	if store.Len() != 2 {
		t.Errorf("conversation length = %d, want 2", store.Len())
	}
}

func TestMalformedOutputLeavesNoAssistantTurn(t *testing.T) {
	h := newHarness(t)
	h.upstream.Enqueue(llmtest.Answer{Content: "not json"})

	resp := h.do(t, http.MethodGet, "/widgets/7", nil, nil)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}

	turns := h.store.Snapshot()
	if len(turns) != 2 {
		t.Fatalf("conversation length = %d, want 2 (system + user)", len(turns))
	}
	if turns[1].Role != conversation.RoleUser {
		t.Errorf("second turn role = %q, want user", turns[1].Role)
	}
}

func TestInvalidBodyRejected(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodPost, "/upload", strings.NewReader("\xff\xfe\x00"), nil)

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if h.upstream.Calls() != 0 {
		t.Errorf("upstream calls = %d, want 0", h.upstream.Calls())
	}
}

func TestAnyMethodReachesPipeline(t *testing.T) {
	h := newHarness(t)

	for _, method := range []string{"GET", "POST", "PUT", "PATCH", "DELETE"} {
		h.upstream.Enqueue(llmtest.Answer{Content: `{"content":"ok","status_code":200,"headers":{}}`})
		resp := h.do(t, method, "/anything", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s status = %d, want 200", method, resp.StatusCode)
		}
	}

	if h.upstream.Calls() != 5 {
		t.Errorf("upstream calls = %d, want 5", h.upstream.Calls())
	}
}

func TestFaviconBypassesPipeline(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/favicon.ico", nil, nil)

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if h.upstream.Calls() != 0 {
		t.Errorf("upstream calls = %d, want 0", h.upstream.Calls())
	}
	if h.store.Len() != 1 {
		t.Errorf("conversation grew on favicon request: %d turns", h.store.Len())
	}
}

func TestInternalHealth(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/__internal/health", nil, nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]string
	if err := json.Unmarshal(readBody(t, resp), &body); err != nil {
		t.Fatalf("health body is not JSON: %v", err)
	}
	if body["msg"] != "ok" {
		t.Errorf("health body = %v, want {\"msg\":\"ok\"}", body)
	}
	if h.upstream.Calls() != 0 {
		t.Errorf("health check reached the pipeline: %d upstream calls", h.upstream.Calls())
	}
}

func TestInternalMessagesFreshProcess(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/__internal/messages", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var turns []conversation.Turn
	if err := json.Unmarshal(readBody(t, resp), &turns); err != nil {
		t.Fatalf("messages body is not JSON: %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("fresh process has %d turns, want 1", len(turns))
	}
	if turns[0].Role != conversation.RoleSystem {
		t.Errorf("first turn role = %q, want system", turns[0].Role)
	}
}

func TestInternalMessagesAfterExchange(t *testing.T) {
	h := newHarness(t)
	h.upstream.Enqueue(llmtest.Answer{Content: `{"content":"ok","status_code":200,"headers":{}}`})

	h.do(t, http.MethodGet, "/widgets/7", nil, nil)

	resp := h.do(t, http.MethodGet, "/__internal/messages", nil, nil)
	var turns []conversation.Turn
	if err := json.Unmarshal(readBody(t, resp), &turns); err != nil {
		t.Fatalf("messages body is not JSON: %v", err)
	}
	if len(turns) != 3 {
		t.Fatalf("conversation has %d turns, want 3", len(turns))
	}
	wantRoles := []conversation.Role{conversation.RoleSystem, conversation.RoleUser, conversation.RoleAssistant}
	for i, want := range wantRoles {
		if turns[i].Role != want {
			t.Errorf("turn %d role = %q, want %q", i, turns[i].Role, want)
		}
	}
}

func TestInternalUI(t *testing.T) {
	h := newHarness(t)
	h.upstream.Enqueue(llmtest.Answer{Content: `{"content":"ok","status_code":200,"headers":{}}`})
	h.do(t, http.MethodGet, "/widgets/7", nil, nil)

	resp := h.do(t, http.MethodGet, "/__internal/ui", nil, nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}

	page := string(readBody(t, resp))
	if strings.Contains(page, "const chatData = [];") {
		t.Error("ui placeholder was not replaced with conversation data")
	}
	if !strings.Contains(page, "const chatData = [") {
		t.Error("ui page missing injected conversation")
	}
	if !strings.Contains(page, `"role":"system"`) {
		t.Error("ui page missing system turn")
	}
}

func TestInternalJournal(t *testing.T) {
	h := newHarness(t)
	h.upstream.Enqueue(llmtest.Answer{Content: `{"content":"ok","status_code":200,"headers":{}}`})
	h.do(t, http.MethodGet, "/widgets/7", nil, nil)

	resp := h.do(t, http.MethodGet, "/__internal/journal", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var records []journal.Record
	if err := json.Unmarshal(readBody(t, resp), &records); err != nil {
		t.Fatalf("journal body is not JSON: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("journal has %d records, want 1", len(records))
	}
	if records[0].Outcome != "success" || records[0].Path != "/widgets/7" {
		t.Errorf("record = %+v", records[0])
	}

	resp = h.do(t, http.MethodGet, "/__internal/journal?limit=bogus", nil, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bogus limit status = %d, want 400", resp.StatusCode)
	}
}

func TestInternalMetrics(t *testing.T) {
	h := newHarness(t)
	h.upstream.Enqueue(llmtest.Answer{Content: `{"content":"ok","status_code":200,"headers":{}}`})
	h.do(t, http.MethodGet, "/widgets/7", nil, nil)

	resp := h.do(t, http.MethodGet, "/__internal/metrics", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	page := string(readBody(t, resp))
	if !strings.Contains(page, `llmockapi_exchanges_total{outcome="success"} 1`) {
		t.Errorf("metrics missing exchange counter:\n%s", page)
	}
	if !strings.Contains(page, "llmockapi_conversation_turns 3") {
		t.Errorf("metrics missing conversation gauge:\n%s", page)
	}
}

func TestResponseCarriesRequestID(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/__internal/health", nil, nil)
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("response missing X-Request-ID header")
	}

	resp = h.do(t, http.MethodGet, "/__internal/health", nil, map[string]string{
		"X-Request-ID": "caller-supplied",
	})
	if got := resp.Header.Get("X-Request-ID"); got != "caller-supplied" {
		t.Errorf("X-Request-ID = %q, want caller value echoed", got)
	}
}
