// Package llmtest provides a scriptable fake chat-completion upstream for
// tests.
package llmtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// Upstream is a fake chat-completion provider. Tests script the answer text
// (or an error status) per call; the server records the payloads it receives.
type Upstream struct {
	server *httptest.Server

	mu       sync.Mutex
	answers  []Answer
	requests []CapturedRequest
	calls    int
}

// Answer scripts one upstream response. When Raw is set it is written
// verbatim instead of a well-formed completion envelope.
type Answer struct {
	Content    string
	StatusCode int
	Raw        string
	Delay      time.Duration
}

// CapturedRequest is one decoded completion request the upstream received.
type CapturedRequest struct {
	Authorization string
	Model         string
	Messages      []map[string]string
}

// NewUpstream starts the fake provider.
func NewUpstream() *Upstream {
	u := &Upstream{}
	u.server = httptest.NewServer(http.HandlerFunc(u.handler))
	return u
}

// URL returns the provider's base URL.
func (u *Upstream) URL() string {
	return u.server.URL
}

// Close shuts the provider down.
func (u *Upstream) Close() {
	u.server.Close()
}

// Enqueue scripts the next responses in order. Once the queue is drained the
// last answer repeats.
func (u *Upstream) Enqueue(answers ...Answer) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.answers = append(u.answers, answers...)
}

// Calls returns the number of completion requests received.
func (u *Upstream) Calls() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls
}

// Requests returns the decoded completion requests, in arrival order.
func (u *Upstream) Requests() []CapturedRequest {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]CapturedRequest, len(u.requests))
	copy(out, u.requests)
	return out
}

func (u *Upstream) handler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/v1/chat/completions" || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var payload struct {
		Model    string              `json:"model"`
		Messages []map[string]string `json:"messages"`
	}
	_ = json.NewDecoder(r.Body).Decode(&payload)

	u.mu.Lock()
	u.calls++
	u.requests = append(u.requests, CapturedRequest{
		Authorization: r.Header.Get("Authorization"),
		Model:         payload.Model,
		Messages:      payload.Messages,
	})

	answer := Answer{Content: `{"content":{},"status_code":200,"headers":{}}`}
	if len(u.answers) > 0 {
		answer = u.answers[0]
		if len(u.answers) > 1 {
			u.answers = u.answers[1:]
		}
	}
	u.mu.Unlock()

	if answer.Delay > 0 {
		time.Sleep(answer.Delay)
	}

	if answer.StatusCode != 0 && answer.StatusCode != http.StatusOK {
		w.WriteHeader(answer.StatusCode)
		_, _ = w.Write([]byte(answer.Raw))
		return
	}

	if answer.Raw != "" {
		_, _ = w.Write([]byte(answer.Raw))
		return
	}

	envelope := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": answer.Content}},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(envelope)
}
