package mock

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/rbs392/llmockapi/pkg/conversation"
)

// Gateway is the upstream chat-completion client used by the pipeline.
// It receives the full conversation and returns the model's raw answer text.
type Gateway interface {
	Complete(ctx context.Context, turns []conversation.Turn) (string, error)
}

// Result carries the synthesized response plus per-exchange timings for
// observability.
type Result struct {
	// Response is the outbound response (zero value when Err is set).
	Response Response

	// UpstreamLatency is the duration of the provider round trip.
	UpstreamLatency time.Duration
}

// Pipeline runs the full transcribe → upstream → sanitize → synthesize cycle
// against the shared conversation.
//
// A single mutex serializes every cycle process-wide. It is held from before
// the user turn is built until the outbound response is constructed, across
// the upstream network call. This is deliberate: the conversation is global
// state, and interleaved cycles would corrupt both turn ordering and the
// model's view of history. Total latency is the sum of per-request upstream
// latencies.
type Pipeline struct {
	mu      sync.Mutex
	store   *conversation.Store
	gateway Gateway
	logger  *slog.Logger
}

// NewPipeline creates a pipeline bound to the shared conversation store and
// upstream gateway.
func NewPipeline(store *conversation.Store, gateway Gateway) *Pipeline {
	return &Pipeline{
		store:   store,
		gateway: gateway,
		logger:  slog.Default().With("component", "mock.pipeline"),
	}
}

// Execute runs one exchange. On failure the cycle is aborted before any
// assistant turn is appended; a user turn appended before the failure remains,
// since it reflects what was actually asked. The lock is released on every
// exit path. Nothing is retried.
func (p *Pipeline) Execute(ctx context.Context, req Request) (Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	userTurn, err := Transcribe(req)
	if err != nil {
		return Result{}, err
	}
	p.store.Append(userTurn)

	p.logger.Debug("exchange started",
		"method", req.Method,
		"path", req.Path,
		"turns", p.store.Len(),
	)

	start := time.Now()
	raw, err := p.gateway.Complete(ctx, p.store.Snapshot())
	latency := time.Since(start)
	if err != nil {
		return Result{UpstreamLatency: latency}, err
	}

	reply, err := Sanitize(raw)
	if err != nil {
		if mo, ok := err.(*MalformedOutputError); ok {
			p.logger.Error("model answer rejected",
				"method", req.Method,
				"path", req.Path,
				"raw_text", mo.RawText,
			)
		}
		return Result{UpstreamLatency: latency}, err
	}

	// History is normalized to the canonical re-serialization, not the raw
	// model text, so future prompts see well-formed prior answers.
	canonical, err := json.Marshal(reply)
	if err != nil {
		return Result{UpstreamLatency: latency}, &MalformedOutputError{
			Message: "reply not re-serializable",
			Cause:   err,
		}
	}
	p.store.Append(conversation.Turn{
		Role:    conversation.RoleAssistant,
		Content: string(canonical),
	})

	p.logger.Debug("exchange completed",
		"method", req.Method,
		"path", req.Path,
		"status", reply.StatusCode,
		"upstream_latency_ms", latency.Milliseconds(),
	)

	return Result{
		Response:        Synthesize(reply),
		UpstreamLatency: latency,
	}, nil
}
