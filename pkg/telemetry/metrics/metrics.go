// Package metrics exposes prometheus instrumentation for the pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rbs392/llmockapi/pkg/config"
)

// Exchange outcome label values.
const (
	OutcomeSuccess         = "success"
	OutcomeInvalidBody     = "invalid_body"
	OutcomeUnreachable     = "upstream_unreachable"
	OutcomeProtocolError   = "upstream_protocol_error"
	OutcomeMalformedOutput = "malformed_model_output"
)

// Metrics tracks pipeline and conversation metrics.
//
// Exposed series:
//   - llmockapi_exchanges_total{outcome}
//   - llmockapi_exchange_duration_seconds
//   - llmockapi_upstream_duration_seconds
//   - llmockapi_conversation_turns
//   - llmockapi_spec_stale
type Metrics struct {
	registry *prometheus.Registry

	exchangesTotal    *prometheus.CounterVec
	exchangeDuration  prometheus.Histogram
	upstreamDuration  prometheus.Histogram
	conversationTurns prometheus.Gauge
	specStale         prometheus.Gauge
}

// New creates and registers all metrics on a fresh registry.
func New(cfg config.MetricsConfig) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		exchangesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "exchanges_total",
				Help:      "Total number of pipeline exchanges by outcome",
			},
			[]string{"outcome"},
		),

		exchangeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "exchange_duration_seconds",
				Help:      "Duration of full pipeline exchanges in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
			},
		),

		upstreamDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "upstream_duration_seconds",
				Help:      "Duration of upstream completion calls in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
			},
		),

		conversationTurns: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "conversation_turns",
				Help:      "Current number of turns in the conversation",
			},
		),

		specStale: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "spec_stale",
				Help:      "1 when the spec document changed on disk since startup",
			},
		),
	}

	registry.MustRegister(
		m.exchangesTotal,
		m.exchangeDuration,
		m.upstreamDuration,
		m.conversationTurns,
		m.specStale,
	)

	return m
}

// RecordExchange records one completed pipeline run.
func (m *Metrics) RecordExchange(outcome string, total, upstream time.Duration) {
	m.exchangesTotal.WithLabelValues(outcome).Inc()
	m.exchangeDuration.Observe(total.Seconds())
	if upstream > 0 {
		m.upstreamDuration.Observe(upstream.Seconds())
	}
}

// SetConversationTurns updates the conversation length gauge.
func (m *Metrics) SetConversationTurns(n int) {
	m.conversationTurns.Set(float64(n))
}

// MarkSpecStale flags the loaded spec as out of date with the source file.
func (m *Metrics) MarkSpecStale() {
	m.specStale.Set(1)
}

// Registry returns the underlying registry for the metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
