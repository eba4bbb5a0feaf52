package server

import (
	"errors"
	"net/http"

	"github.com/rbs392/llmockapi/pkg/llm"
	"github.com/rbs392/llmockapi/pkg/mock"
	"github.com/rbs392/llmockapi/pkg/telemetry/metrics"
)

// classify maps a pipeline error to the outbound HTTP status and the metrics
// outcome label.
//
//	InvalidBodyError     -> 400 (caller fault)
//	UnreachableError     -> 502 (provider down)
//	ProtocolError        -> 502 (provider broke the contract)
//	MalformedOutputError -> 502 (model broke the contract)
func classify(err error) (int, string) {
	var invalidBody *mock.InvalidBodyError
	if errors.As(err, &invalidBody) {
		return http.StatusBadRequest, metrics.OutcomeInvalidBody
	}

	var unreachable *llm.UnreachableError
	if errors.As(err, &unreachable) {
		return http.StatusBadGateway, metrics.OutcomeUnreachable
	}

	var protocol *llm.ProtocolError
	if errors.As(err, &protocol) {
		return http.StatusBadGateway, metrics.OutcomeProtocolError
	}

	var malformed *mock.MalformedOutputError
	if errors.As(err, &malformed) {
		return http.StatusBadGateway, metrics.OutcomeMalformedOutput
	}

	return http.StatusInternalServerError, "internal_error"
}
