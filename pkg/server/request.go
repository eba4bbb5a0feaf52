package server

import (
	"io"
	"net/http"
	"sort"

	"github.com/rbs392/llmockapi/pkg/mock"
)

// maxBodyBytes caps inbound request bodies. Bodies beyond this would blow up
// the prompt anyway.
const maxBodyBytes = 10 << 20 // 10MB

// buildRequest adapts an inbound http.Request into the pipeline's view.
// A body over the cap is an error, not a truncation.
//
// Go's header map does not preserve wire order, so header lines are emitted
// in sorted canonical-key order, one line per value. Multi-valued headers
// keep their per-key value order.
func buildRequest(w http.ResponseWriter, r *http.Request) (mock.Request, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return mock.Request{}, err
	}

	keys := make([]string, 0, len(r.Header))
	for key := range r.Header {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var lines []string
	for _, key := range keys {
		for _, value := range r.Header[key] {
			lines = append(lines, key+": "+value)
		}
	}

	path := r.URL.Path
	if r.URL.RawQuery != "" {
		path += "?" + r.URL.RawQuery
	}

	return mock.Request{
		Method:      r.Method,
		Path:        path,
		HeaderLines: lines,
		Body:        body,
	}, nil
}
