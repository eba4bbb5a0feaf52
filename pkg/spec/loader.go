package spec

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rbs392/llmockapi/pkg/config"
)

// Load resolves the specification document from the configured source.
//
// URL sources are fetched with a bounded timeout and used verbatim. File
// sources are decoded by extension: .json and .yaml/.yml documents are parsed
// (catching broken documents at startup instead of mid-conversation) and
// re-serialized as canonical indented JSON; anything else is raw text.
func Load(ctx context.Context, cfg config.SpecConfig) (string, error) {
	if strings.HasPrefix(cfg.Source, "http://") || strings.HasPrefix(cfg.Source, "https://") {
		return fetch(ctx, cfg)
	}
	return loadFile(cfg.Source)
}

// fetch retrieves the document over HTTP.
func fetch(ctx context.Context, cfg config.SpecConfig) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.Source, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create spec request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch spec from %q: %w", cfg.Source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("spec fetch from %q returned status %d", cfg.Source, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read spec body: %w", err)
	}
	return string(body), nil
}

// loadFile reads and decodes a local document.
func loadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read spec file %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return "", fmt.Errorf("spec file %q is not valid JSON: %w", path, err)
		}
		return canonicalJSON(doc)

	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return "", fmt.Errorf("spec file %q is not valid YAML: %w", path, err)
		}
		return canonicalJSON(doc)

	default:
		return string(data), nil
	}
}

// canonicalJSON renders a decoded document as indented JSON.
func canonicalJSON(doc any) (string, error) {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to re-serialize spec document: %w", err)
	}
	return string(out), nil
}
