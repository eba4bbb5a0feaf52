// Package spec loads the API specification document that conditions the
// model and renders it into the system prompt.
//
// The document comes from a local file (JSON, YAML, or plain text) or an
// http(s) URL. It is loaded once at startup and cached for the process
// lifetime; an optional watcher flags on-disk drift without touching the
// running conversation.
package spec
