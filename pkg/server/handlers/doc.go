// Package handlers implements the diagnostic routes mounted under
// /__internal: health, the raw conversation dump, the chat UI, the exchange
// journal and the metrics endpoint.
package handlers
