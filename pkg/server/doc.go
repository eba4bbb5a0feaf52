// Package server runs the llmockapi HTTP server: the dispatch gate that
// sends diagnostic traffic to /__internal routes and everything else through
// the mock pipeline, plus server lifecycle and graceful shutdown.
package server
