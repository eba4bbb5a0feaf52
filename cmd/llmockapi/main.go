// llmockapi is an LLM-backed mock API server.
//
// It answers arbitrary HTTP requests by transcribing them into a running
// conversation, asking a chat-completion model for the response an API
// matching the configured specification would give, and replaying the model's
// answer as status, headers and body.
//
// Usage:
//
//	# Start with default configuration
//	llmockapi run --spec api-spec.yaml
//
//	# Start with a configuration file
//	llmockapi run --config /path/to/config.yaml
//
//	# Validate configuration and spec without serving
//	llmockapi validate --config config.yaml
//
//	# Show version information
//	llmockapi version
package main

func main() {
	Execute()
}
