// Package llm is the gateway to the upstream chat-completion provider.
//
// The client performs exactly one HTTP POST per exchange; retry policy, if
// any, is the operator's concern. It extracts the model's raw answer text
// from the provider envelope and hands it back uninterpreted.
package llm
