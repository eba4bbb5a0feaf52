// Package mock implements the request-to-conversation transcription, LLM
// round-trip, and response reconstruction pipeline.
//
// Every non-diagnostic request is rendered as an HTTP/1.1-style text block,
// appended to the shared conversation as a user turn, sent with the full
// history to the upstream chat-completion endpoint, and the model's reply is
// parsed back into a status/headers/body triple for the caller.
//
// The whole cycle runs under a single process-wide mutex: the conversation is
// read in full and appended to twice per cycle, so concurrent cycles would
// interleave turns. Correctness over throughput; the lock is held across the
// upstream network call.
package mock
