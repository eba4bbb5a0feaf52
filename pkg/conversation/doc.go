// Package conversation holds the process-wide chat history shared by every
// pipeline run.
//
// The store is an append-only sequence of turns: one system turn created at
// startup, then one user turn and one assistant turn per completed exchange.
// Turns are never removed or rewritten. Diagnostic readers take snapshots so
// they always observe a length-consistent view, even while the pipeline is
// mid-append.
package conversation
