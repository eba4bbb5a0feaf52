// Package journal records an audit trail of pipeline exchanges.
//
// One record is written per pipeline run, success or failure, capturing the
// request line, outcome, upstream latency, and conversation length. Records
// persist to SQLite (with an in-memory backend for tests) and are pruned on a
// cron schedule by age and count. Journaling is best-effort: a failed write
// is logged and never surfaced to the caller.
//
// For failed exchanges the record keeps the error text, including rejected
// model output, which never enters the conversation itself.
package journal
