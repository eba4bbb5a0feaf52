package mock

import (
	"strings"
	"unicode/utf8"

	"github.com/rbs392/llmockapi/pkg/conversation"
)

// Transcribe renders an inbound request as an HTTP/1.1-style plaintext block
// and returns it as a user turn:
//
//	<METHOD> <PATH> HTTP/1.1
//	<filtered header line>
//	...
//	<body as UTF-8 text>
//
// Lines are joined with CRLF. Credential headers are filtered before any
// header text is assembled. A body that is not valid UTF-8 is a caller error
// and returns InvalidBodyError.
func Transcribe(req Request) (conversation.Turn, error) {
	if !utf8.Valid(req.Body) {
		return conversation.Turn{}, &InvalidBodyError{Message: "body is not valid UTF-8 text"}
	}

	lines := make([]string, 0, len(req.HeaderLines)+2)
	lines = append(lines, req.Method+" "+req.Path+" HTTP/1.1")
	lines = append(lines, FilterHeaderLines(req.HeaderLines)...)
	lines = append(lines, string(req.Body))

	return conversation.Turn{
		Role:    conversation.RoleUser,
		Content: strings.Join(lines, "\r\n"),
	}, nil
}
