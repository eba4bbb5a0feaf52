package mock

import (
	"encoding/json"
	"fmt"
)

// Synthesize builds the outbound HTTP response from a sanitized reply.
//
// The status and headers are taken verbatim; the headers were authored by the
// model under operator-controlled instructions, so unlike inbound headers
// they are not filtered. The body is the JSON serialization of the reply
// content. A content value that cannot be serialized is coerced to its string
// form rather than failing the whole response.
func Synthesize(reply SanitizedReply) Response {
	body, err := json.Marshal(reply.Content)
	if err != nil {
		body, _ = json.Marshal(fmt.Sprintf("%v", reply.Content))
	}

	return Response{
		StatusCode: reply.StatusCode,
		Headers:    reply.Headers,
		Body:       body,
	}
}
