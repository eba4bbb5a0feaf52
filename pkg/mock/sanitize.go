package mock

import (
	"encoding/json"
	"strings"
)

// Sanitize parses the model's raw answer text into a SanitizedReply.
//
// Models frequently wrap their JSON in a markdown code fence despite being
// told not to; a leading fence line (three backticks with an optional
// language tag) and its matching closing fence line are stripped, leaving the
// interior untouched. Text without a fence is parsed as-is, so fenced and
// unfenced renditions of the same JSON yield identical replies.
//
// The parse fails closed: a missing or invalid `content`, `status_code`, or
// `headers` field is a MalformedOutputError, never defaulted.
func Sanitize(raw string) (SanitizedReply, error) {
	text := stripFence(raw)

	var fields struct {
		Content    json.RawMessage `json:"content"`
		StatusCode json.RawMessage `json:"status_code"`
		Headers    json.RawMessage `json:"headers"`
	}
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return SanitizedReply{}, &MalformedOutputError{
			RawText: text,
			Message: "answer is not a JSON object",
			Cause:   err,
		}
	}

	if fields.Content == nil {
		return SanitizedReply{}, &MalformedOutputError{RawText: text, Message: "missing required field \"content\""}
	}
	if fields.StatusCode == nil {
		return SanitizedReply{}, &MalformedOutputError{RawText: text, Message: "missing required field \"status_code\""}
	}
	if fields.Headers == nil {
		return SanitizedReply{}, &MalformedOutputError{RawText: text, Message: "missing required field \"headers\""}
	}

	var reply SanitizedReply

	if err := json.Unmarshal(fields.Content, &reply.Content); err != nil {
		return SanitizedReply{}, &MalformedOutputError{RawText: text, Message: "invalid \"content\" field", Cause: err}
	}

	status, err := parseStatusCode(fields.StatusCode)
	if err != nil {
		return SanitizedReply{}, &MalformedOutputError{RawText: text, Message: "invalid \"status_code\" field", Cause: err}
	}
	reply.StatusCode = status

	if err := json.Unmarshal(fields.Headers, &reply.Headers); err != nil {
		return SanitizedReply{}, &MalformedOutputError{RawText: text, Message: "\"headers\" is not a flat string mapping", Cause: err}
	}
	if reply.Headers == nil {
		reply.Headers = map[string]string{}
	}

	return reply, nil
}

// parseStatusCode coerces the raw status_code value to an HTTP status integer.
func parseStatusCode(raw json.RawMessage) (int, error) {
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()

	var num json.Number
	if err := dec.Decode(&num); err != nil {
		return 0, err
	}

	status, err := num.Int64()
	if err != nil {
		return 0, err
	}
	if status < 100 || status > 599 {
		return 0, &MalformedOutputError{Message: "status_code out of HTTP range"}
	}
	return int(status), nil
}

// stripFence removes a leading markdown fence line and its matching closing
// fence line. Input without a leading fence is returned unchanged.
func stripFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return raw
	}

	// Drop the opening fence line, language tag included.
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	} else {
		return ""
	}

	// Drop the closing fence line if present.
	text = strings.TrimRight(text, " \t\r\n")
	if strings.HasSuffix(text, "```") {
		text = text[:len(text)-len("```")]
		text = strings.TrimRight(text, "\r\n")
	}

	return text
}
