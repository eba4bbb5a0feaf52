package mock

// Request is the pipeline's view of an inbound HTTP request. It carries only
// what the transcriber needs, so the pipeline has no dependency on any web
// framework type.
type Request struct {
	// Method is the HTTP method (any method is accepted).
	Method string

	// Path is the URL path as received.
	Path string

	// HeaderLines are the inbound headers rendered as "Name: value" lines,
	// one line per value, in the order the adapter produced them. Credential
	// headers have not yet been filtered at this point.
	HeaderLines []string

	// Body is the raw request body.
	Body []byte
}

// Response is the outbound HTTP response produced by the synthesizer.
type Response struct {
	// StatusCode is the HTTP status to return.
	StatusCode int

	// Headers are copied verbatim onto the response. These are authored by
	// the model under operator-supplied instructions, not by the caller.
	Headers map[string]string

	// Body is the JSON serialization of the reply content.
	Body []byte
}

// SanitizedReply is the structured object recovered from the model's answer
// after fence stripping and a validating parse.
type SanitizedReply struct {
	// Content is the response body value; any JSON value is allowed.
	Content any `json:"content"`

	// StatusCode is the HTTP status the model chose.
	StatusCode int `json:"status_code"`

	// Headers is a flat string-to-string header mapping.
	Headers map[string]string `json:"headers"`
}
