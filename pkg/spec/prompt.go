package spec

// systemPrompt establishes the model's role and the JSON response contract
// every answer must follow. The sanitizer still tolerates fenced answers from
// models that ignore the backtick instruction.
const systemPrompt = `You are a REST API server.
The API specification is defined below between <spec></spec> tags.
Always respond with the following JSON structure: {"content": any, "status_code": int, "headers": dict}.
Never include backticks in your response.
Never respond with anything outside of the specification.`

// SystemPrompt renders the system turn content: the fixed instruction text
// followed by the specification document wrapped in marker tags.
func SystemPrompt(document string) string {
	return systemPrompt + "\n\n<spec>" + document + "</spec>"
}
