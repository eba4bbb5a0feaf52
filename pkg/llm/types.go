package llm

import "github.com/rbs392/llmockapi/pkg/conversation"

// completionRequest is the chat-completion request payload.
type completionRequest struct {
	Model    string              `json:"model"`
	Messages []conversation.Turn `json:"messages"`
}

// completionResponse is the subset of the provider envelope the gateway
// reads. Everything beyond choices[0].message.content is ignored.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
