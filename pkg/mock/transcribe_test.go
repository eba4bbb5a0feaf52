package mock

import (
	"errors"
	"strings"
	"testing"

	"github.com/rbs392/llmockapi/pkg/conversation"
)

func TestTranscribe(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "get with no body",
			req: Request{
				Method: "GET",
				Path:   "/widgets/7",
			},
			want: "GET /widgets/7 HTTP/1.1\r\n",
		},
		{
			name: "post with headers and body",
			req: Request{
				Method:      "POST",
				Path:        "/orders",
				HeaderLines: []string{"Content-Type: application/json"},
				Body:        []byte(`{"sku":"a-1"}`),
			},
			want: "POST /orders HTTP/1.1\r\nContent-Type: application/json\r\n{\"sku\":\"a-1\"}",
		},
		{
			name: "query string kept in path",
			req: Request{
				Method: "GET",
				Path:   "/search?q=widgets&page=2",
			},
			want: "GET /search?q=widgets&page=2 HTTP/1.1\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			turn, err := Transcribe(tt.req)
			if err != nil {
				t.Fatalf("Transcribe() error = %v", err)
			}
			if turn.Role != conversation.RoleUser {
				t.Errorf("role = %q, want %q", turn.Role, conversation.RoleUser)
			}
			if turn.Content != tt.want {
				t.Errorf("content = %q, want %q", turn.Content, tt.want)
			}
		})
	}
}

func TestTranscribeFiltersCredentialHeaders(t *testing.T) {
	turn, err := Transcribe(Request{
		Method: "GET",
		Path:   "/widgets/7",
		HeaderLines: []string{
			"Accept: application/json",
			"Authorization: Bearer secret-token",
		},
	})
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}

	if !strings.Contains(turn.Content, "GET /widgets/7 HTTP/1.1") {
		t.Errorf("transcription missing request line: %q", turn.Content)
	}
	if strings.Contains(strings.ToLower(turn.Content), "authorization") {
		t.Errorf("credential header leaked into transcription: %q", turn.Content)
	}
	if !strings.Contains(turn.Content, "Accept: application/json") {
		t.Errorf("non-credential header dropped: %q", turn.Content)
	}
}

func TestTranscribeRejectsBinaryBody(t *testing.T) {
	_, err := Transcribe(Request{
		Method: "POST",
		Path:   "/upload",
		Body:   []byte{0xff, 0xfe, 0x00, 0x80},
	})

	var invalidBody *InvalidBodyError
	if !errors.As(err, &invalidBody) {
		t.Fatalf("Transcribe() error = %v, want InvalidBodyError", err)
	}
}
