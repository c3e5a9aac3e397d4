// Package testutil provides shared testing utilities and fixtures for the
// studio test suite: fake provider endpoints that record what the produced
// clients send, and ready-made configuration fixtures.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// RecordedRequest is one request captured by a fake provider server
type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   map[string]any
}

// ProviderServer is an httptest server that answers chat requests in one
// provider's wire format and records every request it receives.
type ProviderServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

// Requests returns a copy of the recorded requests
func (s *ProviderServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// LastRequest returns the most recent request; it fails the test if none arrived
func (s *ProviderServer) LastRequest(t *testing.T) RecordedRequest {
	t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		t.Fatal("no request reached the fake provider server")
	}
	return reqs[len(reqs)-1]
}

func (s *ProviderServer) record(r *http.Request) map[string]any {
	data, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(data, &body)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Body:   body,
	})
	return body
}

func newProviderServer(t *testing.T, reply func(w http.ResponseWriter, r *http.Request, body map[string]any)) *ProviderServer {
	t.Helper()
	s := &ProviderServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := s.record(r)
		w.Header().Set("Content-Type", "application/json")
		reply(w, r, body)
	}))
	t.Cleanup(s.Close)
	return s
}

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}

// NewOpenAIServer answers OpenAI-compatible chat completion and embedding
// requests (also used for Gemini, Vertex AI and Azure OpenAI).
func NewOpenAIServer(t *testing.T, content string) *ProviderServer {
	return newProviderServer(t, func(w http.ResponseWriter, r *http.Request, body map[string]any) {
		if strings.HasSuffix(r.URL.Path, "/embeddings") {
			data := make([]map[string]any, 0)
			if inputs, ok := body["input"].([]any); ok {
				for i := range inputs {
					data = append(data, map[string]any{
						"object": "embedding", "index": i, "embedding": []float32{0.1, 0.2, 0.3},
					})
				}
			}
			writeJSON(w, map[string]any{"object": "list", "data": data, "model": body["model"]})
			return
		}
		writeJSON(w, map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 3, "completion_tokens": 2, "total_tokens": 5},
		})
	})
}

// NewAnthropicServer answers Anthropic Messages API requests
func NewAnthropicServer(t *testing.T, content string) *ProviderServer {
	return newProviderServer(t, func(w http.ResponseWriter, _ *http.Request, _ map[string]any) {
		writeJSON(w, map[string]any{
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"model":       "test-model",
			"content":     []map[string]any{{"type": "text", "text": content}},
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 3, "output_tokens": 2},
		})
	})
}

// NewOllamaServer answers non-streaming Ollama /api/chat requests
func NewOllamaServer(t *testing.T, content string) *ProviderServer {
	return newProviderServer(t, func(w http.ResponseWriter, _ *http.Request, _ map[string]any) {
		writeJSON(w, map[string]any{
			"model":      "test-model",
			"created_at": "2024-01-01T00:00:00Z",
			"message":    map[string]any{"role": "assistant", "content": content},
			"done":       true,
		})
	})
}
