package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAnthropicComplete_TextResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request headers.
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Errorf("X-Api-Key = %q, want %q", got, "test-key")
		}
		if got := r.Header.Get("Anthropic-Version"); got != defaultAnthropicVersion {
			t.Errorf("Anthropic-Version = %q, want %q", got, defaultAnthropicVersion)
		}

		// Verify request body structure.
		var reqBody anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if reqBody.Model != "claude-sonnet-4-20250514" {
			t.Errorf("model = %q, want %q", reqBody.Model, "claude-sonnet-4-20250514")
		}
		if reqBody.MaxTokens != 256 {
			t.Errorf("max_tokens = %d, want 256", reqBody.MaxTokens)
		}
		if len(reqBody.Messages) != 1 || reqBody.Messages[0].Role != "user" {
			t.Errorf("messages = %+v, want single user message", reqBody.Messages)
		}

		resp := anthropicResponse{
			ID:   "msg-01",
			Type: "message",
			Role: "assistant",
			Content: []anthropicContentBlock{
				{Type: "text", Text: "The sky is blue."},
			},
			StopReason: "end_turn",
		}
		resp.Usage.InputTokens = 12
		resp.Usage.OutputTokens = 6
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	p := NewAnthropicProvider("test-key", WithBaseURL(server.URL))

	got, err := p.Complete(context.Background(), &Request{
		Model:     "claude-sonnet-4-20250514",
		Messages:  []Message{{Role: "user", Content: "What color is the sky?"}},
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if got.Content != "The sky is blue." {
		t.Errorf("Content = %q, want %q", got.Content, "The sky is blue.")
	}
	if got.StopReason != "end_turn" {
		t.Errorf("StopReason = %q, want %q", got.StopReason, "end_turn")
	}
	if got.Usage.InputTokens != 12 || got.Usage.OutputTokens != 6 {
		t.Errorf("Usage = %+v, want 12 in / 6 out", got.Usage)
	}
}

func TestAnthropicComplete_ZeroTemperatureTransmitted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		// Temperature 0 must be present in the wire body, not omitted.
		if _, ok := raw["temperature"]; !ok {
			t.Error("temperature missing from request body")
		}

		json.NewEncoder(w).Encode(anthropicResponse{
			Content:    []anthropicContentBlock{{Type: "text", Text: "ok"}},
			StopReason: "end_turn",
		})
	}))
	defer server.Close()

	p := NewAnthropicProvider("test-key", WithBaseURL(server.URL))
	if _, err := p.Complete(context.Background(), &Request{
		Model:       "claude-sonnet-4-20250514",
		Messages:    []Message{{Role: "user", Content: "hi"}},
		Temperature: 0,
	}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
}

func TestAnthropicComplete_DefaultMaxTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if reqBody.MaxTokens != defaultMaxTokens {
			t.Errorf("max_tokens = %d, want %d", reqBody.MaxTokens, defaultMaxTokens)
		}
		json.NewEncoder(w).Encode(anthropicResponse{
			Content: []anthropicContentBlock{{Type: "text", Text: "ok"}},
		})
	}))
	defer server.Close()

	p := NewAnthropicProvider("test-key", WithBaseURL(server.URL))
	if _, err := p.Complete(context.Background(), &Request{
		Model:    "claude-sonnet-4-20250514",
		Messages: []Message{{Role: "user", Content: "hi"}},
	}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
}

func TestAnthropicComplete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer server.Close()

	p := NewAnthropicProvider("bad-key", WithBaseURL(server.URL))
	_, err := p.Complete(context.Background(), &Request{
		Model:    "claude-sonnet-4-20250514",
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if err == nil {
		t.Fatal("Complete() expected error for HTTP 401, got nil")
	}
	if !strings.Contains(err.Error(), "invalid x-api-key") {
		t.Errorf("error = %v, want API message surfaced", err)
	}
}

func TestAnthropicComplete_NoRetryOnServerError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"overloaded"}}`))
	}))
	defer server.Close()

	p := NewAnthropicProvider("test-key", WithBaseURL(server.URL))
	_, err := p.Complete(context.Background(), &Request{
		Model:    "claude-sonnet-4-20250514",
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if err == nil {
		t.Fatal("Complete() expected error for HTTP 500, got nil")
	}
	if calls != 1 {
		t.Errorf("server received %d requests, want exactly 1", calls)
	}
}

func TestAnthropicComplete_MultipleTextBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(anthropicResponse{
			Content: []anthropicContentBlock{
				{Type: "text", Text: "part one"},
				{Type: "text", Text: "part two"},
			},
		})
	}))
	defer server.Close()

	p := NewAnthropicProvider("test-key", WithBaseURL(server.URL))
	got, err := p.Complete(context.Background(), &Request{
		Model:    "claude-sonnet-4-20250514",
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got.Content != "part one\npart two" {
		t.Errorf("Content = %q, want joined text blocks", got.Content)
	}
}

func TestAnthropicName(t *testing.T) {
	if got := NewAnthropicProvider("k").Name(); got != "anthropic" {
		t.Errorf("Name() = %q, want %q", got, "anthropic")
	}
}
