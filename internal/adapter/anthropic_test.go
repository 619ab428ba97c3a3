package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const messagesBody = `{
  "id": "msg_1",
  "type": "message",
  "role": "assistant",
  "model": "claude-3-5-sonnet-20241022",
  "content": [{"type": "text", "text": "4"}],
  "stop_reason": "end_turn",
  "usage": {"input_tokens": 10, "output_tokens": 1}
}`

func newMessagesAdapter(url string) *MessagesAdapter {
	return &MessagesAdapter{
		BaseURL: url,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func TestMessagesAdapterSend(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("expected /v1/messages, got %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "sk-ant-test" {
			t.Errorf("x-api-key: got %q, want %q", got, "sk-ant-test")
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(messagesBody))
	}))
	defer srv.Close()

	got, err := newMessagesAdapter(srv.URL).Send(context.Background(), Request{
		Model:          "claude-3-5-sonnet-20241022",
		Prompt:         "What is 2+2?",
		APIKey:         "sk-ant-test",
		UseTemperature: true,
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got != "4" {
		t.Errorf("got %q, want %q", got, "4")
	}

	if captured["model"] != "claude-3-5-sonnet-20241022" {
		t.Errorf("model: got %v", captured["model"])
	}
	if captured["max_tokens"] != float64(1000) {
		t.Errorf("max_tokens: got %v, want 1000", captured["max_tokens"])
	}
	msgs, ok := captured["messages"].([]any)
	if !ok || len(msgs) != 1 {
		t.Fatalf("messages: got %v, want one message", captured["messages"])
	}
	if role := msgs[0].(map[string]any)["role"]; role != "user" {
		t.Errorf("role: got %v, want user", role)
	}
}

func TestMessagesAdapterEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","content":[]}`))
	}))
	defer srv.Close()

	got, err := newMessagesAdapter(srv.URL).Send(context.Background(), Request{Model: "claude", Prompt: "hi", APIKey: "k"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestMessagesAdapterAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"model: not-a-model"}}`))
	}))
	defer srv.Close()

	_, err := newMessagesAdapter(srv.URL).Send(context.Background(), Request{Model: "not-a-model", Prompt: "hi", APIKey: "k"})
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ProviderError, got %T (%v)", err, err)
	}
	if pe.Provider != "anthropic" {
		t.Errorf("provider: got %q, want %q", pe.Provider, "anthropic")
	}
	if !strings.Contains(err.Error(), "model: not-a-model") {
		t.Errorf("error: got %q, want upstream message", err.Error())
	}
}

func TestMessagesAdapterName(t *testing.T) {
	if got := (&MessagesAdapter{}).Name(); got != "Anthropic" {
		t.Errorf("got %q, want %q", got, "Anthropic")
	}
}
