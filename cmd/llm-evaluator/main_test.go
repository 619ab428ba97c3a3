package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/masabou247/llm-evaluator/internal/adapter"
	"github.com/masabou247/llm-evaluator/internal/config"
	"github.com/masabou247/llm-evaluator/internal/registry"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildAdapters(t *testing.T) {
	cfg := config.Config{
		DeepSeekBaseURL: "https://api.deepseek.com/v1",
		GeminiBaseURL:   "https://generativelanguage.googleapis.com",
		UpstreamTimeout: 30 * time.Second,
	}
	adapters := buildAdapters(cfg, false, discardLogger())

	if len(adapters) != len(registry.Providers()) {
		t.Fatalf("adapters: got %d, want %d", len(adapters), len(registry.Providers()))
	}

	ds, ok := adapters[registry.DeepSeek].(*adapter.ChatCompletionAdapter)
	if !ok {
		t.Fatalf("deepseek adapter: got %T", adapters[registry.DeepSeek])
	}
	if ds.BaseURL != cfg.DeepSeekBaseURL {
		t.Errorf("deepseek base url: got %q, want %q", ds.BaseURL, cfg.DeepSeekBaseURL)
	}
	if ds.Client.Timeout != cfg.UpstreamTimeout {
		t.Errorf("client timeout: got %v, want %v", ds.Client.Timeout, cfg.UpstreamTimeout)
	}
	if _, ok := adapters[registry.Gemini].(*adapter.GenerativeContentAdapter); !ok {
		t.Errorf("gemini adapter: got %T", adapters[registry.Gemini])
	}
	if _, ok := adapters[registry.Anthropic].(*adapter.MessagesAdapter); !ok {
		t.Errorf("anthropic adapter: got %T", adapters[registry.Anthropic])
	}
}

func TestBuildAdaptersMock(t *testing.T) {
	adapters := buildAdapters(config.Config{}, true, discardLogger())

	for _, p := range registry.Providers() {
		if _, ok := adapters[p].(*adapter.MockAdapter); !ok {
			t.Errorf("provider %s: got %T, want *adapter.MockAdapter", p, adapters[p])
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file ignored", func(t *testing.T) {
		if err := loadDotEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("loads variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("LLMEVAL_TEST_DOTENV=loaded\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("LLMEVAL_TEST_DOTENV", "")
		os.Unsetenv("LLMEVAL_TEST_DOTENV")

		if err := loadDotEnv(path); err != nil {
			t.Fatalf("loadDotEnv: %v", err)
		}
		if got := os.Getenv("LLMEVAL_TEST_DOTENV"); got != "loaded" {
			t.Errorf("env: got %q, want %q", got, "loaded")
		}
	})
}
