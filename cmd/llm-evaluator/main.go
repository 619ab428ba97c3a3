package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/masabou247/llm-evaluator/internal/adapter"
	"github.com/masabou247/llm-evaluator/internal/config"
	"github.com/masabou247/llm-evaluator/internal/dispatch"
	"github.com/masabou247/llm-evaluator/internal/registry"
	"github.com/masabou247/llm-evaluator/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	useMock := flag.Bool("mock", false, "use mock adapters instead of real providers")
	port := flag.Int("port", 0, "override listen port")
	envPath := flag.String("env", ".env", "path to a .env file with LLMEVAL_* overrides")
	flag.Parse()

	if err := loadDotEnv(*envPath); err != nil {
		fmt.Fprintf(os.Stderr, "env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Port = *port
	}

	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	d := dispatch.New(buildAdapters(cfg, *useMock, logger), dispatch.WithLogger(logger))
	handler := server.SetupMux(d, cfg, logger)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("llm-evaluator listening", "addr", addr, "models", registry.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down")

	// In-flight comparisons may be waiting on a slow model.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.UpstreamTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// loadDotEnv loads environment variables from path. Missing files are ignored.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func buildAdapters(cfg config.Config, useMock bool, logger *slog.Logger) map[registry.Provider]adapter.Adapter {
	adapters := make(map[registry.Provider]adapter.Adapter)

	if useMock {
		for _, p := range registry.Providers() {
			adapters[p] = &adapter.MockAdapter{Delay: 500 * time.Millisecond}
		}
		logger.Info("mode: mock adapters enabled")
		return adapters
	}

	client := &http.Client{Timeout: cfg.UpstreamTimeout}

	adapters[registry.OpenAI] = &adapter.ChatCompletionAdapter{
		Provider: registry.OpenAI,
		BaseURL:  cfg.OpenAIBaseURL,
		Client:   client,
	}
	adapters[registry.DeepSeek] = &adapter.ChatCompletionAdapter{
		Provider: registry.DeepSeek,
		BaseURL:  cfg.DeepSeekBaseURL,
		Client:   client,
	}
	adapters[registry.Gemini] = &adapter.GenerativeContentAdapter{
		BaseURL: cfg.GeminiBaseURL,
		Client:  client,
	}
	adapters[registry.Anthropic] = &adapter.MessagesAdapter{
		BaseURL: cfg.AnthropicBaseURL,
		Client:  client,
	}

	for _, p := range registry.Providers() {
		logger.Info("provider wired", "provider", p, "adapter", adapters[p].Name())
	}
	return adapters
}
