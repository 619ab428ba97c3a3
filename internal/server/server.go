package server

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/masabou247/llm-evaluator/internal/config"
	"github.com/masabou247/llm-evaluator/internal/dispatch"
	"github.com/masabou247/llm-evaluator/internal/handler"
	"github.com/masabou247/llm-evaluator/internal/middleware"
)

// SetupMux wires handlers with the full middleware chain.
func SetupMux(d *dispatch.Dispatcher, cfg config.Config, logger *slog.Logger) http.Handler {
	models := d.Models()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", handler.Health(d, len(models)))
	mux.HandleFunc("/api/models", handler.Models(models))
	mux.HandleFunc("/api/llm", handler.Query(d, cfg.MaxPromptChars))
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.Chain(mux, logger, cfg.MaxBodyBytes)
}
