package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, path, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llmeval_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// DispatchDuration tracks wall time of a full fan-out, i.e. the slowest model.
	DispatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "llmeval_dispatch_duration_seconds",
		Help:    "Time spent waiting for every model to answer one prompt.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	})

	// ModelDuration tracks upstream latency per model.
	ModelDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "llmeval_model_duration_seconds",
		Help:    "Time spent on a single model call.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"model", "provider"})

	// ModelResults counts settled model calls by outcome.
	ModelResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llmeval_model_results_total",
		Help: "Settled model calls by outcome (ok, missing_credential, provider_error, internal_error).",
	}, []string{"model", "provider", "outcome"})

	// PromptChars tracks the distribution of prompt lengths.
	PromptChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "llmeval_prompt_chars",
		Help:    "Number of characters in submitted prompts.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})
)
