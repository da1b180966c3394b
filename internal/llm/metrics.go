// Package llm — Prometheus instrumentation for calls to the inference
// endpoint. Labels stay low-cardinality: model and outcome only, never
// user or request identifiers.
package llm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// aiRequestsTotal counts inference requests by model and outcome.
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notes_ai_requests_total",
			Help: "Total number of requests to the AI inference endpoint.",
		},
		[]string{"model", "status"},
	)

	// aiRequestDuration records inference latency in seconds by model.
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notes_ai_request_duration_seconds",
			Help:    "Duration of AI inference requests in seconds.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"model"},
	)

	// aiPromptTokens observes prompt-side token counts per request.
	aiPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notes_ai_prompt_tokens",
			Help:    "Prompt token count per AI request.",
			Buckets: prometheus.ExponentialBuckets(64, 2, 12), // 64 .. ~128k
		},
		[]string{"model"},
	)

	// aiCompletionTokens observes completion-side token counts per request.
	aiCompletionTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notes_ai_completion_tokens",
			Help:    "Completion token count per AI request.",
			Buckets: prometheus.ExponentialBuckets(16, 2, 12),
		},
		[]string{"model"},
	)
)
