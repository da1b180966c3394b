// Package llm wraps the local Ollama inference endpoint behind a narrow
// client interface: one synchronous call that turns a transcript and a
// summarization prompt into summary text.
//
// Failures wrap ErrGenerationFailed so the orchestration layer can treat
// "the model did not produce a summary" uniformly regardless of whether the
// cause was a network error, a timeout, or an empty completion.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/intellinotes/go-notes-backend/internal/config"
)

// ErrGenerationFailed is the sentinel wrapped by every Summarize failure.
var ErrGenerationFailed = errors.New("summary generation failed")

// Usage reports the token accounting the inference endpoint attached to a
// completed request. Zero values mean the endpoint did not report usage.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// Client is the summarization interface consumed by the service layer.
// Implementations must be safe for concurrent use.
type Client interface {
	// Model returns the identifier of the engine behind this client,
	// recorded verbatim in the audit log.
	Model() string
	// Summarize generates a summary of transcript steered by prompt.
	Summarize(ctx context.Context, transcript, prompt string) (string, Usage, error)
}

// OllamaClient implements Client against the native Ollama chat API.
type OllamaClient struct {
	client  *api.Client
	model   string
	timeout time.Duration
	log     zerolog.Logger
}

// NewOllamaClient builds a client for the endpoint described by cfg.
// The base URL must not carry an OpenAI-compat /v1 suffix; it is stripped
// if present because api.NewClient expects the bare host URL.
func NewOllamaClient(cfg config.LLMConfig, log zerolog.Logger) (*OllamaClient, error) {
	base := strings.TrimSuffix(cfg.BaseURL, "/v1")
	base = strings.TrimSuffix(base, "/")

	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse ollama base url %q: %w", base, err)
	}

	// Timeouts are enforced per request via context, not on the transport.
	c := api.NewClient(u, http.DefaultClient)

	log.Info().
		Str("base_url", base).
		Str("model", cfg.Model).
		Dur("timeout", cfg.Timeout).
		Msg("ollama client ready")

	return &OllamaClient{
		client:  c,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		log:     log,
	}, nil
}

// Model returns the configured model identifier.
func (c *OllamaClient) Model() string { return c.model }

// Summarize sends the prompt as the system message and the transcript as the
// user message, non-streaming, and returns the completion plus the token
// usage Ollama reports (prompt_eval_count / eval_count).
func (c *OllamaClient) Summarize(ctx context.Context, transcript, prompt string) (string, Usage, error) {
	if strings.TrimSpace(prompt) == "" {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", Usage{}, fmt.Errorf("%w: empty prompt", ErrGenerationFailed)
	}

	messages := []api.Message{
		{Role: "system", Content: prompt},
	}
	if transcript != "" {
		messages = append(messages, api.Message{Role: "user", Content: transcript})
	}

	stream := false
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   &stream,
	}

	requestCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	var resp api.ChatResponse
	err := c.client.Chat(requestCtx, req, func(r api.ChatResponse) error {
		resp = r
		return nil
	})
	elapsed := time.Since(start)

	if err != nil {
		status := "error"
		if errors.Is(err, context.DeadlineExceeded) {
			status = "timeout"
		}
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": status}).Inc()
		c.log.Error().
			Err(err).
			Str("model", c.model).
			Dur("elapsed", elapsed).
			Msg("ollama chat request failed")
		return "", Usage{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if resp.Message.Content == "" {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "empty"}).Inc()
		c.log.Error().
			Str("model", c.model).
			Dur("elapsed", elapsed).
			Msg("ollama returned an empty completion")
		return "", Usage{}, fmt.Errorf("%w: empty completion", ErrGenerationFailed)
	}

	usage := Usage{
		PromptTokens:     resp.PromptEvalCount,
		CompletionTokens: resp.EvalCount,
	}

	aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success"}).Inc()
	aiRequestDuration.With(prometheus.Labels{"model": c.model}).Observe(elapsed.Seconds())
	if usage.PromptTokens > 0 {
		aiPromptTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(usage.PromptTokens))
	}
	if usage.CompletionTokens > 0 {
		aiCompletionTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(usage.CompletionTokens))
	}

	c.log.Info().
		Str("model", c.model).
		Dur("elapsed", elapsed).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("reply_bytes", len(resp.Message.Content)).
		Msg("summary generated")

	return resp.Message.Content, usage, nil
}
