// Package services – SummaryService
//
// This file implements SummaryService, the application-level component that
// owns the summarization flow: resolve the prompt (catalog template or
// user-supplied custom prompt), call the LLM, count tokens, measure
// duration, and record the attempt — success or failure — through the
// persistence gateway.
//
// Recording is best-effort by design: a gateway failure after a successful
// generation must not destroy the summary the user is waiting for. The
// result carries Logged=false in that case and the diagnostic lives in the
// gateway's log.
//
// Observability: public methods are OpenTelemetry-instrumented; spans carry
// the template name and user identifier, never transcript content.
package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/intellinotes/go-notes-backend/internal/llm"
	"github.com/intellinotes/go-notes-backend/internal/repo"
	"github.com/intellinotes/go-notes-backend/internal/tokenizer"
)

// CustomTemplateName is the catalog entry whose prompt body comes from the
// request instead of the store. Requests selecting it must supply
// CustomPrompt, and the prompt text is persisted in the CUSTOM_PROMPT column
// for auditing.
const CustomTemplateName = "Custom Prompt"

// defaultEventLabel is the audit label recorded for regular summarization
// attempts.
const defaultEventLabel = "Meeting Summary"

// SummaryService coordinates the LLM, the tokenizer, and the persistence
// gateway for a single synchronous summarization flow.
type SummaryService struct {
	Gateway *repo.Gateway
	LLM     llm.Client
	Tokens  tokenizer.Counter

	// MaxTranscriptRunes guards against runaway inputs; <= 0 disables.
	MaxTranscriptRunes int

	// EventLabel overrides the audit label; empty means "Meeting Summary".
	EventLabel string
}

// SummaryInput is the normalized request for one summarization attempt.
type SummaryInput struct {
	UserID       string
	Template     string // catalog template name, or CustomTemplateName
	CustomPrompt string // required iff Template == CustomTemplateName
	Transcript   string
}

// SummaryResult is the outcome of a successful generation. Logged reports
// whether the attempt made it into the audit store; LogID is zero when it
// did not.
type SummaryResult struct {
	LogID           int64   `json:"log_id"`
	Summary         string  `json:"summary"`
	Model           string  `json:"model"`
	InputTokens     int     `json:"input_tokens"`
	OutputTokens    int     `json:"output_tokens"`
	DurationSeconds float64 `json:"duration_seconds"`
	Logged          bool    `json:"logged"`
}

// Summarize runs the full flow for one transcript.
//
// Validation:
//   - the transcript must be non-empty (ErrEmptyTranscript) and within the
//     configured length (ErrTranscriptTooLong);
//   - a named template must exist in the catalog (ErrTemplateNotFound);
//   - the custom template requires prompt text (ErrEmptyCustomPrompt).
//
// A generation failure is recorded as an audit event with ERRORMESSAGE set
// and surfaces as ErrSummaryFailed. Token counts come from the tokenizer,
// falling back to the usage reported by the inference endpoint when the
// encoding is unavailable.
func (s *SummaryService) Summarize(ctx context.Context, in SummaryInput) (*SummaryResult, error) {
	tr := otel.Tracer("services/SummaryService")
	ctx, span := tr.Start(ctx, "Summarize",
		trace.WithAttributes(
			attribute.String("template", in.Template),
			attribute.String("user.id", in.UserID),
		),
	)
	defer span.End()

	transcript := strings.TrimSpace(in.Transcript)
	if transcript == "" {
		return nil, ErrEmptyTranscript
	}
	if s.MaxTranscriptRunes > 0 && utf8.RuneCountInString(transcript) > s.MaxTranscriptRunes {
		return nil, ErrTranscriptTooLong
	}

	prompt, customPrompt, err := s.resolvePrompt(ctx, in)
	if err != nil {
		return nil, err
	}

	event := s.EventLabel
	if event == "" {
		event = defaultEventLabel
	}
	model := s.LLM.Model()

	start := time.Now()
	summary, usage, genErr := s.LLM.Summarize(ctx, transcript, prompt)
	duration := time.Since(start).Seconds()

	if genErr != nil {
		// The failed attempt is audit data too.
		msg := genErr.Error()
		s.Gateway.RecordEvent(ctx, repo.EventRecord{
			Event:        event,
			Model:        model,
			InputMessage: &transcript,
			Duration:     &duration,
			ErrorMessage: &msg,
			UserID:       in.UserID,
			CustomPrompt: customPrompt,
		})
		return nil, ErrSummaryFailed
	}

	inputTokens, outputTokens := s.countTokens(transcript, summary, usage)

	logID, fail := s.Gateway.RecordEvent(ctx, repo.EventRecord{
		Event:         event,
		Model:         model,
		InputMessage:  &transcript,
		OutputMessage: &summary,
		InputTokens:   &inputTokens,
		OutputTokens:  &outputTokens,
		Duration:      &duration,
		UserID:        in.UserID,
		CustomPrompt:  customPrompt,
	})

	return &SummaryResult{
		LogID:           logID,
		Summary:         summary,
		Model:           model,
		InputTokens:     inputTokens,
		OutputTokens:    outputTokens,
		DurationSeconds: duration,
		Logged:          fail.OK(),
	}, nil
}

// Replay reconstructs the result of an already-recorded attempt, used to
// serve idempotent retries without re-running the LLM.
func (s *SummaryService) Replay(ctx context.Context, logID int64) (*SummaryResult, error) {
	ev, fail := s.Gateway.GetEvent(ctx, logID)
	if !fail.OK() || ev == nil {
		return nil, ErrEventNotFound
	}

	res := &SummaryResult{
		LogID:  ev.LogID,
		Model:  ev.Model,
		Logged: true,
	}
	if ev.OutputMessage != nil {
		res.Summary = *ev.OutputMessage
	}
	if ev.InputTokens != nil {
		res.InputTokens = *ev.InputTokens
	}
	if ev.OutputTokens != nil {
		res.OutputTokens = *ev.OutputTokens
	}
	if ev.Duration != nil {
		res.DurationSeconds = *ev.Duration
	}
	return res, nil
}

// History returns one page of recorded attempts, newest first, plus the
// total count for pagination metadata.
func (s *SummaryService) History(ctx context.Context, page, pageSize int) ([]HistoryPage, int64, error) {
	tr := otel.Tracer("services/SummaryService")
	ctx, span := tr.Start(ctx, "History",
		trace.WithAttributes(
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	rows, total, fail := s.Gateway.ListEvents(ctx, offset, pageSize)
	if !fail.OK() {
		return nil, 0, ErrHistoryUnavailable
	}

	out := make([]HistoryPage, 0, len(rows))
	for _, ev := range rows {
		h := HistoryPage{
			LogID:      ev.LogID,
			Event:      ev.Event,
			Model:      ev.Model,
			UserID:     ev.UserID,
			CreateDate: ev.CreateDate,
			Failed:     ev.ErrorMessage != nil,
		}
		if ev.InputTokens != nil {
			h.InputTokens = *ev.InputTokens
		}
		if ev.OutputTokens != nil {
			h.OutputTokens = *ev.OutputTokens
		}
		if ev.Duration != nil {
			h.DurationSeconds = *ev.Duration
		}
		out = append(out, h)
	}
	return out, total, nil
}

// HistoryPage is one audit row with the large text columns projected away;
// transcripts and summaries stay out of list responses.
type HistoryPage struct {
	LogID           int64     `json:"log_id"`
	Event           string    `json:"event"`
	Model           string    `json:"model"`
	UserID          string    `json:"user_id,omitempty"`
	InputTokens     int       `json:"input_tokens,omitempty"`
	OutputTokens    int       `json:"output_tokens,omitempty"`
	DurationSeconds float64   `json:"duration_seconds,omitempty"`
	Failed          bool      `json:"failed"`
	CreateDate      time.Time `json:"created_date"`
}

// resolvePrompt picks the prompt body for the request: the stored template
// prompt, or the caller's custom text when the custom template is selected.
// The second return value is non-nil only for custom prompts and is what
// gets persisted in CUSTOM_PROMPT.
func (s *SummaryService) resolvePrompt(ctx context.Context, in SummaryInput) (string, *string, error) {
	name := strings.TrimSpace(in.Template)

	if name == CustomTemplateName {
		custom := strings.TrimSpace(in.CustomPrompt)
		if custom == "" {
			return "", nil, ErrEmptyCustomPrompt
		}
		return custom, &custom, nil
	}

	for _, t := range s.Gateway.ListTemplates(ctx) {
		if t.Name == name {
			return t.Prompt, nil, nil
		}
	}
	return "", nil, ErrTemplateNotFound
}

// countTokens prefers the tokenizer's counts; when the encoding cannot be
// loaded it falls back to the usage figures the endpoint reported.
func (s *SummaryService) countTokens(transcript, summary string, usage llm.Usage) (int, int) {
	inputTokens, inErr := s.Tokens.Count(transcript)
	outputTokens, outErr := s.Tokens.Count(summary)
	if inErr != nil {
		inputTokens = usage.PromptTokens
	}
	if outErr != nil {
		outputTokens = usage.CompletionTokens
	}
	return inputTokens, outputTokens
}
