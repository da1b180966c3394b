// Package services defines the business logic for summaries, feedback, and
// the template catalog. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes is performed at
// the handler layer. Diagnostic detail stays in the log — the user-visible
// failure signal is deliberately generic.
package services

import "errors"

var (
	// ErrEmptyTranscript is returned when a summarization request carries
	// no transcript text.
	ErrEmptyTranscript = errors.New("transcript is empty")

	// ErrTranscriptTooLong is returned when the transcript exceeds the
	// configured maximum length.
	ErrTranscriptTooLong = errors.New("transcript too long")

	// ErrTemplateNotFound indicates that the named summarization template
	// does not exist in the catalog.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrEmptyCustomPrompt is returned when the "Custom Prompt" template is
	// selected but no prompt text was supplied.
	ErrEmptyCustomPrompt = errors.New("custom prompt is empty")

	// ErrSummaryFailed is returned when the LLM could not produce a
	// summary. The attempt is still recorded in the audit log.
	ErrSummaryFailed = errors.New("summary generation failed")

	// ErrInvalidFeedback is returned when a feedback submission is missing
	// its log id or user id.
	ErrInvalidFeedback = errors.New("feedback requires a log id and a user id")

	// ErrFeedbackFailed is returned when the store rejected a feedback
	// submission.
	ErrFeedbackFailed = errors.New("feedback could not be recorded")

	// ErrHistoryUnavailable is returned when the audit history could not
	// be read.
	ErrHistoryUnavailable = errors.New("summary history unavailable")

	// ErrEventNotFound indicates that no recorded summary event exists for
	// the requested log id.
	ErrEventNotFound = errors.New("summary event not found")
)
