// Package repo — SummaryEvent operations. This file implements recordEvent,
// the single write path for summarization attempts, plus the read-only
// lookups the audit endpoints use. All of them follow the gateway's
// open → execute → commit → release discipline.
package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/intellinotes/go-notes-backend/internal/domain"
)

// EventRecord carries the caller-supplied fields of one summarization
// attempt. Event and Model are required; every other field is optional and
// nil/zero values are persisted as NULL. CreateDate defaults to the insert
// time when left zero.
type EventRecord struct {
	Event         string
	Model         string
	InputMessage  *string
	OutputMessage *string
	InputTokens   *int
	OutputTokens  *int
	Duration      *float64
	ErrorMessage  *string
	UserID        string
	UserRating    *int
	UserFeedback  *string
	CreateDate    time.Time
	CustomPrompt  *string
}

// RecordEvent durably records one summarization attempt and returns the
// store-assigned LOGID. The identifier comes from the store's auto-increment
// generator — it is never computed here — and is returned only after commit
// confirmation.
//
// Any failure (connection, statement, commit) is logged with full diagnostic
// context and reported as a Failure kind; no partial row persists and no
// error propagates. The connection is released on every exit path.
func (g *Gateway) RecordEvent(ctx context.Context, rec EventRecord) (int64, Failure) {
	if strings.TrimSpace(rec.Event) == "" || strings.TrimSpace(rec.Model) == "" {
		g.log.Error().
			Str("event", rec.Event).
			Str("model", rec.Model).
			Msg("record event rejected: event and model are required")
		return 0, FailureWrite
	}

	db, release, ok := g.acquire(ctx, "record_event")
	if !ok {
		return 0, FailureUnavailable
	}
	defer release()

	row := domain.SummaryEvent{
		Event:         rec.Event,
		Model:         rec.Model,
		InputMessage:  rec.InputMessage,
		OutputMessage: rec.OutputMessage,
		InputTokens:   rec.InputTokens,
		OutputTokens:  rec.OutputTokens,
		Duration:      rec.Duration,
		ErrorMessage:  rec.ErrorMessage,
		UserID:        rec.UserID,
		UserRating:    rec.UserRating,
		UserFeedback:  rec.UserFeedback,
		CreateDate:    rec.CreateDate,
		CustomPrompt:  rec.CustomPrompt,
	}
	if row.CreateDate.IsZero() {
		row.CreateDate = time.Now().UTC()
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		g.log.Error().
			Err(err).
			Str("event", rec.Event).
			Str("model", rec.Model).
			Str("user_id", rec.UserID).
			Msg("failed to record summary event")
		return 0, FailureWrite
	}

	g.log.Info().
		Int64("log_id", row.LogID).
		Str("event", rec.Event).
		Str("model", rec.Model).
		Msg("summary event recorded")
	return row.LogID, FailureNone
}

// GetEvent fetches a single SummaryEvent by its LOGID. A missing row and a
// failed read both come back as (nil, FailureRead); the log line tells them
// apart.
func (g *Gateway) GetEvent(ctx context.Context, logID int64) (*domain.SummaryEvent, Failure) {
	db, release, ok := g.acquire(ctx, "get_event")
	if !ok {
		return nil, FailureUnavailable
	}
	defer release()

	var row domain.SummaryEvent
	if err := db.WithContext(ctx).First(&row, "LOGID = ?", logID).Error; err != nil {
		g.log.Warn().
			Err(err).
			Int64("log_id", logID).
			Msg("summary event lookup failed")
		return nil, FailureRead
	}
	return &row, FailureNone
}

// ListEvents returns one page of recorded events ordered by LOGID descending
// (newest first), plus the total row count for pagination metadata. A failed
// read yields an empty page, logged.
func (g *Gateway) ListEvents(ctx context.Context, offset, limit int) ([]domain.SummaryEvent, int64, Failure) {
	db, release, ok := g.acquire(ctx, "list_events")
	if !ok {
		return []domain.SummaryEvent{}, 0, FailureUnavailable
	}
	defer release()

	var total int64
	if err := db.WithContext(ctx).Model(&domain.SummaryEvent{}).Count(&total).Error; err != nil {
		g.log.Error().Err(err).Msg("failed to count summary events")
		return []domain.SummaryEvent{}, 0, FailureRead
	}

	var rows []domain.SummaryEvent
	err := db.WithContext(ctx).
		Order("LOGID desc").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		g.log.Error().Err(err).Msg("failed to list summary events")
		return []domain.SummaryEvent{}, 0, FailureRead
	}
	if rows == nil {
		rows = []domain.SummaryEvent{}
	}
	return rows, total, FailureNone
}
