// Package repo — FeedbackEntry operations. This file implements
// recordFeedback, the write path for user feedback on generated summaries.
//
// Two checks are deliberately absent:
//   - no referential check of LogID against SUMMARY_EVENT — feedback against
//     an unknown log id still inserts;
//   - no range check on UserRating — the expected 1–5 range is enforced (if
//     at all) by the caller.
//
// Both are documented caller responsibilities; do not "fix" them here.
package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/intellinotes/go-notes-backend/internal/domain"
)

// FeedbackRecord carries one feedback submission. LogID and UserID are
// required; UserFeedback and UserRating are optional. CreatedDate defaults
// to the insert time when left zero.
type FeedbackRecord struct {
	LogID        int64
	UserID       string
	UserFeedback *string
	UserRating   *int
	CreatedDate  time.Time
}

// RecordFeedback durably records one feedback submission. Multiple rows may
// reference the same LogID; no uniqueness is enforced.
//
// Same containment discipline as RecordEvent: a single atomic insert,
// committed on full success only, every failure logged and converted to a
// Failure kind, and the connection released on every exit path.
func (g *Gateway) RecordFeedback(ctx context.Context, rec FeedbackRecord) Failure {
	if rec.LogID == 0 || strings.TrimSpace(rec.UserID) == "" {
		g.log.Error().
			Int64("log_id", rec.LogID).
			Str("user_id", rec.UserID).
			Msg("record feedback rejected: log id and user id are required")
		return FailureWrite
	}

	db, release, ok := g.acquire(ctx, "record_feedback")
	if !ok {
		return FailureUnavailable
	}
	defer release()

	row := domain.FeedbackEntry{
		LogID:        rec.LogID,
		UserID:       rec.UserID,
		UserFeedback: rec.UserFeedback,
		UserRating:   rec.UserRating,
		CreatedDate:  rec.CreatedDate,
	}
	if row.CreatedDate.IsZero() {
		row.CreatedDate = time.Now().UTC()
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		g.log.Error().
			Err(err).
			Int64("log_id", rec.LogID).
			Str("user_id", rec.UserID).
			Msg("failed to record feedback")
		return FailureWrite
	}

	g.log.Info().
		Int64("log_id", rec.LogID).
		Str("user_id", rec.UserID).
		Msg("feedback recorded")
	return FailureNone
}
