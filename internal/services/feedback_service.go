// Package services – FeedbackService
//
// This file implements the FeedbackService, which records user feedback
// against a previously logged summarization attempt. The service checks only
// that the identifying fields are present; two documented gaps are preserved
// on purpose:
//   - the log id is not verified against SUMMARY_EVENT — feedback on an
//     unknown id records fine;
//   - the rating range (1–5) is a transport-layer concern, enforced by the
//     handler's request binding and nowhere below it.
package services

import (
	"context"
	"strings"
	"time"

	"github.com/intellinotes/go-notes-backend/internal/repo"
)

// FeedbackService implements the use-cases around summary feedback.
type FeedbackService struct {
	Gateway *repo.Gateway
}

// Leave records rating and/or comment for the summary event logID on behalf
// of userID.
//
// Errors:
//   - ErrInvalidFeedback when logID or userID is missing.
//   - ErrFeedbackFailed when the store rejected the write; details are in
//     the gateway's log, not in the error.
//
// A zero rating means "no rating given" and is stored as NULL; an empty
// comment likewise.
func (s *FeedbackService) Leave(ctx context.Context, logID int64, userID, comment string, rating int) error {
	if logID <= 0 || strings.TrimSpace(userID) == "" {
		return ErrInvalidFeedback
	}

	rec := repo.FeedbackRecord{
		LogID:       logID,
		UserID:      userID,
		CreatedDate: time.Now().UTC(),
	}
	if c := strings.TrimSpace(comment); c != "" {
		rec.UserFeedback = &c
	}
	if rating != 0 {
		rec.UserRating = &rating
	}

	if fail := s.Gateway.RecordFeedback(ctx, rec); !fail.OK() {
		return ErrFeedbackFailed
	}
	return nil
}
