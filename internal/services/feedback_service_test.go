package services

import (
	"context"
	"errors"
	"testing"

	"github.com/intellinotes/go-notes-backend/internal/repo"
)

func eventFixture() repo.EventRecord {
	return repo.EventRecord{Event: "Meeting Summary", Model: "llama3.1", UserID: "u1"}
}

func TestFeedbackLeave_Validation(t *testing.T) {
	svc := &FeedbackService{Gateway: newSeededGateway(t)}
	ctx := context.Background()

	if err := svc.Leave(ctx, 0, "u1", "nice", 5); !errors.Is(err, ErrInvalidFeedback) {
		t.Fatalf("zero log id: got %v", err)
	}
	if err := svc.Leave(ctx, -3, "u1", "nice", 5); !errors.Is(err, ErrInvalidFeedback) {
		t.Fatalf("negative log id: got %v", err)
	}
	if err := svc.Leave(ctx, 7, "   ", "nice", 5); !errors.Is(err, ErrInvalidFeedback) {
		t.Fatalf("blank user: got %v", err)
	}
}

func TestFeedbackLeave_Success_OptionalFields(t *testing.T) {
	gw := newSeededGateway(t)
	svc := &FeedbackService{Gateway: gw}
	ctx := context.Background()

	logID, fail := gw.RecordEvent(ctx, eventFixture())
	if !fail.OK() {
		t.Fatalf("seed event: %v", fail)
	}

	// Rating only.
	if err := svc.Leave(ctx, logID, "u1", "", 4); err != nil {
		t.Fatalf("rating only: %v", err)
	}
	// Comment only; zero rating stays NULL.
	if err := svc.Leave(ctx, logID, "u1", "missed the action items", 0); err != nil {
		t.Fatalf("comment only: %v", err)
	}
	// Feedback against an id nothing points at still records.
	if err := svc.Leave(ctx, 999999, "u1", "ghost", 1); err != nil {
		t.Fatalf("unknown log id: %v", err)
	}
}

func TestFeedbackLeave_StoreDown(t *testing.T) {
	svc := &FeedbackService{Gateway: newBrokenGateway(t)}
	if err := svc.Leave(context.Background(), 1, "u1", "x", 3); !errors.Is(err, ErrFeedbackFailed) {
		t.Fatalf("expected ErrFeedbackFailed, got %v", err)
	}
}
