package repo

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/intellinotes/go-notes-backend/internal/config"
	"github.com/intellinotes/go-notes-backend/internal/domain"
)

// newTestStore creates a migrated SQLite file under t.TempDir and returns its
// path. The bootstrap handle is closed before returning so the gateway's
// per-operation connections are the only ones touching the file.
func newTestStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.db")

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return path
}

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	return NewGateway(config.DBConfig{Addr: newTestStore(t)}, zerolog.Nop())
}

// countingOpener wraps an Opener and counts opens and releases, so tests can
// assert the one-connection-per-operation discipline.
type countingOpener struct {
	inner    Opener
	opens    int32
	releases int32
}

func (c *countingOpener) open(ctx context.Context) (*gorm.DB, func(), error) {
	db, release, err := c.inner(ctx)
	if err != nil {
		return nil, nil, err
	}
	atomic.AddInt32(&c.opens, 1)
	return db, func() {
		atomic.AddInt32(&c.releases, 1)
		release()
	}, nil
}

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }
func f64ptr(f float64) *float64 {
	return &f
}

func TestRecordEvent_RoundTrip_AllFields(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	created := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	rec := EventRecord{
		Event:         "Meeting Summary",
		Model:         "llama3.1",
		InputMessage:  strptr("Alice: the Q3 pipeline looks thin.\nBob: agreed."),
		OutputMessage: strptr("- Pipeline concerns raised\n- Follow-up scheduled"),
		InputTokens:   intptr(57),
		OutputTokens:  intptr(12),
		Duration:      f64ptr(3.25),
		UserID:        "user-42",
		CreateDate:    created,
		CustomPrompt:  strptr("Summarize as bullets."),
	}

	logID, fail := gw.RecordEvent(ctx, rec)
	if !fail.OK() {
		t.Fatalf("RecordEvent failed: %v", fail)
	}
	if logID <= 0 {
		t.Fatalf("expected store-assigned positive LOGID, got %d", logID)
	}

	got, fail := gw.GetEvent(ctx, logID)
	if !fail.OK() {
		t.Fatalf("GetEvent failed: %v", fail)
	}
	if got.Event != rec.Event || got.Model != rec.Model || got.UserID != rec.UserID {
		t.Fatalf("labels mismatch: %+v", got)
	}
	if got.InputMessage == nil || *got.InputMessage != *rec.InputMessage {
		t.Fatalf("input message mismatch: %v", got.InputMessage)
	}
	if got.OutputMessage == nil || *got.OutputMessage != *rec.OutputMessage {
		t.Fatalf("output message mismatch: %v", got.OutputMessage)
	}
	if got.InputTokens == nil || *got.InputTokens != 57 || got.OutputTokens == nil || *got.OutputTokens != 12 {
		t.Fatalf("token counts mismatch: %v %v", got.InputTokens, got.OutputTokens)
	}
	if got.Duration == nil || *got.Duration != 3.25 {
		t.Fatalf("duration mismatch: %v", got.Duration)
	}
	if got.ErrorMessage != nil {
		t.Fatalf("expected NULL error message, got %q", *got.ErrorMessage)
	}
	if got.CustomPrompt == nil || *got.CustomPrompt != *rec.CustomPrompt {
		t.Fatalf("custom prompt mismatch: %v", got.CustomPrompt)
	}
	if !got.CreateDate.Equal(created) {
		t.Fatalf("create date mismatch: got %v want %v", got.CreateDate, created)
	}
}

func TestRecordEvent_OptionalFieldsStayNull(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	logID, fail := gw.RecordEvent(ctx, EventRecord{Event: "Meeting Summary", Model: "llama3.1"})
	if !fail.OK() {
		t.Fatalf("RecordEvent failed: %v", fail)
	}

	got, fail := gw.GetEvent(ctx, logID)
	if !fail.OK() {
		t.Fatalf("GetEvent failed: %v", fail)
	}
	if got.InputMessage != nil || got.OutputMessage != nil || got.InputTokens != nil ||
		got.OutputTokens != nil || got.Duration != nil || got.ErrorMessage != nil ||
		got.UserRating != nil || got.UserFeedback != nil || got.CustomPrompt != nil {
		t.Fatalf("expected all optional columns NULL, got %+v", got)
	}
	if got.CreateDate.IsZero() {
		t.Fatalf("expected CreateDate defaulted to insert time")
	}
}

func TestRecordEvent_RequiredLabels_NoConnectionOpened(t *testing.T) {
	co := &countingOpener{inner: DefaultOpener(config.DBConfig{Addr: newTestStore(t)})}
	gw := NewGateway(config.DBConfig{}, zerolog.Nop(), WithOpener(co.open))

	for _, rec := range []EventRecord{
		{Event: "", Model: "llama3.1"},
		{Event: "Meeting Summary", Model: "  "},
	} {
		logID, fail := gw.RecordEvent(context.Background(), rec)
		if fail != FailureWrite {
			t.Fatalf("expected FailureWrite for %+v, got %v", rec, fail)
		}
		if logID != 0 {
			t.Fatalf("expected zero log id, got %d", logID)
		}
	}
	if co.opens != 0 {
		t.Fatalf("validation failures must not open connections, got %d opens", co.opens)
	}
}

func TestRecordEvent_StoreUnavailable(t *testing.T) {
	// A path inside a directory that does not exist cannot be opened.
	bad := filepath.Join(t.TempDir(), "missing-dir", "notes.db")
	gw := NewGateway(config.DBConfig{Addr: bad}, zerolog.Nop())

	logID, fail := gw.RecordEvent(context.Background(), EventRecord{Event: "Meeting Summary", Model: "llama3.1"})
	if fail != FailureUnavailable {
		t.Fatalf("expected FailureUnavailable, got %v", fail)
	}
	if logID != 0 {
		t.Fatalf("expected zero log id on unavailable store, got %d", logID)
	}

	if f := gw.RecordFeedback(context.Background(), FeedbackRecord{LogID: 1, UserID: "u"}); f != FailureUnavailable {
		t.Fatalf("expected FailureUnavailable from RecordFeedback, got %v", f)
	}
	if rows := gw.ListTemplates(context.Background()); rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil slice from ListTemplates, got %v", rows)
	}
}

func TestGateway_OneOpenOneReleasePerOperation(t *testing.T) {
	co := &countingOpener{inner: DefaultOpener(config.DBConfig{Addr: newTestStore(t)})}
	gw := NewGateway(config.DBConfig{}, zerolog.Nop(), WithOpener(co.open))
	ctx := context.Background()

	logID, fail := gw.RecordEvent(ctx, EventRecord{Event: "Meeting Summary", Model: "llama3.1"})
	if !fail.OK() {
		t.Fatalf("RecordEvent failed: %v", fail)
	}
	if f := gw.RecordFeedback(ctx, FeedbackRecord{LogID: logID, UserID: "u1", UserRating: intptr(4)}); !f.OK() {
		t.Fatalf("RecordFeedback failed: %v", f)
	}
	_ = gw.ListTemplates(ctx)
	if _, f := gw.GetEvent(ctx, 999999); f != FailureRead {
		t.Fatalf("expected FailureRead for missing event, got %v", f)
	}
	if _, _, f := gw.ListEvents(ctx, 0, 10); !f.OK() {
		t.Fatalf("ListEvents failed: %v", f)
	}

	if co.opens != 5 {
		t.Fatalf("expected 5 opens (one per operation), got %d", co.opens)
	}
	if co.releases != co.opens {
		t.Fatalf("connection leak: %d opens, %d releases", co.opens, co.releases)
	}
}

func TestRecordEvent_ConcurrentWritersGetDistinctIDs(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	const n = 8
	ids := make([]int64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			id, fail := gw.RecordEvent(ctx, EventRecord{Event: "Meeting Summary", Model: "llama3.1", UserID: "racer"})
			if !fail.OK() {
				t.Errorf("concurrent RecordEvent failed: %v", fail)
				return
			}
			ids[i] = id
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool, n)
	for _, id := range ids {
		if id == 0 {
			t.Fatalf("missing log id in %v", ids)
		}
		if seen[id] {
			t.Fatalf("duplicate log id %d in %v", id, ids)
		}
		seen[id] = true
	}
}

func TestListEvents_NewestFirstWithTotal(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		id, fail := gw.RecordEvent(ctx, EventRecord{Event: "Meeting Summary", Model: "llama3.1"})
		if !fail.OK() {
			t.Fatalf("seed event %d failed: %v", i, fail)
		}
		last = id
	}

	rows, total, fail := gw.ListEvents(ctx, 0, 2)
	if !fail.OK() {
		t.Fatalf("ListEvents failed: %v", fail)
	}
	if total != 5 {
		t.Fatalf("total = %d; want 5", total)
	}
	if len(rows) != 2 {
		t.Fatalf("page size = %d; want 2", len(rows))
	}
	if rows[0].LogID != last {
		t.Fatalf("expected newest first: got %d want %d", rows[0].LogID, last)
	}
	if rows[0].LogID < rows[1].LogID {
		t.Fatalf("expected descending order: %d then %d", rows[0].LogID, rows[1].LogID)
	}

	// Second page continues the descending sequence.
	rows2, _, fail := gw.ListEvents(ctx, 2, 2)
	if !fail.OK() || len(rows2) != 2 {
		t.Fatalf("second page: rows=%d fail=%v", len(rows2), fail)
	}
	if rows2[0].LogID >= rows[1].LogID {
		t.Fatalf("pages overlap: %d >= %d", rows2[0].LogID, rows[1].LogID)
	}
}

func TestRecordFeedback_HealthCheckScenario(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	// The ops runbook smoke test: write a marker event, rate it.
	logID, fail := gw.RecordEvent(ctx, EventRecord{Event: "Test Log", Model: "Test Model", UserID: "healthcheck"})
	if !fail.OK() || logID == 0 {
		t.Fatalf("marker event failed: id=%d fail=%v", logID, fail)
	}

	if f := gw.RecordFeedback(ctx, FeedbackRecord{
		LogID:        logID,
		UserID:       "healthcheck",
		UserFeedback: strptr("looks good"),
		UserRating:   intptr(5),
	}); !f.OK() {
		t.Fatalf("feedback on marker event failed: %v", f)
	}
}

func TestRecordFeedback_UnknownLogIDStillInserts(t *testing.T) {
	gw := newTestGateway(t)

	// No SUMMARY_EVENT row with this id exists; the insert must still commit.
	if f := gw.RecordFeedback(context.Background(), FeedbackRecord{
		LogID:      987654,
		UserID:     "u1",
		UserRating: intptr(2),
	}); !f.OK() {
		t.Fatalf("feedback against unknown log id should insert, got %v", f)
	}
}

func TestRecordFeedback_MultipleRowsSameLogID(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	logID, fail := gw.RecordEvent(ctx, EventRecord{Event: "Meeting Summary", Model: "llama3.1"})
	if !fail.OK() {
		t.Fatalf("seed event failed: %v", fail)
	}

	for i, rating := range []int{1, 3, 5} {
		if f := gw.RecordFeedback(ctx, FeedbackRecord{LogID: logID, UserID: "u1", UserRating: intptr(rating)}); !f.OK() {
			t.Fatalf("feedback %d failed: %v", i, f)
		}
	}

	// Verify three independent rows landed.
	db, release, err := DefaultOpener(gw.creds)(ctx)
	if err != nil {
		t.Fatalf("verify open: %v", err)
	}
	defer release()
	var count int64
	if err := db.Model(&domain.FeedbackEntry{}).Where("LOGID = ?", logID).Count(&count).Error; err != nil {
		t.Fatalf("count feedback: %v", err)
	}
	if count != 3 {
		t.Fatalf("feedback rows = %d; want 3", count)
	}
}

func TestRecordFeedback_RequiredFields(t *testing.T) {
	co := &countingOpener{inner: DefaultOpener(config.DBConfig{Addr: newTestStore(t)})}
	gw := NewGateway(config.DBConfig{}, zerolog.Nop(), WithOpener(co.open))

	if f := gw.RecordFeedback(context.Background(), FeedbackRecord{LogID: 0, UserID: "u1"}); f != FailureWrite {
		t.Fatalf("expected FailureWrite for zero log id, got %v", f)
	}
	if f := gw.RecordFeedback(context.Background(), FeedbackRecord{LogID: 7, UserID: "  "}); f != FailureWrite {
		t.Fatalf("expected FailureWrite for blank user id, got %v", f)
	}
	if co.opens != 0 {
		t.Fatalf("validation failures must not open connections, got %d opens", co.opens)
	}
}

func TestRecordFeedback_OutOfRangeRatingIsStored(t *testing.T) {
	// The 1-5 range is a transport-layer concern; the gateway stores what it
	// is given.
	gw := newTestGateway(t)
	if f := gw.RecordFeedback(context.Background(), FeedbackRecord{LogID: 1, UserID: "u1", UserRating: intptr(42)}); !f.OK() {
		t.Fatalf("gateway must not range-check ratings, got %v", f)
	}
}

func TestListTemplates_OrderedByName(t *testing.T) {
	path := newTestStore(t)

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := SeedTemplates(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	gw := NewGateway(config.DBConfig{Addr: path}, zerolog.Nop())
	rows := gw.ListTemplates(context.Background())
	if len(rows) != 5 {
		t.Fatalf("template count = %d; want 5", len(rows))
	}

	want := []string{"Custom Prompt", "Customer Success", "General Meeting", "Project Manager", "Sales"}
	for i, w := range want {
		if rows[i].Name != w {
			t.Fatalf("position %d = %q; want %q (full order %v)", i, rows[i].Name, w, rows)
		}
	}
}

func TestListTemplates_EmptyCatalogAndFailedReadBothEmpty(t *testing.T) {
	// Empty catalog.
	gw := newTestGateway(t)
	if rows := gw.ListTemplates(context.Background()); rows == nil || len(rows) != 0 {
		t.Fatalf("empty catalog: expected empty non-nil slice, got %v", rows)
	}

	// Unreachable store: indistinguishable at the API, by contract.
	bad := NewGateway(config.DBConfig{Addr: filepath.Join(t.TempDir(), "nope", "x.db")}, zerolog.Nop())
	if rows := bad.ListTemplates(context.Background()); rows == nil || len(rows) != 0 {
		t.Fatalf("failed read: expected empty non-nil slice, got %v", rows)
	}
}

func TestIdempotency_CreateGetDuplicateExpiry(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()
	now := time.Now().UTC()

	// Empty and blank keys short-circuit without touching the store.
	for _, key := range []string{"", "   "} {
		if _, err := gw.GetIdempotency(ctx, "u1", key, now); err != ErrNotFound {
			t.Fatalf("key %q: expected ErrNotFound, got %v", key, err)
		}
	}

	rec, err := gw.CreateIdempotency(ctx, "u1", "k-1", 42, 200, time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.LogID != 42 || rec.Status != 200 {
		t.Fatalf("unexpected record: %+v", rec)
	}

	got, err := gw.GetIdempotency(ctx, "u1", "k-1", now)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LogID != 42 {
		t.Fatalf("log id = %d; want 42", got.LogID)
	}

	// Same key, same user: duplicate.
	if _, err := gw.CreateIdempotency(ctx, "u1", "k-1", 43, 200, time.Hour); err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	// Same key, different user: fine.
	if _, err := gw.CreateIdempotency(ctx, "u2", "k-1", 44, 200, time.Hour); err != nil {
		t.Fatalf("distinct user with same key should insert: %v", err)
	}

	// Expired records are invisible.
	if _, err := gw.CreateIdempotency(ctx, "u3", "k-old", 45, 200, -time.Minute); err != nil {
		t.Fatalf("create expired: %v", err)
	}
	if _, err := gw.GetIdempotency(ctx, "u3", "k-old", now); err != ErrNotFound {
		t.Fatalf("expired record: expected ErrNotFound, got %v", err)
	}
}
