// Package domain defines the persistence models for summarization events,
// user feedback, and the prompt template catalog. These types are mapped
// with GORM and form the core data layer of the meeting-notes backend.
//
// Column names are uppercase on the audit tables because they mirror the
// reporting schema consumed by downstream quality dashboards; renaming them
// here would break those consumers.
package domain

import "time"

// SummaryEvent is one row per summarization attempt, successful or not.
//
// Fields:
//   - LogID: store-assigned auto-increment key. Never generated client-side;
//     GORM leaves it zero on insert and reads back the assigned value.
//   - Event / Model: required short labels (e.g. "Meeting Summary", "llama3.1").
//   - InputMessage / OutputMessage / CustomPrompt: unbounded TEXT columns
//     (CLOB-equivalent); nil when not supplied.
//   - InputTokens / OutputTokens / Duration: optional measurements.
//   - ErrorMessage: set when the attempt failed.
//   - UserRating / UserFeedback: normally populated later through a
//     FeedbackEntry, but settable directly.
//   - CreateDate: defaults to insertion time when the caller leaves it zero.
type SummaryEvent struct {
	LogID         int64     `json:"log_id"                     gorm:"column:LOGID;primaryKey;autoIncrement"`
	Event         string    `json:"event"                      gorm:"column:EVENT;type:varchar(64);not null"`
	Model         string    `json:"model"                      gorm:"column:MODEL;type:varchar(64);not null"`
	InputMessage  *string   `json:"input_message,omitempty"    gorm:"column:INPUT_MESSAGE;type:text"`
	OutputMessage *string   `json:"output_message,omitempty"   gorm:"column:OUTPUT_MESSAGE;type:text"`
	InputTokens   *int      `json:"input_tokens,omitempty"     gorm:"column:INPUT_TOKENS"`
	OutputTokens  *int      `json:"output_tokens,omitempty"    gorm:"column:OUTPUT_TOKENS"`
	Duration      *float64  `json:"duration_seconds,omitempty" gorm:"column:DURATION"`
	ErrorMessage  *string   `json:"error_message,omitempty"    gorm:"column:ERRORMESSAGE;type:text"`
	UserID        string    `json:"user_id,omitempty"          gorm:"column:USERID;type:varchar(64);index:idx_event_user"`
	UserRating    *int      `json:"user_rating,omitempty"      gorm:"column:USER_RATING"`
	UserFeedback  *string   `json:"user_feedback,omitempty"    gorm:"column:USER_FEEDBACK;type:text"`
	CreateDate    time.Time `json:"created_date"               gorm:"column:CREATEDATE"`
	CustomPrompt  *string   `json:"custom_prompt,omitempty"    gorm:"column:CUSTOM_PROMPT;type:text"`
}

// TableName returns the database table name for SummaryEvent.
func (SummaryEvent) TableName() string { return "SUMMARY_EVENT" }

// FeedbackEntry is one row per feedback submission.
//
// LogID references a SummaryEvent by convention only: no foreign key is
// declared and the application performs no referential check, so feedback
// against an unknown LogID inserts fine. Multiple rows may reference the
// same LogID — there is deliberately no uniqueness constraint and no
// surrogate primary key; the table is append-only audit data.
type FeedbackEntry struct {
	LogID        int64     `json:"log_id"                  gorm:"column:LOGID;not null;index:idx_feedback_log"`
	UserID       string    `json:"user_id"                 gorm:"column:USERID;type:varchar(64);not null"`
	UserFeedback *string   `json:"user_feedback,omitempty" gorm:"column:USER_FEEDBACK;type:text"`
	UserRating   *int      `json:"user_rating,omitempty"   gorm:"column:USER_RATING"`
	CreatedDate  time.Time `json:"created_date"            gorm:"column:CREATED_DATE"`
}

// TableName returns the database table name for FeedbackEntry.
func (FeedbackEntry) TableName() string { return "FEEDBACK_ENTRY" }

// Template is a read-only projection of the prompt template catalog. Rows
// are maintained out-of-band (administratively); the application only reads
// them, ordered by name.
type Template struct {
	Name        string `json:"name"        gorm:"column:NAME;primaryKey;type:varchar(128)"`
	Icon        string `json:"icon"        gorm:"column:ICON;type:varchar(16)"`
	Description string `json:"description" gorm:"column:DESCRIPTION;type:varchar(512)"`
	Prompt      string `json:"prompt"      gorm:"column:PROMPT;type:text"`
}

// TableName returns the database table name for Template.
func (Template) TableName() string { return "PROMPT_TEMPLATES" }

// Idempotency records a completed POST /summaries request keyed by
// (user_id, key) so client retries can be served from the already-persisted
// SummaryEvent instead of re-running the LLM.
type Idempotency struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;uniqueIndex:ux_idem_user_key"`
	Key       string    `json:"key"        gorm:"type:varchar(200);not null;uniqueIndex:ux_idem_user_key"`
	LogID     int64     `json:"log_id"     gorm:"not null"`
	Status    int       `json:"status"     gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
}

// TableName returns the database table name for Idempotency.
func (Idempotency) TableName() string { return "idempotency_keys" }
