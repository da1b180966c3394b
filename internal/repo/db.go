// Package repo — database bootstrapping. This file contains the startup-only
// helpers for the SQLite store (pure Go driver): opening a pooled handle for
// migration, applying the schema, and seeding the stock template catalog.
// The per-operation connection discipline of the Gateway does not apply here;
// these run once from main before the server accepts traffic.
package repo

import (
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/intellinotes/go-notes-backend/internal/domain"
)

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// AutoMigrate applies the schema for all persisted models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.SummaryEvent{},
		&domain.FeedbackEntry{},
		&domain.Template{},
		&domain.Idempotency{},
	)
}

// stockTemplates is the catalog installed on first boot. The catalog is
// otherwise maintained administratively; SeedTemplates never overwrites
// existing rows.
var stockTemplates = []domain.Template{
	{
		Name:        "Sales",
		Icon:        "💼",
		Description: "Perfect for client meetings, pitch discussions, and deal reviews",
		Prompt:      "You are summarizing a sales meeting. Provide a concise summary focusing on the client's needs, discussed solutions, and next steps for the sales team.",
	},
	{
		Name:        "Customer Success",
		Icon:        "🤝",
		Description: "Ideal for customer check-ins, QBRs, and support escalations",
		Prompt:      "You are summarizing a customer success meeting. Highlight key issues raised by the customer, proposed solutions, and any follow-up actions required by the team.",
	},
	{
		Name:        "Project Manager",
		Icon:        "🗂️",
		Description: "Useful for agile planning, sprint reviews, and team updates",
		Prompt:      "You are summarizing a project manager's meeting transcript. Focus on project progress, blockers, team coordination, and next deliverables.",
	},
	{
		Name:        "General Meeting",
		Icon:        "📊",
		Description: "Suitable for team meetings, project updates, and internal discussions",
		Prompt:      "You are summarizing a general team meeting. Provide an overview of the discussed topics, important decisions, and any assigned action items.",
	},
	{
		Name:        "Custom Prompt",
		Icon:        "✍️",
		Description: "Define your own custom meeting summary prompt",
		Prompt:      "", // supplied by the user at request time
	},
}

// SeedTemplates populates the template catalog with the stock entries when
// the table is empty. An already-populated catalog is left untouched.
func SeedTemplates(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Template{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&stockTemplates).Error
}
