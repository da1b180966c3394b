// Package repo — idempotency record helpers backing safe-retry semantics for
// POST /summaries. Unlike the three audit operations these return plain
// errors: they are internal infrastructure consumed by middleware and
// handlers, not part of the contained-failure gateway surface. They do share
// the per-operation connection discipline.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/intellinotes/go-notes-backend/internal/domain"
)

// GetIdempotency returns a non-expired record for (userID, key) or ErrNotFound.
func (g *Gateway) GetIdempotency(ctx context.Context, userID, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}

	db, release, ok := g.acquire(ctx, "get_idempotency")
	if !ok {
		return nil, errors.New("database unavailable")
	}
	defer release()

	var rec domain.Idempotency
	err := db.WithContext(ctx).
		Where("user_id = ? AND key = ? AND expires_at > ?", userID, key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateIdempotency inserts a record mapping (userID, key) to the persisted
// summary event, returning ErrDuplicate on unique violation.
func (g *Gateway) CreateIdempotency(ctx context.Context, userID, key string, logID int64, status int, ttl time.Duration) (*domain.Idempotency, error) {
	db, release, ok := g.acquire(ctx, "create_idempotency")
	if !ok {
		return nil, errors.New("database unavailable")
	}
	defer release()

	now := time.Now().UTC()
	rec := &domain.Idempotency{
		ID:        uuid.NewString(),
		UserID:    userID,
		Key:       key,
		LogID:     logID,
		Status:    status,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
		low := strings.ToLower(err.Error())
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(low, "unique constraint failed") ||
			strings.Contains(low, "constraint failed: unique") {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}
