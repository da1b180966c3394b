// Package repo — template catalog reads. The catalog is maintained
// out-of-band; the gateway only ever lists it.
package repo

import (
	"context"

	"github.com/intellinotes/go-notes-backend/internal/domain"
)

// ListTemplates returns every template in the catalog ordered by NAME
// ascending, running a fresh query on every call.
//
// Known ambiguity, preserved on purpose: a failed read and an empty catalog
// both return an empty slice. The log entry is the only way to tell them
// apart. Callers that need a hard distinction must not get one here without
// a coordinated change to the orchestration layer.
func (g *Gateway) ListTemplates(ctx context.Context) []domain.Template {
	db, release, ok := g.acquire(ctx, "list_templates")
	if !ok {
		return []domain.Template{}
	}
	defer release()

	var rows []domain.Template
	err := db.WithContext(ctx).
		Order("NAME asc").
		Find(&rows).Error
	if err != nil {
		g.log.Error().Err(err).Msg("failed to fetch templates")
		return []domain.Template{}
	}

	if len(rows) == 0 {
		g.log.Warn().Msg("no templates found")
		return []domain.Template{}
	}
	g.log.Info().Int("count", len(rows)).Msg("fetched templates")
	return rows
}
