// Package services – TemplateService
//
// This file implements TemplateService, a thin read-through over the
// gateway's template listing that shapes rows for the API: whitespace
// normalization and a display name with consistent casing for catalogs
// maintained by hand.
package services

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/intellinotes/go-notes-backend/internal/repo"
)

// TemplateView is the API projection of one catalog template.
type TemplateView struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	Prompt      string `json:"prompt"`
}

// TemplateService lists the prompt template catalog.
type TemplateService struct {
	Gateway *repo.Gateway

	caser cases.Caser
}

// NewTemplateService constructs a TemplateService with display-name casing
// for the given locale.
func NewTemplateService(gw *repo.Gateway, locale language.Tag) *TemplateService {
	return &TemplateService{
		Gateway: gw,
		caser:   cases.Title(locale),
	}
}

// List returns the catalog ordered by name ascending. It inherits the
// gateway's semantics: an empty catalog and a failed read both yield an
// empty slice, with the log as the only discriminator.
func (s *TemplateService) List(ctx context.Context) []TemplateView {
	rows := s.Gateway.ListTemplates(ctx)

	out := make([]TemplateView, 0, len(rows))
	for _, t := range rows {
		out = append(out, TemplateView{
			Name:        t.Name,
			DisplayName: s.displayName(t.Name),
			Icon:        t.Icon,
			Description: t.Description,
			Prompt:      t.Prompt,
		})
	}
	return out
}

// displayName collapses runs of whitespace and title-cases names that were
// entered in a single case. Mixed-case names ("QBR Review") pass through
// untouched — the admin knew what they wanted.
func (s *TemplateService) displayName(name string) string {
	trimmed := strings.Join(strings.Fields(name), " ")
	if trimmed == "" {
		return trimmed
	}
	if trimmed == strings.ToLower(trimmed) || trimmed == strings.ToUpper(trimmed) {
		return s.caser.String(strings.ToLower(trimmed))
	}
	return trimmed
}
