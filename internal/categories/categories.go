// Package categories implements category management: CRUD, the
// activate/deactivate toggle and the in-memory list filter.
package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/vyapar/internal/gateway"
	"github.com/shashiranjanraj/vyapar/internal/session"
	"github.com/shashiranjanraj/vyapar/pkg/audit"
	"github.com/shashiranjanraj/vyapar/pkg/collection"
	"github.com/shashiranjanraj/vyapar/pkg/logger"
	"github.com/shashiranjanraj/vyapar/pkg/validate"
)

// ErrDeclined reports a confirmation prompt answered with no.
var ErrDeclined = errors.New("categories: action not confirmed")

// Confirmer answers a yes/no prompt before a destructive action. A nil
// Confirmer approves everything.
type Confirmer func(prompt string) bool

// Category is the backend's category record. ProductCount is read-only,
// computed server-side.
type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
	ProductCount int    `json:"product_count"`
}

// Form is the create/update payload for a category.
type Form struct {
	Name         string `json:"name" validate:"required"`
	Slug         string `json:"slug" validate:"required,slug"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
	IsActive     bool   `json:"is_active"`
}

func (f *Form) validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Slug = strings.TrimSpace(f.Slug)
	f.Description = strings.TrimSpace(f.Description)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
	return validate.Check(*f)
}

// payload maps empty optional fields to JSON null as the API expects.
func (f *Form) payload() map[string]any {
	return map[string]any{
		"name":          f.Name,
		"slug":          f.Slug,
		"description":   nullable(f.Description),
		"image_url":     nullable(f.ImageURL),
		"display_order": f.DisplayOrder,
		"is_active":     f.IsActive,
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Service talks to the backend's /admin/categories endpoints.
type Service struct {
	api      *gateway.Client
	sessions *session.Store
	confirm  Confirmer
}

func New(api *gateway.Client, sessions *session.Store, confirm Confirmer) *Service {
	return &Service{api: api, sessions: sessions, confirm: confirm}
}

func (s *Service) confirmed(prompt string) bool {
	if s.confirm == nil {
		return true
	}
	return s.confirm(prompt)
}

func (s *Service) actor() string {
	if admin := s.sessions.CurrentAdmin(); admin != nil {
		return admin.Username
	}
	return ""
}

// List fetches every category, ordered the way the storefront shows them:
// display order first, name as the tie-breaker.
func (s *Service) List(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := s.api.Get(ctx, "/admin/categories", nil, &out); err != nil {
		return nil, err
	}
	collection.SortBy(out, func(a, b Category) bool {
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		return a.Name < b.Name
	})
	return out, nil
}

// Create validates the form locally and creates the category.
func (s *Service) Create(ctx context.Context, form *Form) (*Category, error) {
	if err := form.validate(); err != nil {
		return nil, err
	}

	var out Category
	if err := s.api.Post(ctx, "/admin/categories", form.payload(), &out); err != nil {
		return nil, err
	}

	logger.Info("categories: created", "category_id", out.ID, "slug", out.Slug)
	audit.Record("categories:create", s.actor(), map[string]any{"category_id": out.ID})
	return &out, nil
}

// Update validates the form locally and replaces the stored category.
func (s *Service) Update(ctx context.Context, id int64, form *Form) (*Category, error) {
	if err := form.validate(); err != nil {
		return nil, err
	}

	var out Category
	if err := s.api.Put(ctx, fmt.Sprintf("/admin/categories/%d", id), form.payload(), &out); err != nil {
		return nil, err
	}

	logger.Info("categories: updated", "category_id", id)
	audit.Record("categories:update", s.actor(), map[string]any{"category_id": id})
	return &out, nil
}

// ToggleActive flips the category's visibility after confirmation.
func (s *Service) ToggleActive(ctx context.Context, id int64) error {
	if !s.confirmed(fmt.Sprintf("Change visibility of category #%d?", id)) {
		return ErrDeclined
	}
	if err := s.api.Patch(ctx, fmt.Sprintf("/admin/categories/%d/toggle-active", id), nil, nil); err != nil {
		return err
	}
	audit.Record("categories:toggle-active", s.actor(), map[string]any{"category_id": id})
	return nil
}

// Delete removes the category after confirmation.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if !s.confirmed(fmt.Sprintf("Delete category #%d? This cannot be undone.", id)) {
		return ErrDeclined
	}
	if err := s.api.Delete(ctx, fmt.Sprintf("/admin/categories/%d", id), nil); err != nil {
		return err
	}
	logger.Info("categories: deleted", "category_id", id)
	audit.Record("categories:delete", s.actor(), map[string]any{"category_id": id})
	return nil
}

// Filter narrows a category snapshot. Zero values mean "no constraint".
type Filter struct {
	Search string // matches name, slug or description, case-insensitive
	Active string // "true", "false" or "" for both
}

// Apply filters a fetched snapshot in memory.
func (f Filter) Apply(list []Category) []Category {
	out := list
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		out = collection.Filter(out, func(c Category) bool {
			return strings.Contains(strings.ToLower(c.Name), term) ||
				strings.Contains(strings.ToLower(c.Slug), term) ||
				strings.Contains(strings.ToLower(c.Description), term)
		})
	}
	switch f.Active {
	case "true":
		out = collection.Filter(out, func(c Category) bool { return c.IsActive })
	case "false":
		out = collection.Filter(out, func(c Category) bool { return !c.IsActive })
	}
	return out
}
