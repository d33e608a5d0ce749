// Package products implements catalogue management: the product list
// views, the create/update form with its local validation rules, the
// visibility toggles and the image endpoints.
package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/vyapar/internal/gateway"
	"github.com/shashiranjanraj/vyapar/internal/session"
	"github.com/shashiranjanraj/vyapar/pkg/audit"
	"github.com/shashiranjanraj/vyapar/pkg/logger"
)

// ErrDeclined reports a confirmation prompt answered with no.
var ErrDeclined = errors.New("products: action not confirmed")

// Confirmer answers a yes/no prompt before a destructive action. A nil
// Confirmer approves everything.
type Confirmer func(prompt string) bool

// Service talks to the backend's /admin/products endpoints.
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

// List fetches the full catalogue snapshot for the in-memory list views.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := s.api.Get(ctx, "/admin/products", map[string]string{"limit": "1000"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one product with images and variants.
func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	var out Product
	if err := s.api.Get(ctx, fmt.Sprintf("/admin/products/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create validates the form locally and creates the product. The saved
// record comes back from the server so the caller sees assigned IDs.
func (s *Service) Create(ctx context.Context, form *Form) (*Product, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	var out Product
	if err := s.api.Post(ctx, "/admin/products", form.payload(), &out); err != nil {
		return nil, err
	}

	logger.Info("products: created", "product_id", out.ID, "sku", out.SKU)
	audit.Record("products:create", s.actor(), map[string]any{"product_id": out.ID, "sku": out.SKU})
	return &out, nil
}

// Update validates the form locally and replaces the stored product.
func (s *Service) Update(ctx context.Context, id int64, form *Form) (*Product, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	var out Product
	if err := s.api.Put(ctx, fmt.Sprintf("/admin/products/%d", id), form.payload(), &out); err != nil {
		return nil, err
	}

	logger.Info("products: updated", "product_id", id)
	audit.Record("products:update", s.actor(), map[string]any{"product_id": id})
	return &out, nil
}

// ToggleActive flips the product's visibility and returns the refreshed
// record.
func (s *Service) ToggleActive(ctx context.Context, id int64) (*Product, error) {
	if err := s.api.Patch(ctx, fmt.Sprintf("/admin/products/%d/toggle-active", id), nil, nil); err != nil {
		return nil, err
	}
	audit.Record("products:toggle-active", s.actor(), map[string]any{"product_id": id})
	return s.Get(ctx, id)
}

// ToggleFeatured flips the featured flag and returns the refreshed record.
func (s *Service) ToggleFeatured(ctx context.Context, id int64) (*Product, error) {
	if err := s.api.Patch(ctx, fmt.Sprintf("/admin/products/%d/toggle-featured", id), nil, nil); err != nil {
		return nil, err
	}
	audit.Record("products:toggle-featured", s.actor(), map[string]any{"product_id": id})
	return s.Get(ctx, id)
}

// Delete removes the product after confirmation.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if !s.confirmed(fmt.Sprintf("Delete product #%d? This cannot be undone.", id)) {
		return ErrDeclined
	}
	if err := s.api.Delete(ctx, fmt.Sprintf("/admin/products/%d", id), nil); err != nil {
		return err
	}
	logger.Info("products: deleted", "product_id", id)
	audit.Record("products:delete", s.actor(), map[string]any{"product_id": id})
	return nil
}

// LowStockAlert fetches the low-stock summary. Callers that only decorate
// a view with it should treat a failure as "no banner", not as a fatal
// error.
func (s *Service) LowStockAlert(ctx context.Context) (*LowStockAlert, error) {
	var out LowStockAlert
	if err := s.api.Get(ctx, "/admin/products/low-stock/alert", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
