// Package settings manages the store's configuration keys. Values travel
// as strings on the wire regardless of their meaning; numeric and boolean
// interpretation happens at the edges.
package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/vyapar/internal/gateway"
	"github.com/shashiranjanraj/vyapar/internal/session"
	"github.com/shashiranjanraj/vyapar/pkg/audit"
	"github.com/shashiranjanraj/vyapar/pkg/logger"
	"github.com/shashiranjanraj/vyapar/pkg/validate"
)

// Setting is one configuration entry as the backend returns it.
type Setting struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Settings maps setting key to entry.
type Settings map[string]Setting

// Value returns the raw string for key, or "" when absent.
func (s Settings) Value(key string) string {
	return s[key].Value
}

// Bool interprets the value of key as a boolean flag.
func (s Settings) Bool(key string) bool {
	return s[key].Value == "true"
}

// Float interprets the value of key as a number, zero when absent or
// malformed.
func (s Settings) Float(key string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s[key].Value), 64)
	return v
}

// StoreForm is the bulk settings screen. All values are strings on the
// wire; the numeric fields are validated locally before sending.
type StoreForm struct {
	SiteName              string `json:"site_name" validate:"required"`
	SiteEmail             string `json:"site_email" validate:"required"`
	SitePhone             string `json:"site_phone"`
	ShippingCharges       string `json:"shipping_charges" validate:"nullable,numeric"`
	TaxRate               string `json:"tax_rate" validate:"nullable,numeric"`
	FreeShippingThreshold string `json:"free_shipping_threshold" validate:"nullable,numeric"`
	MinOrderAmount        string `json:"min_order_amount" validate:"nullable,numeric"`
	LowStockThreshold     string `json:"low_stock_threshold" validate:"nullable,numeric"`
	CODEnabled            bool   `json:"-"`
}

// FormFrom seeds the bulk form from the currently stored values, so a
// partial edit round-trips every untouched key instead of blanking it.
func FormFrom(s Settings) StoreForm {
	return StoreForm{
		SiteName:              s.Value("site_name"),
		SiteEmail:             s.Value("site_email"),
		SitePhone:             s.Value("site_phone"),
		ShippingCharges:       s.Value("shipping_charges"),
		TaxRate:               s.Value("tax_rate"),
		FreeShippingThreshold: s.Value("free_shipping_threshold"),
		MinOrderAmount:        s.Value("min_order_amount"),
		LowStockThreshold:     s.Value("low_stock_threshold"),
		CODEnabled:            s.Bool("cod_enabled"),
	}
}

func (f *StoreForm) payload() map[string]string {
	return map[string]string{
		"site_name":               strings.TrimSpace(f.SiteName),
		"site_email":              strings.TrimSpace(f.SiteEmail),
		"site_phone":              strings.TrimSpace(f.SitePhone),
		"shipping_charges":        f.ShippingCharges,
		"tax_rate":                f.TaxRate,
		"free_shipping_threshold": f.FreeShippingThreshold,
		"min_order_amount":        f.MinOrderAmount,
		"low_stock_threshold":     f.LowStockThreshold,
		"cod_enabled":             strconv.FormatBool(f.CODEnabled),
	}
}

// BulkResult is the backend's reply to a bulk update; Errors lists the
// keys it could not apply.
type BulkResult struct {
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

// Service talks to the backend's /admin/settings endpoints.
type Service struct {
	api      *gateway.Client
	sessions *session.Store
}

func New(api *gateway.Client, sessions *session.Store) *Service {
	return &Service{api: api, sessions: sessions}
}

func (s *Service) actor() string {
	if admin := s.sessions.CurrentAdmin(); admin != nil {
		return admin.Username
	}
	return ""
}

// Load fetches every setting.
func (s *Service) Load(ctx context.Context) (Settings, error) {
	var out Settings
	if err := s.api.Get(ctx, "/admin/settings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces one setting's value.
func (s *Service) Update(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("settings: key is required")
	}
	body := map[string]string{"setting_value": value}
	if err := s.api.Put(ctx, "/admin/settings/"+key, body, nil); err != nil {
		return err
	}
	logger.Info("settings: updated", "key", key)
	audit.Record("settings:update", s.actor(), map[string]any{"key": key})
	return nil
}

// Save validates the store form locally and applies it with one bulk
// update. The backend applies keys independently, so a partial failure
// comes back in BulkResult.Errors rather than as a request error.
func (s *Service) Save(ctx context.Context, form *StoreForm) (*BulkResult, error) {
	if err := validate.Check(*form); err != nil {
		return nil, err
	}

	var out BulkResult
	if err := s.api.Post(ctx, "/admin/settings/bulk-update", form.payload(), &out); err != nil {
		return nil, err
	}

	logger.Info("settings: bulk update applied", "errors", len(out.Errors))
	audit.Record("settings:bulk-update", s.actor(), map[string]any{"errors": len(out.Errors)})
	return &out, nil
}
