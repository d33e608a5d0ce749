// Package orders implements the order lifecycle operations and the list
// views over the backend's order records.
//
// Mutations follow one discipline: apply local refusal rules first, then
// send the change, then re-fetch the order so the caller always renders
// the server's authoritative state rather than an optimistic local copy.
package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/vyapar/internal/gateway"
	"github.com/shashiranjanraj/vyapar/internal/session"
	"github.com/shashiranjanraj/vyapar/pkg/audit"
	"github.com/shashiranjanraj/vyapar/pkg/logger"
	"github.com/shashiranjanraj/vyapar/pkg/validate"
)

// Local refusal and flow-control errors. The first two are informational
// conditions a caller may render as a notice rather than a failure.
var (
	ErrAlreadyCancelled        = errors.New("orders: order is already cancelled")
	ErrPaymentAlreadyCompleted = errors.New("orders: payment is already completed")
	ErrCancelDelivered         = errors.New("orders: cannot cancel a delivered order")
	ErrNotCOD                  = errors.New("orders: payment can only be marked received for COD orders")
	ErrDeclined                = errors.New("orders: action not confirmed")
)

// Confirmer answers a yes/no prompt before a destructive action. The CLI
// wires it to the terminal; a nil Confirmer approves everything.
type Confirmer func(prompt string) bool

// Service talks to the backend's /admin/orders endpoints.
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

// List fetches every order.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := s.api.Get(ctx, "/admin/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one order with items and status history.
func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	var out Order
	if err := s.api.Get(ctx, fmt.Sprintf("/admin/orders/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats fetches the order summary counters.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	if err := s.api.Get(ctx, "/admin/orders/stats/summary", nil, &out); err != nil {
		return nil, err
	}
	if out.ByStatus == nil {
		out.ByStatus = map[string]int{}
	}
	return &out, nil
}

type statusUpdate struct {
	NewStatus string  `json:"new_status" validate:"required,in=pending,confirmed,processing,shipped,delivered,cancelled"`
	Notes     *string `json:"notes"`
}

// UpdateStatus moves the order to newStatus. Any transition the dropdown
// offers is attempted; the server owns the transition rules and its
// rejection comes back as an *gateway.APIError.
func (s *Service) UpdateStatus(ctx context.Context, id int64, newStatus, notes string) (*Order, error) {
	body := statusUpdate{NewStatus: newStatus, Notes: optional(strings.TrimSpace(notes))}
	if err := validate.Check(body); err != nil {
		return nil, err
	}

	if err := s.api.Patch(ctx, fmt.Sprintf("/admin/orders/%d/status", id), body, nil); err != nil {
		return nil, err
	}

	logger.Info("orders: status updated", "order_id", id, "new_status", newStatus)
	audit.Record("orders:update-status", s.actor(), map[string]any{"order_id": id, "new_status": newStatus})
	return s.Get(ctx, id)
}

type trackingUpdate struct {
	TrackingNumber string `json:"tracking_number" validate:"required"`
	CourierName    string `json:"courier_name"    validate:"required"`
}

// AddTracking attaches a tracking number and courier to the order. Both
// fields are required after trimming; nothing is sent when either is
// missing.
func (s *Service) AddTracking(ctx context.Context, id int64, trackingNumber, courierName string) (*Order, error) {
	body := trackingUpdate{
		TrackingNumber: strings.TrimSpace(trackingNumber),
		CourierName:    strings.TrimSpace(courierName),
	}
	if err := validate.Check(body); err != nil {
		return nil, err
	}

	if err := s.api.Patch(ctx, fmt.Sprintf("/admin/orders/%d/tracking", id), body, nil); err != nil {
		return nil, err
	}

	logger.Info("orders: tracking added", "order_id", id, "tracking_number", trackingNumber)
	audit.Record("orders:add-tracking", s.actor(), map[string]any{"order_id": id, "tracking_number": trackingNumber})
	return s.Get(ctx, id)
}

type cancelRequest struct {
	Reason *string `json:"reason"`
}

// Cancel cancels a previously fetched order after local checks: an
// already-cancelled order reports ErrAlreadyCancelled, a delivered order
// ErrCancelDelivered, and the confirmer gets the last word. The checks run
// against the snapshot the caller already holds, so a refusal reaches the
// caller without any network traffic.
func (s *Service) Cancel(ctx context.Context, order *Order, reason string) (*Order, error) {
	switch order.Status {
	case StatusCancelled:
		return nil, ErrAlreadyCancelled
	case StatusDelivered:
		return nil, ErrCancelDelivered
	}

	if !s.confirmed(fmt.Sprintf("Cancel order %s? This cannot be undone.", order.OrderNumber)) {
		return nil, ErrDeclined
	}

	body := cancelRequest{Reason: optional(strings.TrimSpace(reason))}
	if err := s.api.Patch(ctx, fmt.Sprintf("/admin/orders/%d/cancel", order.ID), body, nil); err != nil {
		return nil, err
	}

	logger.Info("orders: cancelled", "order_id", order.ID)
	audit.Record("orders:cancel", s.actor(), map[string]any{"order_id": order.ID, "reason": reason})
	return s.Get(ctx, order.ID)
}

// MarkPaymentReceived marks a previously fetched COD order's payment as
// completed. Online orders are refused locally and an already-completed
// payment reports ErrPaymentAlreadyCompleted; like Cancel, refusals are
// decided from the snapshot without touching the server.
func (s *Service) MarkPaymentReceived(ctx context.Context, order *Order) (*Order, error) {
	if order.PaymentMethod != MethodCOD {
		return nil, ErrNotCOD
	}
	if order.PaymentStatus == PaymentCompleted {
		return nil, ErrPaymentAlreadyCompleted
	}

	if !s.confirmed(fmt.Sprintf("Mark payment as received for order %s?", order.OrderNumber)) {
		return nil, ErrDeclined
	}

	req := fmt.Sprintf("/admin/orders/%d/payment-status", order.ID)
	if err := s.api.Patch(ctx, req+"?payment_status=completed", nil, nil); err != nil {
		return nil, err
	}

	logger.Info("orders: payment marked received", "order_id", order.ID)
	audit.Record("orders:payment-received", s.actor(), map[string]any{"order_id": order.ID})
	return s.Get(ctx, order.ID)
}

// optional maps an empty trimmed string to JSON null.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
