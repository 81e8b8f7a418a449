package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/atelier-erp/atelier-erp/internal/audit"
	"github.com/atelier-erp/atelier-erp/internal/shared"
)

// AuditPort abstracts best-effort audit recording.
type AuditPort interface {
	Record(ctx context.Context, entry audit.Entry) error
}

// Service coordinates stock changes and alert reads.
type Service struct {
	repo      Repository
	audit     AuditPort
	auditWarn *slog.Logger
}

// NewService builds the inventory service.
func NewService(repo Repository, auditPort AuditPort, auditWarn *slog.Logger) *Service {
	if auditWarn == nil {
		auditWarn = slog.Default()
	}
	return &Service{repo: repo, audit: auditPort, auditWarn: auditWarn}
}

// List returns all inventory rows.
func (s *Service) List(ctx context.Context) ([]Row, error) {
	return s.repo.List(ctx)
}

// Adjust applies a signed stock delta to one row.
func (s *Service) Adjust(ctx context.Context, actor shared.Actor, id int64, delta int) (Row, error) {
	if delta == 0 {
		return Row{}, ErrZeroDelta
	}
	if err := s.repo.ApplyDelta(ctx, id, delta); err != nil {
		return Row{}, err
	}
	s.record(ctx, actor, "UPDATE_INVENTORY", id, fmt.Sprintf("delta=%d", delta))
	return s.repo.Get(ctx, id)
}

// Zero empties one inventory row.
func (s *Service) Zero(ctx context.Context, actor shared.Actor, id int64) error {
	if err := s.repo.SetQuantity(ctx, id, 0); err != nil {
		return err
	}
	s.record(ctx, actor, "ZERO_INVENTORY", id, "set to 0")
	return nil
}

// Delete removes one inventory row.
func (s *Service) Delete(ctx context.Context, actor shared.Actor, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "DELETE_INVENTORY", id, "deleted")
	return nil
}

// SetQuantity writes an absolute quantity. Dropping the quantity to or below
// the reorder level fires the database's alert trigger.
func (s *Service) SetQuantity(ctx context.Context, actor shared.Actor, id int64, quantity int) (Row, error) {
	if err := s.repo.SetQuantity(ctx, id, quantity); err != nil {
		return Row{}, err
	}
	s.record(ctx, actor, "SIMULATE_REORDER_TRIGGER", id, fmt.Sprintf("set_qty=%d", quantity))
	return s.repo.Get(ctx, id)
}

// ListAlerts returns recent reorder alerts.
func (s *Service) ListAlerts(ctx context.Context, limit int) ([]Alert, error) {
	return s.repo.ListAlerts(ctx, limit)
}

func (s *Service) record(ctx context.Context, actor shared.Actor, action string, id int64, detail string) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, audit.Entry{
		ActorID:       actor.ID,
		ActorUsername: actor.Username,
		Action:        action,
		EntityType:    "inventory",
		EntityID:      strconv.FormatInt(id, 10),
		Detail:        detail,
	})
	if err != nil {
		s.auditWarn.Warn("audit write failed", slog.String("action", action), slog.Any("error", err))
	}
}
