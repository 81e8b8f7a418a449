package sales

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/atelier-erp/atelier-erp/internal/audit"
	"github.com/atelier-erp/atelier-erp/internal/shared"
)

// ErrInvalidQuantity indicates a sale of zero or negative quantity.
var ErrInvalidQuantity = errors.New("sales: quantity must be positive")

// AuditPort abstracts best-effort audit recording.
type AuditPort interface {
	Record(ctx context.Context, entry audit.Entry) error
}

// RoutinePort is the slice of the routine client the sales module calls.
type RoutinePort interface {
	ProcessSale(ctx context.Context, itemID, storeID int64, quantity int, payment string) error
	MonthlySalesReport(ctx context.Context, storeID int64, month time.Month, year int) ([]map[string]any, error)
}

// Service processes sales through the database routine and lists results.
type Service struct {
	repo      Repository
	routines  RoutinePort
	audit     AuditPort
	auditWarn *slog.Logger
}

// NewService builds the sales service.
func NewService(repo Repository, routines RoutinePort, auditPort AuditPort, auditWarn *slog.Logger) *Service {
	if auditWarn == nil {
		auditWarn = slog.Default()
	}
	return &Service{repo: repo, routines: routines, audit: auditPort, auditWarn: auditWarn}
}

// MonthlyReport returns the stored routine's per-store report for one month.
func (s *Service) MonthlyReport(ctx context.Context, storeID int64, month time.Month, year int) ([]map[string]any, error) {
	return s.routines.MonthlySalesReport(ctx, storeID, month, year)
}

// Recent returns the latest sales, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Sale, error) {
	return s.repo.Recent(ctx, limit)
}

// Process records one sale. The stored routine owns the pricing and the
// inventory decrement; the service only validates inputs and audits.
func (s *Service) Process(ctx context.Context, actor shared.Actor, itemID, storeID int64, quantity int, payment string) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if err := s.routines.ProcessSale(ctx, itemID, storeID, quantity, payment); err != nil {
		return err
	}
	s.record(ctx, actor, itemID, fmt.Sprintf("store=%d qty=%d payment=%s", storeID, quantity, payment))
	return nil
}

func (s *Service) record(ctx context.Context, actor shared.Actor, itemID int64, detail string) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, audit.Entry{
		ActorID:       actor.ID,
		ActorUsername: actor.Username,
		Action:        "PROCESS_SALE",
		EntityType:    "sales",
		EntityID:      strconv.FormatInt(itemID, 10),
		Detail:        detail,
	})
	if err != nil {
		s.auditWarn.Warn("audit write failed", slog.String("action", "PROCESS_SALE"), slog.Any("error", err))
	}
}
