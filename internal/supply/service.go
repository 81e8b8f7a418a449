package supply

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/atelier-erp/atelier-erp/internal/audit"
	"github.com/atelier-erp/atelier-erp/internal/shared"
)

// AuditPort abstracts best-effort audit recording.
type AuditPort interface {
	Record(ctx context.Context, entry audit.Entry) error
}

// Service coordinates supplier and fabric operations.
type Service struct {
	repo      Repository
	audit     AuditPort
	auditWarn *slog.Logger
}

// NewService builds the supply service.
func NewService(repo Repository, auditPort AuditPort, auditWarn *slog.Logger) *Service {
	if auditWarn == nil {
		auditWarn = slog.Default()
	}
	return &Service{repo: repo, audit: auditPort, auditWarn: auditWarn}
}

func (s *Service) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	return s.repo.ListSuppliers(ctx)
}

func (s *Service) CreateSupplier(ctx context.Context, actor shared.Actor, input SupplierInput) (Supplier, error) {
	if strings.TrimSpace(input.Name) == "" {
		return Supplier{}, ErrNameRequired
	}
	sup, err := s.repo.CreateSupplier(ctx, input)
	if err != nil {
		return Supplier{}, err
	}
	s.record(ctx, actor, "CREATE_SUPPLIER", "suppliers", sup.ID, sup.Name)
	return sup, nil
}

func (s *Service) ListFabrics(ctx context.Context) ([]Fabric, error) {
	return s.repo.ListFabrics(ctx)
}

func (s *Service) CreateFabric(ctx context.Context, actor shared.Actor, input FabricInput) (Fabric, error) {
	if strings.TrimSpace(input.Material) == "" {
		return Fabric{}, ErrNameRequired
	}
	if input.SupplierID == 0 {
		return Fabric{}, ErrSupplierRequired
	}
	if input.CostPerMeter < 0 {
		return Fabric{}, ErrInvalidCost
	}
	f, err := s.repo.CreateFabric(ctx, input)
	if err != nil {
		return Fabric{}, err
	}
	s.record(ctx, actor, "CREATE_FABRIC", "fabrics", f.ID, f.Material)
	return f, nil
}

func (s *Service) record(ctx context.Context, actor shared.Actor, action, entityType string, entityID int64, detail string) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, audit.Entry{
		ActorID:       actor.ID,
		ActorUsername: actor.Username,
		Action:        action,
		EntityType:    entityType,
		EntityID:      strconv.FormatInt(entityID, 10),
		Detail:        detail,
	})
	if err != nil {
		s.auditWarn.Warn("audit write failed", slog.String("action", action), slog.Any("error", err))
	}
}
