package procurement

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/atelier-erp/atelier-erp/internal/audit"
	"github.com/atelier-erp/atelier-erp/internal/shared"
)

const (
	// StatusOpen is the status every automatic order starts in.
	StatusOpen = "OPEN"

	minOrderQuantity = 10
	deliveryLeadTime = 7 * 24 * time.Hour
)

// AuditPort abstracts best-effort audit recording.
type AuditPort interface {
	Record(ctx context.Context, entry audit.Entry) error
}

// Service creates and lists purchase orders.
type Service struct {
	repo      Repository
	audit     AuditPort
	auditWarn *slog.Logger
	now       func() time.Time
}

// NewService builds the procurement service.
func NewService(repo Repository, auditPort AuditPort, auditWarn *slog.Logger) *Service {
	if auditWarn == nil {
		auditWarn = slog.Default()
	}
	return &Service{repo: repo, audit: auditPort, auditWarn: auditWarn, now: time.Now}
}

// List returns all purchase orders, newest first.
func (s *Service) List(ctx context.Context) ([]PurchaseOrder, error) {
	return s.repo.List(ctx)
}

// CreateFromAlert raises a purchase order for the item behind a reorder
// alert. The supplier of the item's cheapest mapped fabric wins the order,
// the quantity covers twice the reorder level with a floor of ten units, and
// the alert message is annotated with the new order id.
func (s *Service) CreateFromAlert(ctx context.Context, actor shared.Actor, alertID int64) (PurchaseOrder, error) {
	itemID, err := s.repo.AlertItem(ctx, alertID)
	if err != nil {
		return PurchaseOrder{}, err
	}
	supplierID, err := s.repo.CheapestSupplier(ctx, itemID)
	if err != nil {
		return PurchaseOrder{}, err
	}
	level, err := s.repo.ReorderLevel(ctx, itemID)
	if err != nil {
		return PurchaseOrder{}, err
	}
	quantity := 2 * level
	if quantity < minOrderQuantity {
		quantity = minOrderQuantity
	}

	po := PurchaseOrder{
		ItemID:           itemID,
		SupplierID:       supplierID,
		QuantityOrdered:  quantity,
		ExpectedDelivery: s.now().Add(deliveryLeadTime),
		Status:           StatusOpen,
		Notes:            fmt.Sprintf("Auto PO from alert %d", alertID),
	}
	id, err := s.repo.Insert(ctx, po)
	if err != nil {
		return PurchaseOrder{}, err
	}
	if err := s.repo.AnnotateAlert(ctx, alertID, id); err != nil {
		s.auditWarn.Warn("alert annotation failed",
			slog.Int64("alert_id", alertID), slog.Int64("po_id", id), slog.Any("error", err))
	}
	s.record(ctx, actor, id, fmt.Sprintf("alert=%d item=%d supplier=%d qty=%d",
		alertID, itemID, supplierID, quantity))
	return s.repo.Get(ctx, id)
}

func (s *Service) record(ctx context.Context, actor shared.Actor, id int64, detail string) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, audit.Entry{
		ActorID:       actor.ID,
		ActorUsername: actor.Username,
		Action:        "CREATE_PO",
		EntityType:    "purchase_orders",
		EntityID:      strconv.FormatInt(id, 10),
		Detail:        detail,
	})
	if err != nil {
		s.auditWarn.Warn("audit write failed", slog.String("action", "CREATE_PO"), slog.Any("error", err))
	}
}
