package catalog

import (
	"context"
	"fmt"
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

// Service coordinates catalog operations and their audit trail.
type Service struct {
	repo      Repository
	audit     AuditPort
	auditWarn *slog.Logger
}

// NewService builds the catalog service.
func NewService(repo Repository, auditPort AuditPort, auditWarn *slog.Logger) *Service {
	if auditWarn == nil {
		auditWarn = slog.Default()
	}
	return &Service{repo: repo, audit: auditPort, auditWarn: auditWarn}
}

// ListItems returns all items.
func (s *Service) ListItems(ctx context.Context) ([]Item, error) {
	return s.repo.ListItems(ctx)
}

// GetItem returns one item.
func (s *Service) GetItem(ctx context.Context, id int64) (Item, error) {
	return s.repo.GetItem(ctx, id)
}

// CreateItem inserts a new clothing item.
func (s *Service) CreateItem(ctx context.Context, actor shared.Actor, input ItemInput) (Item, error) {
	if strings.TrimSpace(input.Name) == "" {
		return Item{}, ErrNameRequired
	}
	if input.Price < 0 {
		return Item{}, ErrInvalidPrice
	}
	item, err := s.repo.CreateItem(ctx, input)
	if err != nil {
		return Item{}, err
	}
	s.record(ctx, actor, "CREATE_ITEM", "clothing_items", item.ID, item.Name)
	return item, nil
}

// UpdateItem changes an item's name and price.
func (s *Service) UpdateItem(ctx context.Context, actor shared.Actor, id int64, update ItemUpdate) error {
	if strings.TrimSpace(update.Name) == "" {
		return ErrNameRequired
	}
	if update.Price < 0 {
		return ErrInvalidPrice
	}
	if err := s.repo.UpdateItem(ctx, id, update); err != nil {
		return err
	}
	s.record(ctx, actor, "UPDATE_ITEM", "clothing_items", id,
		fmt.Sprintf("name->%s,price->%.2f", update.Name, update.Price))
	return nil
}

// DeleteItem removes an item.
func (s *Service) DeleteItem(ctx context.Context, actor shared.Actor, id int64) error {
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "DELETE_ITEM", "clothing_items", id, "deleted")
	return nil
}

// ListCollections returns all collections.
func (s *Service) ListCollections(ctx context.Context) ([]Collection, error) {
	return s.repo.ListCollections(ctx)
}

// CreateCollection inserts a new collection.
func (s *Service) CreateCollection(ctx context.Context, actor shared.Actor, input CollectionInput) (Collection, error) {
	if strings.TrimSpace(input.Name) == "" {
		return Collection{}, ErrNameRequired
	}
	if input.DesignerID == 0 {
		return Collection{}, ErrDesignerRequired
	}
	col, err := s.repo.CreateCollection(ctx, input)
	if err != nil {
		return Collection{}, err
	}
	s.record(ctx, actor, "CREATE_COLLECTION", "collections", col.ID, col.Name)
	return col, nil
}

// ListDesigners returns all designers.
func (s *Service) ListDesigners(ctx context.Context) ([]Designer, error) {
	return s.repo.ListDesigners(ctx)
}

// CreateDesigner inserts a new designer.
func (s *Service) CreateDesigner(ctx context.Context, actor shared.Actor, input DesignerInput) (Designer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return Designer{}, ErrNameRequired
	}
	d, err := s.repo.CreateDesigner(ctx, input)
	if err != nil {
		return Designer{}, err
	}
	s.record(ctx, actor, "CREATE_DESIGNER", "designers", d.ID, d.Name)
	return d, nil
}

// ListStores returns all stores.
func (s *Service) ListStores(ctx context.Context) ([]Store, error) {
	return s.repo.ListStores(ctx)
}

// record appends an audit entry; failure is logged, never escalated.
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
