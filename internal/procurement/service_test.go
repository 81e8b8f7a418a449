package procurement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atelier-erp/atelier-erp/internal/audit"
	"github.com/atelier-erp/atelier-erp/internal/shared"
)

type memoryProcRepo struct {
	alerts        map[int64]int64 // alert id -> item id
	suppliers     map[int64]int64 // item id -> cheapest supplier id
	reorderLevels map[int64]int
	orders        map[int64]PurchaseOrder
	annotations   map[int64]int64 // alert id -> po id
	nextID        int64
}

func newMemoryProcRepo() *memoryProcRepo {
	return &memoryProcRepo{
		alerts:        make(map[int64]int64),
		suppliers:     make(map[int64]int64),
		reorderLevels: make(map[int64]int),
		orders:        make(map[int64]PurchaseOrder),
		annotations:   make(map[int64]int64),
	}
}

func (r *memoryProcRepo) List(ctx context.Context) ([]PurchaseOrder, error) {
	orders := make([]PurchaseOrder, 0, len(r.orders))
	for _, po := range r.orders {
		orders = append(orders, po)
	}
	return orders, nil
}

func (r *memoryProcRepo) Get(ctx context.Context, id int64) (PurchaseOrder, error) {
	po, ok := r.orders[id]
	if !ok {
		return PurchaseOrder{}, shared.ErrNotFound
	}
	return po, nil
}

func (r *memoryProcRepo) Insert(ctx context.Context, po PurchaseOrder) (int64, error) {
	r.nextID++
	po.ID = r.nextID
	po.CreatedAt = time.Now()
	r.orders[po.ID] = po
	return po.ID, nil
}

func (r *memoryProcRepo) AlertItem(ctx context.Context, alertID int64) (int64, error) {
	itemID, ok := r.alerts[alertID]
	if !ok {
		return 0, shared.ErrNotFound
	}
	return itemID, nil
}

func (r *memoryProcRepo) CheapestSupplier(ctx context.Context, itemID int64) (int64, error) {
	supplierID, ok := r.suppliers[itemID]
	if !ok {
		return 0, ErrNoSupplier
	}
	return supplierID, nil
}

func (r *memoryProcRepo) ReorderLevel(ctx context.Context, itemID int64) (int, error) {
	return r.reorderLevels[itemID], nil
}

func (r *memoryProcRepo) AnnotateAlert(ctx context.Context, alertID, poID int64) error {
	r.annotations[alertID] = poID
	return nil
}

type captureAudit struct {
	entries []audit.Entry
	fail    error
}

func (c *captureAudit) Record(ctx context.Context, entry audit.Entry) error {
	if c.fail != nil {
		return c.fail
	}
	c.entries = append(c.entries, entry)
	return nil
}

var testActor = shared.Actor{ID: 1, Username: "alice", Role: "procurement"}

func TestCreateFromAlert(t *testing.T) {
	repo := newMemoryProcRepo()
	repo.alerts[9] = 4
	repo.suppliers[4] = 12
	repo.reorderLevels[4] = 15
	recorder := &captureAudit{}
	svc := NewService(repo, recorder, nil)
	fixed := time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	po, err := svc.CreateFromAlert(context.Background(), testActor, 9)
	require.NoError(t, err)
	require.Equal(t, int64(4), po.ItemID)
	require.Equal(t, int64(12), po.SupplierID)
	require.Equal(t, 30, po.QuantityOrdered, "quantity is twice the reorder level")
	require.Equal(t, StatusOpen, po.Status)
	require.Equal(t, fixed.Add(7*24*time.Hour), po.ExpectedDelivery)
	require.Equal(t, "Auto PO from alert 9", po.Notes)

	require.Equal(t, po.ID, repo.annotations[9])
	require.Len(t, recorder.entries, 1)
	require.Equal(t, "CREATE_PO", recorder.entries[0].Action)
	require.Equal(t, "alice", recorder.entries[0].ActorUsername)
}

func TestCreateFromAlertQuantityFloor(t *testing.T) {
	repo := newMemoryProcRepo()
	repo.alerts[2] = 8
	repo.suppliers[8] = 3
	repo.reorderLevels[8] = 3
	svc := NewService(repo, &captureAudit{}, nil)

	po, err := svc.CreateFromAlert(context.Background(), testActor, 2)
	require.NoError(t, err)
	require.Equal(t, 10, po.QuantityOrdered, "small reorder levels still order ten units")
}

func TestCreateFromAlertNoSupplier(t *testing.T) {
	repo := newMemoryProcRepo()
	repo.alerts[5] = 6
	svc := NewService(repo, &captureAudit{}, nil)

	_, err := svc.CreateFromAlert(context.Background(), testActor, 5)
	require.ErrorIs(t, err, ErrNoSupplier)
	require.Empty(t, repo.orders)
}

func TestCreateFromAlertUnknownAlert(t *testing.T) {
	svc := NewService(newMemoryProcRepo(), &captureAudit{}, nil)

	_, err := svc.CreateFromAlert(context.Background(), testActor, 404)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateFromAlertSurvivesAuditFailure(t *testing.T) {
	repo := newMemoryProcRepo()
	repo.alerts[1] = 2
	repo.suppliers[2] = 5
	repo.reorderLevels[2] = 10
	recorder := &captureAudit{fail: errors.New("audit log unavailable")}
	svc := NewService(repo, recorder, nil)

	po, err := svc.CreateFromAlert(context.Background(), testActor, 1)
	require.NoError(t, err, "audit failure must not fail the order")
	require.NotZero(t, po.ID)
}
