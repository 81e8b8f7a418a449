package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atelier-erp/atelier-erp/internal/audit"
	"github.com/atelier-erp/atelier-erp/internal/shared"
)

type memoryInvRepo struct {
	rows map[int64]Row
}

func newMemoryInvRepo() *memoryInvRepo {
	return &memoryInvRepo{rows: make(map[int64]Row)}
}

func (r *memoryInvRepo) List(ctx context.Context) ([]Row, error) {
	rows := make([]Row, 0, len(r.rows))
	for _, row := range r.rows {
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *memoryInvRepo) Get(ctx context.Context, id int64) (Row, error) {
	row, ok := r.rows[id]
	if !ok {
		return Row{}, shared.ErrNotFound
	}
	return row, nil
}

func (r *memoryInvRepo) ApplyDelta(ctx context.Context, id int64, delta int) error {
	row, ok := r.rows[id]
	if !ok {
		return shared.ErrNotFound
	}
	row.QuantityInStock += delta
	r.rows[id] = row
	return nil
}

func (r *memoryInvRepo) SetQuantity(ctx context.Context, id int64, quantity int) error {
	row, ok := r.rows[id]
	if !ok {
		return shared.ErrNotFound
	}
	row.QuantityInStock = quantity
	r.rows[id] = row
	return nil
}

func (r *memoryInvRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memoryInvRepo) ListAlerts(ctx context.Context, limit int) ([]Alert, error) {
	return nil, nil
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

var testActor = shared.Actor{ID: 1, Username: "alice", Role: "manager"}

func TestAdjustAppliesDeltaAndAudits(t *testing.T) {
	repo := newMemoryInvRepo()
	repo.rows[3] = Row{ID: 3, ItemID: 7, ItemName: "Linen Shirt", QuantityInStock: 20, ReorderLevel: 5}
	recorder := &captureAudit{}
	svc := NewService(repo, recorder, nil)

	row, err := svc.Adjust(context.Background(), testActor, 3, -4)
	require.NoError(t, err)
	require.Equal(t, 16, row.QuantityInStock)

	require.Len(t, recorder.entries, 1)
	require.Equal(t, "UPDATE_INVENTORY", recorder.entries[0].Action)
	require.Equal(t, "delta=-4", recorder.entries[0].Detail)
}

func TestAdjustRejectsZeroDelta(t *testing.T) {
	repo := newMemoryInvRepo()
	repo.rows[3] = Row{ID: 3, QuantityInStock: 20}
	svc := NewService(repo, &captureAudit{}, nil)

	_, err := svc.Adjust(context.Background(), testActor, 3, 0)
	require.ErrorIs(t, err, ErrZeroDelta)
	require.Equal(t, 20, repo.rows[3].QuantityInStock)
}

func TestAdjustSurvivesAuditFailure(t *testing.T) {
	repo := newMemoryInvRepo()
	repo.rows[3] = Row{ID: 3, QuantityInStock: 20}
	recorder := &captureAudit{fail: errors.New("audit log unavailable")}
	svc := NewService(repo, recorder, nil)

	row, err := svc.Adjust(context.Background(), testActor, 3, 2)
	require.NoError(t, err, "audit failure must not undo the stock change")
	require.Equal(t, 22, row.QuantityInStock)
}

func TestZeroAndDeleteAudits(t *testing.T) {
	repo := newMemoryInvRepo()
	repo.rows[3] = Row{ID: 3, QuantityInStock: 20}
	repo.rows[4] = Row{ID: 4, QuantityInStock: 9}
	recorder := &captureAudit{}
	svc := NewService(repo, recorder, nil)

	require.NoError(t, svc.Zero(context.Background(), testActor, 3))
	require.Equal(t, 0, repo.rows[3].QuantityInStock)

	require.NoError(t, svc.Delete(context.Background(), testActor, 4))
	_, ok := repo.rows[4]
	require.False(t, ok)

	require.Len(t, recorder.entries, 2)
	require.Equal(t, "ZERO_INVENTORY", recorder.entries[0].Action)
	require.Equal(t, "DELETE_INVENTORY", recorder.entries[1].Action)
}

func TestSetQuantityAuditsTriggerSimulation(t *testing.T) {
	repo := newMemoryInvRepo()
	repo.rows[3] = Row{ID: 3, QuantityInStock: 20, ReorderLevel: 5}
	recorder := &captureAudit{}
	svc := NewService(repo, recorder, nil)

	row, err := svc.SetQuantity(context.Background(), testActor, 3, 2)
	require.NoError(t, err)
	require.Equal(t, 2, row.QuantityInStock)
	require.Len(t, recorder.entries, 1)
	require.Equal(t, "SIMULATE_REORDER_TRIGGER", recorder.entries[0].Action)
}

func TestAdjustUnknownRow(t *testing.T) {
	svc := NewService(newMemoryInvRepo(), &captureAudit{}, nil)

	_, err := svc.Adjust(context.Background(), testActor, 99, 1)
	require.ErrorIs(t, err, shared.ErrNotFound)
}
