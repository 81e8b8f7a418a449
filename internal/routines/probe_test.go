package routines

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type scanRow struct {
	value int
	err   error
}

func (r scanRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != 1 {
		return fmt.Errorf("expected one destination, got %d", len(dest))
	}
	ptr, ok := dest[0].(*int)
	if !ok {
		return fmt.Errorf("expected *int destination, got %T", dest[0])
	}
	*ptr = r.value
	return nil
}

// stubQuerier fakes the two information_schema queries the probe issues.
type stubQuerier struct {
	routines map[string]int

	execSQL  string
	execArgs []any
}

func (s *stubQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	name, _ := args[0].(string)
	count, known := s.routines[strings.ToLower(name)]
	if strings.Contains(sql, "information_schema.parameters") {
		return scanRow{value: count}
	}
	if known {
		return scanRow{value: 1}
	}
	return scanRow{value: 0}
}

func (s *stubQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, fmt.Errorf("unexpected Query: %s", sql)
}

func (s *stubQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.execSQL = sql
	s.execArgs = args
	return pgconn.CommandTag{}, nil
}

func TestParamCountKnownRoutine(t *testing.T) {
	client := NewClient(&stubQuerier{routines: map[string]int{"processsale": 5}})

	count, err := client.ParamCount(context.Background(), "ProcessSale")
	require.NoError(t, err)
	require.Equal(t, 5, count)
}

func TestParamCountZeroParamRoutine(t *testing.T) {
	client := NewClient(&stubQuerier{routines: map[string]int{"refreshviews": 0}})

	count, err := client.ParamCount(context.Background(), "RefreshViews")
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestParamCountUnknownRoutine(t *testing.T) {
	client := NewClient(&stubQuerier{routines: map[string]int{}})

	_, err := client.ParamCount(context.Background(), "NoSuchRoutine")
	require.ErrorIs(t, err, ErrUnknownArity)
}

func TestProcessSaleInvokesProcedure(t *testing.T) {
	stub := &stubQuerier{routines: map[string]int{}}
	client := NewClient(stub)

	err := client.ProcessSale(context.Background(), 3, 7, 2, "card")
	require.NoError(t, err)
	require.Contains(t, stub.execSQL, "CALL ProcessSale")
	require.Equal(t, []any{int64(3), int64(7), 2, "card"}, stub.execArgs)
}
