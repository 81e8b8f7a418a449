package routines

import (
	"context"
	"errors"
)

// ErrUnknownArity means the catalog has no record of the routine, so its
// parameter count cannot be determined.
var ErrUnknownArity = errors.New("routines: arity unknown")

// ParamCount reports the number of IN/INOUT parameters a routine declares,
// according to information_schema. Dispatch no longer depends on this; it
// remains as a diagnostic for operators inspecting an unfamiliar schema.
func (c *Client) ParamCount(ctx context.Context, routine string) (int, error) {
	const existsQuery = `
	SELECT COUNT(*) FROM information_schema.routines
	WHERE routine_schema = current_schema() AND lower(routine_name) = lower($1)`
	var known int
	if err := c.db.QueryRow(ctx, existsQuery, routine).Scan(&known); err != nil {
		return 0, ErrUnknownArity
	}
	if known == 0 {
		return 0, ErrUnknownArity
	}

	const countQuery = `
	SELECT COUNT(*)
	FROM information_schema.parameters p
	JOIN information_schema.routines r
	  ON r.specific_schema = p.specific_schema AND r.specific_name = p.specific_name
	WHERE r.routine_schema = current_schema()
	  AND lower(r.routine_name) = lower($1)
	  AND p.parameter_mode IN ('IN', 'INOUT')`
	var count int
	if err := c.db.QueryRow(ctx, countQuery, routine).Scan(&count); err != nil {
		return 0, ErrUnknownArity
	}
	return count, nil
}
