package persistence_test

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/stroyhub/backoffice/modules/core/infrastructure/persistence"
	"github.com/stroyhub/backoffice/pkg/composables"
)

type dbCall struct {
	sql  string
	args []any
}

// recordingTx captures every statement a repository issues. QueryRow
// answers from the rows queue, in order.
type recordingTx struct {
	execs     []dbCall
	queryRows []dbCall
	rows      []pgx.Row
}

func (f *recordingTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (f *recordingTx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.queryRows = append(f.queryRows, dbCall{sql: sql, args: args})
	row := f.rows[0]
	f.rows = f.rows[1:]
	return row
}

func (f *recordingTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, dbCall{sql: sql, args: args})
	return pgconn.CommandTag{}, nil
}

type scanFunc func(dest ...any) error

func (fn scanFunc) Scan(dest ...any) error { return fn(dest...) }

func TestReplaceForPageDeletesThenReinserts(t *testing.T) {
	tx := &recordingTx{}
	ctx := composables.WithTx(context.Background(), tx)
	repo := persistence.NewKanbanRepository()

	require.NoError(t, repo.ReplaceForPage(ctx, "projects", []uint{5, 3, 9}))

	require.Len(t, tx.execs, 4)
	require.Contains(t, tx.execs[0].sql, "DELETE FROM kanban_status_order")
	require.Equal(t, []any{"projects"}, tx.execs[0].args, "the whole page ordering is cleared first")
	for i, statusID := range []uint{5, 3, 9} {
		call := tx.execs[i+1]
		require.Contains(t, call.sql, "INSERT INTO kanban_status_order")
		require.Equal(t, []any{"projects", statusID, i}, call.args, "positions follow the submitted order")
	}
}
