package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/kanban"
	"github.com/stroyhub/backoffice/pkg/composables"
)

const (
	kanbanOrderFindQuery = `
        SELECT kanban_page, status_id, order_position
        FROM kanban_status_order
        WHERE kanban_page = $1
        ORDER BY order_position`

	kanbanOrderDeleteQuery = `DELETE FROM kanban_status_order WHERE kanban_page = $1`

	kanbanOrderInsertQuery = `
        INSERT INTO kanban_status_order (kanban_page, status_id, order_position)
        VALUES ($1, $2, $3)`
)

type PgKanbanRepository struct{}

func NewKanbanRepository() kanban.Repository {
	return &PgKanbanRepository{}
}

func (g *PgKanbanRepository) GetForPage(ctx context.Context, page string) ([]kanban.StatusOrder, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, kanbanOrderFindQuery, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query kanban status order")
	}
	defer rows.Close()

	var out []kanban.StatusOrder
	for rows.Next() {
		var so kanban.StatusOrder
		if err := rows.Scan(&so.KanbanPage, &so.StatusID, &so.OrderPosition); err != nil {
			return nil, err
		}
		out = append(out, so)
	}
	return out, rows.Err()
}

// ReplaceForPage rewrites the page's whole ordering: the existing rows
// are deleted and the new list reinserted positionally, inside one
// transaction.
func (g *PgKanbanRepository) ReplaceForPage(ctx context.Context, page string, statusIDs []uint) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		tx, err := composables.UseTx(txCtx)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(txCtx, kanbanOrderDeleteQuery, page); err != nil {
			return errors.Wrap(err, "failed to clear kanban status order")
		}
		for i, statusID := range statusIDs {
			if _, err := tx.Exec(txCtx, kanbanOrderInsertQuery, page, statusID, i); err != nil {
				return errors.Wrap(err, "failed to insert kanban status order")
			}
		}
		return nil
	})
}
