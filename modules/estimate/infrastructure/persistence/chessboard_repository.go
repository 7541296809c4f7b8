package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stroyhub/backoffice/modules/estimate/domain/chessboard"
	"github.com/stroyhub/backoffice/pkg/composables"
	"github.com/stroyhub/backoffice/pkg/repo"
)

var ErrChessboardSetNotFound = errors.New("chessboard set not found")

const (
	setFindQuery = `
        SELECT
            cs.id,
            cs.name,
            cs.set_number,
            cs.source_document_id,
            cs.status,
            cs.created_at,
            cs.updated_at
        FROM chessboard_sets cs`

	setInsertQuery = `
        INSERT INTO chessboard_sets (id, name, set_number, source_document_id, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`

	setUpdateQuery = `
        UPDATE chessboard_sets
        SET name = $1, status = $2, updated_at = NOW()
        WHERE id = $3
        RETURNING updated_at`

	setDeleteQuery = `DELETE FROM chessboard_sets WHERE id = $1`

	nextSetNumberQuery = `SELECT COALESCE(MAX(set_number), 0) + 1 FROM chessboard_sets`

	rowFindQuery = `
        SELECT
            cb.id,
            cb.set_id,
            cb.material_id,
            cb.unit_id,
            cb.pie_type_id,
            cb.quantity_pd,
            cb.quantity_spec,
            cb.quantity_rd,
            cb.created_at,
            COALESCE(m.name, ''),
            COALESCE(u.name, ''),
            COALESCE(cc.name, ''),
            COALESCE(dcc.name, ''),
            COALESCE(l.name, ''),
            COALESCE(b.name, '')
        FROM chessboard cb
        LEFT JOIN materials m ON m.id = cb.material_id
        LEFT JOIN units u ON u.id = cb.unit_id
        LEFT JOIN chessboard_mapping cm ON cm.chessboard_id = cb.id
        LEFT JOIN cost_categories cc ON cc.id = cm.cost_category_id
        LEFT JOIN detail_cost_categories dcc ON dcc.id = cm.detail_cost_category_id
        LEFT JOIN locations l ON l.id = cm.location_id
        LEFT JOIN blocks b ON b.id = cm.block_id`

	rowInsertQuery = `
        INSERT INTO chessboard (id, set_id, material_id, unit_id, pie_type_id, quantity_pd, quantity_spec, quantity_rd)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at`

	rowDeleteQuery = `DELETE FROM chessboard WHERE id = $1`

	mappingInsertQuery = `
        INSERT INTO chessboard_mapping (chessboard_id, cost_category_id, detail_cost_category_id, location_id, block_id)
        VALUES ($1, $2, $3, $4, $5)`

	nomenclatureMappingInsertQuery = `
        INSERT INTO chessboard_nomenclature_mapping (chessboard_id, nomenclature_id, supplier_id)
        VALUES ($1, $2, $3)`

	floorMappingUpsertQuery = `
        INSERT INTO chessboard_floor_mapping (chessboard_id, floor_number, quantity_pd, quantity_spec, quantity_rd)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (chessboard_id, floor_number)
        DO UPDATE SET quantity_pd = EXCLUDED.quantity_pd, quantity_spec = EXCLUDED.quantity_spec, quantity_rd = EXCLUDED.quantity_rd`

	floorMappingFindQuery = `
        SELECT chessboard_id, floor_number, quantity_pd, quantity_spec, quantity_rd
        FROM chessboard_floor_mapping
        WHERE chessboard_id = $1
        ORDER BY floor_number`
)

type PgChessboardRepository struct{}

func NewChessboardRepository() chessboard.Repository {
	return &PgChessboardRepository{}
}

func (g *PgChessboardRepository) querySets(ctx context.Context, query string, args ...any) ([]chessboard.Set, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []chessboard.Set
	for rows.Next() {
		var s chessboard.Set
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.SetNumber,
			&s.SourceDocumentID,
			&s.Status,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (g *PgChessboardRepository) GetSets(ctx context.Context) ([]chessboard.Set, error) {
	sets, err := g.querySets(ctx, setFindQuery+" ORDER BY cs.set_number DESC")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get chessboard sets")
	}
	return sets, nil
}

func (g *PgChessboardRepository) GetSetByID(ctx context.Context, id uuid.UUID) (chessboard.Set, error) {
	sets, err := g.querySets(ctx, setFindQuery+" WHERE cs.id = $1", id)
	if err != nil {
		return chessboard.Set{}, errors.Wrap(err, fmt.Sprintf("failed to query chessboard set with id: %s", id))
	}
	if len(sets) == 0 {
		return chessboard.Set{}, fmt.Errorf("id: %s: %w", id, ErrChessboardSetNotFound)
	}
	return sets[0], nil
}

func (g *PgChessboardRepository) NextSetNumber(ctx context.Context) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := tx.QueryRow(ctx, nextSetNumberQuery).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "failed to reserve set number")
	}
	return n, nil
}

func (g *PgChessboardRepository) CreateSet(ctx context.Context, data chessboard.Set) (chessboard.Set, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return chessboard.Set{}, err
	}
	out := data
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	err = tx.QueryRow(
		ctx, setInsertQuery,
		out.ID, out.Name, out.SetNumber, out.SourceDocumentID, out.Status,
	).Scan(&out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return chessboard.Set{}, errors.Wrap(err, "failed to create chessboard set")
	}
	return out, nil
}

func (g *PgChessboardRepository) UpdateSet(ctx context.Context, data chessboard.Set) (chessboard.Set, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return chessboard.Set{}, err
	}
	out := data
	err = tx.QueryRow(ctx, setUpdateQuery, data.Name, data.Status, data.ID).Scan(&out.UpdatedAt)
	if err != nil {
		return chessboard.Set{}, errors.Wrap(err, "failed to update chessboard set")
	}
	return out, nil
}

func (g *PgChessboardRepository) DeleteSet(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, setDeleteQuery, id); err != nil {
		return errors.Wrap(err, "failed to delete chessboard set")
	}
	return nil
}

func buildRowFilters(filter chessboard.RowFilter) ([]string, []any) {
	var conds []string
	var args []any
	add := func(column string, f repo.Filter) {
		conds = append(conds, f.String(column, len(args)+1))
		args = append(args, f.Value()...)
	}
	if filter.SetID != nil {
		add("cb.set_id", repo.Eq(*filter.SetID))
	}
	if filter.CostCategoryID != nil {
		add("cm.cost_category_id", repo.Eq(*filter.CostCategoryID))
	}
	if filter.DetailCostCategoryID != nil {
		add("cm.detail_cost_category_id", repo.Eq(*filter.DetailCostCategoryID))
	}
	if filter.Search != "" {
		add("m.name", repo.ILike("%"+filter.Search+"%"))
	}
	return conds, args
}

func (g *PgChessboardRepository) GetRows(ctx context.Context, filter chessboard.RowFilter) ([]chessboard.RowView, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	conds, args := buildRowFilters(filter)
	query := repo.Join(rowFindQuery, repo.JoinWhere(conds...), "ORDER BY cb.created_at, cb.id")
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query chessboard rows")
	}
	defer rows.Close()

	var out []chessboard.RowView
	for rows.Next() {
		var (
			rv   chessboard.RowView
			pd   *decimal.Decimal
			spec *decimal.Decimal
			rd   *decimal.Decimal
		)
		if err := rows.Scan(
			&rv.ID,
			&rv.SetID,
			&rv.MaterialID,
			&rv.UnitID,
			&rv.PieTypeID,
			&pd,
			&spec,
			&rd,
			&rv.CreatedAt,
			&rv.MaterialName,
			&rv.UnitName,
			&rv.CostCategoryName,
			&rv.DetailCostCategoryName,
			&rv.LocationName,
			&rv.BlockName,
		); err != nil {
			return nil, err
		}
		rv.QuantityPd = scanQuantity(pd)
		rv.QuantitySpec = scanQuantity(spec)
		rv.QuantityRd = scanQuantity(rd)
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (g *PgChessboardRepository) CreateRow(ctx context.Context, row chessboard.Row, mapping chessboard.Mapping) (chessboard.Row, error) {
	out := row
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		tx, err := composables.UseTx(txCtx)
		if err != nil {
			return err
		}
		err = tx.QueryRow(
			txCtx, rowInsertQuery,
			out.ID, out.SetID, out.MaterialID, out.UnitID, out.PieTypeID,
			out.QuantityPd.Nullable(), out.QuantitySpec.Nullable(), out.QuantityRd.Nullable(),
		).Scan(&out.CreatedAt)
		if err != nil {
			return errors.Wrap(err, "failed to create chessboard row")
		}
		_, err = tx.Exec(
			txCtx, mappingInsertQuery,
			out.ID, mapping.CostCategoryID, mapping.DetailCostCategoryID, mapping.LocationID, mapping.BlockID,
		)
		if err != nil {
			return errors.Wrap(err, "failed to create chessboard mapping")
		}
		return nil
	})
	if err != nil {
		return chessboard.Row{}, err
	}
	return out, nil
}

func (g *PgChessboardRepository) DeleteRow(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, rowDeleteQuery, id); err != nil {
		return errors.Wrap(err, "failed to delete chessboard row")
	}
	return nil
}

func (g *PgChessboardRepository) CreateNomenclatureMapping(ctx context.Context, data chessboard.NomenclatureMapping) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, nomenclatureMappingInsertQuery, data.RowID, data.NomenclatureID, data.SupplierID)
	if err != nil {
		return errors.Wrap(err, "failed to create nomenclature mapping")
	}
	return nil
}

func (g *PgChessboardRepository) UpsertFloorMappings(ctx context.Context, mappings []chessboard.FloorMapping) error {
	if len(mappings) == 0 {
		return nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	for _, fm := range mappings {
		_, err := tx.Exec(
			ctx, floorMappingUpsertQuery,
			fm.ChessboardID, fm.FloorNumber,
			fm.QuantityPd.Nullable(), fm.QuantitySpec.Nullable(), fm.QuantityRd.Nullable(),
		)
		if err != nil {
			return errors.Wrap(err, fmt.Sprintf("failed to upsert floor mapping for floor %d", fm.FloorNumber))
		}
	}
	return nil
}

func (g *PgChessboardRepository) GetFloorMappings(ctx context.Context, chessboardID uuid.UUID) ([]chessboard.FloorMapping, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, floorMappingFindQuery, chessboardID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query floor mappings")
	}
	defer rows.Close()

	var out []chessboard.FloorMapping
	for rows.Next() {
		var (
			fm   chessboard.FloorMapping
			pd   *decimal.Decimal
			spec *decimal.Decimal
			rd   *decimal.Decimal
		)
		if err := rows.Scan(&fm.ChessboardID, &fm.FloorNumber, &pd, &spec, &rd); err != nil {
			return nil, err
		}
		fm.QuantityPd = scanQuantity(pd)
		fm.QuantitySpec = scanQuantity(spec)
		fm.QuantityRd = scanQuantity(rd)
		out = append(out, fm)
	}
	return out, rows.Err()
}

// scanQuantity maps a stored value back into the tagged form: NULL is
// Unset, anything else a value. Zero never round-trips because zeroes
// are stored as NULL.
func scanQuantity(v *decimal.Decimal) chessboard.Quantity {
	if v == nil {
		return chessboard.Quantity{}
	}
	return chessboard.NewQuantity(*v)
}
