package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/stroyhub/backoffice/modules/finishing/domain/finishing"
	"github.com/stroyhub/backoffice/pkg/composables"
)

var ErrFinishingDocumentNotFound = errors.New("finishing document not found")

const (
	finishingDocumentQuery = `
        SELECT
            fd.id,
            fd.name,
            fd.project_id,
            p.name
        FROM finishing_documents fd
        JOIN projects p ON p.id = fd.project_id
        WHERE fd.id = $1`

	finishingRowsQuery = `
        SELECT
            fr.id,
            fr.row_number,
            fr.pie_type_id,
            COALESCE(pt.name, ''),
            fr.material_id,
            COALESCE(m.name, ''),
            fr.unit_id,
            COALESCE(u.name, ''),
            fr.detail_cost_category_id,
            COALESCE(dcc.name, ''),
            fr.floors,
            COALESCE(fr.quantity_pd, ''),
            COALESCE(fr.quantity_spec, ''),
            COALESCE(fr.quantity_rd, '')
        FROM finishing_rows fr
        LEFT JOIN finishing_pie_types pt ON pt.id = fr.pie_type_id
        LEFT JOIN materials m ON m.id = fr.material_id
        LEFT JOIN units u ON u.id = fr.unit_id
        LEFT JOIN detail_cost_categories dcc ON dcc.id = fr.detail_cost_category_id
        WHERE fr.document_id = $1
        ORDER BY fr.row_number`

	finishingPieTypesQuery = `SELECT id, name FROM finishing_pie_types ORDER BY name`

	calculationTypesQuery = `SELECT pie_type_id FROM finishing_calculation_types`

	documentInsertQuery = `
        INSERT INTO finishing_documents (id, name, project_id)
        VALUES ($1, $2, $3)`

	stagedRowInsertQuery = `
        INSERT INTO finishing_rows (
            document_id, row_number, pie_type_id, material_id, unit_id,
            detail_cost_category_id, floors, quantity_pd, quantity_spec, quantity_rd
        )
        VALUES (
            $1, $2,
            (SELECT id FROM finishing_pie_types WHERE lower(name) = lower($3) LIMIT 1),
            (SELECT id FROM materials WHERE lower(name) = lower($4) LIMIT 1),
            (SELECT id FROM units WHERE lower(name) = lower($5) LIMIT 1),
            (SELECT id FROM detail_cost_categories WHERE lower(name) = lower($6) LIMIT 1),
            $7, $8, $9, $10
        )`
)

type PgFinishingRepository struct{}

func NewFinishingRepository() finishing.Repository {
	return &PgFinishingRepository{}
}

func (g *PgFinishingRepository) GetDocument(ctx context.Context, id uuid.UUID) (finishing.Document, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return finishing.Document{}, err
	}
	var doc finishing.Document
	err = tx.QueryRow(ctx, finishingDocumentQuery, id).Scan(
		&doc.ID,
		&doc.Name,
		&doc.ProjectID,
		&doc.ProjectName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return finishing.Document{}, fmt.Errorf("id: %s: %w", id, ErrFinishingDocumentNotFound)
	}
	if err != nil {
		return finishing.Document{}, errors.Wrap(err, "failed to query finishing document")
	}
	return doc, nil
}

func (g *PgFinishingRepository) GetRows(ctx context.Context, documentID uuid.UUID) ([]finishing.Row, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, finishingRowsQuery, documentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query finishing rows")
	}
	defer rows.Close()

	var out []finishing.Row
	for rows.Next() {
		var fr finishing.Row
		if err := rows.Scan(
			&fr.ID,
			&fr.RowNumber,
			&fr.PieTypeID,
			&fr.PieTypeName,
			&fr.MaterialID,
			&fr.MaterialName,
			&fr.UnitID,
			&fr.UnitName,
			&fr.DetailCostCategoryID,
			&fr.DetailCostCategoryName,
			&fr.Floors,
			&fr.QuantityPd,
			&fr.QuantitySpec,
			&fr.QuantityRd,
		); err != nil {
			return nil, err
		}
		out = append(out, fr)
	}
	return out, rows.Err()
}

func (g *PgFinishingRepository) PieTypes(ctx context.Context) ([]finishing.PieType, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, finishingPieTypesQuery)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query pie types")
	}
	defer rows.Close()

	var out []finishing.PieType
	for rows.Next() {
		var pt finishing.PieType
		if err := rows.Scan(&pt.ID, &pt.Name); err != nil {
			return nil, err
		}
		out = append(out, pt)
	}
	return out, rows.Err()
}

func (g *PgFinishingRepository) CalculationTypeIDs(ctx context.Context) (map[uuid.UUID]struct{}, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, calculationTypesQuery)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query calculation types")
	}
	defer rows.Close()

	out := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	return out, rows.Err()
}

func (g *PgFinishingRepository) StageDocument(ctx context.Context, name string, projectID uuid.UUID, staged []finishing.StagedRow) (finishing.Document, error) {
	doc := finishing.Document{ID: uuid.New(), Name: name, ProjectID: projectID}
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		tx, err := composables.UseTx(txCtx)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(txCtx, documentInsertQuery, doc.ID, doc.Name, doc.ProjectID); err != nil {
			return errors.Wrap(err, "failed to create finishing document")
		}
		for _, row := range staged {
			_, err := tx.Exec(
				txCtx, stagedRowInsertQuery,
				doc.ID, row.RowNumber,
				row.PieTypeName, row.MaterialName, row.UnitName, row.DetailCostCategoryName,
				row.Floors, row.QuantityPd, row.QuantitySpec, row.QuantityRd,
			)
			if err != nil {
				return errors.Wrap(err, fmt.Sprintf("failed to stage row %d", row.RowNumber))
			}
		}
		return nil
	})
	if err != nil {
		return finishing.Document{}, err
	}
	return doc, nil
}
