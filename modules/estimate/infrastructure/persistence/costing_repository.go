package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/stroyhub/backoffice/modules/estimate/domain/costing"
)

const (
	costCategoriesQuery = `SELECT id, name FROM cost_categories ORDER BY number, name`

	detailCostCategoriesQuery = `
        SELECT id, name FROM detail_cost_categories
        WHERE cost_category_id = $1
        ORDER BY name`

	workSetsQuery = `
        SELECT id, name FROM work_sets
        WHERE detail_cost_category_id = $1
        ORDER BY name`

	ratesQuery = `
        SELECT id, name FROM rates
        WHERE work_set_id = $1
        ORDER BY name`
)

// PgCostingRepository is the OptionsSource backing the cascading
// selector: every level is a plain parent-keyed lookup.
type PgCostingRepository struct{}

func NewCostingRepository() costing.OptionsSource {
	return &PgCostingRepository{}
}

func scanOption(rows pgx.Rows) (costing.Option, error) {
	var o costing.Option
	err := rows.Scan(&o.ID, &o.Name)
	return o, err
}

func (g *PgCostingRepository) CostCategories(ctx context.Context) ([]costing.Option, error) {
	return queryNamed(ctx, costCategoriesQuery, scanOption)
}

func (g *PgCostingRepository) DetailCostCategories(ctx context.Context, costCategoryID uuid.UUID) ([]costing.Option, error) {
	return queryNamed(ctx, detailCostCategoriesQuery, scanOption, costCategoryID)
}

func (g *PgCostingRepository) WorkSets(ctx context.Context, detailCostCategoryID uuid.UUID) ([]costing.Option, error) {
	return queryNamed(ctx, workSetsQuery, scanOption, detailCostCategoryID)
}

func (g *PgCostingRepository) Rates(ctx context.Context, workSetID uuid.UUID) ([]costing.Option, error) {
	return queryNamed(ctx, ratesQuery, scanOption, workSetID)
}
