package costing

import (
	"context"

	"github.com/google/uuid"
)

// The costing chain behind the cascading selector:
// cost category -> detail cost category -> work set -> rate.

type CostCategory struct {
	ID     uuid.UUID
	Name   string
	Number int
}

type DetailCostCategory struct {
	ID             uuid.UUID
	CostCategoryID uuid.UUID
	Name           string
}

type WorkSet struct {
	ID                   uuid.UUID
	DetailCostCategoryID uuid.UUID
	Name                 string
}

type Rate struct {
	ID        uuid.UUID
	WorkSetID uuid.UUID
	Name      string
	Unit      string
}

// Option is the shape the cascading selector serves for every level.
type Option struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// OptionsSource supplies the valid options per level given the parent
// selection. Each level's result is a function of its parent only.
type OptionsSource interface {
	CostCategories(ctx context.Context) ([]Option, error)
	DetailCostCategories(ctx context.Context, costCategoryID uuid.UUID) ([]Option, error)
	WorkSets(ctx context.Context, detailCostCategoryID uuid.UUID) ([]Option, error)
	Rates(ctx context.Context, workSetID uuid.UUID) ([]Option, error)
}
