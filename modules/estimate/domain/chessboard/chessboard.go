package chessboard

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Set is a named batch of cost-estimation rows produced by one import
// or one manual versioning action.
type Set struct {
	ID               uuid.UUID
	Name             string
	SetNumber        int
	SourceDocumentID *uuid.UUID
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Row is one cost-estimation line. The category/location linkage lives
// in Mapping, the supplier chain in NomenclatureMapping; both are
// optional.
type Row struct {
	ID           uuid.UUID
	SetID        uuid.UUID
	MaterialID   uuid.UUID
	UnitID       uuid.UUID
	PieTypeID    *uuid.UUID
	QuantityPd   Quantity
	QuantitySpec Quantity
	QuantityRd   Quantity
	CreatedAt    time.Time
}

type Mapping struct {
	RowID                uuid.UUID
	CostCategoryID       *uuid.UUID
	DetailCostCategoryID *uuid.UUID
	LocationID           *uuid.UUID
	BlockID              *uuid.UUID
}

type NomenclatureMapping struct {
	RowID          uuid.UUID
	NomenclatureID uuid.UUID
	SupplierID     *uuid.UUID
}

// FloorMapping holds per-floor quantity shares, unique per
// (chessboard row, floor).
type FloorMapping struct {
	ChessboardID uuid.UUID
	FloorNumber  int
	QuantityPd   Quantity
	QuantitySpec Quantity
	QuantityRd   Quantity
}

// RowView is a row joined with its mappings for listing: names come
// from left joins, so absent relations render as empty strings.
type RowView struct {
	Row
	MaterialName           string
	UnitName               string
	CostCategoryName       string
	DetailCostCategoryName string
	LocationName           string
	BlockName              string
}

type RowFilter struct {
	SetID                *uuid.UUID
	CostCategoryID       *uuid.UUID
	DetailCostCategoryID *uuid.UUID
	Search               string
}

type Repository interface {
	GetSets(ctx context.Context) ([]Set, error)
	GetSetByID(ctx context.Context, id uuid.UUID) (Set, error)
	// NextSetNumber reserves the next sequential set number.
	NextSetNumber(ctx context.Context) (int, error)
	CreateSet(ctx context.Context, data Set) (Set, error)
	UpdateSet(ctx context.Context, data Set) (Set, error)
	DeleteSet(ctx context.Context, id uuid.UUID) error

	GetRows(ctx context.Context, filter RowFilter) ([]RowView, error)
	CreateRow(ctx context.Context, row Row, mapping Mapping) (Row, error)
	DeleteRow(ctx context.Context, id uuid.UUID) error

	CreateNomenclatureMapping(ctx context.Context, data NomenclatureMapping) error

	// UpsertFloorMappings replaces on conflict of
	// (chessboard_id, floor_number): re-running an import for the same
	// row and floor updates rather than duplicates.
	UpsertFloorMappings(ctx context.Context, mappings []FloorMapping) error
	GetFloorMappings(ctx context.Context, chessboardID uuid.UUID) ([]FloorMapping, error)
}
