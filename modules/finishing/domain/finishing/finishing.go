package finishing

import (
	"context"

	"github.com/google/uuid"
)

// PieType classifies a finishing-specification row. Only pie types
// present in the calculation-by-type reference participate in the
// chessboard import.
type PieType struct {
	ID   uuid.UUID
	Name string
}

// Document is a finishing specification: a named batch of rows scoped
// to one project.
type Document struct {
	ID          uuid.UUID
	Name        string
	ProjectID   uuid.UUID
	ProjectName string
}

// Row is the read shape the import pipeline consumes. Reference IDs
// are nullable because the source spreadsheet may leave them unset;
// the names travel alongside so validation reports stay readable
// without extra lookups.
type Row struct {
	ID                     uuid.UUID
	RowNumber              int
	PieTypeID              *uuid.UUID
	PieTypeName            string
	MaterialID             *uuid.UUID
	MaterialName           string
	UnitID                 *uuid.UUID
	UnitName               string
	DetailCostCategoryID   *uuid.UUID
	DetailCostCategoryName string
	// Floors holds the raw floor-range text, e.g. "2,3,5-8".
	Floors string
	// Raw quantity texts; parsing is the importer's concern because
	// blank, zero and unparseable values carry different meanings.
	QuantityPd   string
	QuantitySpec string
	QuantityRd   string
}

// StagedRow is an unresolved source row as it comes out of a
// workbook: references are names, not ids. Resolution happens at
// staging time; names that match nothing stay NULL so the import
// validation can report them.
type StagedRow struct {
	RowNumber              int
	PieTypeName            string
	MaterialName           string
	UnitName               string
	DetailCostCategoryName string
	Floors                 string
	QuantityPd             string
	QuantitySpec           string
	QuantityRd             string
}

type Repository interface {
	GetDocument(ctx context.Context, id uuid.UUID) (Document, error)
	GetRows(ctx context.Context, documentID uuid.UUID) ([]Row, error)
	PieTypes(ctx context.Context) ([]PieType, error)
	// CalculationTypeIDs returns the pie types registered in the
	// calculation-by-type reference. Rows with a pie type outside this
	// set are excluded from imports.
	CalculationTypeIDs(ctx context.Context) (map[uuid.UUID]struct{}, error)
	// StageDocument persists a workbook as a finishing document,
	// resolving reference names to ids by case-insensitive match.
	StageDocument(ctx context.Context, name string, projectID uuid.UUID, rows []StagedRow) (Document, error)
}
