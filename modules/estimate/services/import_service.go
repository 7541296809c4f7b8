package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stroyhub/backoffice/modules/estimate/domain/chessboard"
	"github.com/stroyhub/backoffice/modules/finishing/domain/finishing"
	"github.com/stroyhub/backoffice/pkg/composables"
	"github.com/stroyhub/backoffice/pkg/querycache"
)

// FinishingSource is the slice of the finishing module the importer
// reads from.
type FinishingSource interface {
	GetDocument(ctx context.Context, id uuid.UUID) (finishing.Document, error)
	GetRows(ctx context.Context, documentID uuid.UUID) ([]finishing.Row, error)
	CalculationTypeIDs(ctx context.Context) (map[uuid.UUID]struct{}, error)
}

// RowValidationError reports one source row that cannot be imported.
// Names are carried so the report reads without further lookups.
type RowValidationError struct {
	RowNumber              int      `json:"row_number"`
	PieTypeName            string   `json:"pie_type_name"`
	MaterialName           string   `json:"material_name"`
	UnitName               string   `json:"unit_name"`
	DetailCostCategoryName string   `json:"detail_cost_category_name"`
	MissingFields          []string `json:"missing_fields"`
}

// ImportError records a single row whose write failed after validation
// passed. The run continues past it.
type ImportError struct {
	RowNumber   int    `json:"row_number"`
	Code        string `json:"code"`
	ProjectName string `json:"project_name"`
	Message     string `json:"message"`
}

type ImportResult struct {
	Success              bool                 `json:"success"`
	Message              string               `json:"message,omitempty"`
	SetID                *uuid.UUID           `json:"set_id,omitempty"`
	SetName              string               `json:"set_name"`
	SetNumber            int                  `json:"set_number"`
	CreatedRows          int                  `json:"created_rows"`
	CreatedFloorMappings int                  `json:"created_floor_mappings"`
	ExcludedRows         int                  `json:"excluded_rows"`
	Warnings             []string             `json:"warnings"`
	Errors               []ImportError        `json:"errors"`
	ValidationErrors     []RowValidationError `json:"validation_errors,omitempty"`
}

// ImportService materializes a chessboard set from a finishing
// specification document. Validation is all-or-nothing up front; the
// write phase is best-effort per row.
type ImportService struct {
	source FinishingSource
	repo   chessboard.Repository
	cache  *querycache.Cache
}

func NewImportService(source FinishingSource, repo chessboard.Repository, cache *querycache.Cache) *ImportService {
	return &ImportService{source: source, repo: repo, cache: cache}
}

func (s *ImportService) Import(ctx context.Context, sourceDocumentID uuid.UUID, setName string) ImportResult {
	logger := composables.UseLogger(ctx)
	result := ImportResult{SetName: setName, Warnings: []string{}, Errors: []ImportError{}}

	doc, err := s.source.GetDocument(ctx, sourceDocumentID)
	if err != nil {
		result.Message = fmt.Sprintf("failed to load finishing document: %v", err)
		return result
	}
	rows, err := s.source.GetRows(ctx, sourceDocumentID)
	if err != nil {
		result.Message = fmt.Sprintf("failed to load finishing rows: %v", err)
		return result
	}
	calcTypes, err := s.source.CalculationTypeIDs(ctx)
	if err != nil {
		result.Message = fmt.Sprintf("failed to load calculation types: %v", err)
		return result
	}

	// Pre-flight: one missing required field anywhere refuses the
	// whole run before any write.
	result.ValidationErrors = validateRows(rows)
	if len(result.ValidationErrors) > 0 {
		result.Message = fmt.Sprintf("%d rows are missing required fields", len(result.ValidationErrors))
		return result
	}

	setNumber, err := s.repo.NextSetNumber(ctx)
	if err != nil {
		result.Message = fmt.Sprintf("failed to reserve set number: %v", err)
		return result
	}
	docID := sourceDocumentID
	set, err := s.repo.CreateSet(ctx, chessboard.Set{
		Name:             setName,
		SetNumber:        setNumber,
		SourceDocumentID: &docID,
		Status:           "created",
	})
	if err != nil {
		result.Message = fmt.Sprintf("failed to create set: %v", err)
		return result
	}
	result.SetID = &set.ID
	result.SetNumber = set.SetNumber

	for _, row := range rows {
		if _, ok := calcTypes[*row.PieTypeID]; !ok {
			result.ExcludedRows++
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"row %d: pie type %q is not registered for calculation, row excluded",
				row.RowNumber, row.PieTypeName,
			))
			continue
		}

		created, err := s.repo.CreateRow(ctx,
			chessboard.Row{
				SetID:        set.ID,
				MaterialID:   *row.MaterialID,
				UnitID:       *row.UnitID,
				PieTypeID:    row.PieTypeID,
				QuantityPd:   chessboard.ParseQuantity(row.QuantityPd),
				QuantitySpec: chessboard.ParseQuantity(row.QuantitySpec),
				QuantityRd:   chessboard.ParseQuantity(row.QuantityRd),
			},
			chessboard.Mapping{DetailCostCategoryID: row.DetailCostCategoryID},
		)
		if err != nil {
			logger.WithError(err).WithField("row", row.RowNumber).Error("chessboard row insert failed")
			result.Errors = append(result.Errors, ImportError{
				RowNumber:   row.RowNumber,
				Code:        doc.Name,
				ProjectName: doc.ProjectName,
				Message:     err.Error(),
			})
			continue
		}
		result.CreatedRows++

		floors := chessboard.ParseFloors(row.Floors)
		if len(floors) == 0 {
			continue
		}
		mappings := distributeOverFloors(created.ID, floors,
			chessboard.ParseQuantity(row.QuantityPd),
			chessboard.ParseQuantity(row.QuantitySpec),
			chessboard.ParseQuantity(row.QuantityRd),
		)
		if err := s.repo.UpsertFloorMappings(ctx, mappings); err != nil {
			logger.WithError(err).WithField("row", row.RowNumber).Error("floor mapping upsert failed")
			result.Errors = append(result.Errors, ImportError{
				RowNumber:   row.RowNumber,
				Code:        doc.Name,
				ProjectName: doc.ProjectName,
				Message:     err.Error(),
			})
			continue
		}
		result.CreatedFloorMappings += len(mappings)
	}

	s.cache.InvalidateOp("chessboard.sets", "chessboard.rows")
	result.Success = true
	return result
}

func validateRows(rows []finishing.Row) []RowValidationError {
	var out []RowValidationError
	for _, row := range rows {
		var missing []string
		if row.PieTypeID == nil {
			missing = append(missing, "pie_type")
		}
		if row.MaterialID == nil {
			missing = append(missing, "material")
		}
		if row.UnitID == nil {
			missing = append(missing, "unit")
		}
		if row.DetailCostCategoryID == nil {
			missing = append(missing, "detail_cost_category")
		}
		if len(missing) == 0 {
			continue
		}
		out = append(out, RowValidationError{
			RowNumber:              row.RowNumber,
			PieTypeName:            row.PieTypeName,
			MaterialName:           row.MaterialName,
			UnitName:               row.UnitName,
			DetailCostCategoryName: row.DetailCostCategoryName,
			MissingFields:          missing,
		})
	}
	return out
}

// distributeOverFloors splits each quantity evenly across the resolved
// floors. Unset and zero quantities stay NULL on every floor.
func distributeOverFloors(chessboardID uuid.UUID, floors []int, pd, spec, rd chessboard.Quantity) []chessboard.FloorMapping {
	n := len(floors)
	out := make([]chessboard.FloorMapping, 0, n)
	for _, floor := range floors {
		out = append(out, chessboard.FloorMapping{
			ChessboardID: chessboardID,
			FloorNumber:  floor,
			QuantityPd:   pd.DivideBy(n),
			QuantitySpec: spec.DivideBy(n),
			QuantityRd:   rd.DivideBy(n),
		})
	}
	return out
}
