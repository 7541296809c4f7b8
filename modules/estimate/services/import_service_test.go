package services_test

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/stroyhub/backoffice/modules/estimate/domain/chessboard"
	"github.com/stroyhub/backoffice/modules/estimate/services"
	"github.com/stroyhub/backoffice/modules/finishing/domain/finishing"
	"github.com/stroyhub/backoffice/pkg/querycache"
)

type fakeFinishingSource struct {
	doc       finishing.Document
	rows      []finishing.Row
	calcTypes map[uuid.UUID]struct{}
}

func (f *fakeFinishingSource) GetDocument(context.Context, uuid.UUID) (finishing.Document, error) {
	return f.doc, nil
}

func (f *fakeFinishingSource) GetRows(context.Context, uuid.UUID) ([]finishing.Row, error) {
	return f.rows, nil
}

func (f *fakeFinishingSource) CalculationTypeIDs(context.Context) (map[uuid.UUID]struct{}, error) {
	return f.calcTypes, nil
}

type fakeChessboardRepo struct {
	chessboard.Repository

	nextNumber    int
	sets          []chessboard.Set
	rows          []chessboard.Row
	mappings      []chessboard.Mapping
	floorMappings map[[2]any]chessboard.FloorMapping

	failRowInsert func(row chessboard.Row) error
}

func newFakeChessboardRepo() *fakeChessboardRepo {
	return &fakeChessboardRepo{
		nextNumber:    1,
		floorMappings: make(map[[2]any]chessboard.FloorMapping),
	}
}

func (f *fakeChessboardRepo) NextSetNumber(context.Context) (int, error) {
	return f.nextNumber, nil
}

func (f *fakeChessboardRepo) CreateSet(_ context.Context, data chessboard.Set) (chessboard.Set, error) {
	if data.ID == uuid.Nil {
		data.ID = uuid.New()
	}
	f.sets = append(f.sets, data)
	return data, nil
}

func (f *fakeChessboardRepo) CreateRow(_ context.Context, row chessboard.Row, mapping chessboard.Mapping) (chessboard.Row, error) {
	if f.failRowInsert != nil {
		if err := f.failRowInsert(row); err != nil {
			return chessboard.Row{}, err
		}
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	mapping.RowID = row.ID
	f.rows = append(f.rows, row)
	f.mappings = append(f.mappings, mapping)
	return row, nil
}

func (f *fakeChessboardRepo) UpsertFloorMappings(_ context.Context, mappings []chessboard.FloorMapping) error {
	for _, fm := range mappings {
		f.floorMappings[[2]any{fm.ChessboardID, fm.FloorNumber}] = fm
	}
	return nil
}

func validRow(rowNumber int, pieType uuid.UUID, floors, qty string) finishing.Row {
	material := uuid.New()
	unit := uuid.New()
	detail := uuid.New()
	return finishing.Row{
		ID:                   uuid.New(),
		RowNumber:            rowNumber,
		PieTypeID:            &pieType,
		PieTypeName:          "Walls",
		MaterialID:           &material,
		MaterialName:         "Plaster",
		UnitID:               &unit,
		UnitName:             "kg",
		DetailCostCategoryID: &detail,
		Floors:               floors,
		QuantityPd:           qty,
		QuantitySpec:         qty,
		QuantityRd:           qty,
	}
}

func TestImportRefusesOnMissingRequiredFields(t *testing.T) {
	pieType := uuid.New()
	broken := validRow(2, pieType, "", "10")
	broken.MaterialID = nil
	broken.UnitID = nil

	source := &fakeFinishingSource{
		doc:       finishing.Document{ID: uuid.New(), Name: "FD-01", ProjectName: "Riverside"},
		rows:      []finishing.Row{validRow(1, pieType, "", "10"), broken},
		calcTypes: map[uuid.UUID]struct{}{pieType: {}},
	}
	repo := newFakeChessboardRepo()
	svc := services.NewImportService(source, repo, querycache.New())

	result := svc.Import(context.Background(), source.doc.ID, "April batch")

	require.False(t, result.Success)
	require.Len(t, result.ValidationErrors, 1)
	require.Equal(t, 2, result.ValidationErrors[0].RowNumber)
	require.Equal(t, []string{"material", "unit"}, result.ValidationErrors[0].MissingFields)
	require.Empty(t, repo.sets, "validation failure must issue zero writes")
	require.Empty(t, repo.rows)
}

func TestImportCreatesSetRowsAndFloorMappings(t *testing.T) {
	pieType := uuid.New()
	source := &fakeFinishingSource{
		doc:       finishing.Document{ID: uuid.New(), Name: "FD-01", ProjectName: "Riverside"},
		rows:      []finishing.Row{validRow(1, pieType, "2,3,5-8", "100")},
		calcTypes: map[uuid.UUID]struct{}{pieType: {}},
	}
	repo := newFakeChessboardRepo()
	repo.nextNumber = 7
	svc := services.NewImportService(source, repo, querycache.New())

	result := svc.Import(context.Background(), source.doc.ID, "April batch")

	require.True(t, result.Success)
	require.NotNil(t, result.SetID)
	require.Equal(t, 7, result.SetNumber)
	require.Equal(t, 1, result.CreatedRows)
	require.Equal(t, 6, result.CreatedFloorMappings)
	require.Empty(t, result.Errors)

	rowID := repo.rows[0].ID
	fm, ok := repo.floorMappings[[2]any{rowID, 5}]
	require.True(t, ok)
	pd := fm.QuantityPd.Nullable()
	require.NotNil(t, pd)
	require.True(t, pd.Equal(decimal.RequireFromString("100").Div(decimal.NewFromInt(6))))
}

func TestImportExcludesUnregisteredPieTypes(t *testing.T) {
	registered := uuid.New()
	unregistered := uuid.New()
	source := &fakeFinishingSource{
		doc:       finishing.Document{ID: uuid.New(), Name: "FD-01", ProjectName: "Riverside"},
		rows:      []finishing.Row{validRow(1, registered, "", "10"), validRow(2, unregistered, "", "10")},
		calcTypes: map[uuid.UUID]struct{}{registered: {}},
	}
	repo := newFakeChessboardRepo()
	svc := services.NewImportService(source, repo, querycache.New())

	result := svc.Import(context.Background(), source.doc.ID, "April batch")

	require.True(t, result.Success)
	require.Equal(t, 1, result.CreatedRows)
	require.Equal(t, 1, result.ExcludedRows)
	require.Len(t, result.Warnings, 1)
	require.Empty(t, result.Errors, "exclusions are warnings, not errors")
}

func TestImportIsolatesPerRowFailures(t *testing.T) {
	pieType := uuid.New()
	first := validRow(1, pieType, "", "10")
	second := validRow(2, pieType, "", "10")
	source := &fakeFinishingSource{
		doc:       finishing.Document{ID: uuid.New(), Name: "FD-01", ProjectName: "Riverside"},
		rows:      []finishing.Row{first, second},
		calcTypes: map[uuid.UUID]struct{}{pieType: {}},
	}
	repo := newFakeChessboardRepo()
	repo.failRowInsert = func(row chessboard.Row) error {
		if row.MaterialID == *first.MaterialID {
			return errors.New("duplicate key")
		}
		return nil
	}
	svc := services.NewImportService(source, repo, querycache.New())

	result := svc.Import(context.Background(), source.doc.ID, "April batch")

	require.True(t, result.Success, "a row-level failure does not fail the run")
	require.Equal(t, 1, result.CreatedRows)
	require.Len(t, result.Errors, 1)
	require.Equal(t, 1, result.Errors[0].RowNumber)
	require.Equal(t, "FD-01", result.Errors[0].Code)
	require.Equal(t, "Riverside", result.Errors[0].ProjectName)
}

func TestImportStoresNullForZeroAndUnparseableQuantities(t *testing.T) {
	pieType := uuid.New()
	zero := validRow(1, pieType, "1-2", "0")
	junk := validRow(2, pieType, "1-2", "n/a")
	source := &fakeFinishingSource{
		doc:       finishing.Document{ID: uuid.New(), Name: "FD-01", ProjectName: "Riverside"},
		rows:      []finishing.Row{zero, junk},
		calcTypes: map[uuid.UUID]struct{}{pieType: {}},
	}
	repo := newFakeChessboardRepo()
	svc := services.NewImportService(source, repo, querycache.New())

	result := svc.Import(context.Background(), source.doc.ID, "April batch")

	require.True(t, result.Success)
	require.Equal(t, 4, result.CreatedFloorMappings)
	for _, fm := range repo.floorMappings {
		require.Nil(t, fm.QuantityPd.Nullable(), "zero and unparseable must store NULL, never 0")
		require.Nil(t, fm.QuantitySpec.Nullable())
		require.Nil(t, fm.QuantityRd.Nullable())
	}
}
