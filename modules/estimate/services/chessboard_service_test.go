package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/stroyhub/backoffice/modules/estimate/domain/chessboard"
	"github.com/stroyhub/backoffice/modules/estimate/services"
	"github.com/stroyhub/backoffice/pkg/querycache"
)

type nomenclatureFakeRepo struct {
	chessboard.Repository

	nomMappings []chessboard.NomenclatureMapping
	rowQueries  int
}

func (f *nomenclatureFakeRepo) GetRows(context.Context, chessboard.RowFilter) ([]chessboard.RowView, error) {
	f.rowQueries++
	return []chessboard.RowView{}, nil
}

func (f *nomenclatureFakeRepo) CreateNomenclatureMapping(_ context.Context, data chessboard.NomenclatureMapping) error {
	f.nomMappings = append(f.nomMappings, data)
	return nil
}

func TestCreateNomenclatureMappingStoresAndInvalidatesRows(t *testing.T) {
	repo := &nomenclatureFakeRepo{}
	svc := services.NewChessboardService(repo, querycache.New())
	ctx := context.Background()

	_, err := svc.GetRows(ctx, chessboard.RowFilter{})
	require.NoError(t, err)
	_, err = svc.GetRows(ctx, chessboard.RowFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, repo.rowQueries, "second read must come from the cache")

	rowID := uuid.New()
	nomenclatureID := uuid.New()
	supplierID := uuid.New()
	err = svc.CreateNomenclatureMapping(ctx, chessboard.NomenclatureMapping{
		RowID:          rowID,
		NomenclatureID: nomenclatureID,
		SupplierID:     &supplierID,
	})
	require.NoError(t, err)

	require.Len(t, repo.nomMappings, 1)
	require.Equal(t, rowID, repo.nomMappings[0].RowID)
	require.Equal(t, nomenclatureID, repo.nomMappings[0].NomenclatureID)
	require.Equal(t, &supplierID, repo.nomMappings[0].SupplierID)

	_, err = svc.GetRows(ctx, chessboard.RowFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, repo.rowQueries, "a new mapping must invalidate cached row views")
}
