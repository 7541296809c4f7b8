package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/stroyhub/backoffice/modules/estimate/domain/chessboard"
	"github.com/stroyhub/backoffice/pkg/composables"
	"github.com/stroyhub/backoffice/pkg/querycache"
)

const (
	opChessboardSets = "chessboard.sets"
	opChessboardRows = "chessboard.rows"
)

type ChessboardService struct {
	repo  chessboard.Repository
	cache *querycache.Cache
}

func NewChessboardService(repo chessboard.Repository, cache *querycache.Cache) *ChessboardService {
	return &ChessboardService{repo: repo, cache: cache}
}

func (s *ChessboardService) GetSets(ctx context.Context) ([]chessboard.Set, error) {
	v, err := s.cache.GetOrLoad(ctx, querycache.NewKey(opChessboardSets), func(ctx context.Context) (any, error) {
		return s.repo.GetSets(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]chessboard.Set), nil
}

func (s *ChessboardService) GetSetByID(ctx context.Context, id uuid.UUID) (chessboard.Set, error) {
	return s.repo.GetSetByID(ctx, id)
}

func (s *ChessboardService) UpdateSet(ctx context.Context, data chessboard.Set) (chessboard.Set, error) {
	var updated chessboard.Set
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.repo.UpdateSet(txCtx, data)
		return err
	})
	if err != nil {
		return chessboard.Set{}, err
	}
	s.cache.InvalidateOp(opChessboardSets)
	return updated, nil
}

// DeleteSet removes the set and invalidates everything derived from
// it: the sets list, its rows, and any grid views built on them.
func (s *ChessboardService) DeleteSet(ctx context.Context, id uuid.UUID) error {
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.DeleteSet(txCtx, id)
	})
	if err != nil {
		return err
	}
	s.cache.InvalidateOp(opChessboardSets, opChessboardRows)
	return nil
}

func (s *ChessboardService) GetRows(ctx context.Context, filter chessboard.RowFilter) ([]chessboard.RowView, error) {
	key := querycache.NewKey(opChessboardRows, filter.SetID, filter.CostCategoryID, filter.DetailCostCategoryID, filter.Search)
	v, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.repo.GetRows(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return v.([]chessboard.RowView), nil
}

func (s *ChessboardService) CreateRow(ctx context.Context, row chessboard.Row, mapping chessboard.Mapping) (chessboard.Row, error) {
	created, err := s.repo.CreateRow(ctx, row, mapping)
	if err != nil {
		return chessboard.Row{}, err
	}
	s.cache.InvalidateOp(opChessboardRows)
	return created, nil
}

// CreateNomenclatureMapping links a row to a nomenclature position and
// optionally one of its suppliers.
func (s *ChessboardService) CreateNomenclatureMapping(ctx context.Context, data chessboard.NomenclatureMapping) error {
	if err := s.repo.CreateNomenclatureMapping(ctx, data); err != nil {
		return err
	}
	s.cache.InvalidateOp(opChessboardRows)
	return nil
}

func (s *ChessboardService) DeleteRow(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteRow(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateOp(opChessboardRows)
	return nil
}

func (s *ChessboardService) GetFloorMappings(ctx context.Context, chessboardID uuid.UUID) ([]chessboard.FloorMapping, error) {
	return s.repo.GetFloorMappings(ctx, chessboardID)
}
