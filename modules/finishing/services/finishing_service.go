package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/stroyhub/backoffice/modules/finishing/domain/finishing"
)

// FinishingService is the read surface other modules consume: the
// chessboard importer pulls documents and rows through it.
type FinishingService struct {
	repo finishing.Repository
}

func NewFinishingService(repo finishing.Repository) *FinishingService {
	return &FinishingService{repo: repo}
}

func (s *FinishingService) GetDocument(ctx context.Context, id uuid.UUID) (finishing.Document, error) {
	return s.repo.GetDocument(ctx, id)
}

func (s *FinishingService) GetRows(ctx context.Context, documentID uuid.UUID) ([]finishing.Row, error) {
	return s.repo.GetRows(ctx, documentID)
}

func (s *FinishingService) PieTypes(ctx context.Context) ([]finishing.PieType, error) {
	return s.repo.PieTypes(ctx)
}

func (s *FinishingService) CalculationTypeIDs(ctx context.Context) (map[uuid.UUID]struct{}, error) {
	return s.repo.CalculationTypeIDs(ctx)
}

func (s *FinishingService) StageDocument(ctx context.Context, name string, projectID uuid.UUID, rows []finishing.StagedRow) (finishing.Document, error) {
	return s.repo.StageDocument(ctx, name, projectID, rows)
}
