package services

import (
	"context"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/kanban"
)

type KanbanService struct {
	repo kanban.Repository
}

func NewKanbanService(repo kanban.Repository) *KanbanService {
	return &KanbanService{repo: repo}
}

func (s *KanbanService) GetForPage(ctx context.Context, page string) ([]kanban.StatusOrder, error) {
	return s.repo.GetForPage(ctx, page)
}

// Reorder replaces the page's status order wholesale with the given
// sequence.
func (s *KanbanService) Reorder(ctx context.Context, page string, statusIDs []uint) error {
	return s.repo.ReplaceForPage(ctx, page, statusIDs)
}
