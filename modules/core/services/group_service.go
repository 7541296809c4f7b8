package services

import (
	"context"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/group"
	"github.com/stroyhub/backoffice/pkg/composables"
)

type GroupService struct {
	repo group.Repository
}

func NewGroupService(repo group.Repository) *GroupService {
	return &GroupService{repo: repo}
}

func (s *GroupService) GetAll(ctx context.Context) ([]group.Group, error) {
	return s.repo.GetAll(ctx)
}

func (s *GroupService) GetByID(ctx context.Context, id uint) (group.Group, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *GroupService) Create(ctx context.Context, data group.Group) (group.Group, error) {
	var created group.Group
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.Create(txCtx, data)
		return err
	})
	if err != nil {
		return group.Group{}, err
	}
	return created, nil
}

func (s *GroupService) Update(ctx context.Context, data group.Group) (group.Group, error) {
	var updated group.Group
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.repo.Update(txCtx, data)
		return err
	})
	if err != nil {
		return group.Group{}, err
	}
	return updated, nil
}

func (s *GroupService) Delete(ctx context.Context, id uint) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
}

func (s *GroupService) AddUser(ctx context.Context, groupID, userID uint) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.AddUser(txCtx, groupID, userID)
	})
}

func (s *GroupService) RemoveUser(ctx context.Context, groupID, userID uint) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.RemoveUser(txCtx, groupID, userID)
	})
}
