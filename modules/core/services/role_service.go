package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/stroyhub/backoffice/modules/core/domain/aggregates/role"
	"github.com/stroyhub/backoffice/pkg/composables"
	"github.com/stroyhub/backoffice/pkg/eventbus"
)

var ErrSystemRole = errors.New("system roles cannot be deleted")

type RoleService struct {
	repo      role.Repository
	publisher eventbus.EventBus
}

func NewRoleService(repo role.Repository, publisher eventbus.EventBus) *RoleService {
	return &RoleService{repo: repo, publisher: publisher}
}

func (s *RoleService) Count(ctx context.Context, params *role.FindParams) (int64, error) {
	return s.repo.Count(ctx, params)
}

func (s *RoleService) GetAll(ctx context.Context) ([]role.Role, error) {
	return s.repo.GetAll(ctx)
}

func (s *RoleService) GetByID(ctx context.Context, id uint) (role.Role, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RoleService) GetPaginated(ctx context.Context, params *role.FindParams) ([]role.Role, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *RoleService) GetForUser(ctx context.Context, userID uint) ([]role.Role, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *RoleService) Create(ctx context.Context, data role.Role) (role.Role, error) {
	var created role.Role
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.Create(txCtx, data)
		return err
	})
	if err != nil {
		return role.Role{}, err
	}
	s.publisher.Publish(role.CreatedEvent{Result: created})
	return created, nil
}

func (s *RoleService) Update(ctx context.Context, data role.Role) (role.Role, error) {
	var updated role.Role
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.repo.Update(txCtx, data)
		return err
	})
	if err != nil {
		return role.Role{}, err
	}
	s.publisher.Publish(role.UpdatedEvent{Result: updated})
	return updated, nil
}

func (s *RoleService) Delete(ctx context.Context, id uint) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !existing.CanDelete() {
		return ErrSystemRole
	}
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}
	s.publisher.Publish(role.DeletedEvent{ID: id})
	return nil
}

func (s *RoleService) AssignToUser(ctx context.Context, userID, roleID, assignedBy uint) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.AssignToUser(txCtx, userID, roleID, assignedBy)
	})
}

func (s *RoleService) RevokeFromUser(ctx context.Context, userID, roleID uint) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.RevokeFromUser(txCtx, userID, roleID)
	})
}

func (s *RoleService) MapToGroup(ctx context.Context, groupID, roleID uint) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.MapToGroup(txCtx, groupID, roleID)
	})
}

func (s *RoleService) UnmapFromGroup(ctx context.Context, groupID, roleID uint) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.UnmapFromGroup(txCtx, groupID, roleID)
	})
}
