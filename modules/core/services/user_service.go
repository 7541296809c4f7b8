package services

import (
	"context"

	"github.com/stroyhub/backoffice/modules/core/domain/aggregates/user"
	"github.com/stroyhub/backoffice/pkg/composables"
)

type UserService struct {
	repo user.Repository
}

func NewUserService(repo user.Repository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetAll(ctx context.Context) ([]user.User, error) {
	return s.repo.GetAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id uint) (user.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *UserService) Create(ctx context.Context, data user.User, password string) (user.User, error) {
	withPassword, err := data.SetPassword(password)
	if err != nil {
		return user.User{}, err
	}
	var created user.User
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		created, err = s.repo.Create(txCtx, withPassword)
		return err
	})
	if err != nil {
		return user.User{}, err
	}
	return created, nil
}

func (s *UserService) Update(ctx context.Context, data user.User) (user.User, error) {
	var updated user.User
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.repo.Update(txCtx, data)
		return err
	})
	if err != nil {
		return user.User{}, err
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
}
