package user

import "context"

type Repository interface {
	GetAll(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id uint) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetGroupIDs(ctx context.Context, userID uint) ([]uint, error)
	Create(ctx context.Context, data User) (User, error)
	Update(ctx context.Context, data User) (User, error)
	Delete(ctx context.Context, id uint) error
}
