package group

import (
	"context"
	"time"
)

type Group struct {
	ID        uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository interface {
	GetAll(ctx context.Context) ([]Group, error)
	GetByID(ctx context.Context, id uint) (Group, error)
	Create(ctx context.Context, data Group) (Group, error)
	Update(ctx context.Context, data Group) (Group, error)
	Delete(ctx context.Context, id uint) error

	AddUser(ctx context.Context, groupID, userID uint) error
	RemoveUser(ctx context.Context, groupID, userID uint) error
}
