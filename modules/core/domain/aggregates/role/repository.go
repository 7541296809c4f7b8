package role

import (
	"context"

	"github.com/stroyhub/backoffice/pkg/repo"
)

type Field int

const (
	NameField Field = iota
	CodeField
	AccessLevelField
	CreatedAtField
)

type FieldFilter struct {
	Column Field
	Filter repo.Filter
}

type FindParams struct {
	Limit   int
	Offset  int
	Search  string
	Filters []FieldFilter
	SortBy  repo.SortBy[Field]
}

type Repository interface {
	Count(ctx context.Context, params *FindParams) (int64, error)
	GetAll(ctx context.Context) ([]Role, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]Role, error)
	GetByID(ctx context.Context, id uint) (Role, error)
	GetByCode(ctx context.Context, code string) (Role, error)
	GetByUserID(ctx context.Context, userID uint) ([]Role, error)
	Create(ctx context.Context, data Role) (Role, error)
	Update(ctx context.Context, data Role) (Role, error)
	Delete(ctx context.Context, id uint) error

	AssignToUser(ctx context.Context, userID, roleID, assignedBy uint) error
	RevokeFromUser(ctx context.Context, userID, roleID uint) error
	MapToGroup(ctx context.Context, groupID, roleID uint) error
	UnmapFromGroup(ctx context.Context, groupID, roleID uint) error
}
