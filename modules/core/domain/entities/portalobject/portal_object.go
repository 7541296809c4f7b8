package portalobject

import (
	"context"
	"time"
)

type ObjectType string

const (
	TypePage    ObjectType = "page"
	TypeSection ObjectType = "section"
	TypeFeature ObjectType = "feature"
	TypeAction  ObjectType = "action"
)

func (t ObjectType) Valid() bool {
	switch t {
	case TypePage, TypeSection, TypeFeature, TypeAction:
		return true
	}
	return false
}

// PortalObject is a navigable entity (page, section, feature, action)
// used to drive permission checks and menus. Objects form a tree via
// ParentID; cycles are not enforced here.
type PortalObject struct {
	ID         uint
	Name       string
	Code       string
	ObjectType ObjectType
	ParentID   *uint
	SortOrder  int
	IsVisible  bool
	IsSystem   bool
	Metadata   map[string]any
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Repository interface {
	GetAll(ctx context.Context) ([]PortalObject, error)
	GetVisible(ctx context.Context) ([]PortalObject, error)
	GetByID(ctx context.Context, id uint) (PortalObject, error)
	GetByCode(ctx context.Context, code string) (PortalObject, error)
	Create(ctx context.Context, data PortalObject) (PortalObject, error)
	Update(ctx context.Context, data PortalObject) (PortalObject, error)
	Delete(ctx context.Context, id uint) error
}
