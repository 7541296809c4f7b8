package role

import (
	"strings"
	"time"
)

type Role struct {
	id          uint
	name        string
	code        string
	accessLevel int
	color       string
	isSystem    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func New(name, code string, accessLevel int, color string) Role {
	return Role{
		name:        strings.TrimSpace(name),
		code:        strings.TrimSpace(code),
		accessLevel: accessLevel,
		color:       color,
	}
}

func Hydrate(
	id uint,
	name string,
	code string,
	accessLevel int,
	color string,
	isSystem bool,
	createdAt time.Time,
	updatedAt time.Time,
) Role {
	return Role{
		id:          id,
		name:        strings.TrimSpace(name),
		code:        strings.TrimSpace(code),
		accessLevel: accessLevel,
		color:       color,
		isSystem:    isSystem,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r Role) ID() uint             { return r.id }
func (r Role) Name() string         { return r.name }
func (r Role) Code() string         { return r.code }
func (r Role) AccessLevel() int     { return r.accessLevel }
func (r Role) Color() string        { return r.color }
func (r Role) IsSystem() bool       { return r.isSystem }
func (r Role) CreatedAt() time.Time { return r.createdAt }
func (r Role) UpdatedAt() time.Time { return r.updatedAt }

// CanDelete: system roles are seeded and cannot be removed.
func (r Role) CanDelete() bool { return !r.isSystem }

func (r Role) WithName(name string) Role {
	r.name = strings.TrimSpace(name)
	return r
}

func (r Role) WithAccessLevel(level int) Role {
	r.accessLevel = level
	return r
}

func (r Role) WithColor(color string) Role {
	r.color = color
	return r
}
