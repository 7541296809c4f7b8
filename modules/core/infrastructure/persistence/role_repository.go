package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"

	"github.com/stroyhub/backoffice/modules/core/domain/aggregates/role"
	"github.com/stroyhub/backoffice/pkg/composables"
	"github.com/stroyhub/backoffice/pkg/repo"
)

var ErrRoleNotFound = errors.New("role not found")

const (
	roleFindQuery = `
        SELECT
            r.id,
            r.name,
            r.code,
            r.access_level,
            r.color,
            r.is_system,
            r.created_at,
            r.updated_at
        FROM roles r`

	roleCountQuery = `SELECT COUNT(r.id) FROM roles r`

	roleInsertQuery = `
        INSERT INTO roles (name, code, access_level, color, is_system)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	roleUpdateQuery = `
        UPDATE roles
        SET name = $1, access_level = $2, color = $3, updated_at = NOW()
        WHERE id = $4
        RETURNING updated_at`

	roleDeleteQuery = `DELETE FROM roles WHERE id = $1`

	roleByUserQuery = roleFindQuery + `
        JOIN user_roles ur ON ur.role_id = r.id
        WHERE ur.user_id = $1
        UNION
        SELECT r.id, r.name, r.code, r.access_level, r.color, r.is_system, r.created_at, r.updated_at
        FROM roles r
        JOIN group_role_mappings grm ON grm.role_id = r.id
        JOIN group_users gu ON gu.group_id = grm.group_id
        WHERE gu.user_id = $1`

	userRoleInsertQuery = `
        INSERT INTO user_roles (user_id, role_id, assigned_by)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, role_id) DO NOTHING`
	userRoleDeleteQuery = `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`

	groupRoleInsertQuery = `
        INSERT INTO group_role_mappings (group_id, role_id)
        VALUES ($1, $2)
        ON CONFLICT (group_id, role_id) DO NOTHING`
	groupRoleDeleteQuery = `DELETE FROM group_role_mappings WHERE group_id = $1 AND role_id = $2`
)

type PgRoleRepository struct {
	fieldMap map[role.Field]string
}

func NewRoleRepository() role.Repository {
	return &PgRoleRepository{
		fieldMap: map[role.Field]string{
			role.NameField:        "r.name",
			role.CodeField:        "r.code",
			role.AccessLevelField: "r.access_level",
			role.CreatedAtField:   "r.created_at",
		},
	}
}

func (g *PgRoleRepository) buildFilters(params *role.FindParams) ([]string, []any, error) {
	where := make([]string, 0, len(params.Filters)+1)
	args := make([]any, 0, len(params.Filters)+1)

	for _, filter := range params.Filters {
		column, ok := g.fieldMap[filter.Column]
		if !ok {
			return nil, nil, errors.Wrap(fmt.Errorf("unknown filter field: %v", filter.Column), "invalid filter")
		}
		where = append(where, filter.Filter.String(column, len(args)+1))
		args = append(args, filter.Filter.Value()...)
	}

	if params.Search != "" {
		index := len(args) + 1
		where = append(where, fmt.Sprintf("(r.name ILIKE $%d OR r.code ILIKE $%d)", index, index))
		args = append(args, "%"+params.Search+"%")
	}

	return where, args, nil
}

func (g *PgRoleRepository) queryRoles(ctx context.Context, query string, args ...any) ([]role.Role, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []role.Role
	for rows.Next() {
		var (
			id          uint
			name        string
			code        string
			accessLevel int
			color       string
			isSystem    bool
			createdAt   time.Time
			updatedAt   time.Time
		)
		if err := rows.Scan(&id, &name, &code, &accessLevel, &color, &isSystem, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		out = append(out, role.Hydrate(id, name, code, accessLevel, color, isSystem, createdAt, updatedAt))
	}
	return out, rows.Err()
}

func (g *PgRoleRepository) Count(ctx context.Context, params *role.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get transaction")
	}
	where, args, err := g.buildFilters(params)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.QueryRow(ctx, repo.Join(roleCountQuery, repo.JoinWhere(where...)), args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count roles")
	}
	return count, nil
}

func (g *PgRoleRepository) GetAll(ctx context.Context) ([]role.Role, error) {
	roles, err := g.queryRoles(ctx, roleFindQuery+" ORDER BY r.access_level DESC, r.name")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get all roles")
	}
	return roles, nil
}

func (g *PgRoleRepository) GetPaginated(ctx context.Context, params *role.FindParams) ([]role.Role, error) {
	where, args, err := g.buildFilters(params)
	if err != nil {
		return nil, err
	}
	query := repo.Join(
		roleFindQuery,
		repo.JoinWhere(where...),
		params.SortBy.ToSQL(g.fieldMap),
		repo.FormatLimitOffset(params.Limit, params.Offset),
	)
	roles, err := g.queryRoles(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get paginated roles")
	}
	return roles, nil
}

func (g *PgRoleRepository) GetByID(ctx context.Context, id uint) (role.Role, error) {
	roles, err := g.queryRoles(ctx, roleFindQuery+" WHERE r.id = $1", id)
	if err != nil {
		return role.Role{}, errors.Wrap(err, fmt.Sprintf("failed to query role with id: %d", id))
	}
	if len(roles) == 0 {
		return role.Role{}, fmt.Errorf("id: %d: %w", id, ErrRoleNotFound)
	}
	return roles[0], nil
}

func (g *PgRoleRepository) GetByCode(ctx context.Context, code string) (role.Role, error) {
	roles, err := g.queryRoles(ctx, roleFindQuery+" WHERE r.code = $1", code)
	if err != nil {
		return role.Role{}, errors.Wrap(err, fmt.Sprintf("failed to query role with code: %s", code))
	}
	if len(roles) == 0 {
		return role.Role{}, fmt.Errorf("code: %s: %w", code, ErrRoleNotFound)
	}
	return roles[0], nil
}

func (g *PgRoleRepository) GetByUserID(ctx context.Context, userID uint) ([]role.Role, error) {
	roles, err := g.queryRoles(ctx, roleByUserQuery, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query user roles")
	}
	return roles, nil
}

func (g *PgRoleRepository) Create(ctx context.Context, data role.Role) (role.Role, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return role.Role{}, errors.Wrap(err, "failed to get transaction")
	}
	var (
		id        uint
		createdAt time.Time
		updatedAt time.Time
	)
	err = tx.QueryRow(
		ctx, roleInsertQuery,
		data.Name(), data.Code(), data.AccessLevel(), data.Color(), data.IsSystem(),
	).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		return role.Role{}, errors.Wrap(err, "failed to create role")
	}
	return role.Hydrate(id, data.Name(), data.Code(), data.AccessLevel(), data.Color(), data.IsSystem(), createdAt, updatedAt), nil
}

func (g *PgRoleRepository) Update(ctx context.Context, data role.Role) (role.Role, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return role.Role{}, errors.Wrap(err, "failed to get transaction")
	}
	var updatedAt time.Time
	err = tx.QueryRow(
		ctx, roleUpdateQuery,
		data.Name(), data.AccessLevel(), data.Color(), data.ID(),
	).Scan(&updatedAt)
	if err != nil {
		return role.Role{}, errors.Wrap(err, "failed to update role")
	}
	return role.Hydrate(data.ID(), data.Name(), data.Code(), data.AccessLevel(), data.Color(), data.IsSystem(), data.CreatedAt(), updatedAt), nil
}

func (g *PgRoleRepository) Delete(ctx context.Context, id uint) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, roleDeleteQuery, id); err != nil {
		return errors.Wrap(err, "failed to delete role")
	}
	return nil
}

func (g *PgRoleRepository) AssignToUser(ctx context.Context, userID, roleID, assignedBy uint) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, userRoleInsertQuery, userID, roleID, assignedBy); err != nil {
		return errors.Wrap(err, "failed to assign role to user")
	}
	return nil
}

func (g *PgRoleRepository) RevokeFromUser(ctx context.Context, userID, roleID uint) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, userRoleDeleteQuery, userID, roleID); err != nil {
		return errors.Wrap(err, "failed to revoke role from user")
	}
	return nil
}

func (g *PgRoleRepository) MapToGroup(ctx context.Context, groupID, roleID uint) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, groupRoleInsertQuery, groupID, roleID); err != nil {
		return errors.Wrap(err, "failed to map role to group")
	}
	return nil
}

func (g *PgRoleRepository) UnmapFromGroup(ctx context.Context, groupID, roleID uint) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, groupRoleDeleteQuery, groupID, roleID); err != nil {
		return errors.Wrap(err, "failed to unmap role from group")
	}
	return nil
}
