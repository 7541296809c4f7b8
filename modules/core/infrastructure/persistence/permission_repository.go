package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/permission"
	"github.com/stroyhub/backoffice/pkg/composables"
)

const (
	// One row per (object, action flags) per role the user holds, either
	// directly or through a group. The service OR-merges them per code.
	permissionResolveQuery = `
        SELECT po.code, rop.can_view, rop.can_create, rop.can_edit, rop.can_delete
        FROM role_object_permissions rop
        JOIN portal_objects po ON po.id = rop.object_id
        WHERE rop.role_id IN (
            SELECT role_id FROM user_roles WHERE user_id = $1
            UNION
            SELECT grm.role_id
            FROM group_role_mappings grm
            JOIN group_users gu ON gu.group_id = grm.group_id
            WHERE gu.user_id = $1
        )`

	permissionUpsertQuery = `
        INSERT INTO role_object_permissions (role_id, object_id, can_view, can_create, can_edit, can_delete)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (role_id, object_id) DO UPDATE
        SET can_view = EXCLUDED.can_view,
            can_create = EXCLUDED.can_create,
            can_edit = EXCLUDED.can_edit,
            can_delete = EXCLUDED.can_delete`

	permissionDeleteQuery = `DELETE FROM role_object_permissions WHERE role_id = $1 AND object_id = $2`
)

type PermissionRepository interface {
	ResolveForUser(ctx context.Context, userID uint) (permission.Set, error)
	Upsert(ctx context.Context, roleID, objectID uint, p permission.ObjectPermission) error
	Delete(ctx context.Context, roleID, objectID uint) error
}

type PgPermissionRepository struct{}

func NewPermissionRepository() PermissionRepository {
	return &PgPermissionRepository{}
}

func (g *PgPermissionRepository) ResolveForUser(ctx context.Context, userID uint) (permission.Set, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, permissionResolveQuery, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve permissions")
	}
	defer rows.Close()

	set := permission.Set{}
	for rows.Next() {
		var p permission.ObjectPermission
		if err := rows.Scan(&p.ObjectCode, &p.CanView, &p.CanCreate, &p.CanEdit, &p.CanDelete); err != nil {
			return nil, err
		}
		set.Merge(p)
	}
	return set, rows.Err()
}

func (g *PgPermissionRepository) Upsert(ctx context.Context, roleID, objectID uint, p permission.ObjectPermission) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, permissionUpsertQuery, roleID, objectID, p.CanView, p.CanCreate, p.CanEdit, p.CanDelete); err != nil {
		return errors.Wrap(err, "failed to upsert role object permission")
	}
	return nil
}

func (g *PgPermissionRepository) Delete(ctx context.Context, roleID, objectID uint) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, permissionDeleteQuery, roleID, objectID); err != nil {
		return errors.Wrap(err, "failed to delete role object permission")
	}
	return nil
}
