package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/portalobject"
	"github.com/stroyhub/backoffice/pkg/composables"
)

var ErrPortalObjectNotFound = errors.New("portal object not found")

const (
	portalObjectFindQuery = `
        SELECT
            po.id,
            po.name,
            po.code,
            po.object_type,
            po.parent_id,
            po.sort_order,
            po.is_visible,
            po.is_system,
            po.metadata,
            po.created_at,
            po.updated_at
        FROM portal_objects po`

	portalObjectOrder = ` ORDER BY po.sort_order, po.id`

	portalObjectInsertQuery = `
        INSERT INTO portal_objects (name, code, object_type, parent_id, sort_order, is_visible, is_system, metadata)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	portalObjectUpdateQuery = `
        UPDATE portal_objects
        SET name = $1, object_type = $2, parent_id = $3, sort_order = $4, is_visible = $5, metadata = $6, updated_at = NOW()
        WHERE id = $7
        RETURNING updated_at`

	portalObjectDeleteQuery = `DELETE FROM portal_objects WHERE id = $1`
)

type PgPortalObjectRepository struct{}

func NewPortalObjectRepository() portalobject.Repository {
	return &PgPortalObjectRepository{}
}

func (g *PgPortalObjectRepository) queryObjects(ctx context.Context, query string, args ...any) ([]portalobject.PortalObject, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []portalobject.PortalObject
	for rows.Next() {
		var po portalobject.PortalObject
		if err := rows.Scan(
			&po.ID,
			&po.Name,
			&po.Code,
			&po.ObjectType,
			&po.ParentID,
			&po.SortOrder,
			&po.IsVisible,
			&po.IsSystem,
			&po.Metadata,
			&po.CreatedAt,
			&po.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, po)
	}
	return out, rows.Err()
}

func (g *PgPortalObjectRepository) GetAll(ctx context.Context) ([]portalobject.PortalObject, error) {
	objects, err := g.queryObjects(ctx, portalObjectFindQuery+portalObjectOrder)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get portal objects")
	}
	return objects, nil
}

func (g *PgPortalObjectRepository) GetVisible(ctx context.Context) ([]portalobject.PortalObject, error) {
	objects, err := g.queryObjects(ctx, portalObjectFindQuery+" WHERE po.is_visible"+portalObjectOrder)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get visible portal objects")
	}
	return objects, nil
}

func (g *PgPortalObjectRepository) GetByID(ctx context.Context, id uint) (portalobject.PortalObject, error) {
	objects, err := g.queryObjects(ctx, portalObjectFindQuery+" WHERE po.id = $1", id)
	if err != nil {
		return portalobject.PortalObject{}, errors.Wrap(err, fmt.Sprintf("failed to query portal object with id: %d", id))
	}
	if len(objects) == 0 {
		return portalobject.PortalObject{}, fmt.Errorf("id: %d: %w", id, ErrPortalObjectNotFound)
	}
	return objects[0], nil
}

func (g *PgPortalObjectRepository) GetByCode(ctx context.Context, code string) (portalobject.PortalObject, error) {
	objects, err := g.queryObjects(ctx, portalObjectFindQuery+" WHERE po.code = $1", code)
	if err != nil {
		return portalobject.PortalObject{}, errors.Wrap(err, fmt.Sprintf("failed to query portal object with code: %s", code))
	}
	if len(objects) == 0 {
		return portalobject.PortalObject{}, fmt.Errorf("code: %s: %w", code, ErrPortalObjectNotFound)
	}
	return objects[0], nil
}

func (g *PgPortalObjectRepository) Create(ctx context.Context, data portalobject.PortalObject) (portalobject.PortalObject, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return portalobject.PortalObject{}, errors.Wrap(err, "failed to get transaction")
	}
	out := data
	err = tx.QueryRow(
		ctx, portalObjectInsertQuery,
		data.Name, data.Code, data.ObjectType, data.ParentID, data.SortOrder, data.IsVisible, data.IsSystem, data.Metadata,
	).Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return portalobject.PortalObject{}, errors.Wrap(err, "failed to create portal object")
	}
	return out, nil
}

func (g *PgPortalObjectRepository) Update(ctx context.Context, data portalobject.PortalObject) (portalobject.PortalObject, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return portalobject.PortalObject{}, errors.Wrap(err, "failed to get transaction")
	}
	out := data
	err = tx.QueryRow(
		ctx, portalObjectUpdateQuery,
		data.Name, data.ObjectType, data.ParentID, data.SortOrder, data.IsVisible, data.Metadata, data.ID,
	).Scan(&out.UpdatedAt)
	if err != nil {
		return portalobject.PortalObject{}, errors.Wrap(err, "failed to update portal object")
	}
	return out, nil
}

func (g *PgPortalObjectRepository) Delete(ctx context.Context, id uint) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, portalObjectDeleteQuery, id); err != nil {
		return errors.Wrap(err, "failed to delete portal object")
	}
	return nil
}
