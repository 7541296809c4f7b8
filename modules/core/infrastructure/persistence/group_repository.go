package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/group"
	"github.com/stroyhub/backoffice/pkg/composables"
)

var ErrGroupNotFound = errors.New("group not found")

const (
	groupFindQuery = `SELECT g.id, g.name, g.created_at, g.updated_at FROM groups g`

	groupInsertQuery = `INSERT INTO groups (name) VALUES ($1) RETURNING id, created_at, updated_at`
	groupUpdateQuery = `UPDATE groups SET name = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at`
	groupDeleteQuery = `DELETE FROM groups WHERE id = $1`

	groupUserInsertQuery = `
        INSERT INTO group_users (group_id, user_id)
        VALUES ($1, $2)
        ON CONFLICT (group_id, user_id) DO NOTHING`
	groupUserDeleteQuery = `DELETE FROM group_users WHERE group_id = $1 AND user_id = $2`
)

type PgGroupRepository struct{}

func NewGroupRepository() group.Repository {
	return &PgGroupRepository{}
}

func (g *PgGroupRepository) queryGroups(ctx context.Context, query string, args ...any) ([]group.Group, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []group.Group
	for rows.Next() {
		var gr group.Group
		if err := rows.Scan(&gr.ID, &gr.Name, &gr.CreatedAt, &gr.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, gr)
	}
	return out, rows.Err()
}

func (g *PgGroupRepository) GetAll(ctx context.Context) ([]group.Group, error) {
	groups, err := g.queryGroups(ctx, groupFindQuery+" ORDER BY g.name")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get all groups")
	}
	return groups, nil
}

func (g *PgGroupRepository) GetByID(ctx context.Context, id uint) (group.Group, error) {
	groups, err := g.queryGroups(ctx, groupFindQuery+" WHERE g.id = $1", id)
	if err != nil {
		return group.Group{}, errors.Wrap(err, fmt.Sprintf("failed to query group with id: %d", id))
	}
	if len(groups) == 0 {
		return group.Group{}, fmt.Errorf("id: %d: %w", id, ErrGroupNotFound)
	}
	return groups[0], nil
}

func (g *PgGroupRepository) Create(ctx context.Context, data group.Group) (group.Group, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return group.Group{}, errors.Wrap(err, "failed to get transaction")
	}
	out := data
	if err := tx.QueryRow(ctx, groupInsertQuery, data.Name).Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return group.Group{}, errors.Wrap(err, "failed to create group")
	}
	return out, nil
}

func (g *PgGroupRepository) Update(ctx context.Context, data group.Group) (group.Group, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return group.Group{}, errors.Wrap(err, "failed to get transaction")
	}
	out := data
	if err := tx.QueryRow(ctx, groupUpdateQuery, data.Name, data.ID).Scan(&out.UpdatedAt); err != nil {
		return group.Group{}, errors.Wrap(err, "failed to update group")
	}
	return out, nil
}

func (g *PgGroupRepository) Delete(ctx context.Context, id uint) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, groupDeleteQuery, id); err != nil {
		return errors.Wrap(err, "failed to delete group")
	}
	return nil
}

func (g *PgGroupRepository) AddUser(ctx context.Context, groupID, userID uint) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, groupUserInsertQuery, groupID, userID); err != nil {
		return errors.Wrap(err, "failed to add user to group")
	}
	return nil
}

func (g *PgGroupRepository) RemoveUser(ctx context.Context, groupID, userID uint) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, groupUserDeleteQuery, groupID, userID); err != nil {
		return errors.Wrap(err, "failed to remove user from group")
	}
	return nil
}
