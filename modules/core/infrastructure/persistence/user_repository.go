package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"

	"github.com/stroyhub/backoffice/modules/core/domain/aggregates/user"
	"github.com/stroyhub/backoffice/pkg/composables"
)

var ErrUserNotFound = errors.New("user not found")

const (
	userFindQuery = `
        SELECT
            u.id,
            u.email,
            u.password,
            u.first_name,
            u.last_name,
            u.is_active,
            u.created_at,
            u.updated_at
        FROM users u`

	userInsertQuery = `
        INSERT INTO users (email, password, first_name, last_name, is_active)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	userUpdateQuery = `
        UPDATE users
        SET email = $1, password = $2, first_name = $3, last_name = $4, is_active = $5, updated_at = NOW()
        WHERE id = $6
        RETURNING updated_at`

	userDeleteQuery = `DELETE FROM users WHERE id = $1`

	userGroupsQuery = `SELECT group_id FROM group_users WHERE user_id = $1 ORDER BY group_id`
)

type PgUserRepository struct{}

func NewUserRepository() user.Repository {
	return &PgUserRepository{}
}

func (g *PgUserRepository) queryUsers(ctx context.Context, query string, args ...any) ([]user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []user.User
	for rows.Next() {
		var (
			id        uint
			email     string
			password  string
			firstName string
			lastName  string
			isActive  bool
			createdAt time.Time
			updatedAt time.Time
		)
		if err := rows.Scan(&id, &email, &password, &firstName, &lastName, &isActive, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		out = append(out, user.Hydrate(id, email, password, firstName, lastName, isActive, createdAt, updatedAt))
	}
	return out, rows.Err()
}

func (g *PgUserRepository) GetAll(ctx context.Context) ([]user.User, error) {
	users, err := g.queryUsers(ctx, userFindQuery+" ORDER BY u.last_name, u.first_name")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get all users")
	}
	return users, nil
}

func (g *PgUserRepository) GetByID(ctx context.Context, id uint) (user.User, error) {
	users, err := g.queryUsers(ctx, userFindQuery+" WHERE u.id = $1", id)
	if err != nil {
		return user.User{}, errors.Wrap(err, fmt.Sprintf("failed to query user with id: %d", id))
	}
	if len(users) == 0 {
		return user.User{}, fmt.Errorf("id: %d: %w", id, ErrUserNotFound)
	}
	return users[0], nil
}

func (g *PgUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	users, err := g.queryUsers(ctx, userFindQuery+" WHERE u.email = $1", email)
	if err != nil {
		return user.User{}, errors.Wrap(err, "failed to query user by email")
	}
	if len(users) == 0 {
		return user.User{}, fmt.Errorf("email: %s: %w", email, ErrUserNotFound)
	}
	return users[0], nil
}

func (g *PgUserRepository) GetGroupIDs(ctx context.Context, userID uint) ([]uint, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, userGroupsQuery, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query user groups")
	}
	defer rows.Close()

	var out []uint
	for rows.Next() {
		var id uint
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (g *PgUserRepository) Create(ctx context.Context, data user.User) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, errors.Wrap(err, "failed to get transaction")
	}
	var (
		id        uint
		createdAt time.Time
		updatedAt time.Time
	)
	err = tx.QueryRow(
		ctx, userInsertQuery,
		data.Email(), data.PasswordHash(), data.FirstName(), data.LastName(), data.IsActive(),
	).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		return user.User{}, errors.Wrap(err, "failed to create user")
	}
	return user.Hydrate(id, data.Email(), data.PasswordHash(), data.FirstName(), data.LastName(), data.IsActive(), createdAt, updatedAt), nil
}

func (g *PgUserRepository) Update(ctx context.Context, data user.User) (user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return user.User{}, errors.Wrap(err, "failed to get transaction")
	}
	var updatedAt time.Time
	err = tx.QueryRow(
		ctx, userUpdateQuery,
		data.Email(), data.PasswordHash(), data.FirstName(), data.LastName(), data.IsActive(), data.ID(),
	).Scan(&updatedAt)
	if err != nil {
		return user.User{}, errors.Wrap(err, "failed to update user")
	}
	return user.Hydrate(data.ID(), data.Email(), data.PasswordHash(), data.FirstName(), data.LastName(), data.IsActive(), data.CreatedAt(), updatedAt), nil
}

func (g *PgUserRepository) Delete(ctx context.Context, id uint) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}
	if _, err := tx.Exec(ctx, userDeleteQuery, id); err != nil {
		return errors.Wrap(err, "failed to delete user")
	}
	return nil
}
