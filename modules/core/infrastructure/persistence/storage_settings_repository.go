package persistence

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/storagesettings"
	"github.com/stroyhub/backoffice/pkg/composables"
)

var ErrStorageSettingsNotFound = errors.New("storage settings not found")

const (
	storageSettingsFindQuery = `
        SELECT id, token, base_path, make_public
        FROM storage_settings
        ORDER BY id
        LIMIT 1`

	storageSettingsInsertQuery = `
        INSERT INTO storage_settings (token, base_path, make_public)
        VALUES ($1, $2, $3)
        RETURNING id`

	storageSettingsUpdateQuery = `
        UPDATE storage_settings
        SET token = $1, base_path = $2, make_public = $3
        WHERE id = $4`
)

type PgStorageSettingsRepository struct{}

func NewStorageSettingsRepository() storagesettings.Repository {
	return &PgStorageSettingsRepository{}
}

func (g *PgStorageSettingsRepository) Get(ctx context.Context) (storagesettings.Settings, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return storagesettings.Settings{}, err
	}
	var s storagesettings.Settings
	err = tx.QueryRow(ctx, storageSettingsFindQuery).Scan(&s.ID, &s.Token, &s.BasePath, &s.MakePublic)
	if errors.Is(err, pgx.ErrNoRows) {
		return storagesettings.Settings{}, ErrStorageSettingsNotFound
	}
	if err != nil {
		return storagesettings.Settings{}, errors.Wrap(err, "failed to query storage settings")
	}
	return s, nil
}

// Save inserts the singleton row on first save and updates it after.
func (g *PgStorageSettingsRepository) Save(ctx context.Context, data storagesettings.Settings) (storagesettings.Settings, error) {
	existing, err := g.Get(ctx)
	if errors.Is(err, ErrStorageSettingsNotFound) {
		tx, txErr := composables.UseTx(ctx)
		if txErr != nil {
			return storagesettings.Settings{}, txErr
		}
		out := data
		if err := tx.QueryRow(ctx, storageSettingsInsertQuery, data.Token, data.BasePath, data.MakePublic).Scan(&out.ID); err != nil {
			return storagesettings.Settings{}, errors.Wrap(err, "failed to create storage settings")
		}
		return out, nil
	}
	if err != nil {
		return storagesettings.Settings{}, err
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return storagesettings.Settings{}, err
	}
	if _, err := tx.Exec(ctx, storageSettingsUpdateQuery, data.Token, data.BasePath, data.MakePublic, existing.ID); err != nil {
		return storagesettings.Settings{}, errors.Wrap(err, "failed to update storage settings")
	}
	data.ID = existing.ID
	return data, nil
}
