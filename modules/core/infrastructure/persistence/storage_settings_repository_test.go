package persistence_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/stroyhub/backoffice/modules/core/domain/entities/storagesettings"
	"github.com/stroyhub/backoffice/modules/core/infrastructure/persistence"
	"github.com/stroyhub/backoffice/pkg/composables"
)

func TestStorageSettingsSaveInsertsOnFirstSave(t *testing.T) {
	tx := &recordingTx{rows: []pgx.Row{
		scanFunc(func(...any) error { return pgx.ErrNoRows }),
		scanFunc(func(dest ...any) error {
			*(dest[0].(*uint)) = 1
			return nil
		}),
	}}
	ctx := composables.WithTx(context.Background(), tx)
	repo := persistence.NewStorageSettingsRepository()

	saved, err := repo.Save(ctx, storagesettings.Settings{Token: "tok", BasePath: "/files", MakePublic: true})
	require.NoError(t, err)
	require.Equal(t, uint(1), saved.ID)

	require.Len(t, tx.queryRows, 2)
	require.Contains(t, tx.queryRows[1].sql, "INSERT INTO storage_settings")
	require.Equal(t, []any{"tok", "/files", true}, tx.queryRows[1].args)
	require.Empty(t, tx.execs)
}

func TestStorageSettingsSaveUpdatesThereafter(t *testing.T) {
	tx := &recordingTx{rows: []pgx.Row{
		scanFunc(func(dest ...any) error {
			*(dest[0].(*uint)) = 7
			*(dest[1].(*string)) = "old-token"
			*(dest[2].(*string)) = "/old"
			*(dest[3].(*bool)) = false
			return nil
		}),
	}}
	ctx := composables.WithTx(context.Background(), tx)
	repo := persistence.NewStorageSettingsRepository()

	saved, err := repo.Save(ctx, storagesettings.Settings{Token: "tok", BasePath: "/files", MakePublic: true})
	require.NoError(t, err)
	require.Equal(t, uint(7), saved.ID, "the singleton row keeps its id")

	require.Len(t, tx.execs, 1)
	require.Contains(t, tx.execs[0].sql, "UPDATE storage_settings")
	require.Equal(t, []any{"tok", "/files", true, uint(7)}, tx.execs[0].args)
}
