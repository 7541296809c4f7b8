package persistence_test

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/stroyhub/backoffice/modules/finishing/infrastructure/persistence"
	"github.com/stroyhub/backoffice/pkg/composables"
)

type queryRowTx struct{ row pgx.Row }

func (f queryRowTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected query")
}

func (f queryRowTx) QueryRow(context.Context, string, ...any) pgx.Row { return f.row }

func (f queryRowTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

type scanFunc func(dest ...any) error

func (fn scanFunc) Scan(dest ...any) error { return fn(dest...) }

func TestGetDocumentDistinguishesMissingFromBackendFailure(t *testing.T) {
	repo := persistence.NewFinishingRepository()

	missing := composables.WithTx(context.Background(), queryRowTx{
		row: scanFunc(func(...any) error { return pgx.ErrNoRows }),
	})
	_, err := repo.GetDocument(missing, uuid.New())
	require.ErrorIs(t, err, persistence.ErrFinishingDocumentNotFound)

	boom := errors.New("connection reset")
	failing := composables.WithTx(context.Background(), queryRowTx{
		row: scanFunc(func(...any) error { return boom }),
	})
	_, err = repo.GetDocument(failing, uuid.New())
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, persistence.ErrFinishingDocumentNotFound,
		"a backend failure must not read as a missing document")
}
