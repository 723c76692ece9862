package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUoW(t *testing.T) (*db.SQLiteUnitOfWork, *repository.SQLiteContractorRepo) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database), repository.NewSQLiteContractorRepo(database)
}

func createContractor(ctx context.Context, tx db.DBTX, id string) error {
	return repository.NewSQLiteContractorRepo(tx).Create(ctx, &domain.Contractor{ID: id, Name: "Empreiteira " + id})
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow, contractors := newUoW(t)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := createContractor(ctx, tx, "c1"); err != nil {
			return err
		}
		return createContractor(ctx, tx, "c2")
	})
	require.NoError(t, err)

	all, err := contractors.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow, contractors := newUoW(t)
	ctx := context.Background()
	boom := errors.New("import aborted")

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := createContractor(ctx, tx, "c1"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = contractors.GetByID(ctx, "c1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow, contractors := newUoW(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			_ = createContractor(ctx, tx, "c1")
			panic("boom")
		})
	})

	all, err := contractors.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
