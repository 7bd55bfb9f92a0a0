package txmanager_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

func setup(t *testing.T) (*txmanager.TransactionManager, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return txmanager.NewTransactionManager(dbmetrics.Wrap(db, nil)), dbMock
}

func TestDo_Commit(t *testing.T) {
	m, dbMock := setup(t)

	dbMock.ExpectBegin()
	dbMock.ExpectExec("UPDATE mentor_schedules").WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectCommit()

	err := m.Do(context.Background(), func(ctx context.Context) error {
		tx, ok := dbmetrics.TxFromContext(ctx)
		require.True(t, ok)
		_, err := tx.ExecContext(ctx, "UPDATE mentor_schedules SET status = 'draft'")
		return err
	})
	require.NoError(t, err)
	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestDo_RollbackOnError(t *testing.T) {
	m, dbMock := setup(t)
	boom := errors.New("boom")

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestDo_NestedReusesTransaction(t *testing.T) {
	m, dbMock := setup(t)

	dbMock.ExpectBegin()
	dbMock.ExpectCommit()

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.Do(ctx, func(context.Context) error { return nil })
	})
	require.NoError(t, err)
	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	m, dbMock := setup(t)

	conflict := &pq.Error{Code: "40001", Message: "could not serialize access"}

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()
	dbMock.ExpectBegin()
	dbMock.ExpectCommit()

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return conflict
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestDoSerializable_GivesUp(t *testing.T) {
	m, dbMock := setup(t)

	conflict := &pq.Error{Code: "40001"}
	for i := 0; i < txmanager.DefaultMaxRetries; i++ {
		dbMock.ExpectBegin()
		dbMock.ExpectRollback()
	}

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return conflict
	})
	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	require.NoError(t, dbMock.ExpectationsWereMet())
}
