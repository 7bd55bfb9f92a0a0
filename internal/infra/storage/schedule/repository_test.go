package schedule_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func setup(t *testing.T) (*schedule.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return schedule.NewRepository(dbmetrics.Wrap(db, nil)), dbMock
}

func TestGet(t *testing.T) {
	repo, dbMock := setup(t)
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

	dbMock.ExpectQuery("SELECT (.+) FROM mentor_schedules WHERE mentor_id = \\$1").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"mentor_id", "status", "committed_at", "created_at", "updated_at"}).
			AddRow(int64(7), "committed", now, now, now))

	dbMock.ExpectQuery("SELECT day_of_week, is_active FROM mentor_schedule_days").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"day_of_week", "is_active"}).
			AddRow(0, true).
			AddRow(6, false))

	dbMock.ExpectQuery("SELECT (.+) FROM mentor_schedule_slots").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"day_of_week", "start_time", "end_time", "is_available"}).
			AddRow(0, "09:00:00", "10:00:00", true).
			AddRow(0, "10:15:00", "11:15:00", false).
			AddRow(6, "12:00:00", "13:00:00", true))

	got, err := repo.Get(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), got.MentorID)
	assert.Equal(t, domain.StatusCommitted, got.Status)
	require.NotNil(t, got.CommittedAt)
	assert.True(t, now.Equal(*got.CommittedAt))

	monday := got.Week.Days[domain.Monday]
	assert.True(t, monday.Active)
	require.Len(t, monday.Slots, 2)
	assert.Equal(t, types.MustParseTimeOfDay("10:15"), monday.Slots[1].Start)
	assert.False(t, monday.Slots[1].Available)

	assert.False(t, got.Week.Days[domain.Sunday].Active)
	assert.Len(t, got.Week.Days[domain.Sunday].Slots, 1)
	assert.Empty(t, got.Week.Days[domain.Tuesday].Slots)

	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	repo, dbMock := setup(t)

	dbMock.ExpectQuery("SELECT (.+) FROM mentor_schedules").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"mentor_id", "status", "committed_at", "created_at", "updated_at"}))

	_, err := repo.Get(context.Background(), 1)
	assert.ErrorIs(t, err, schedule.ErrScheduleNotFound)
	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestGet_CorruptedDay(t *testing.T) {
	repo, dbMock := setup(t)
	now := time.Now()

	dbMock.ExpectQuery("SELECT (.+) FROM mentor_schedules").
		WillReturnRows(sqlmock.NewRows([]string{"mentor_id", "status", "committed_at", "created_at", "updated_at"}).
			AddRow(int64(1), "draft", nil, now, now))
	dbMock.ExpectQuery("SELECT day_of_week, is_active FROM mentor_schedule_days").
		WillReturnRows(sqlmock.NewRows([]string{"day_of_week", "is_active"}).AddRow(9, true))

	_, err := repo.Get(context.Background(), 1)
	assert.ErrorIs(t, err, schedule.ErrCorruptedData)
}

func TestSave(t *testing.T) {
	repo, dbMock := setup(t)
	now := time.Now()

	s := domain.NewMentorSchedule(3)
	s.Week.Days[domain.Monday].Slots = []domain.Slot{
		{Start: types.MustParseTimeOfDay("09:00"), End: types.MustParseTimeOfDay("10:00"), Available: true},
		{Start: types.MustParseTimeOfDay("10:15"), End: types.MustParseTimeOfDay("11:15"), Available: true},
	}
	s.Week.Days[domain.Sunday].Active = false

	dbMock.ExpectQuery("INSERT INTO mentor_schedules (.+) ON CONFLICT \\(mentor_id\\) DO UPDATE").
		WithArgs(int64(3), domain.StatusDraft, nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	dbMock.ExpectExec("DELETE FROM mentor_schedule_slots WHERE mentor_id = \\$1").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 4))
	dbMock.ExpectExec("DELETE FROM mentor_schedule_days WHERE mentor_id = \\$1").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 7))
	dbMock.ExpectExec("INSERT INTO mentor_schedule_days").
		WillReturnResult(sqlmock.NewResult(0, 7))
	dbMock.ExpectExec("INSERT INTO mentor_schedule_slots").
		WithArgs(
			int64(3), 0, 0, sqlmock.AnyArg(), sqlmock.AnyArg(), true,
			int64(3), 0, 1, sqlmock.AnyArg(), sqlmock.AnyArg(), true,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	saved, err := repo.Save(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, now, saved.UpdatedAt)
	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestSave_EmptyWeekSkipsSlots(t *testing.T) {
	repo, dbMock := setup(t)
	now := time.Now()

	dbMock.ExpectQuery("INSERT INTO mentor_schedules").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	dbMock.ExpectExec("DELETE FROM mentor_schedule_slots").WillReturnResult(sqlmock.NewResult(0, 0))
	dbMock.ExpectExec("DELETE FROM mentor_schedule_days").WillReturnResult(sqlmock.NewResult(0, 0))
	dbMock.ExpectExec("INSERT INTO mentor_schedule_days").WillReturnResult(sqlmock.NewResult(0, 7))

	_, err := repo.Save(context.Background(), domain.NewMentorSchedule(3))
	require.NoError(t, err)
	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestSave_ExecError(t *testing.T) {
	repo, dbMock := setup(t)
	now := time.Now()

	dbMock.ExpectQuery("INSERT INTO mentor_schedules").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	dbMock.ExpectExec("DELETE FROM mentor_schedule_slots").WillReturnError(errors.New("connection reset"))

	_, err := repo.Save(context.Background(), domain.NewMentorSchedule(3))
	assert.ErrorIs(t, err, schedule.ErrExecQuery)
}

func TestMarkCommitted(t *testing.T) {
	repo, dbMock := setup(t)
	at := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)

	dbMock.ExpectExec("UPDATE mentor_schedules SET status = \\$1, committed_at = \\$2, updated_at = \\$3 WHERE mentor_id = \\$4").
		WithArgs(domain.StatusCommitted, at, at, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkCommitted(context.Background(), 5, at))

	dbMock.ExpectExec("UPDATE mentor_schedules").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.MarkCommitted(context.Background(), 6, at), schedule.ErrScheduleNotFound)
	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestMarkCommitted_SerializationFailureIsRetried(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	repo := schedule.NewRepository(wrapped)
	tx := txmanager.NewTransactionManager(wrapped)
	at := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)

	// первая попытка падает на UPDATE с конфликтом сериализации
	dbMock.ExpectBegin()
	dbMock.ExpectExec("UPDATE mentor_schedules").
		WithArgs(domain.StatusCommitted, at, at, int64(5)).
		WillReturnError(&pq.Error{Code: "40001"})
	dbMock.ExpectRollback()

	dbMock.ExpectBegin()
	dbMock.ExpectExec("UPDATE mentor_schedules").
		WithArgs(domain.StatusCommitted, at, at, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectCommit()

	attempts := 0
	err = tx.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return repo.MarkCommitted(ctx, 5, at)
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestMarkCommitted_KeepsDriverErrorInChain(t *testing.T) {
	repo, dbMock := setup(t)
	at := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)

	dbMock.ExpectExec("UPDATE mentor_schedules").
		WillReturnError(&pq.Error{Code: "40001"})

	err := repo.MarkCommitted(context.Background(), 5, at)
	assert.ErrorIs(t, err, schedule.ErrExecQuery)

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}
