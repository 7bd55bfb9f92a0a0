package blocked_dates_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/blocked_dates"
)

func setup(t *testing.T) (*blocked_dates.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return blocked_dates.NewRepository(db), dbMock
}

var (
	columns = []string{"id", "mentor_id", "blocked_date", "reason", "created_at"}
	may1    = time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
)

func TestCreate(t *testing.T) {
	repo, dbMock := setup(t)
	now := time.Now()

	dbMock.ExpectQuery("INSERT INTO mentor_blocked_dates \\(mentor_id,blocked_date,reason\\) VALUES \\(\\$1,\\$2,\\$3\\) RETURNING id, created_at").
		WithArgs(int64(7), may1, "conference").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), now))

	got, err := repo.Create(context.Background(), &domain.BlockedDate{
		MentorID: 7,
		Date:     may1.Add(15 * time.Hour),
		Reason:   "conference",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ID)
	assert.Equal(t, may1, got.Date)
	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCreate_Duplicate(t *testing.T) {
	repo, dbMock := setup(t)

	dbMock.ExpectQuery("INSERT INTO mentor_blocked_dates").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.BlockedDate{MentorID: 7, Date: may1})
	assert.ErrorIs(t, err, blocked_dates.ErrDuplicateDate)
}

func TestGetByID(t *testing.T) {
	repo, dbMock := setup(t)
	now := time.Now()

	dbMock.ExpectQuery("SELECT (.+) FROM mentor_blocked_dates WHERE id = \\$1").
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(11), int64(7), may1, nil, now))

	got, err := repo.GetByID(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.MentorID)
	assert.Empty(t, got.Reason)

	dbMock.ExpectQuery("SELECT (.+) FROM mentor_blocked_dates").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err = repo.GetByID(context.Background(), 12)
	assert.ErrorIs(t, err, blocked_dates.ErrBlockedDateNotFound)
}

func TestListByMentor(t *testing.T) {
	repo, dbMock := setup(t)
	now := time.Now()
	may3 := may1.AddDate(0, 0, 2)

	dbMock.ExpectQuery("SELECT (.+) FROM mentor_blocked_dates WHERE mentor_id = \\$1 AND blocked_date >= \\$2 AND blocked_date <= \\$3 ORDER BY blocked_date ASC").
		WithArgs(int64(7), may1, may1.AddDate(0, 1, 0)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(1), int64(7), may1, "holiday", now).
			AddRow(int64(2), int64(7), may3, nil, now))

	got, err := repo.ListByMentor(context.Background(), 7, may1, may1.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "holiday", got[0].Reason)
	assert.Equal(t, may3, got[1].Date)
	require.NoError(t, dbMock.ExpectationsWereMet())
}

func TestListByMentor_NoRange(t *testing.T) {
	repo, dbMock := setup(t)

	dbMock.ExpectQuery("SELECT (.+) FROM mentor_blocked_dates WHERE mentor_id = \\$1 ORDER BY blocked_date ASC").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.ListByMentor(context.Background(), 7, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExistsOnDate(t *testing.T) {
	repo, dbMock := setup(t)

	dbMock.ExpectQuery("SELECT 1 FROM mentor_blocked_dates").
		WithArgs(may1, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	ok, err := repo.ExistsOnDate(context.Background(), 7, may1.Add(9*time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)

	dbMock.ExpectQuery("SELECT 1 FROM mentor_blocked_dates").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	ok, err = repo.ExistsOnDate(context.Background(), 7, may1.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	repo, dbMock := setup(t)

	dbMock.ExpectExec("DELETE FROM mentor_blocked_dates WHERE id = \\$1").
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 11))

	dbMock.ExpectExec("DELETE FROM mentor_blocked_dates").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 11), blocked_dates.ErrBlockedDateNotFound)
}
