package commit_schedule_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/notifier"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/access"
	"github.com/m04kA/SMC-AvailabilityService/internal/usecase/commit_schedule"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type repoMock struct {
	mock.Mock
}

func (m *repoMock) Get(ctx context.Context, mentorID int64) (*domain.MentorSchedule, error) {
	args := m.Called(ctx, mentorID)
	res, _ := args.Get(0).(*domain.MentorSchedule)
	return res, args.Error(1)
}

func (m *repoMock) MarkCommitted(ctx context.Context, mentorID int64, at time.Time) error {
	return m.Called(ctx, mentorID, at).Error(0)
}

type configsMock struct {
	mock.Mock
}

func (m *configsMock) Effective(ctx context.Context, mentorID int64) (domain.ScheduleConfig, error) {
	args := m.Called(ctx, mentorID)
	return args.Get(0).(domain.ScheduleConfig), args.Error(1)
}

type accessMock struct {
	mock.Mock
}

func (m *accessMock) CheckOwner(ctx context.Context, userID, mentorID int64) error {
	return m.Called(ctx, userID, mentorID).Error(0)
}

type cacheMock struct {
	mock.Mock
}

func (m *cacheMock) Invalidate(ctx context.Context, mentorID int64) {
	m.Called(ctx, mentorID)
}

type eventsMock struct {
	mock.Mock
}

func (m *eventsMock) PublishScheduleCommitted(ctx context.Context, e notifier.ScheduleCommitted) error {
	return m.Called(ctx, e).Error(0)
}

type metricsMock struct {
	mock.Mock
}

func (m *metricsMock) RecordCommit(kind string) {
	m.Called(kind)
}

type txStub struct{}

func (txStub) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

var now = time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)

type deps struct {
	repo    *repoMock
	configs *configsMock
	access  *accessMock
	cache   *cacheMock
	events  *eventsMock
	metrics *metricsMock
}

func newDeps() *deps {
	d := &deps{
		repo:    &repoMock{},
		configs: &configsMock{},
		access:  &accessMock{},
		cache:   &cacheMock{},
		events:  &eventsMock{},
		metrics: &metricsMock{},
	}
	d.access.On("CheckOwner", mock.Anything, int64(1), int64(1)).Return(nil)
	d.configs.On("Effective", mock.Anything, int64(1)).Return(domain.DefaultScheduleConfig(), nil)
	return d
}

func (d *deps) useCase() *commit_schedule.UseCase {
	return commit_schedule.NewUseCase(d.repo, d.configs, d.access, txStub{}, d.cache, d.events, d.metrics, logger.NewNop()).
		WithTimeProvider(fixedTime{now: now})
}

func tod(s string) types.TimeOfDay {
	return types.MustParseTimeOfDay(s)
}

// fullWeek одна сессия в каждый активный день, выходные выключены
func fullWeek() *domain.MentorSchedule {
	s := domain.NewMentorSchedule(1)
	for _, day := range domain.AllDays() {
		ds := s.Week.Day(day)
		if day == domain.Saturday || day == domain.Sunday {
			ds.Active = false
			continue
		}
		ds.Slots = []domain.Slot{{Start: tod("10:00"), End: tod("11:00"), Available: true}}
	}
	return s
}

func TestExecute_Commits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	d := newDeps()
	d.repo.On("Get", ctx, int64(1)).Return(fullWeek(), nil)
	d.repo.On("MarkCommitted", ctx, int64(1), now).Return(nil)
	d.metrics.On("RecordCommit", "").Return()
	d.cache.On("Invalidate", ctx, int64(1)).Return()
	d.events.On("PublishScheduleCommitted", ctx, mock.MatchedBy(func(e notifier.ScheduleCommitted) bool {
		return e.MentorID == 1 && e.TotalSlots == 5 && e.CommittedAt.Equal(now)
	})).Return(nil)

	schedule, err := d.useCase().Execute(ctx, &commit_schedule.Request{UserID: 1, MentorID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCommitted, schedule.Status)
	require.NotNil(t, schedule.CommittedAt)
	assert.Equal(t, now, *schedule.CommittedAt)

	d.repo.AssertExpectations(t)
	d.cache.AssertExpectations(t)
	d.events.AssertExpectations(t)
}

func TestExecute_PublishFailureDoesNotFailCommit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	d := newDeps()
	d.repo.On("Get", ctx, int64(1)).Return(fullWeek(), nil)
	d.repo.On("MarkCommitted", ctx, int64(1), now).Return(nil)
	d.metrics.On("RecordCommit", "").Return()
	d.cache.On("Invalidate", ctx, int64(1)).Return()
	d.events.On("PublishScheduleCommitted", ctx, mock.Anything).Return(notifier.ErrPublish)

	_, err := d.useCase().Execute(ctx, &commit_schedule.Request{UserID: 1, MentorID: 1})
	assert.NoError(t, err)
}

func TestExecute_EmptyActiveDay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s := fullWeek()
	s.Week.Days[domain.Wednesday].Slots = nil

	d := newDeps()
	d.repo.On("Get", ctx, int64(1)).Return(s, nil)
	d.metrics.On("RecordCommit", availability.KindEmptyActiveDay).Return()

	_, err := d.useCase().Execute(ctx, &commit_schedule.Request{UserID: 1, MentorID: 1})

	var empty *availability.EmptyDayError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, domain.Wednesday, empty.Day)
	d.repo.AssertNotCalled(t, "MarkCommitted", mock.Anything, mock.Anything, mock.Anything)
	d.cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	d.events.AssertNotCalled(t, "PublishScheduleCommitted", mock.Anything, mock.Anything)
}

func TestExecute_NoScheduleReportsMonday(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	d := newDeps()
	d.repo.On("Get", ctx, int64(1)).Return(nil, scheduleRepo.ErrScheduleNotFound)
	d.metrics.On("RecordCommit", availability.KindEmptyActiveDay).Return()

	_, err := d.useCase().Execute(ctx, &commit_schedule.Request{UserID: 1, MentorID: 1})

	var empty *availability.EmptyDayError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, domain.Monday, empty.Day)
}

func TestExecute_ConfigTightenedSinceLastEdit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	strict := domain.DefaultScheduleConfig()
	strict.MinSessionMinutes = 90

	d := newDeps()
	d.configs = &configsMock{}
	d.configs.On("Effective", ctx, int64(1)).Return(strict, nil)
	d.repo.On("Get", ctx, int64(1)).Return(fullWeek(), nil)
	d.metrics.On("RecordCommit", availability.KindDurationTooShort).Return()

	_, err := d.useCase().Execute(ctx, &commit_schedule.Request{UserID: 1, MentorID: 1})
	assert.ErrorIs(t, err, availability.ErrDurationTooShort)
}

func TestExecute_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	d := newDeps()
	d.access = &accessMock{}
	d.access.On("CheckOwner", ctx, int64(1), int64(1)).Return(access.ErrNotMentor)
	_, err := d.useCase().Execute(ctx, &commit_schedule.Request{UserID: 1, MentorID: 1})
	assert.ErrorIs(t, err, commit_schedule.ErrAccessDenied)

	d = newDeps()
	d.repo.On("Get", ctx, int64(1)).Return(fullWeek(), nil)
	d.repo.On("MarkCommitted", ctx, int64(1), now).Return(errors.New("deadlock"))
	_, err = d.useCase().Execute(ctx, &commit_schedule.Request{UserID: 1, MentorID: 1})
	assert.ErrorIs(t, err, commit_schedule.ErrInternal)
	d.metrics.AssertNotCalled(t, "RecordCommit", mock.Anything)
}

func TestExecute_KeepsDriverErrorForRetry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	conflict := fmt.Errorf("%w: MarkCommitted - execute update: %w", scheduleRepo.ErrExecQuery, &pq.Error{Code: "40001"})

	d := newDeps()
	d.repo.On("Get", ctx, int64(1)).Return(fullWeek(), nil)
	d.repo.On("MarkCommitted", ctx, int64(1), now).Return(conflict)

	_, err := d.useCase().Execute(ctx, &commit_schedule.Request{UserID: 1, MentorID: 1})
	assert.ErrorIs(t, err, commit_schedule.ErrInternal)

	// txmanager повторяет транзакцию только если видит *pq.Error в цепочке
	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}
