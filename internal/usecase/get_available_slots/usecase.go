package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
)

// UseCase use case для получения открытых слотов ментора на дату
type UseCase struct {
	scheduleRepo ScheduleRepository
	blockedRepo  BlockedDatesRepository
	cache        ScheduleCache
	options      Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	blockedRepo BlockedDatesRepository,
	cache ScheduleCache,
	options Options,
	logger Logger,
) *UseCase {
	if options.MaxAdvanceDays <= 0 {
		options.MaxAdvanceDays = domain.MaxAdvanceDays
	}
	return &UseCase{
		scheduleRepo: scheduleRepo,
		blockedRepo:  blockedRepo,
		cache:        cache,
		options:      options,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: mentor=%d, date=%s", req.MentorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время, даты считаются в UTC
	now := uc.timeProvider.Now().UTC()
	date := domain.DateOnly(req.Date)

	// 3. Валидация даты
	if err := validateDate(date, now, uc.options.MaxAdvanceDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	day := domain.DayOfWeekFromWeekday(date.Weekday())
	resp := &Response{
		MentorID: req.MentorID,
		Date:     date,
		Day:      day,
		Slots:    []domain.OpenSlot{},
	}

	// 4. Получаем зафиксированное расписание
	schedule, err := uc.committedSchedule(ctx, req.MentorID)
	if err != nil {
		return nil, err
	}

	// 5. Заблокированная дата перекрывает недельный шаблон
	blocked, err := uc.blockedRepo.ExistsOnDate(ctx, req.MentorID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check blocked date: %v", err)
		return nil, fmt.Errorf("%w: failed to check blocked date: %w", ErrInternal, err)
	}
	if blocked {
		uc.logger.Info("GetAvailableSlots: date=%s is blocked by mentor=%d", date.Format(domain.DateFormat), req.MentorID)
		resp.Blocked = true
		return resp, nil
	}

	// 6. Слоты дня недели
	ds := schedule.Week.Day(day)
	resp.DayActive = ds.Active
	resp.Slots = openSlots(*ds, date, now, uc.options.MinNoticeMinutes)

	uc.logger.Info("GetAvailableSlots: %d slots for mentor=%d, date=%s",
		len(resp.Slots), req.MentorID, date.Format(domain.DateFormat))
	return resp, nil
}

// committedSchedule берет расписание из кэша, при промахе из БД
func (uc *UseCase) committedSchedule(ctx context.Context, mentorID int64) (*domain.MentorSchedule, error) {
	cached, generation, ok := uc.cache.GetSchedule(ctx, mentorID)
	if ok && cached.IsCommitted() {
		return cached, nil
	}

	schedule, err := uc.scheduleRepo.Get(ctx, mentorID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("GetAvailableSlots: mentor=%d has no schedule", mentorID)
			return nil, ErrScheduleNotCommitted
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, err)
	}

	if !schedule.IsCommitted() {
		uc.logger.Warn("GetAvailableSlots: schedule of mentor=%d is a draft", mentorID)
		return nil, ErrScheduleNotCommitted
	}

	uc.cache.SetSchedule(ctx, schedule, generation)
	return schedule, nil
}
