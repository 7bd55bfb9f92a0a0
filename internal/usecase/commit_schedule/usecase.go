package commit_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/notifier"
)

// UseCase use case для фиксации (публикации) недельного расписания
type UseCase struct {
	scheduleRepo ScheduleRepository
	configs      ConfigProvider
	access       AccessChecker
	txManager    TxManager
	cache        ScheduleCache
	events       EventPublisher
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	configs ConfigProvider,
	access AccessChecker,
	txManager TxManager,
	cache ScheduleCache,
	events EventPublisher,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		configs:      configs,
		access:       access,
		txManager:    txManager,
		cache:        cache,
		events:       events,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute проверяет расписание полностью и переводит его в committed.
// Ошибки кэша и публикации события не отменяют фиксацию.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.MentorSchedule, error) {
	uc.logger.Info("CommitSchedule: user=%d, mentor=%d", req.UserID, req.MentorID)

	// 1. Проверяем права доступа
	if err := uc.access.CheckOwner(ctx, req.UserID, req.MentorID); err != nil {
		uc.logger.Warn("CommitSchedule: access check failed for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrAccessDenied, err)
	}

	var committed *domain.MentorSchedule

	// 2. Проверка и фиксация в одной транзакции с чтением
	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		cfg, err := uc.configs.Effective(ctx, req.MentorID)
		if err != nil {
			return fmt.Errorf("%w: failed to get config: %w", ErrInternal, err)
		}

		schedule, err := uc.scheduleRepo.Get(ctx, req.MentorID)
		if err != nil {
			if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, err)
			}
			// пустая неделя не пройдет проверку, ментор получит первый пустой день
			schedule = domain.NewMentorSchedule(req.MentorID)
		}

		// Конфигурация могла измениться после последней правки
		if err := availability.ValidateWeek(schedule.Week, cfg); err != nil {
			return err
		}
		if err := availability.ValidateFullSchedule(schedule.Week); err != nil {
			return err
		}

		now := uc.timeProvider.Now().UTC()
		if err := uc.scheduleRepo.MarkCommitted(ctx, req.MentorID, now); err != nil {
			return fmt.Errorf("%w: failed to mark committed: %w", ErrInternal, err)
		}

		schedule.Status = domain.StatusCommitted
		schedule.CommittedAt = &now
		schedule.UpdatedAt = now
		committed = schedule
		return nil
	})

	if err != nil {
		if availability.IsValidationError(err) {
			uc.metrics.RecordCommit(availability.Kind(err))
			uc.logger.Warn("CommitSchedule: schedule of mentor=%d rejected: %v", req.MentorID, err)
			return nil, err
		}
		uc.logger.Error("CommitSchedule: failed for mentor=%d: %v", req.MentorID, err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	uc.metrics.RecordCommit("")

	// 3. Сбрасываем кэш (его заполнит следующий читатель) и уведомляем подписчиков
	uc.cache.Invalidate(ctx, req.MentorID)

	event := notifier.ScheduleCommitted{
		MentorID:    committed.MentorID,
		CommittedAt: *committed.CommittedAt,
		TotalSlots:  committed.Week.TotalSlots(),
		Week:        committed.Week,
	}
	if err := uc.events.PublishScheduleCommitted(ctx, event); err != nil {
		uc.logger.Warn("CommitSchedule: failed to publish event for mentor=%d: %v", req.MentorID, err)
	}

	uc.logger.Info("CommitSchedule: mentor=%d committed %d slots", req.MentorID, event.TotalSlots)
	return committed, nil
}
