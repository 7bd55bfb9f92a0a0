package replace_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// UseCase use case для замены недельного расписания целиком
type UseCase struct {
	scheduleRepo ScheduleRepository
	configs      ConfigProvider
	access       AccessChecker
	txManager    TxManager
	cache        ScheduleCache
	metrics      MetricsRecorder
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	configs ConfigProvider,
	access AccessChecker,
	txManager TxManager,
	cache ScheduleCache,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		configs:      configs,
		access:       access,
		txManager:    txManager,
		cache:        cache,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute проверяет присланную неделю по текущей конфигурации ментора и сохраняет ее черновиком
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.MentorSchedule, error) {
	uc.logger.Info("ReplaceSchedule: user=%d, mentor=%d", req.UserID, req.MentorID)

	// 1. Проверяем права доступа
	if err := uc.access.CheckOwner(ctx, req.UserID, req.MentorID); err != nil {
		uc.logger.Warn("ReplaceSchedule: access check failed for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrAccessDenied, err)
	}

	if req.Week == nil {
		return nil, fmt.Errorf("%w: week is required", ErrInvalidInput)
	}

	// 2. Приводим неделю к каноническому виду: метки дней и порядок слотов
	week := req.Week.Clone()
	availability.Normalize(week)

	var saved *domain.MentorSchedule
	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		cfg, err := uc.configs.Effective(ctx, req.MentorID)
		if err != nil {
			return fmt.Errorf("%w: failed to get config: %w", ErrInternal, err)
		}

		// 3. Проверяем все правила, кроме пустых активных дней (это условие фиксации)
		if err := availability.ValidateWeek(week, cfg); err != nil {
			return err
		}

		saved, err = uc.scheduleRepo.Save(ctx, &domain.MentorSchedule{
			MentorID: req.MentorID,
			Week:     week,
			Status:   domain.StatusDraft,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to save schedule: %w", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		if availability.IsValidationError(err) {
			uc.metrics.RecordEdit(OpReplace, availability.Kind(err))
			uc.logger.Warn("ReplaceSchedule: week rejected for mentor=%d: %v", req.MentorID, err)
			return nil, err
		}
		uc.logger.Error("ReplaceSchedule: failed for mentor=%d: %v", req.MentorID, err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	uc.metrics.RecordEdit(OpReplace, "")
	uc.cache.Invalidate(ctx, req.MentorID)

	uc.logger.Info("ReplaceSchedule: saved %d slots for mentor=%d", week.TotalSlots(), req.MentorID)
	return saved, nil
}
