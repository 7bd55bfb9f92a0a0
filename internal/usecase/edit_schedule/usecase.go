package edit_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
)

// UseCase use case для применения одной правки к недельному расписанию
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

// Execute применяет правку. Нарушение правил расписания возвращается как ошибка
// пакета availability, расписание при этом не меняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("EditSchedule: user=%d, mentor=%d, op=%s, day=%s, slot=%d",
		req.UserID, req.MentorID, req.Edit.Op, req.Edit.Day, req.Edit.Slot)

	// 1. Проверяем права доступа
	if err := uc.access.CheckOwner(ctx, req.UserID, req.MentorID); err != nil {
		uc.logger.Warn("EditSchedule: access check failed for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrAccessDenied, err)
	}

	resp := &Response{}

	// 2. Читаем, правим и сохраняем в одной транзакции, параллельные правки не теряются
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
			schedule = domain.NewMentorSchedule(req.MentorID)
		}

		if err := applyEdit(schedule.Week, cfg, req.Edit, resp); err != nil {
			return err
		}

		// Любая правка возвращает расписание в черновик
		schedule.Status = domain.StatusDraft
		schedule.CommittedAt = nil

		saved, err := uc.scheduleRepo.Save(ctx, schedule)
		if err != nil {
			return fmt.Errorf("%w: failed to save schedule: %w", ErrInternal, err)
		}
		resp.Schedule = saved
		return nil
	})

	if err != nil {
		if availability.IsValidationError(err) {
			uc.metrics.RecordEdit(string(req.Edit.Op), availability.Kind(err))
			uc.logger.Warn("EditSchedule: edit rejected for mentor=%d: %v", req.MentorID, err)
			return nil, err
		}
		uc.logger.Error("EditSchedule: failed for mentor=%d: %v", req.MentorID, err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	uc.metrics.RecordEdit(string(req.Edit.Op), "")

	// 3. Зафиксированная версия в кэше больше не актуальна
	uc.cache.Invalidate(ctx, req.MentorID)

	uc.logger.Info("EditSchedule: applied op=%s for mentor=%d", req.Edit.Op, req.MentorID)
	return resp, nil
}

func applyEdit(week *domain.WeekSchedule, cfg domain.ScheduleConfig, e availability.Edit, resp *Response) error {
	if e.Op != availability.OpAdd {
		return availability.Apply(week, cfg, e)
	}

	slot, err := availability.AddSlot(week, cfg, e.Day)
	if err != nil {
		return err
	}
	resp.Added = &slot
	return nil
}
