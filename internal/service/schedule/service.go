package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
)

// Service сервис чтения расписания ментора
type Service struct {
	repo   ScheduleRepository
	access AccessChecker
	logger Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo ScheduleRepository, access AccessChecker, logger Logger) *Service {
	return &Service{
		repo:   repo,
		access: access,
		logger: logger,
	}
}

// Get возвращает расписание ментора вместе с черновиком, поэтому доступно только самому ментору.
// Если ментор еще ничего не сохранял, возвращается пустой черновик.
func (s *Service) Get(ctx context.Context, userID, mentorID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("Get: fetching schedule for mentor=%d by user=%d", mentorID, userID)

	if err := s.access.CheckOwner(ctx, userID, mentorID); err != nil {
		s.logger.Warn("Get: access check failed for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: %v", ErrAccessDenied, err)
	}

	schedule, err := s.repo.Get(ctx, mentorID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return models.FromDomain(domain.NewMentorSchedule(mentorID)), nil
		}
		s.logger.Error("Get: repository error for mentor=%d: %v", mentorID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %w", ErrInternal, err)
	}

	return models.FromDomain(schedule), nil
}
