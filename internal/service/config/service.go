package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	configRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/config/models"
)

// Service сервис для работы с конфигурацией расписания ментора
type Service struct {
	configRepo ConfigRepository
	access     AccessChecker
	defaults   domain.ScheduleConfig
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации.
// defaults действует для менторов без собственной конфигурации.
func NewService(
	configRepo ConfigRepository,
	access AccessChecker,
	defaults domain.ScheduleConfig,
	logger Logger,
) *Service {
	return &Service{
		configRepo: configRepo,
		access:     access,
		defaults:   defaults,
		logger:     logger,
	}
}

// Get получает конфигурацию ментора
// Публичный метод - доступен всем
func (s *Service) Get(ctx context.Context, mentorID int64) (*models.ConfigResponse, error) {
	s.logger.Info("Get: fetching config for mentor=%d", mentorID)

	config, err := s.configRepo.GetByMentor(ctx, mentorID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			resp := models.FromScheduleConfig(mentorID, s.defaults)
			resp.IsDefault = true
			return resp, nil
		}
		s.logger.Error("Get: repository error for mentor=%d: %v", mentorID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainConfig(config), nil
}

// Effective возвращает конфигурацию, по которой проверяется расписание ментора.
// Если в контексте есть транзакция, чтение идет в ней.
func (s *Service) Effective(ctx context.Context, mentorID int64) (domain.ScheduleConfig, error) {
	config, err := s.configRepo.GetByMentor(ctx, mentorID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return s.defaults, nil
		}
		return domain.ScheduleConfig{}, fmt.Errorf("%w: Effective - repository error: %w", ErrInternal, err)
	}
	return config.Config, nil
}

// Update обновляет конфигурацию ментора
// Доступно только самому ментору
// Поддерживает частичное обновление - обновляются только указанные поля
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating config for mentor=%d by user=%d", req.MentorID, req.UserID)

	// 1. Проверяем права доступа
	if err := s.access.CheckOwner(ctx, req.UserID, req.MentorID); err != nil {
		s.logger.Warn("Update: access check failed for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrAccessDenied, err)
	}

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	// 2. Берем текущую конфигурацию (собственную или по умолчанию)
	current, err := s.Effective(ctx, req.MentorID)
	if err != nil {
		s.logger.Error("Update: failed to load config for mentor=%d: %v", req.MentorID, err)
		return nil, err
	}

	// 3. Применяем обновления и валидируем результат
	req.ApplyToConfig(&current)
	if err := validateConfigData(current); err != nil {
		s.logger.Warn("Update: validation failed for mentor=%d: %v", req.MentorID, err)
		return nil, err
	}

	// 4. Сохраняем конфигурацию
	updated, err := s.configRepo.Upsert(ctx, &domain.MentorScheduleConfig{
		MentorID: req.MentorID,
		Config:   current,
	})
	if err != nil {
		s.logger.Error("Update: repository error for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated config for mentor=%d", req.MentorID)
	return models.FromDomainConfig(updated), nil
}

// Reset удаляет собственную конфигурацию ментора, после чего действует конфигурация по умолчанию
// Доступно только самому ментору
func (s *Service) Reset(ctx context.Context, mentorID, userID int64) error {
	s.logger.Info("Reset: resetting config for mentor=%d by user=%d", mentorID, userID)

	if err := s.access.CheckOwner(ctx, userID, mentorID); err != nil {
		s.logger.Warn("Reset: access check failed for user=%d: %v", userID, err)
		return fmt.Errorf("%w: %v", ErrAccessDenied, err)
	}

	if err := s.configRepo.Delete(ctx, mentorID); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Reset: mentor=%d has no own config", mentorID)
			return ErrConfigNotFound
		}
		s.logger.Error("Reset: repository error for mentor=%d: %v", mentorID, err)
		return fmt.Errorf("%w: Reset - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Reset: successfully reset config for mentor=%d", mentorID)
	return nil
}

// validateConfigData проверяет границы параметров и согласованность конфигурации
func validateConfigData(c domain.ScheduleConfig) error {
	if c.BufferMinutes < domain.MinBufferMinutes || c.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	if c.MaxSlotsPerDay < domain.MinSlotsPerDay || c.MaxSlotsPerDay > domain.MaxSlotsPerDay {
		return fmt.Errorf("%w: maxSlotsPerDay must be between %d and %d",
			ErrInvalidInput, domain.MinSlotsPerDay, domain.MaxSlotsPerDay)
	}

	if c.MinSessionMinutes < domain.MinSessionMinutes || c.MinSessionMinutes > domain.MaxSessionMinutes {
		return fmt.Errorf("%w: minSessionMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSessionMinutes, domain.MaxSessionMinutes)
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}
