package blocked_dates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	blockedRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/blocked_dates"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/blocked_dates/models"
)

// Service сервис заблокированных дат ментора
type Service struct {
	repo         BlockedDatesRepository
	access       AccessChecker
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	repo BlockedDatesRepository,
	access AccessChecker,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		access:       access,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Create блокирует дату в расписании ментора
// Доступно только самому ментору
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) (*models.BlockedDateResponse, error) {
	s.logger.Info("Create: blocking date=%s for mentor=%d by user=%d",
		req.Date.Format(domain.DateFormat), req.MentorID, req.UserID)

	// 1. Проверяем права доступа
	if err := s.access.CheckOwner(ctx, req.UserID, req.MentorID); err != nil {
		s.logger.Warn("Create: access check failed for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrAccessDenied, err)
	}

	// 2. Валидируем входные данные
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	reason := strings.TrimSpace(req.Reason)
	if utf8.RuneCountInString(reason) > domain.MaxBlockReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxBlockReasonLength)
	}

	date := domain.DateOnly(req.Date)
	if date.Before(domain.DateOnly(s.timeProvider.Now().UTC())) {
		s.logger.Warn("Create: date=%s is in the past", date.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	// 3. Сохраняем
	created, err := s.repo.Create(ctx, &domain.BlockedDate{
		MentorID: req.MentorID,
		Date:     date,
		Reason:   reason,
	})
	if err != nil {
		if errors.Is(err, blockedRepo.ErrDuplicateDate) {
			s.logger.Warn("Create: date=%s already blocked for mentor=%d", date.Format(domain.DateFormat), req.MentorID)
			return nil, ErrDateAlreadyBlocked
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Create: successfully blocked date id=%d", created.ID)
	return models.FromDomain(created), nil
}

// List возвращает заблокированные даты ментора
// Публичный метод - доступен всем
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.BlockedDateListResponse, error) {
	if !req.From.IsZero() && !req.To.IsZero() && req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: 'to' must not be before 'from'", ErrInvalidInput)
	}

	list, err := s.repo.ListByMentor(ctx, req.MentorID, req.From, req.To)
	if err != nil {
		s.logger.Error("List: repository error for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainList(list), nil
}

// Delete снимает блокировку даты
// Доступно только ментору, которому принадлежит дата
func (s *Service) Delete(ctx context.Context, mentorID, id, userID int64) error {
	s.logger.Info("Delete: deleting blocked date id=%d of mentor=%d by user=%d", id, mentorID, userID)

	// 1. Получаем дату, чтобы проверить владельца
	blocked, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, blockedRepo.ErrBlockedDateNotFound) {
			return ErrBlockedDateNotFound
		}
		s.logger.Error("Delete: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	// Дата другого ментора для этого пути не существует
	if blocked.MentorID != mentorID {
		return ErrBlockedDateNotFound
	}

	// 2. Проверяем права доступа
	if err := s.access.CheckOwner(ctx, userID, blocked.MentorID); err != nil {
		s.logger.Warn("Delete: access check failed for user=%d: %v", userID, err)
		return fmt.Errorf("%w: %v", ErrAccessDenied, err)
	}

	// 3. Удаляем
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockedRepo.ErrBlockedDateNotFound) {
			return ErrBlockedDateNotFound
		}
		s.logger.Error("Delete: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted blocked date id=%d", id)
	return nil
}
