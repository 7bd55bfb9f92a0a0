package blocked_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// BlockedDatesRepository интерфейс репозитория заблокированных дат
type BlockedDatesRepository interface {
	Create(ctx context.Context, blocked *domain.BlockedDate) (*domain.BlockedDate, error)
	GetByID(ctx context.Context, id int64) (*domain.BlockedDate, error)
	ListByMentor(ctx context.Context, mentorID int64, from, to time.Time) ([]*domain.BlockedDate, error)
	Delete(ctx context.Context, id int64) error
}

// AccessChecker проверка, что пользователь управляет расписанием ментора
type AccessChecker interface {
	CheckOwner(ctx context.Context, userID, mentorID int64) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
