package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Get(ctx context.Context, mentorID int64) (*domain.MentorSchedule, error)
}

// BlockedDatesRepository интерфейс репозитория заблокированных дат
type BlockedDatesRepository interface {
	ExistsOnDate(ctx context.Context, mentorID int64, date time.Time) (bool, error)
}

// ScheduleCache кэш зафиксированных расписаний.
// SetSchedule получает поколение из GetSchedule и не пишет, если расписание инвалидировали.
type ScheduleCache interface {
	GetSchedule(ctx context.Context, mentorID int64) (*domain.MentorSchedule, int64, bool)
	SetSchedule(ctx context.Context, schedule *domain.MentorSchedule, generation int64)
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
