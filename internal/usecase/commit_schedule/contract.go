package commit_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/notifier"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Get(ctx context.Context, mentorID int64) (*domain.MentorSchedule, error)
	MarkCommitted(ctx context.Context, mentorID int64, at time.Time) error
}

// ConfigProvider конфигурация, по которой проверяется расписание ментора
type ConfigProvider interface {
	Effective(ctx context.Context, mentorID int64) (domain.ScheduleConfig, error)
}

// AccessChecker проверка, что пользователь управляет расписанием ментора
type AccessChecker interface {
	CheckOwner(ctx context.Context, userID, mentorID int64) error
}

// TxManager интерфейс для управления транзакциями
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ScheduleCache кэш зафиксированных расписаний
type ScheduleCache interface {
	Invalidate(ctx context.Context, mentorID int64)
}

// EventPublisher публикация событий расписания
type EventPublisher interface {
	PublishScheduleCommitted(ctx context.Context, event notifier.ScheduleCommitted) error
}

// MetricsRecorder учет попыток фиксации
type MetricsRecorder interface {
	RecordCommit(kind string)
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
