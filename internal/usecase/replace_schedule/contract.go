package replace_schedule

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Save(ctx context.Context, schedule *domain.MentorSchedule) (*domain.MentorSchedule, error)
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

// MetricsRecorder учет результатов редактирования
type MetricsRecorder interface {
	RecordEdit(op string, kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
